package mocks

import (
	"context"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// MockOtpRepository implements domain.OtpRepository for testing
type MockOtpRepository struct {
	ReplaceFunc       func(ctx context.Context, otp *domain.Otp) error
	FindByIDFunc      func(ctx context.Context, id uint) (*domain.Otp, error)
	LatestByEmailFunc func(ctx context.Context, email string) (*domain.Otp, error)
	MarkVerifiedFunc  func(ctx context.Context, id uint) error
	DeleteFunc        func(ctx context.Context, id uint) error
}

// NewMockOtpRepository creates a new MockOtpRepository with default behaviors
func NewMockOtpRepository() *MockOtpRepository {
	return &MockOtpRepository{}
}

func (m *MockOtpRepository) Replace(ctx context.Context, otp *domain.Otp) error {
	if m.ReplaceFunc != nil {
		return m.ReplaceFunc(ctx, otp)
	}
	otp.ID = 1
	return nil
}

func (m *MockOtpRepository) FindByID(ctx context.Context, id uint) (*domain.Otp, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrOtpNotFound
}

func (m *MockOtpRepository) LatestByEmail(ctx context.Context, email string) (*domain.Otp, error) {
	if m.LatestByEmailFunc != nil {
		return m.LatestByEmailFunc(ctx, email)
	}
	return nil, domain.ErrOtpNotFound
}

func (m *MockOtpRepository) MarkVerified(ctx context.Context, id uint) error {
	if m.MarkVerifiedFunc != nil {
		return m.MarkVerifiedFunc(ctx, id)
	}
	return nil
}

func (m *MockOtpRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.OtpRepository = (*MockOtpRepository)(nil)
