package mocks

import (
	"context"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// MockUserRepository implements domain.UserRepository for testing
type MockUserRepository struct {
	CreateFunc                        func(ctx context.Context, user *domain.User) error
	FindByEmailFunc                   func(ctx context.Context, email string) (*domain.User, error)
	FindByIDFunc                      func(ctx context.Context, id uint) (*domain.User, error)
	FindAllFunc                       func(ctx context.Context) ([]domain.User, error)
	UpdateFunc                        func(ctx context.Context, user *domain.User) error
	DeleteFunc                        func(ctx context.Context, id uint) error
	ActivateFunc                      func(ctx context.Context, link string) (*domain.User, error)
	SetRefreshTokenHashFunc           func(ctx context.Context, id uint, hash *string) error
	CompareAndSetRefreshTokenHashFunc func(ctx context.Context, id uint, oldHash, newHash string) error
	ClearRefreshTokenHashFunc         func(ctx context.Context, id uint) error
	UpdatePasswordFunc                func(ctx context.Context, id uint, passwordHash string) error
}

// NewMockUserRepository creates a new MockUserRepository with default behaviors
func NewMockUserRepository() *MockUserRepository {
	return &MockUserRepository{}
}

func (m *MockUserRepository) Create(ctx context.Context, user *domain.User) error {
	if m.CreateFunc != nil {
		return m.CreateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) FindByEmail(ctx context.Context, email string) (*domain.User, error) {
	if m.FindByEmailFunc != nil {
		return m.FindByEmailFunc(ctx, email)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindByID(ctx context.Context, id uint) (*domain.User, error) {
	if m.FindByIDFunc != nil {
		return m.FindByIDFunc(ctx, id)
	}
	return nil, domain.ErrUserNotFound
}

func (m *MockUserRepository) FindAll(ctx context.Context) ([]domain.User, error) {
	if m.FindAllFunc != nil {
		return m.FindAllFunc(ctx)
	}
	return nil, nil
}

func (m *MockUserRepository) Update(ctx context.Context, user *domain.User) error {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, user)
	}
	return nil
}

func (m *MockUserRepository) Delete(ctx context.Context, id uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) Activate(ctx context.Context, link string) (*domain.User, error) {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, link)
	}
	return nil, domain.ErrAlreadyActivated
}

func (m *MockUserRepository) SetRefreshTokenHash(ctx context.Context, id uint, hash *string) error {
	if m.SetRefreshTokenHashFunc != nil {
		return m.SetRefreshTokenHashFunc(ctx, id, hash)
	}
	return nil
}

func (m *MockUserRepository) CompareAndSetRefreshTokenHash(ctx context.Context, id uint, oldHash, newHash string) error {
	if m.CompareAndSetRefreshTokenHashFunc != nil {
		return m.CompareAndSetRefreshTokenHashFunc(ctx, id, oldHash, newHash)
	}
	return nil
}

func (m *MockUserRepository) ClearRefreshTokenHash(ctx context.Context, id uint) error {
	if m.ClearRefreshTokenHashFunc != nil {
		return m.ClearRefreshTokenHashFunc(ctx, id)
	}
	return nil
}

func (m *MockUserRepository) UpdatePassword(ctx context.Context, id uint, passwordHash string) error {
	if m.UpdatePasswordFunc != nil {
		return m.UpdatePasswordFunc(ctx, id, passwordHash)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserRepository = (*MockUserRepository)(nil)
