package mocks

import (
	"context"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// MockUserService implements domain.UserService for handler testing
type MockUserService struct {
	ListFunc   func(ctx context.Context) ([]domain.User, error)
	UpdateFunc func(ctx context.Context, targetID, actorID uint, actorAdmin bool, input domain.UpdateUserInput) (*domain.User, error)
	DeleteFunc func(ctx context.Context, targetID, actorID uint) error
}

func NewMockUserService() *MockUserService {
	return &MockUserService{}
}

func (m *MockUserService) List(ctx context.Context) ([]domain.User, error) {
	if m.ListFunc != nil {
		return m.ListFunc(ctx)
	}
	return nil, domain.ErrNoUsers
}

func (m *MockUserService) Update(ctx context.Context, targetID, actorID uint, actorAdmin bool, input domain.UpdateUserInput) (*domain.User, error) {
	if m.UpdateFunc != nil {
		return m.UpdateFunc(ctx, targetID, actorID, actorAdmin, input)
	}
	return &domain.User{ID: targetID}, nil
}

func (m *MockUserService) Delete(ctx context.Context, targetID, actorID uint) error {
	if m.DeleteFunc != nil {
		return m.DeleteFunc(ctx, targetID, actorID)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.UserService = (*MockUserService)(nil)
