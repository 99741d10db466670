package mocks

import (
	"context"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// MockAuthService implements domain.AuthService for handler testing
type MockAuthService struct {
	SignUpFunc                  func(ctx context.Context, input domain.SignUpInput) (string, error)
	ActivateFunc                func(ctx context.Context, link string) (*domain.TokenPair, error)
	SignInFunc                  func(ctx context.Context, email, password string) (*domain.TokenPair, error)
	SignOutFunc                 func(ctx context.Context, userID uint) (uint, error)
	RefreshFunc                 func(ctx context.Context, userID uint, refreshToken string) (*domain.TokenPair, error)
	RequestPasswordResetOtpFunc func(ctx context.Context, email string) (string, error)
	VerifyOtpFunc               func(ctx context.Context, envelope, email, code string) error
	ResetPasswordFunc           func(ctx context.Context, email, password, confirmPassword string) error
}

func NewMockAuthService() *MockAuthService {
	return &MockAuthService{}
}

func (m *MockAuthService) SignUp(ctx context.Context, input domain.SignUpInput) (string, error) {
	if m.SignUpFunc != nil {
		return m.SignUpFunc(ctx, input)
	}
	return "ok", nil
}

func (m *MockAuthService) Activate(ctx context.Context, link string) (*domain.TokenPair, error) {
	if m.ActivateFunc != nil {
		return m.ActivateFunc(ctx, link)
	}
	return &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *MockAuthService) SignIn(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	if m.SignInFunc != nil {
		return m.SignInFunc(ctx, email, password)
	}
	return &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *MockAuthService) SignOut(ctx context.Context, userID uint) (uint, error) {
	if m.SignOutFunc != nil {
		return m.SignOutFunc(ctx, userID)
	}
	return userID, nil
}

func (m *MockAuthService) Refresh(ctx context.Context, userID uint, refreshToken string) (*domain.TokenPair, error) {
	if m.RefreshFunc != nil {
		return m.RefreshFunc(ctx, userID, refreshToken)
	}
	return &domain.TokenPair{AccessToken: "access", RefreshToken: "refresh"}, nil
}

func (m *MockAuthService) RequestPasswordResetOtp(ctx context.Context, email string) (string, error) {
	if m.RequestPasswordResetOtpFunc != nil {
		return m.RequestPasswordResetOtpFunc(ctx, email)
	}
	return "envelope", nil
}

func (m *MockAuthService) VerifyOtp(ctx context.Context, envelope, email, code string) error {
	if m.VerifyOtpFunc != nil {
		return m.VerifyOtpFunc(ctx, envelope, email, code)
	}
	return nil
}

func (m *MockAuthService) ResetPassword(ctx context.Context, email, password, confirmPassword string) error {
	if m.ResetPasswordFunc != nil {
		return m.ResetPasswordFunc(ctx, email, password, confirmPassword)
	}
	return nil
}

// Compile-time interface compliance verification
var _ domain.AuthService = (*MockAuthService)(nil)
