package mocks

import (
	"context"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// MockPasswordService implements domain.PasswordService for testing
type MockPasswordService struct {
	HashFunc   func(secret string) (string, error)
	VerifyFunc func(hashedSecret, secret string) bool
}

func NewMockPasswordService() *MockPasswordService {
	return &MockPasswordService{}
}

func (m *MockPasswordService) Hash(secret string) (string, error) {
	if m.HashFunc != nil {
		return m.HashFunc(secret)
	}
	return "hashed_" + secret, nil
}

func (m *MockPasswordService) Verify(hashedSecret, secret string) bool {
	if m.VerifyFunc != nil {
		return m.VerifyFunc(hashedSecret, secret)
	}
	return hashedSecret == "hashed_"+secret
}

// MockTokenService implements domain.TokenService for testing
type MockTokenService struct {
	GeneratePairFunc         func(user *domain.User) (*domain.TokenPair, error)
	ValidateAccessTokenFunc  func(token string) (*domain.TokenClaims, error)
	ValidateRefreshTokenFunc func(token string) (*domain.TokenClaims, error)
	DecodeUnverifiedFunc     func(token string) (*domain.TokenClaims, error)
}

func NewMockTokenService() *MockTokenService {
	return &MockTokenService{}
}

func (m *MockTokenService) GeneratePair(user *domain.User) (*domain.TokenPair, error) {
	if m.GeneratePairFunc != nil {
		return m.GeneratePairFunc(user)
	}
	return &domain.TokenPair{AccessToken: "access_token", RefreshToken: "refresh_token"}, nil
}

func (m *MockTokenService) ValidateAccessToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateAccessTokenFunc != nil {
		return m.ValidateAccessTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) ValidateRefreshToken(token string) (*domain.TokenClaims, error) {
	if m.ValidateRefreshTokenFunc != nil {
		return m.ValidateRefreshTokenFunc(token)
	}
	return nil, domain.ErrTokenInvalid
}

func (m *MockTokenService) DecodeUnverified(token string) (*domain.TokenClaims, error) {
	if m.DecodeUnverifiedFunc != nil {
		return m.DecodeUnverifiedFunc(token)
	}
	return nil, domain.ErrTokenMalformed
}

// MockOtpCodec implements domain.OtpCodec for testing
type MockOtpCodec struct {
	GenerateCodeFunc   func() (string, error)
	EncodeEnvelopeFunc func(payload *domain.OtpEnvelope) (string, error)
	DecodeEnvelopeFunc func(envelope string) (*domain.OtpEnvelope, error)
}

func NewMockOtpCodec() *MockOtpCodec {
	return &MockOtpCodec{}
}

func (m *MockOtpCodec) GenerateCode() (string, error) {
	if m.GenerateCodeFunc != nil {
		return m.GenerateCodeFunc()
	}
	return "12345", nil
}

func (m *MockOtpCodec) EncodeEnvelope(payload *domain.OtpEnvelope) (string, error) {
	if m.EncodeEnvelopeFunc != nil {
		return m.EncodeEnvelopeFunc(payload)
	}
	return "envelope", nil
}

func (m *MockOtpCodec) DecodeEnvelope(envelope string) (*domain.OtpEnvelope, error) {
	if m.DecodeEnvelopeFunc != nil {
		return m.DecodeEnvelopeFunc(envelope)
	}
	return nil, domain.ErrEnvelopeInvalid
}

// MockMailer implements domain.Mailer for testing
type MockMailer struct {
	SendActivationFunc func(ctx context.Context, to, name, activationLink string) error
	SendOtpFunc        func(ctx context.Context, to, code string) error
}

func NewMockMailer() *MockMailer {
	return &MockMailer{}
}

func (m *MockMailer) SendActivation(ctx context.Context, to, name, activationLink string) error {
	if m.SendActivationFunc != nil {
		return m.SendActivationFunc(ctx, to, name, activationLink)
	}
	return nil
}

func (m *MockMailer) SendOtp(ctx context.Context, to, code string) error {
	if m.SendOtpFunc != nil {
		return m.SendOtpFunc(ctx, to, code)
	}
	return nil
}

// MockFileStore implements domain.FileStore for testing
type MockFileStore struct {
	StoreFunc func(ctx context.Context, data []byte, contentType string) (string, error)
}

func NewMockFileStore() *MockFileStore {
	return &MockFileStore{}
}

func (m *MockFileStore) Store(ctx context.Context, data []byte, contentType string) (string, error) {
	if m.StoreFunc != nil {
		return m.StoreFunc(ctx, data, contentType)
	}
	return "http://files.local/object", nil
}

// Compile-time interface compliance verification
var (
	_ domain.PasswordService = (*MockPasswordService)(nil)
	_ domain.TokenService    = (*MockTokenService)(nil)
	_ domain.OtpCodec        = (*MockOtpCodec)(nil)
	_ domain.Mailer          = (*MockMailer)(nil)
	_ domain.FileStore       = (*MockFileStore)(nil)
)
