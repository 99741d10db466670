package services

import (
	"context"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// mailTimeout bounds every outbound mail dispatch so a stuck SMTP
// connection cannot hold a request open indefinitely.
const mailTimeout = 10 * time.Second

// tokenDigest folds a refresh JWT to a fixed-size value before it is
// bcrypt-hashed or bcrypt-verified. bcrypt caps its input at 72 bytes
// and a signed JWT is well past that; SHA-256 then base64 keeps the
// whole token significant while staying under the cap.
func tokenDigest(token string) string {
	sum := sha256.Sum256([]byte(token))
	return base64.StdEncoding.EncodeToString(sum[:])
}

// AuthServiceImpl implements domain.AuthService
type AuthServiceImpl struct {
	userRepo    domain.UserRepository
	otpRepo     domain.OtpRepository
	passwordSvc domain.PasswordService
	tokenSvc    domain.TokenService
	otpCodec    domain.OtpCodec
	mailer      domain.Mailer
	otpTTL      time.Duration
	logger      *zap.Logger
}

// NewAuthService creates a new auth service
func NewAuthService(
	userRepo domain.UserRepository,
	otpRepo domain.OtpRepository,
	passwordSvc domain.PasswordService,
	tokenSvc domain.TokenService,
	otpCodec domain.OtpCodec,
	mailer domain.Mailer,
	otpTTL time.Duration,
	logger *zap.Logger,
) domain.AuthService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthServiceImpl{
		userRepo:    userRepo,
		otpRepo:     otpRepo,
		passwordSvc: passwordSvc,
		tokenSvc:    tokenSvc,
		otpCodec:    otpCodec,
		mailer:      mailer,
		otpTTL:      otpTTL,
		logger:      logger,
	}
}

// SignUp implements domain.AuthService. The account stays inactive and
// unusable until the mailed activation link is followed; if the mail
// cannot be delivered the account is deleted again so no unreachable
// account is left behind.
func (s *AuthServiceImpl) SignUp(ctx context.Context, input domain.SignUpInput) (string, error) {
	if input.Password != input.ConfirmPassword {
		return "", domain.ErrPasswordsMismatch
	}

	existing, err := s.userRepo.FindByEmail(ctx, input.Email)
	if err == nil && existing != nil {
		return "", domain.ErrEmailTaken
	}
	if err != nil && !errors.Is(err, domain.ErrUserNotFound) {
		return "", fmt.Errorf("failed to look up email: %w", err)
	}

	hashedPassword, err := s.passwordSvc.Hash(input.Password)
	if err != nil {
		return "", fmt.Errorf("failed to hash password: %w", err)
	}

	link := uuid.NewString()
	user := &domain.User{
		Email:          input.Email,
		FirstName:      input.FirstName,
		LastName:       input.LastName,
		PasswordHash:   hashedPassword,
		IsActive:       false,
		ActivationLink: &link,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		if errors.Is(err, domain.ErrEmailTaken) {
			return "", domain.ErrEmailTaken
		}
		return "", fmt.Errorf("failed to create user: %w", err)
	}

	mailCtx, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()
	if err := s.mailer.SendActivation(mailCtx, user.Email, user.FirstName, link); err != nil {
		// Compensating delete: an account nobody can activate must not
		// survive a failed dispatch.
		if delErr := s.userRepo.Delete(ctx, user.ID); delErr != nil {
			s.logger.Error("failed to roll back user after mail failure",
				zap.Uint("user_id", user.ID), zap.Error(delErr))
		}
		return "", fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}

	s.logger.Info("user registered", zap.Uint("user_id", user.ID), zap.String("email", user.Email))
	return fmt.Sprintf("We have sent a confirmation link to email: %s", user.Email), nil
}

// Activate implements domain.AuthService. An unknown link and an
// already-consumed link fail identically.
func (s *AuthServiceImpl) Activate(ctx context.Context, link string) (*domain.TokenPair, error) {
	user, err := s.userRepo.Activate(ctx, link)
	if err != nil {
		if errors.Is(err, domain.ErrAlreadyActivated) {
			return nil, domain.ErrAlreadyActivated
		}
		return nil, fmt.Errorf("failed to activate user: %w", err)
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user activated", zap.Uint("user_id", user.ID))
	return pair, nil
}

// SignIn implements domain.AuthService. A missing account and a wrong
// password produce the same error so the endpoint is not an
// account-existence oracle.
func (s *AuthServiceImpl) SignIn(ctx context.Context, email, password string) (*domain.TokenPair, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to look up user: %w", err)
	}

	if !s.passwordSvc.Verify(user.PasswordHash, password) {
		s.logger.Info("sign-in rejected", zap.Uint("user_id", user.ID))
		return nil, domain.ErrInvalidCredentials
	}

	pair, err := s.issuePair(ctx, user)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user signed in", zap.Uint("user_id", user.ID))
	return pair, nil
}

// SignOut implements domain.AuthService. Signing out without a live
// session is rejected, not a no-op.
func (s *AuthServiceImpl) SignOut(ctx context.Context, userID uint) (uint, error) {
	if err := s.userRepo.ClearRefreshTokenHash(ctx, userID); err != nil {
		if errors.Is(err, domain.ErrNoLiveSession) {
			return 0, domain.ErrAccessDenied
		}
		return 0, fmt.Errorf("failed to clear session: %w", err)
	}

	s.logger.Info("user signed out", zap.Uint("user_id", userID))
	return userID, nil
}

// Refresh implements domain.AuthService. The presented token is
// trusted only through the bcrypt comparison against the single stored
// hash; each success overwrites that hash, so a refresh token works
// exactly once.
func (s *AuthServiceImpl) Refresh(ctx context.Context, userID uint, refreshToken string) (*domain.TokenPair, error) {
	claims, err := s.tokenSvc.DecodeUnverified(refreshToken)
	if err != nil || claims.UserID != userID {
		return nil, domain.ErrUserMismatch
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		return nil, domain.ErrAccessDenied
	}
	if user.RefreshTokenHash == nil {
		return nil, domain.ErrAccessDenied
	}

	if !s.passwordSvc.Verify(*user.RefreshTokenHash, tokenDigest(refreshToken)) {
		s.logger.Info("refresh rejected", zap.Uint("user_id", userID))
		return nil, domain.ErrAccessDenied
	}

	pair, err := s.tokenSvc.GeneratePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	newHash, err := s.passwordSvc.Hash(tokenDigest(pair.RefreshToken))
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	if err := s.userRepo.CompareAndSetRefreshTokenHash(ctx, user.ID, *user.RefreshTokenHash, newHash); err != nil {
		if errors.Is(err, domain.ErrAccessDenied) {
			return nil, domain.ErrAccessDenied
		}
		return nil, fmt.Errorf("failed to rotate refresh token: %w", err)
	}

	s.logger.Info("tokens refreshed", zap.Uint("user_id", user.ID))
	return pair, nil
}

// RequestPasswordResetOtp implements domain.AuthService. The mail goes
// out first; only a delivered code gets a record. The returned opaque
// envelope is the only reference to the record the client ever holds.
func (s *AuthServiceImpl) RequestPasswordResetOtp(ctx context.Context, email string) (string, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, domain.ErrUserNotFound) {
			return "", domain.ErrUserNotFound
		}
		return "", fmt.Errorf("failed to look up user: %w", err)
	}

	code, err := s.otpCodec.GenerateCode()
	if err != nil {
		return "", fmt.Errorf("failed to generate otp code: %w", err)
	}

	mailCtx, cancel := context.WithTimeout(ctx, mailTimeout)
	defer cancel()
	if err := s.mailer.SendOtp(mailCtx, email, code); err != nil {
		return "", fmt.Errorf("%w: %v", domain.ErrMailDelivery, err)
	}

	now := time.Now()
	otp := &domain.Otp{
		Email:     email,
		Code:      code,
		ExpiresAt: now.Add(s.otpTTL),
		UserID:    user.ID,
	}

	if err := s.otpRepo.Replace(ctx, otp); err != nil {
		return "", fmt.Errorf("failed to store otp record: %w", err)
	}

	envelope, err := s.otpCodec.EncodeEnvelope(&domain.OtpEnvelope{
		Timestamp: now,
		Email:     email,
		OtpID:     otp.ID,
		Success:   true,
		Message:   "OTP sent to email",
	})
	if err != nil {
		return "", fmt.Errorf("failed to encode verification envelope: %w", err)
	}

	s.logger.Info("password reset otp issued", zap.Uint("user_id", user.ID))
	return envelope, nil
}

// VerifyOtp implements domain.AuthService. Checks run in a fixed
// order: record presence, replay, expiry, then the code itself, so an
// expired but correct code is never accepted.
func (s *AuthServiceImpl) VerifyOtp(ctx context.Context, envelope, email, code string) error {
	payload, err := s.otpCodec.DecodeEnvelope(envelope)
	if err != nil {
		return domain.ErrEnvelopeInvalid
	}

	if payload.Email != email {
		return domain.ErrOtpWrongEmail
	}

	otp, err := s.otpRepo.FindByID(ctx, payload.OtpID)
	if err != nil {
		if errors.Is(err, domain.ErrOtpNotFound) {
			return domain.ErrOtpNotFound
		}
		return fmt.Errorf("failed to load otp record: %w", err)
	}

	if otp.Verified {
		return domain.ErrOtpUsed
	}
	if time.Now().After(otp.ExpiresAt) {
		return domain.ErrOtpExpired
	}
	if otp.Code != code {
		return domain.ErrOtpMismatch
	}

	if err := s.otpRepo.MarkVerified(ctx, otp.ID); err != nil {
		if errors.Is(err, domain.ErrOtpUsed) {
			return domain.ErrOtpUsed
		}
		return fmt.Errorf("failed to mark otp verified: %w", err)
	}

	s.logger.Info("otp verified", zap.Uint("user_id", otp.UserID))
	return nil
}

// ResetPassword implements domain.AuthService. The verified OTP record
// is the sole authorization for this call; it is consumed on success.
func (s *AuthServiceImpl) ResetPassword(ctx context.Context, email, password, confirmPassword string) error {
	if password != confirmPassword {
		return domain.ErrPasswordsMismatch
	}

	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		return domain.ErrAccessDenied
	}

	otp, err := s.otpRepo.LatestByEmail(ctx, email)
	if err != nil {
		return domain.ErrAccessDenied
	}
	if !otp.Verified {
		return domain.ErrOtpNotVerified
	}

	hashedPassword, err := s.passwordSvc.Hash(password)
	if err != nil {
		return fmt.Errorf("failed to hash password: %w", err)
	}

	if err := s.userRepo.UpdatePassword(ctx, user.ID, hashedPassword); err != nil {
		return fmt.Errorf("failed to update password: %w", err)
	}

	if err := s.otpRepo.Delete(ctx, otp.ID); err != nil && !errors.Is(err, domain.ErrOtpNotFound) {
		return fmt.Errorf("failed to consume otp record: %w", err)
	}

	s.logger.Info("password reset", zap.Uint("user_id", user.ID))
	return nil
}

// issuePair signs a fresh token pair for user and persists the refresh
// token's hash, invalidating whatever token was live before.
func (s *AuthServiceImpl) issuePair(ctx context.Context, user *domain.User) (*domain.TokenPair, error) {
	pair, err := s.tokenSvc.GeneratePair(user)
	if err != nil {
		return nil, fmt.Errorf("failed to generate token pair: %w", err)
	}

	hash, err := s.passwordSvc.Hash(tokenDigest(pair.RefreshToken))
	if err != nil {
		return nil, fmt.Errorf("failed to hash refresh token: %w", err)
	}

	if err := s.userRepo.SetRefreshTokenHash(ctx, user.ID, &hash); err != nil {
		return nil, fmt.Errorf("failed to persist refresh token hash: %w", err)
	}

	return pair, nil
}
