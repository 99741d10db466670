package domain

import "context"

// UserRepository defines account data access operations
type UserRepository interface {
	Create(ctx context.Context, user *User) error
	FindByEmail(ctx context.Context, email string) (*User, error)
	FindByID(ctx context.Context, id uint) (*User, error)
	FindAll(ctx context.Context) ([]User, error)
	Update(ctx context.Context, user *User) error
	Delete(ctx context.Context, id uint) error

	// Activate flips is_active and clears the activation link in a
	// single guarded update; the link is single-use. Returns
	// ErrAlreadyActivated when no inactive account carries the link.
	Activate(ctx context.Context, link string) (*User, error)

	// SetRefreshTokenHash unconditionally overwrites the stored hash
	// (the sign-in/activation rotation point). Nil clears it.
	SetRefreshTokenHash(ctx context.Context, id uint, hash *string) error

	// CompareAndSetRefreshTokenHash replaces oldHash with newHash only
	// if oldHash is still the stored value. ErrAccessDenied when the
	// precondition fails, so concurrent refreshes cannot both win.
	CompareAndSetRefreshTokenHash(ctx context.Context, id uint, oldHash, newHash string) error

	// ClearRefreshTokenHash clears the hash of a live session.
	// ErrNoLiveSession when the hash is already null.
	ClearRefreshTokenHash(ctx context.Context, id uint) error

	UpdatePassword(ctx context.Context, id uint, passwordHash string) error
}

// OtpRepository defines OTP record data access operations
type OtpRepository interface {
	// Replace deletes any prior record for the email and creates otp
	// in the same transaction, keeping at most one record per email.
	Replace(ctx context.Context, otp *Otp) error
	FindByID(ctx context.Context, id uint) (*Otp, error)
	LatestByEmail(ctx context.Context, email string) (*Otp, error)
	MarkVerified(ctx context.Context, id uint) error
	Delete(ctx context.Context, id uint) error
}

// PasswordService defines one-way hashing for secrets
type PasswordService interface {
	Hash(secret string) (string, error)
	Verify(hashedSecret, secret string) bool
}

// TokenService defines token issuing and verification
type TokenService interface {
	GeneratePair(user *User) (*TokenPair, error)
	ValidateAccessToken(token string) (*TokenClaims, error)
	ValidateRefreshToken(token string) (*TokenClaims, error)
	// DecodeUnverified extracts claims without checking the signature.
	// Used only for the early id-mismatch shortcut on refresh, never
	// as a trust decision.
	DecodeUnverified(token string) (*TokenClaims, error)
}

// OtpCodec defines OTP code generation and envelope sealing
type OtpCodec interface {
	GenerateCode() (string, error)
	EncodeEnvelope(payload *OtpEnvelope) (string, error)
	DecodeEnvelope(envelope string) (*OtpEnvelope, error)
}

// Mailer defines outbound mail delivery
type Mailer interface {
	SendActivation(ctx context.Context, to, name, activationLink string) error
	SendOtp(ctx context.Context, to, code string) error
}

// FileStore defines binary object storage for avatars
type FileStore interface {
	Store(ctx context.Context, data []byte, contentType string) (string, error)
}

// AuthService defines the account lifecycle operations
type AuthService interface {
	SignUp(ctx context.Context, input SignUpInput) (string, error)
	Activate(ctx context.Context, link string) (*TokenPair, error)
	SignIn(ctx context.Context, email, password string) (*TokenPair, error)
	SignOut(ctx context.Context, userID uint) (uint, error)
	Refresh(ctx context.Context, userID uint, refreshToken string) (*TokenPair, error)
	RequestPasswordResetOtp(ctx context.Context, email string) (string, error)
	VerifyOtp(ctx context.Context, envelope, email, code string) error
	ResetPassword(ctx context.Context, email, password, confirmPassword string) error
}

// UserService defines profile management operations
type UserService interface {
	List(ctx context.Context) ([]User, error)
	Update(ctx context.Context, targetID, actorID uint, actorAdmin bool, input UpdateUserInput) (*User, error)
	Delete(ctx context.Context, targetID, actorID uint) error
}
