package domain

import "time"

// User represents an account in the system
type User struct {
	ID               uint
	Email            string
	FirstName        string
	LastName         string
	PasswordHash     string
	IsActive         bool
	IsAdmin          bool
	ActivationLink   *string
	RefreshTokenHash *string
	AvatarURL        string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// Otp represents a one-time passcode issued for a password reset.
// At most one unconsumed record exists per email: a new request
// supersedes (deletes) any prior record for the same address.
type Otp struct {
	ID        uint
	Email     string
	Code      string
	ExpiresAt time.Time
	Verified  bool
	UserID    uint
}

// TokenPair carries a freshly issued access/refresh token pair.
// Only the refresh token's bcrypt hash is ever persisted.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// TokenClaims represents the claim set signed into both tokens
type TokenClaims struct {
	UserID    uint  `json:"id"`
	IsActive  bool  `json:"is_active"`
	IsAdmin   bool  `json:"is_admin"`
	IssuedAt  int64 `json:"iat"`
	ExpiresAt int64 `json:"exp"`
}

// OtpEnvelope is the payload sealed into the opaque verification
// envelope returned by the send-otp endpoint. Possession of a valid
// envelope proves the OTP record was created by this service for the
// embedded email; the client never sees the record id in the clear.
type OtpEnvelope struct {
	Timestamp time.Time `json:"timestamp"`
	Email     string    `json:"email"`
	OtpID     uint      `json:"otp_id"`
	Success   bool      `json:"success"`
	Message   string    `json:"message"`
}

// SignUpInput carries the registration form fields
type SignUpInput struct {
	FirstName       string
	LastName        string
	Email           string
	Password        string
	ConfirmPassword string
}

// UpdateUserInput carries the mutable profile fields. Nil pointers
// leave the current value untouched. Avatar bytes, when present, are
// pushed to the file store and the resulting public URL persisted.
type UpdateUserInput struct {
	FirstName         *string
	LastName          *string
	Avatar            []byte
	AvatarContentType string
}
