package domain

import "errors"

// Account lifecycle errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrPasswordsMismatch  = errors.New("passwords do not match")
	ErrEmailTaken         = errors.New("this email is already registered")
	ErrInvalidCredentials = errors.New("email or password wrong")
	ErrUserMismatch       = errors.New("token does not belong to this user")
	ErrAlreadyActivated   = errors.New("user is already activated")
	ErrAccessDenied       = errors.New("access denied")
	ErrNoLiveSession      = errors.New("no live session for this user")
	ErrMailDelivery       = errors.New("mail delivery failed")
	ErrNoUsers            = errors.New("users do not exist yet")
	ErrSelfDelete         = errors.New("an admin cannot remove themselves")
)

// OTP errors. The reset flow distinguishes these internally; the HTTP
// boundary keeps the distinct messages the original responses carry.
var (
	ErrOtpNotFound    = errors.New("no otp record for this user")
	ErrOtpUsed        = errors.New("otp has already been used")
	ErrOtpExpired     = errors.New("otp has expired")
	ErrOtpMismatch    = errors.New("otp does not match")
	ErrOtpWrongEmail  = errors.New("otp was not sent to this email")
	ErrOtpNotVerified = errors.New("otp has not been verified")
)

// Token errors
var (
	ErrTokenInvalid    = errors.New("invalid token")
	ErrTokenExpired    = errors.New("token has expired")
	ErrTokenMalformed  = errors.New("malformed token")
	ErrEnvelopeInvalid = errors.New("invalid verification envelope")
	ErrUnauthorized    = errors.New("unauthorized access")
)

// ErrorKind classifies a failure for boundary mapping and logging
type ErrorKind int

const (
	KindInternal ErrorKind = iota
	KindValidation
	KindConflict
	KindAccessDenied
	KindUnauthorized
	KindDependency
)

// Kind reports the taxonomy bucket an error belongs to. Unrecognized
// errors are internal: dependency and store failures are wrapped by the
// services, so unwrapping with errors.Is keeps classification stable.
func Kind(err error) ErrorKind {
	switch {
	case errors.Is(err, ErrPasswordsMismatch),
		errors.Is(err, ErrInvalidCredentials),
		errors.Is(err, ErrAlreadyActivated),
		errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrUserMismatch),
		errors.Is(err, ErrOtpNotFound),
		errors.Is(err, ErrOtpUsed),
		errors.Is(err, ErrOtpExpired),
		errors.Is(err, ErrOtpMismatch),
		errors.Is(err, ErrOtpWrongEmail),
		errors.Is(err, ErrEnvelopeInvalid),
		errors.Is(err, ErrNoUsers),
		errors.Is(err, ErrSelfDelete):
		return KindValidation
	case errors.Is(err, ErrEmailTaken):
		return KindConflict
	case errors.Is(err, ErrAccessDenied),
		errors.Is(err, ErrNoLiveSession),
		errors.Is(err, ErrOtpNotVerified):
		return KindAccessDenied
	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, ErrTokenInvalid),
		errors.Is(err, ErrTokenExpired),
		errors.Is(err, ErrTokenMalformed):
		return KindUnauthorized
	case errors.Is(err, ErrMailDelivery):
		return KindDependency
	default:
		return KindInternal
	}
}
