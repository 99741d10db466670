package auth

import (
	"errors"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// JWTServiceImpl implements domain.TokenService. Access and refresh
// tokens are signed with distinct secrets and expire independently.
type JWTServiceImpl struct {
	accessSecret    []byte
	refreshSecret   []byte
	issuer          string
	accessTokenTTL  time.Duration
	refreshTokenTTL time.Duration
}

// NewJWTService creates a new JWT service
func NewJWTService(accessSecret, refreshSecret, issuer string, accessTTL, refreshTTL time.Duration) domain.TokenService {
	return &JWTServiceImpl{
		accessSecret:    []byte(accessSecret),
		refreshSecret:   []byte(refreshSecret),
		issuer:          issuer,
		accessTokenTTL:  accessTTL,
		refreshTokenTTL: refreshTTL,
	}
}

// GeneratePair implements domain.TokenService
func (j *JWTServiceImpl) GeneratePair(user *domain.User) (*domain.TokenPair, error) {
	access, err := j.sign(user, j.accessSecret, j.accessTokenTTL)
	if err != nil {
		return nil, err
	}
	refresh, err := j.sign(user, j.refreshSecret, j.refreshTokenTTL)
	if err != nil {
		return nil, err
	}
	return &domain.TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}

func (j *JWTServiceImpl) sign(user *domain.User, secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	// jti makes every issued token distinct even within the same
	// second, so rotation always replaces the stored refresh hash
	// with a different value.
	claims := jwt.MapClaims{
		"id":        user.ID,
		"is_active": user.IsActive,
		"is_admin":  user.IsAdmin,
		"iss":       j.issuer,
		"jti":       uuid.NewString(),
		"iat":       now.Unix(),
		"exp":       now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

// ValidateAccessToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateAccessToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, j.accessSecret)
}

// ValidateRefreshToken implements domain.TokenService
func (j *JWTServiceImpl) ValidateRefreshToken(tokenString string) (*domain.TokenClaims, error) {
	return j.validateToken(tokenString, j.refreshSecret)
}

// DecodeUnverified implements domain.TokenService. It extracts claims
// without any signature check; callers must not treat the result as
// authenticated.
func (j *JWTServiceImpl) DecodeUnverified(tokenString string) (*domain.TokenClaims, error) {
	token, _, err := jwt.NewParser().ParseUnverified(tokenString, jwt.MapClaims{})
	if err != nil {
		return nil, domain.ErrTokenMalformed
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}
	return extractClaims(claims)
}

// validateToken verifies signature and expiry and returns the claims
func (j *JWTServiceImpl) validateToken(tokenString string, secret []byte) (*domain.TokenClaims, error) {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, domain.ErrTokenMalformed
		}
		return secret, nil
	})

	if err != nil {
		if errors.Is(err, jwt.ErrTokenExpired) {
			return nil, domain.ErrTokenExpired
		}
		return nil, domain.ErrTokenInvalid
	}

	if !token.Valid {
		return nil, domain.ErrTokenInvalid
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	tokenClaims, err := extractClaims(claims)
	if err != nil {
		return nil, err
	}

	if time.Unix(tokenClaims.ExpiresAt, 0).Before(time.Now()) {
		return nil, domain.ErrTokenExpired
	}

	return tokenClaims, nil
}

func extractClaims(claims jwt.MapClaims) (*domain.TokenClaims, error) {
	id, ok := claims["id"].(float64)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	isActive, ok := claims["is_active"].(bool)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	isAdmin, ok := claims["is_admin"].(bool)
	if !ok {
		return nil, domain.ErrTokenMalformed
	}

	tokenClaims := &domain.TokenClaims{
		UserID:   uint(id),
		IsActive: isActive,
		IsAdmin:  isAdmin,
	}

	if iat, ok := claims["iat"].(float64); ok {
		tokenClaims.IssuedAt = int64(iat)
	}
	if exp, ok := claims["exp"].(float64); ok {
		tokenClaims.ExpiresAt = int64(exp)
	}

	return tokenClaims, nil
}
