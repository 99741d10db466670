package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
)

// refreshCookie is the HTTP-only cookie carrying the refresh token
const refreshCookie = "refreshToken"

// AuthHandlers handles authentication HTTP requests
type AuthHandlers struct {
	authSvc      domain.AuthService
	cookieMaxAge int
	logger       *zap.Logger
}

// NewAuthHandlers creates new auth handlers. cookieMaxAge is the
// refresh cookie lifetime in seconds.
func NewAuthHandlers(authSvc domain.AuthService, cookieMaxAge int, logger *zap.Logger) *AuthHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &AuthHandlers{
		authSvc:      authSvc,
		cookieMaxAge: cookieMaxAge,
		logger:       logger,
	}
}

// SignUpRequest represents the registration form
type SignUpRequest struct {
	FirstName       string `json:"first_name" binding:"required"`
	LastName        string `json:"last_name" binding:"required"`
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// SignInRequest represents the login form
type SignInRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// SendOtpRequest carries the email a reset code should go to
type SendOtpRequest struct {
	Email string `json:"email" binding:"required,email"`
}

// VerifyOtpRequest echoes the envelope with the received code
type VerifyOtpRequest struct {
	Verification string `json:"verification" binding:"required"`
	Email        string `json:"email" binding:"required,email"`
	Otp          string `json:"otp" binding:"required"`
}

// ResetPasswordRequest carries the new password
type ResetPasswordRequest struct {
	Email           string `json:"email" binding:"required,email"`
	Password        string `json:"password" binding:"required,min=6"`
	ConfirmPassword string `json:"confirm_password" binding:"required"`
}

// SignUp handles POST /api/auth/signup
func (h *AuthHandlers) SignUp(c *gin.Context) {
	var req SignUpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	message, err := h.authSvc.SignUp(c.Request.Context(), domain.SignUpInput{
		FirstName:       req.FirstName,
		LastName:        req.LastName,
		Email:           req.Email,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
	})
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{"message": message})
}

// SignIn handles POST /api/auth/signin
func (h *AuthHandlers) SignIn(c *gin.Context) {
	var req SignInRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	pair, err := h.authSvc.SignIn(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, pair)
}

// SignOut handles POST /api/auth/signout/:id
func (h *AuthHandlers) SignOut(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	userID, err := h.authSvc.SignOut(c.Request.Context(), uint(id))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.clearRefreshCookie(c)
	c.JSON(http.StatusOK, gin.H{"id": userID})
}

// Refresh handles POST /api/auth/refresh/:id. The refresh token comes
// from the HTTP-only cookie, never from the body.
func (h *AuthHandlers) Refresh(c *gin.Context) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	refreshToken, err := c.Cookie(refreshCookie)
	if err != nil || refreshToken == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Refresh token cookie missing"})
		return
	}

	pair, err := h.authSvc.Refresh(c.Request.Context(), uint(id), refreshToken)
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, pair)
}

// Activate handles GET /api/auth/activate/:token
func (h *AuthHandlers) Activate(c *gin.Context) {
	pair, err := h.authSvc.Activate(c.Request.Context(), c.Param("token"))
	if err != nil {
		h.respondError(c, err)
		return
	}

	h.setRefreshCookie(c, pair.RefreshToken)
	c.JSON(http.StatusOK, gin.H{
		"message": "User successfully activated",
		"tokens":  pair,
	})
}

// SendOtp handles POST /api/auth/send-otp
func (h *AuthHandlers) SendOtp(c *gin.Context) {
	var req SendOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	envelope, err := h.authSvc.RequestPasswordResetOtp(c.Request.Context(), req.Email)
	if err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"message":      "OTP sent to email",
		"verification": envelope,
	})
}

// VerifyOtp handles POST /api/auth/verify
func (h *AuthHandlers) VerifyOtp(c *gin.Context) {
	var req VerifyOtpRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.VerifyOtp(c.Request.Context(), req.Verification, req.Email, req.Otp); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "OTP verified"})
}

// ResetPassword handles POST /api/auth/reset. Authorization is the
// previously verified OTP record, not a bearer token.
func (h *AuthHandlers) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	if err := h.authSvc.ResetPassword(c.Request.Context(), req.Email, req.Password, req.ConfirmPassword); err != nil {
		h.respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "Password updated"})
}

func (h *AuthHandlers) setRefreshCookie(c *gin.Context, token string) {
	c.SetCookie(refreshCookie, token, h.cookieMaxAge, "/", "", false, true)
}

func (h *AuthHandlers) clearRefreshCookie(c *gin.Context) {
	c.SetCookie(refreshCookie, "", -1, "/", "", false, true)
}

// respondError maps domain errors to HTTP responses. Access-denied
// conditions collapse to one message so the endpoint does not reveal
// which precondition failed; dependency and internal failures collapse
// to a generic message.
func (h *AuthHandlers) respondError(c *gin.Context, err error) {
	switch domain.Kind(err) {
	case domain.KindValidation:
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case domain.KindConflict:
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case domain.KindAccessDenied:
		c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
	case domain.KindUnauthorized:
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
	}
}
