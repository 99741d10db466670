package handlers

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
	"github.com/Kamol1dd1nbek/quote-backend/internal/http/middleware"
)

// UserHandlers handles profile management HTTP requests
type UserHandlers struct {
	userSvc domain.UserService
	logger  *zap.Logger
}

// NewUserHandlers creates new user handlers
func NewUserHandlers(userSvc domain.UserService, logger *zap.Logger) *UserHandlers {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &UserHandlers{userSvc: userSvc, logger: logger}
}

// List handles GET /api/users (admin only)
func (h *UserHandlers) List(c *gin.Context) {
	users, err := h.userSvc.List(c.Request.Context())
	if err != nil {
		if errors.Is(err, domain.ErrNoUsers) {
			c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
			return
		}
		h.logger.Error("list users failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		return
	}

	out := make([]gin.H, 0, len(users))
	for _, u := range users {
		out = append(out, gin.H{
			"id":         u.ID,
			"email":      u.Email,
			"first_name": u.FirstName,
			"last_name":  u.LastName,
			"is_active":  u.IsActive,
			"is_admin":   u.IsAdmin,
			"avatar":     u.AvatarURL,
		})
	}
	c.JSON(http.StatusOK, gin.H{"users": out})
}

// Update handles PATCH /api/users/:id (multipart form: first_name,
// last_name, avatar file). Owner or admin only.
func (h *UserHandlers) Update(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	actorID := c.GetUint(middleware.CtxUserID)
	actorAdmin := c.GetBool(middleware.CtxIsAdmin)

	input := domain.UpdateUserInput{}
	if v, ok := c.GetPostForm("first_name"); ok {
		input.FirstName = &v
	}
	if v, ok := c.GetPostForm("last_name"); ok {
		input.LastName = &v
	}

	if file, err := c.FormFile("avatar"); err == nil {
		f, err := file.Open()
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read avatar"})
			return
		}
		defer f.Close()
		data, err := io.ReadAll(f)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "Could not read avatar"})
			return
		}
		input.Avatar = data
		input.AvatarContentType = file.Header.Get("Content-Type")
	}

	user, err := h.userSvc.Update(c.Request.Context(), uint(targetID), actorID, actorAdmin, input)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		case errors.Is(err, domain.ErrAccessDenied):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			h.logger.Error("update user failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"id":         user.ID,
		"first_name": user.FirstName,
		"last_name":  user.LastName,
		"avatar":     user.AvatarURL,
	})
}

// Delete handles DELETE /api/users/:id (admin only)
func (h *UserHandlers) Delete(c *gin.Context) {
	targetID, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid user ID"})
		return
	}

	actorID := c.GetUint(middleware.CtxUserID)

	if err := h.userSvc.Delete(c.Request.Context(), uint(targetID), actorID); err != nil {
		switch {
		case errors.Is(err, domain.ErrSelfDelete):
			c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		case errors.Is(err, domain.ErrUserNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "User not found"})
		default:
			h.logger.Error("delete user failed", zap.Error(err))
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Something went wrong"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{"message": "User successfully deleted"})
}
