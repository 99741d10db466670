package handlers

import (
	"bytes"
	"context"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Kamol1dd1nbek/quote-backend/domain"
	"github.com/Kamol1dd1nbek/quote-backend/internal/http/middleware"
	"github.com/Kamol1dd1nbek/quote-backend/internal/mocks"
)

// identity injects the claims AuthMiddleware would have attached
func identity(userID uint, isAdmin bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(middleware.CtxUserID, userID)
		c.Set(middleware.CtxIsAdmin, isAdmin)
		c.Next()
	}
}

func newUserRouter(svc domain.UserService, userID uint, isAdmin bool) *gin.Engine {
	h := NewUserHandlers(svc, nil)
	r := gin.New()
	users := r.Group("/api/users", identity(userID, isAdmin))
	users.GET("", middleware.AdminOnly(), h.List)
	users.PATCH("/:id", h.Update)
	users.DELETE("/:id", middleware.AdminOnly(), h.Delete)
	return r
}

func TestUserHandlers_List(t *testing.T) {
	t.Run("admin sees all users", func(t *testing.T) {
		svc := mocks.NewMockUserService()
		svc.ListFunc = func(ctx context.Context) ([]domain.User, error) {
			return []domain.User{{ID: 1, Email: "a@b.com"}, {ID: 2, Email: "b@b.com"}}, nil
		}
		r := newUserRouter(svc, 9, true)

		w := doJSON(t, r, http.MethodGet, "/api/users", nil)
		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "a@b.com")
		assert.Contains(t, w.Body.String(), "b@b.com")
	})

	t.Run("non-admin is refused", func(t *testing.T) {
		r := newUserRouter(mocks.NewMockUserService(), 9, false)

		w := doJSON(t, r, http.MethodGet, "/api/users", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("empty table", func(t *testing.T) {
		r := newUserRouter(mocks.NewMockUserService(), 9, true)

		w := doJSON(t, r, http.MethodGet, "/api/users", nil)
		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandlers_Update(t *testing.T) {
	multipartBody := func(t *testing.T, fields map[string]string, avatar []byte) (*bytes.Buffer, string) {
		t.Helper()
		var buf bytes.Buffer
		mw := multipart.NewWriter(&buf)
		for k, v := range fields {
			require.NoError(t, mw.WriteField(k, v))
		}
		if avatar != nil {
			fw, err := mw.CreateFormFile("avatar", "avatar.jpg")
			require.NoError(t, err)
			_, err = fw.Write(avatar)
			require.NoError(t, err)
		}
		require.NoError(t, mw.Close())
		return &buf, mw.FormDataContentType()
	}

	t.Run("owner updates profile with avatar", func(t *testing.T) {
		svc := mocks.NewMockUserService()
		svc.UpdateFunc = func(ctx context.Context, targetID, actorID uint, actorAdmin bool, input domain.UpdateUserInput) (*domain.User, error) {
			assert.Equal(t, uint(3), targetID)
			assert.Equal(t, uint(3), actorID)
			assert.False(t, actorAdmin)
			require.NotNil(t, input.FirstName)
			assert.Equal(t, "Grace", *input.FirstName)
			assert.NotEmpty(t, input.Avatar)
			return &domain.User{ID: 3, FirstName: "Grace", AvatarURL: "http://files.local/x"}, nil
		}
		r := newUserRouter(svc, 3, false)

		body, contentType := multipartBody(t, map[string]string{"first_name": "Grace"}, []byte{0xFF, 0xD8})
		req := httptest.NewRequest(http.MethodPatch, "/api/users/3", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		require.Equal(t, http.StatusOK, w.Code)
		assert.Contains(t, w.Body.String(), "http://files.local/x")
	})

	t.Run("foreign profile is refused", func(t *testing.T) {
		svc := mocks.NewMockUserService()
		svc.UpdateFunc = func(ctx context.Context, targetID, actorID uint, actorAdmin bool, input domain.UpdateUserInput) (*domain.User, error) {
			return nil, domain.ErrAccessDenied
		}
		r := newUserRouter(svc, 4, false)

		body, contentType := multipartBody(t, map[string]string{"first_name": "Mallory"}, nil)
		req := httptest.NewRequest(http.MethodPatch, "/api/users/3", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusForbidden, w.Code)
	})

	t.Run("unknown target", func(t *testing.T) {
		svc := mocks.NewMockUserService()
		svc.UpdateFunc = func(ctx context.Context, targetID, actorID uint, actorAdmin bool, input domain.UpdateUserInput) (*domain.User, error) {
			return nil, domain.ErrUserNotFound
		}
		r := newUserRouter(svc, 9, true)

		body, contentType := multipartBody(t, map[string]string{"first_name": "X"}, nil)
		req := httptest.NewRequest(http.MethodPatch, "/api/users/99", body)
		req.Header.Set("Content-Type", contentType)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)

		assert.Equal(t, http.StatusNotFound, w.Code)
	})
}

func TestUserHandlers_Delete(t *testing.T) {
	t.Run("admin deletes another account", func(t *testing.T) {
		svc := mocks.NewMockUserService()
		svc.DeleteFunc = func(ctx context.Context, targetID, actorID uint) error {
			assert.Equal(t, uint(3), targetID)
			assert.Equal(t, uint(9), actorID)
			return nil
		}
		r := newUserRouter(svc, 9, true)

		w := doJSON(t, r, http.MethodDelete, "/api/users/3", nil)
		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("self delete", func(t *testing.T) {
		svc := mocks.NewMockUserService()
		svc.DeleteFunc = func(ctx context.Context, targetID, actorID uint) error {
			return domain.ErrSelfDelete
		}
		r := newUserRouter(svc, 9, true)

		w := doJSON(t, r, http.MethodDelete, "/api/users/9", nil)
		assert.Equal(t, http.StatusBadRequest, w.Code)
	})

	t.Run("non-admin is refused before the service runs", func(t *testing.T) {
		svc := mocks.NewMockUserService()
		svc.DeleteFunc = func(ctx context.Context, targetID, actorID uint) error {
			t.Error("service must not be reached")
			return nil
		}
		r := newUserRouter(svc, 4, false)

		w := doJSON(t, r, http.MethodDelete, "/api/users/3", nil)
		assert.Equal(t, http.StatusForbidden, w.Code)
	})
}
