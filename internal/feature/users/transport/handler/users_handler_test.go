package handler

import (
	"bytes"
	"context"
	"errors"
	"io"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"contact_backend/internal/feature/auth/domain/entity"
	jwtmw "contact_backend/internal/platform/jwt"
)

// mockUsersUsecase is a mock implementation of the UsersUsecase interface.
type mockUsersUsecase struct {
	ProfileFunc      func(ctx context.Context, userID uint) (*entity.User, error)
	UpdateAvatarFunc func(ctx context.Context, userID uint, filename, contentType string, body io.Reader) (string, error)
}

func (m *mockUsersUsecase) Profile(ctx context.Context, userID uint) (*entity.User, error) {
	if m.ProfileFunc != nil {
		return m.ProfileFunc(ctx, userID)
	}
	return nil, errors.New("not implemented")
}

func (m *mockUsersUsecase) UpdateAvatar(ctx context.Context, userID uint, filename, contentType string, body io.Reader) (string, error) {
	if m.UpdateAvatarFunc != nil {
		return m.UpdateAvatarFunc(ctx, userID, filename, contentType, body)
	}
	return "", errors.New("not implemented")
}

// asUser injects an authenticated user ID the way the JWT middleware does.
func asUser(id uint) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set(jwtmw.ContextUserID, id)
		c.Next()
	}
}

func newTestRouter(uc UsersUsecase, userID uint) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	h := NewUsersHandler(uc)
	group := r.Group("/")
	if userID != 0 {
		group.Use(asUser(userID))
	}
	group.GET("/me", h.Profile)
	group.PATCH("/me/avatar", h.UpdateAvatar)
	return r
}

func TestUsersHandler_Profile(t *testing.T) {
	uc := &mockUsersUsecase{
		ProfileFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
			assert.Equal(t, uint(7), userID)
			return &entity.User{
				ID:        7,
				Email:     "user@example.com",
				Password:  "$2a$10$secret-hash",
				Confirmed: true,
				Avatar:    "https://cdn.example.com/avatars/x.png",
			}, nil
		},
	}
	router := newTestRouter(uc, 7)

	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusOK, w.Code)
	// パスワードハッシュはレスポンスに含めない
	assert.NotContains(t, w.Body.String(), "secret-hash")
	assert.JSONEq(t, `{
		"id": 7,
		"email": "user@example.com",
		"confirmed": true,
		"avatar": "https://cdn.example.com/avatars/x.png"
	}`, w.Body.String())
}

func TestUsersHandler_Profile_Unauthenticated(t *testing.T) {
	router := newTestRouter(&mockUsersUsecase{}, 0)

	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsersHandler_Profile_LookupFailure(t *testing.T) {
	uc := &mockUsersUsecase{
		ProfileFunc: func(ctx context.Context, userID uint) (*entity.User, error) {
			return nil, errors.New("db down")
		},
	}
	router := newTestRouter(uc, 7)

	req, _ := http.NewRequest(http.MethodGet, "/me", nil)
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}

// avatarRequest builds a multipart PATCH request with a single "file" field.
func avatarRequest(t *testing.T, field, filename, content string) *http.Request {
	t.Helper()
	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	fw, err := mw.CreateFormFile(field, filename)
	require.NoError(t, err)
	_, err = fw.Write([]byte(content))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req, _ := http.NewRequest(http.MethodPatch, "/me/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return req
}

func TestUsersHandler_UpdateAvatar(t *testing.T) {
	uc := &mockUsersUsecase{
		UpdateAvatarFunc: func(ctx context.Context, userID uint, filename, contentType string, body io.Reader) (string, error) {
			assert.Equal(t, uint(7), userID)
			assert.Equal(t, "photo.png", filename)
			data, _ := io.ReadAll(body)
			assert.Equal(t, "fake-image", string(data))
			return "https://cdn.example.com/avatars/new.png", nil
		},
	}
	router := newTestRouter(uc, 7)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, avatarRequest(t, "file", "photo.png", "fake-image"))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"avatar": "https://cdn.example.com/avatars/new.png"}`, w.Body.String())
}

func TestUsersHandler_UpdateAvatar_MissingFileField(t *testing.T) {
	router := newTestRouter(&mockUsersUsecase{}, 7)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, avatarRequest(t, "document", "photo.png", "fake-image"))

	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestUsersHandler_UpdateAvatar_Unauthenticated(t *testing.T) {
	router := newTestRouter(&mockUsersUsecase{}, 0)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, avatarRequest(t, "file", "photo.png", "fake-image"))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestUsersHandler_UpdateAvatar_UploadFailure(t *testing.T) {
	uc := &mockUsersUsecase{
		UpdateAvatarFunc: func(ctx context.Context, userID uint, filename, contentType string, body io.Reader) (string, error) {
			return "", errors.New("bucket unavailable")
		},
	}
	router := newTestRouter(uc, 7)

	w := httptest.NewRecorder()
	router.ServeHTTP(w, avatarRequest(t, "file", "photo.png", "fake-image"))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
}
