// Package handler はusersフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"contact_backend/internal/feature/auth/domain/entity"
	jwtmw "contact_backend/internal/platform/jwt"
)

// maxAvatarBytes caps avatar uploads at 5 MiB.
const maxAvatarBytes = 5 << 20

// UsersUsecase は現在のユーザーのプロフィール操作を定義します。
// Following Go convention: interfaces are defined by the consumer (handler), not the provider (usecase).
type UsersUsecase interface {
	Profile(ctx context.Context, userID uint) (*entity.User, error)
	UpdateAvatar(ctx context.Context, userID uint, filename, contentType string, body io.Reader) (string, error)
}

// UserResponse represents the current user's profile in API responses.
// The password hash never leaves the server.
type UserResponse struct {
	ID        uint   `json:"id"`
	Email     string `json:"email"`
	Confirmed bool   `json:"confirmed"`
	Avatar    string `json:"avatar"`
}

// UsersHandler はユーザープロフィールのHTTPリクエストを処理します。
type UsersHandler struct {
	users UsersUsecase
}

// NewUsersHandler はUsersHandlerの新しいインスタンスを生成します。
func NewUsersHandler(users UsersUsecase) *UsersHandler {
	return &UsersHandler{users: users}
}

// Profile はGET /meを処理し、認証済みユーザーのプロフィールを返します。
func (h *UsersHandler) Profile(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	user, err := h.users.Profile(c.Request.Context(), userID)
	if err != nil {
		slog.Error("profile lookup failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, UserResponse{
		ID:        user.ID,
		Email:     user.Email,
		Confirmed: user.Confirmed,
		Avatar:    user.Avatar,
	})
}

// UpdateAvatar はPATCH /me/avatarを処理します。
// multipart/form-dataの"file"フィールドをオブジェクトストレージへ保存します。
func (h *UsersHandler) UpdateAvatar(c *gin.Context) {
	userID := c.GetUint(jwtmw.ContextUserID)
	if userID == 0 {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxAvatarBytes)

	file, header, err := c.Request.FormFile("file")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "file field is required"})
		return
	}
	defer func() {
		if cerr := file.Close(); cerr != nil {
			slog.Warn("failed to close upload", "error", cerr)
		}
	}()

	url, err := h.users.UpdateAvatar(c.Request.Context(), userID,
		header.Filename, header.Header.Get("Content-Type"), file)
	if err != nil {
		slog.Error("avatar update failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"avatar": url})
}
