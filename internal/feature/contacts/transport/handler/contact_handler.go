// Package handler はcontactsフィーチャーのHTTPハンドラーを提供します。
package handler

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"contact_backend/internal/feature/contacts/domain/entity"
	"contact_backend/internal/feature/contacts/transport/http/dto"
	"contact_backend/internal/feature/contacts/usecase"
	jwtmw "contact_backend/internal/platform/jwt"
)

// ContactsUsecase は連絡先操作のユースケースを定義します。
// Goの慣例に従い、インターフェースはプロバイダー（usecase）ではなくコンシューマー（handler）が定義します。
type ContactsUsecase interface {
	Create(ctx context.Context, userID uint, in usecase.ContactInput) (*entity.Contact, error)
	List(ctx context.Context, userID uint, limit, offset int) ([]entity.Contact, error)
	Get(ctx context.Context, userID, id uint) (*entity.Contact, error)
	Update(ctx context.Context, userID, id uint, in usecase.ContactInput) (*entity.Contact, error)
	Remove(ctx context.Context, userID, id uint) (*entity.Contact, error)
	Search(ctx context.Context, userID uint, query string) ([]entity.Contact, error)
	BirthdaysWeek(ctx context.Context, userID uint) ([]entity.Contact, error)
}

// ContactHandler は連絡先リソースのHTTPリクエストを処理します。
type ContactHandler struct {
	contacts ContactsUsecase
}

// NewContactHandler はContactHandlerの新しいインスタンスを生成します。
func NewContactHandler(contacts ContactsUsecase) *ContactHandler {
	return &ContactHandler{contacts: contacts}
}

// currentUserID extracts the authenticated user's ID set by the JWT
// middleware. A missing value means the route was wired without the
// middleware, which is a server-side mistake, not a client error.
func currentUserID(c *gin.Context) (uint, bool) {
	userID := c.GetUint(jwtmw.ContextUserID)
	return userID, userID != 0
}

// contactID parses the :id path parameter. Negative and non-numeric
// values are rejected here, before reaching the access layer.
func contactID(c *gin.Context) (uint, bool) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 32)
	if err != nil {
		return 0, false
	}
	return uint(id), true
}

// List はGET /contactsを処理します。
// limitは最大1000（デフォルト10）、offsetはデフォルト0です。
func (h *ContactHandler) List(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var q dto.ListContactsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contacts, err := h.contacts.List(c.Request.Context(), userID, q.Limit, q.Offset)
	if err != nil {
		slog.Error("list contacts failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, contactResponses(contacts))
}

// Search はGET /contacts/searchを処理します。queryは1文字以上必須です。
func (h *ContactHandler) Search(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var q dto.SearchContactsQuery
	if err := c.ShouldBindQuery(&q); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	contacts, err := h.contacts.Search(c.Request.Context(), userID, q.Query)
	if err != nil {
		slog.Error("search contacts failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, contactResponses(contacts))
}

// Birthdays はGET /contacts/birthdayを処理します。
// 今日から7日以内に誕生日を迎える連絡先を返します。
func (h *ContactHandler) Birthdays(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	contacts, err := h.contacts.BirthdaysWeek(c.Request.Context(), userID)
	if err != nil {
		slog.Error("birthday query failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	items := make([]dto.BirthdayItem, 0, len(contacts))
	for i := range contacts {
		items = append(items, dto.BirthdayItemFromEntity(&contacts[i]))
	}
	c.JSON(http.StatusOK, items)
}

// Get はGET /contacts/:idを処理します。見つからない場合は404を返します。
func (h *ContactHandler) Get(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := contactID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}

	contact, err := h.contacts.Get(c.Request.Context(), userID, id)
	if err != nil {
		if errors.Is(err, usecase.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		slog.Error("get contact failed", "error", err, "user_id", userID, "contact_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.ContactResponseFromEntity(contact))
}

// Create はPOST /contactsを処理します。成功時は201と作成された連絡先を返します。
func (h *ContactHandler) Create(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	in, ok := bindContactInput(c)
	if !ok {
		return
	}

	contact, err := h.contacts.Create(c.Request.Context(), userID, in)
	if err != nil {
		slog.Error("create contact failed", "error", err, "user_id", userID)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusCreated, dto.ContactResponseFromEntity(contact))
}

// Update はPUT /contacts/:idを処理します。全フィールド置換のみで、部分更新はしません。
func (h *ContactHandler) Update(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := contactID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}

	in, ok := bindContactInput(c)
	if !ok {
		return
	}

	contact, err := h.contacts.Update(c.Request.Context(), userID, id, in)
	if err != nil {
		if errors.Is(err, usecase.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		slog.Error("update contact failed", "error", err, "user_id", userID, "contact_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.JSON(http.StatusOK, dto.ContactResponseFromEntity(contact))
}

// Delete はDELETE /contacts/:idを処理します。成功時は204、未存在時は404を返します。
func (h *ContactHandler) Delete(c *gin.Context) {
	userID, ok := currentUserID(c)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}
	id, ok := contactID(c)
	if !ok {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid contact id"})
		return
	}

	if _, err := h.contacts.Remove(c.Request.Context(), userID, id); err != nil {
		if errors.Is(err, usecase.ErrContactNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "not found"})
			return
		}
		slog.Error("delete contact failed", "error", err, "user_id", userID, "contact_id", id)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
		return
	}

	c.Status(http.StatusNoContent)
}

// bindContactInput binds and validates the contact request body.
// On failure it writes a 400 response and reports false.
func bindContactInput(c *gin.Context) (usecase.ContactInput, bool) {
	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return usecase.ContactInput{}, false
	}
	birthday, err := req.ParseBirthday()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid birthday"})
		return usecase.ContactInput{}, false
	}
	return usecase.ContactInput{
		FirstName:      req.FirstName,
		LastName:       req.LastName,
		Email:          req.Email,
		PhoneNumber:    req.PhoneNumber,
		Birthday:       birthday,
		AdditionalInfo: req.AdditionalInfo,
	}, true
}

// contactResponses converts entities to API representations, always
// returning a non-nil slice so empty results serialize as [].
func contactResponses(contacts []entity.Contact) []dto.ContactResponse {
	out := make([]dto.ContactResponse, 0, len(contacts))
	for i := range contacts {
		out = append(out, dto.ContactResponseFromEntity(&contacts[i]))
	}
	return out
}
