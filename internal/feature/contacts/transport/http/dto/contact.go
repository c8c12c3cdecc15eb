// Package dto はcontactsフィーチャーのHTTPトランスポート層のデータ転送オブジェクトを定義します。
package dto

import (
	"time"

	"contact_backend/internal/feature/contacts/domain/entity"
)

// birthdayLayout is the wire format for birth dates.
const birthdayLayout = "2006-01-02"

// ContactRequest represents the request body for POST /contacts and
// PUT /contacts/:id. All six fields are required by the input schema.
type ContactRequest struct {
	FirstName      string `json:"first_name" binding:"required,max=50"`
	LastName       string `json:"last_name" binding:"required,max=50"`
	Email          string `json:"email" binding:"required,email"`
	PhoneNumber    string `json:"phone_number" binding:"required,max=30"`
	Birthday       string `json:"birthday" binding:"required,datetime=2006-01-02"`
	AdditionalInfo string `json:"additional_info" binding:"required"`
}

// ParseBirthday returns the birthday field as a date. The datetime binding
// tag has already validated the layout, so this only fails on requests that
// bypassed binding.
func (r *ContactRequest) ParseBirthday() (time.Time, error) {
	return time.Parse(birthdayLayout, r.Birthday)
}

// ListContactsQuery binds the pagination query parameters for GET /contacts.
// The limit cap of 1000 is enforced here, at the request boundary.
type ListContactsQuery struct {
	Limit  int `form:"limit,default=10" binding:"min=1,max=1000"`
	Offset int `form:"offset,default=0" binding:"min=0"`
}

// SearchContactsQuery binds the query parameter for GET /contacts/search.
type SearchContactsQuery struct {
	Query string `form:"query" binding:"required,min=1"`
}

// ContactResponse represents a full contact in API responses.
type ContactResponse struct {
	ID             uint   `json:"id"`
	FirstName      string `json:"first_name"`
	LastName       string `json:"last_name"`
	Email          string `json:"email"`
	PhoneNumber    string `json:"phone_number"`
	Birthday       string `json:"birthday"`
	AdditionalInfo string `json:"additional_info"`
	UserID         uint   `json:"user_id"`
}

// BirthdayItem represents a contact in the upcoming-birthdays response.
// Only the fields needed to congratulate someone.
type BirthdayItem struct {
	ID        uint   `json:"id"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
	Birthday  string `json:"birthday"`
}

// ContactResponseFromEntity converts a domain entity to its API representation.
func ContactResponseFromEntity(c *entity.Contact) ContactResponse {
	return ContactResponse{
		ID:             c.ID,
		FirstName:      c.FirstName,
		LastName:       c.LastName,
		Email:          c.Email,
		PhoneNumber:    c.PhoneNumber,
		Birthday:       c.Birthday.Format(birthdayLayout),
		AdditionalInfo: c.AdditionalInfo,
		UserID:         c.UserID,
	}
}

// BirthdayItemFromEntity converts a domain entity to a birthday list row.
func BirthdayItemFromEntity(c *entity.Contact) BirthdayItem {
	return BirthdayItem{
		ID:        c.ID,
		FirstName: c.FirstName,
		LastName:  c.LastName,
		Birthday:  c.Birthday.Format(birthdayLayout),
	}
}
