// Package entity defines the domain entities for the contacts feature.
package entity

import "time"

// Contact represents a single address-book entry owned by a user.
// Every contact belongs to exactly one user; all persistence-layer
// operations filter on UserID so one user can never see another's rows.
type Contact struct {
	// ID is the store-generated surrogate key.
	ID uint `gorm:"primaryKey"`

	// FirstName is the contact's given name.
	FirstName string `gorm:"size:50;not null"`

	// LastName is the contact's family name.
	LastName string `gorm:"size:50;not null"`

	// Email is the contact's email address. It is NOT unique:
	// two contacts of the same user may share an address.
	Email string `gorm:"size:255;not null"`

	// PhoneNumber is the contact's phone number in free form.
	PhoneNumber string `gorm:"size:30;not null"`

	// Birthday is the contact's birth date. Only month and day are
	// meaningful for the upcoming-birthdays query.
	Birthday time.Time `gorm:"type:date;not null"`

	// AdditionalInfo is free-form text attached to the contact.
	AdditionalInfo string `gorm:"type:text"`

	// UserID is the owning user. Not nullable.
	UserID uint `gorm:"index;not null"`
}
