// Package usecase はcontactsフィーチャーのビジネスロジックを実装します。
package usecase

import (
	"context"
	"time"

	"contact_backend/internal/feature/contacts/domain/entity"
)

// birthdayWindowDays is the length of the upcoming-birthdays window.
const birthdayWindowDays = 7

// ContactInput carries the six mutable contact fields for create and
// update operations. ID and ownership are never part of the input.
type ContactInput struct {
	FirstName      string
	LastName       string
	Email          string
	PhoneNumber    string
	Birthday       time.Time
	AdditionalInfo string
}

// ContactRepository abstracts the persistence layer for contact entities.
// Goの慣例に従い、インターフェースはプロバイダー（adapters）ではなくコンシューマー（usecase）が定義します。
// Every method takes the owning user's ID and must never touch rows of
// other users.
type ContactRepository interface {
	// Create persists a new contact and fills in its generated ID.
	Create(ctx context.Context, contact *entity.Contact) error

	// FindByOwner returns up to limit contacts owned by userID, skipping
	// offset rows, in the store's natural row order.
	FindByOwner(ctx context.Context, userID uint, limit, offset int) ([]entity.Contact, error)

	// FindByID returns the contact matching id AND userID, or
	// ErrContactNotFound.
	FindByID(ctx context.Context, id, userID uint) (*entity.Contact, error)

	// Update overwrites all mutable fields of the contact matching id AND
	// userID and returns the updated row, or ErrContactNotFound. It never
	// creates a new row.
	Update(ctx context.Context, id, userID uint, in ContactInput) (*entity.Contact, error)

	// Delete removes the contact matching id AND userID and returns its
	// prior state, or ErrContactNotFound.
	Delete(ctx context.Context, id, userID uint) (*entity.Contact, error)

	// Search returns contacts owned by userID whose first name, last name,
	// or email contains query as a substring.
	Search(ctx context.Context, userID uint, query string) ([]entity.Contact, error)

	// AllByOwner returns every contact owned by userID.
	AllByOwner(ctx context.Context, userID uint) ([]entity.Contact, error)
}

// ContactsUsecase provides the user-scoped contact operations.
type ContactsUsecase struct {
	repo ContactRepository

	// now is injectable for birthday-window tests.
	now func() time.Time
}

// NewContactsUsecase creates a new ContactsUsecase with the given repository.
func NewContactsUsecase(repo ContactRepository) *ContactsUsecase {
	return &ContactsUsecase{repo: repo, now: time.Now}
}

// Create persists a new contact owned by userID and returns it with its
// generated ID.
func (u *ContactsUsecase) Create(ctx context.Context, userID uint, in ContactInput) (*entity.Contact, error) {
	contact := &entity.Contact{
		FirstName:      in.FirstName,
		LastName:       in.LastName,
		Email:          in.Email,
		PhoneNumber:    in.PhoneNumber,
		Birthday:       in.Birthday,
		AdditionalInfo: in.AdditionalInfo,
		UserID:         userID,
	}
	if err := u.repo.Create(ctx, contact); err != nil {
		return nil, err
	}
	return contact, nil
}

// List returns a page of the user's contacts. Limit and offset arrive
// already validated by the transport boundary (limit 1..1000, offset >= 0).
func (u *ContactsUsecase) List(ctx context.Context, userID uint, limit, offset int) ([]entity.Contact, error) {
	return u.repo.FindByOwner(ctx, userID, limit, offset)
}

// Get returns a single contact by ID, scoped to the requesting user.
func (u *ContactsUsecase) Get(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	return u.repo.FindByID(ctx, id, userID)
}

// Update replaces all mutable fields of the user's contact.
func (u *ContactsUsecase) Update(ctx context.Context, userID, id uint, in ContactInput) (*entity.Contact, error) {
	return u.repo.Update(ctx, id, userID, in)
}

// Remove deletes the user's contact and returns its prior state.
// Removing an already-removed ID is a no-op returning ErrContactNotFound.
func (u *ContactsUsecase) Remove(ctx context.Context, userID, id uint) (*entity.Contact, error) {
	return u.repo.Delete(ctx, id, userID)
}

// Search returns the user's contacts whose first name, last name, or email
// contains query as a substring. Matching uses the store's native LIKE,
// which is case-insensitive for ASCII on MySQL's default collation and on
// SQLite. The result set is unpaginated.
func (u *ContactsUsecase) Search(ctx context.Context, userID uint, query string) ([]entity.Contact, error) {
	return u.repo.Search(ctx, userID, query)
}

// BirthdaysWeek returns the user's contacts whose birthday falls within the
// next seven days, today and the end date inclusive. Only month and day are
// considered; birthdays recur annually.
//
// The window is a true day-of-year window: a December 30 birthday is
// included when queried on December 28, even though the window crosses into
// January. An earlier revision conjoined month-equality comparisons against
// both window edges, which returned nothing whenever the window crossed a
// month boundary.
//
// The calendar arithmetic runs here, over a scoped fetch, rather than in
// SQL, so the same logic serves every store the adapters support.
func (u *ContactsUsecase) BirthdaysWeek(ctx context.Context, userID uint) ([]entity.Contact, error) {
	contacts, err := u.repo.AllByOwner(ctx, userID)
	if err != nil {
		return nil, err
	}

	now := u.now()
	today := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, time.UTC)
	end := today.AddDate(0, 0, birthdayWindowDays)

	upcoming := make([]entity.Contact, 0)
	for _, c := range contacts {
		if inWindow(c.Birthday, today, end) {
			upcoming = append(upcoming, c)
		}
	}
	return upcoming, nil
}

// inWindow reports whether the birthday's next occurrence, projected onto
// the current year (or the next, across a year wrap), falls in [today, end].
// February 29 normalizes to March 1 in non-leap years.
func inWindow(birthday, today, end time.Time) bool {
	occurrence := time.Date(today.Year(), birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	if occurrence.Before(today) {
		occurrence = time.Date(today.Year()+1, birthday.Month(), birthday.Day(), 0, 0, 0, 0, time.UTC)
	}
	return !occurrence.Before(today) && !occurrence.After(end)
}
