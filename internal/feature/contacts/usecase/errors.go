// Package usecase implements the business logic for the contacts feature.
package usecase

import "errors"

var (
	// ErrContactNotFound is returned when no contact matches the given ID
	// for the requesting user. Cross-user lookups surface this same error,
	// so callers cannot distinguish "someone else's row" from "no row".
	ErrContactNotFound = errors.New("contact not found")
)
