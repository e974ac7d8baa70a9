package repositories

import "errors"

var (
	// ErrEmailTaken is returned when a create collides with an existing
	// email, whether caught by a lookup or by the unique index itself.
	ErrEmailTaken = errors.New("email already registered")

	// ErrUserNotFound is returned by lookups that match no record.
	ErrUserNotFound = errors.New("user not found")
)
