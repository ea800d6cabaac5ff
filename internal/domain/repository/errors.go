package repository

import "errors"

var (
	// ErrNotFound is returned when a referenced User, Video or Reaction does not exist.
	ErrNotFound = errors.New("entity not found")

	// ErrConflict is returned on a uniqueness violation or an unresolved
	// concurrent-update collision.
	ErrConflict = errors.New("conflicting concurrent update")

	// ErrInvalidState is returned on unit-of-work misuse, such as beginning a
	// transaction that is already open.
	ErrInvalidState = errors.New("invalid unit of work state")

	// ErrStorageUnavailable is returned when the persistence transport fails.
	// It propagates to the caller un-recovered; no layer below the transport
	// boundary retries.
	ErrStorageUnavailable = errors.New("storage unavailable")
)
