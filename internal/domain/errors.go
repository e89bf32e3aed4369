package domain

import "errors"

// Common domain errors used across the application.
var (
	// ErrValidation is returned when an entity fails validation.
	// Entity-specific errors wrap this so callers can detect the whole
	// class with errors.Is.
	ErrValidation = errors.New("validation failed")

	// ErrIDImmutable is returned when an update payload attempts to change
	// an entity's identifier. The message is part of the API contract.
	ErrIDImmutable = errors.New("ID cannot be modified.")

	// ErrMissingCreatedAt is returned when a new entity carries no
	// creation timestamp. Timestamps are stamped server-side, so hitting
	// this usually means a constructor was bypassed.
	ErrMissingCreatedAt = errors.New("created_at is required")

	// ErrMissingUpdatedAt is returned when an entity carries no
	// last-modified timestamp.
	ErrMissingUpdatedAt = errors.New("updated_at is required")
)
