package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/salonworks/booking-api/internal/domain"
)

// UserStore defines the interface for user data persistence.
type UserStore interface {
	// Create saves a new user to the store, hashing the plaintext
	// password internally. Returns ErrUsernameExists or ErrEmailExists
	// on the corresponding unique violation and validation errors from
	// the domain User if data is invalid.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique ID.
	// Returns ErrUserNotFound if the user does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error)

	// GetByUsername retrieves a user by their username.
	// Returns ErrUserNotFound if the user does not exist.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// GetByEmail retrieves a user by their email address.
	// Returns ErrUserNotFound if the user does not exist.
	GetByEmail(ctx context.Context, email string) (*domain.User, error)

	// List retrieves all users ordered by creation time, newest first.
	List(ctx context.Context) ([]*domain.User, error)

	// Update persists the complete user object. If a plaintext Password
	// is set it is hashed and replaces the stored hash.
	// Returns ErrUserNotFound if the user does not exist and
	// ErrUsernameExists/ErrEmailExists on unique violations.
	Update(ctx context.Context, user *domain.User) error

	// Delete removes a user by ID. Returns ErrUserNotFound if the user
	// does not exist and ErrReferenced if appointments or notifications
	// still reference the user.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a UserStore bound to the given transaction so that
	// multiple operations can share one atomic unit.
	WithTx(tx *sql.Tx) UserStore
}
