package store

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/salonworks/booking-api/internal/domain"
)

// NotificationStore defines the interface for notification persistence.
type NotificationStore interface {
	// Create saves a new notification. Returns ErrInvalidEntity if the
	// referenced user or appointment does not exist.
	Create(ctx context.Context, notification *domain.Notification) error

	// GetByID retrieves a notification by its unique ID.
	// Returns ErrNotificationNotFound if the notification does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error)

	// List retrieves all notifications ordered by scheduled send time,
	// newest first.
	List(ctx context.Context) ([]*domain.Notification, error)

	// ListDue retrieves pending notifications whose scheduled send time
	// is at or before the given instant, highest priority first. Used by
	// the dispatcher.
	ListDue(ctx context.Context, before time.Time, limit int) ([]*domain.Notification, error)

	// Update persists the complete notification object.
	// Returns ErrNotificationNotFound if the notification does not exist.
	Update(ctx context.Context, notification *domain.Notification) error

	// Delete removes a notification by ID.
	// Returns ErrNotificationNotFound if the notification does not exist.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a NotificationStore bound to the given transaction.
	WithTx(tx *sql.Tx) NotificationStore
}
