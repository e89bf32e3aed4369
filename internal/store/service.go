package store

import (
	"context"
	"database/sql"

	"github.com/google/uuid"
	"github.com/salonworks/booking-api/internal/domain"
)

// ServiceStore defines the interface for salon service (offering)
// persistence.
type ServiceStore interface {
	// Create saves a new service. Returns ErrServiceNameExists if the
	// name is already taken and validation errors from the domain
	// Service if data is invalid.
	Create(ctx context.Context, service *domain.Service) error

	// GetByID retrieves a service by its unique ID.
	// Returns ErrServiceNotFound if the service does not exist.
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)

	// List retrieves all services ordered by name.
	List(ctx context.Context) ([]*domain.Service, error)

	// Update persists the complete service object.
	// Returns ErrServiceNotFound if the service does not exist and
	// ErrServiceNameExists on a name collision.
	Update(ctx context.Context, service *domain.Service) error

	// Delete removes a service by ID. Returns ErrServiceNotFound if the
	// service does not exist and ErrReferenced if appointments still
	// reference the service.
	Delete(ctx context.Context, id uuid.UUID) error

	// WithTx returns a ServiceStore bound to the given transaction.
	WithTx(tx *sql.Tx) ServiceStore
}
