package service

import (
	"context"
	"database/sql"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/store"
)

// CatalogService manages the salon's service offerings.
type CatalogService interface {
	// CreateService adds a new offering to the catalog.
	CreateService(ctx context.Context, name, description string, durationMinutes int, price float64) (*domain.Service, error)

	// GetService retrieves an offering by ID.
	GetService(ctx context.Context, serviceID uuid.UUID) (*domain.Service, error)

	// ListServices retrieves all offerings ordered by name.
	ListServices(ctx context.Context) ([]*domain.Service, error)

	// UpdateService applies a partial update to an offering and returns
	// the updated offering.
	UpdateService(ctx context.Context, serviceID uuid.UUID, update *domain.ServiceUpdate) (*domain.Service, error)

	// DeleteService removes an offering by ID. Returns store.ErrReferenced
	// when appointments still reference the offering.
	DeleteService(ctx context.Context, serviceID uuid.UUID) error
}

// CatalogServiceImpl implements CatalogService backed by a ServiceStore.
type CatalogServiceImpl struct {
	serviceStore store.ServiceStore
	db           *sql.DB
	logger       *slog.Logger
}

var _ CatalogService = (*CatalogServiceImpl)(nil)

// NewCatalogService creates a new CatalogService.
func NewCatalogService(serviceStore store.ServiceStore, db *sql.DB, logger *slog.Logger) *CatalogServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &CatalogServiceImpl{
		serviceStore: serviceStore,
		db:           db,
		logger:       logger.With(slog.String("component", "catalog_service")),
	}
}

// CreateService implements CatalogService.CreateService.
func (s *CatalogServiceImpl) CreateService(
	ctx context.Context,
	name, description string,
	durationMinutes int,
	price float64,
) (*domain.Service, error) {
	svc, err := domain.NewService(name, description, durationMinutes, price)
	if err != nil {
		s.logger.Warn("invalid service data",
			"error", err,
			"name", name)
		return nil, err
	}

	if err := s.serviceStore.Create(ctx, svc); err != nil {
		s.logger.Error("failed to create service",
			"error", err,
			"name", name)
		return nil, err
	}

	s.logger.Info("service created",
		"service_id", svc.ID,
		"name", svc.Name)
	return svc, nil
}

// GetService implements CatalogService.GetService.
func (s *CatalogServiceImpl) GetService(ctx context.Context, serviceID uuid.UUID) (*domain.Service, error) {
	return s.serviceStore.GetByID(ctx, serviceID)
}

// ListServices implements CatalogService.ListServices.
func (s *CatalogServiceImpl) ListServices(ctx context.Context) ([]*domain.Service, error) {
	return s.serviceStore.List(ctx)
}

// UpdateService implements CatalogService.UpdateService.
func (s *CatalogServiceImpl) UpdateService(
	ctx context.Context,
	serviceID uuid.UUID,
	update *domain.ServiceUpdate,
) (*domain.Service, error) {
	if err := update.Validate(); err != nil {
		s.logger.Warn("invalid service update",
			"error", err,
			"service_id", serviceID)
		return nil, err
	}

	var updated *domain.Service
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.serviceStore.WithTx(tx)

		svc, err := txStore.GetByID(ctx, serviceID)
		if err != nil {
			return err
		}

		update.Apply(svc)
		svc.UpdatedAt = time.Now().UTC()
		if err := svc.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, svc); err != nil {
			return err
		}

		updated = svc
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update service",
			"error", err,
			"service_id", serviceID)
		return nil, err
	}

	s.logger.Info("service updated", "service_id", serviceID)
	return updated, nil
}

// DeleteService implements CatalogService.DeleteService.
func (s *CatalogServiceImpl) DeleteService(ctx context.Context, serviceID uuid.UUID) error {
	if err := s.serviceStore.Delete(ctx, serviceID); err != nil {
		s.logger.Error("failed to delete service",
			"error", err,
			"service_id", serviceID)
		return err
	}

	s.logger.Info("service deleted", "service_id", serviceID)
	return nil
}
