package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/platform/logger"
	"github.com/salonworks/booking-api/internal/store"
)

// ServiceStore implements store.ServiceStore using PostgreSQL.
type ServiceStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewServiceStore creates a PostgreSQL implementation of
// store.ServiceStore. If logger is nil, the process default is used.
func NewServiceStore(db store.DBTX, logger *slog.Logger) *ServiceStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &ServiceStore{
		db:     db,
		logger: logger.With(slog.String("component", "service_store")),
	}
}

// Ensure ServiceStore implements store.ServiceStore.
var _ store.ServiceStore = (*ServiceStore)(nil)

// WithTx implements store.ServiceStore.WithTx.
func (s *ServiceStore) WithTx(tx *sql.Tx) store.ServiceStore {
	return &ServiceStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.ServiceStore.Create.
func (s *ServiceStore) Create(ctx context.Context, service *domain.Service) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := service.Validate(); err != nil {
		log.Warn("service validation failed during create",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return err
	}

	query := `
		INSERT INTO services (id, name, description, duration_minutes, price, availability, minimum_notice_hours, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		service.ID,
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.Price,
		service.Availability,
		service.MinimumNoticeHours,
		service.CreatedAt,
		service.UpdatedAt,
	)

	if err != nil {
		mapped := MapError(err)
		if store.IsDuplicateError(mapped) {
			log.Warn("unique violation during service creation",
				slog.String("error", err.Error()),
				slog.String("name", service.Name))
		} else {
			log.Error("failed to create service",
				slog.String("error", err.Error()),
				slog.String("service_id", service.ID.String()))
		}
		return mapped
	}

	log.Info("service created successfully",
		slog.String("service_id", service.ID.String()),
		slog.String("name", service.Name))
	return nil
}

const serviceColumns = `id, name, description, duration_minutes, price, availability, minimum_notice_hours, created_at, updated_at`

// GetByID implements store.ServiceStore.GetByID.
func (s *ServiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM services WHERE id = $1`, serviceColumns)
	row := s.db.QueryRowContext(ctx, query, id)

	service, err := scanService(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrServiceNotFound
		}
		log.Error("failed to get service by ID",
			slog.String("error", err.Error()),
			slog.String("service_id", id.String()))
		return nil, MapError(err)
	}

	return service, nil
}

// List implements store.ServiceStore.List.
func (s *ServiceStore) List(ctx context.Context) ([]*domain.Service, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM services ORDER BY name`, serviceColumns)
	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		log.Error("failed to query services", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	services := []*domain.Service{}
	for rows.Next() {
		service, err := scanService(rows.Scan)
		if err != nil {
			log.Error("failed to scan service row", slog.String("error", err.Error()))
			return nil, err
		}
		services = append(services, service)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning service rows", slog.String("error", err.Error()))
		return nil, err
	}

	return services, nil
}

// Update implements store.ServiceStore.Update.
func (s *ServiceStore) Update(ctx context.Context, service *domain.Service) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := service.Validate(); err != nil {
		log.Warn("service validation failed during update",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return err
	}

	query := `
		UPDATE services
		SET name = $1, description = $2, duration_minutes = $3, price = $4,
		    availability = $5, minimum_notice_hours = $6, updated_at = $7
		WHERE id = $8
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		service.Name,
		service.Description,
		service.DurationMinutes,
		service.Price,
		service.Availability,
		service.MinimumNoticeHours,
		service.UpdatedAt,
		service.ID,
	)

	if err != nil {
		log.Error("failed to update service",
			slog.String("error", err.Error()),
			slog.String("service_id", service.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrServiceNotFound); err != nil {
		return err
	}

	log.Info("service updated successfully", slog.String("service_id", service.ID.String()))
	return nil
}

// Delete implements store.ServiceStore.Delete.
func (s *ServiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM services WHERE id = $1`, id)
	if err != nil {
		mapped := MapDeleteError(err)
		if errors.Is(mapped, store.ErrReferenced) {
			log.Warn("service delete blocked by references",
				slog.String("service_id", id.String()))
		} else {
			log.Error("failed to delete service",
				slog.String("error", err.Error()),
				slog.String("service_id", id.String()))
		}
		return mapped
	}

	if err := CheckRowsAffected(result, store.ErrServiceNotFound); err != nil {
		return err
	}

	log.Info("service deleted successfully", slog.String("service_id", id.String()))
	return nil
}

// scanService builds a domain.Service from a row scan function.
func scanService(scan func(dest ...any) error) (*domain.Service, error) {
	var (
		service       domain.Service
		minimumNotice sql.NullInt64
	)

	err := scan(
		&service.ID,
		&service.Name,
		&service.Description,
		&service.DurationMinutes,
		&service.Price,
		&service.Availability,
		&minimumNotice,
		&service.CreatedAt,
		&service.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	if minimumNotice.Valid {
		hours := int(minimumNotice.Int64)
		service.MinimumNoticeHours = &hours
	}

	return &service, nil
}
