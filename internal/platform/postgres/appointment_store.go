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

// AppointmentStore implements store.AppointmentStore using PostgreSQL.
type AppointmentStore struct {
	db     store.DBTX
	logger *slog.Logger
}

// NewAppointmentStore creates a PostgreSQL implementation of
// store.AppointmentStore. If logger is nil, the process default is used.
func NewAppointmentStore(db store.DBTX, logger *slog.Logger) *AppointmentStore {
	if db == nil {
		panic("db cannot be nil")
	}
	if logger == nil {
		logger = slog.Default()
	}

	return &AppointmentStore{
		db:     db,
		logger: logger.With(slog.String("component", "appointment_store")),
	}
}

// Ensure AppointmentStore implements store.AppointmentStore.
var _ store.AppointmentStore = (*AppointmentStore)(nil)

// WithTx implements store.AppointmentStore.WithTx.
func (s *AppointmentStore) WithTx(tx *sql.Tx) store.AppointmentStore {
	return &AppointmentStore{
		db:     tx,
		logger: s.logger,
	}
}

// Create implements store.AppointmentStore.Create.
func (s *AppointmentStore) Create(ctx context.Context, appointment *domain.Appointment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := appointment.Validate(); err != nil {
		log.Warn("appointment validation failed during create",
			slog.String("error", err.Error()),
			slog.String("appointment_id", appointment.ID.String()))
		return err
	}

	query := `
		INSERT INTO appointments (id, starts_at, ends_at, status, confirmation_number, notes, user_id, service_id, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
	`
	_, err := s.db.ExecContext(
		ctx,
		query,
		appointment.ID,
		appointment.StartsAt,
		appointment.EndsAt,
		appointment.Status,
		appointment.ConfirmationNumber,
		appointment.Notes,
		appointment.UserID,
		appointment.ServiceID,
		appointment.CreatedAt,
		appointment.UpdatedAt,
	)

	if err != nil {
		mapped := MapError(err)
		switch {
		case store.IsDuplicateError(mapped):
			log.Warn("unique violation during appointment creation",
				slog.String("error", err.Error()),
				slog.String("appointment_id", appointment.ID.String()))
		case errors.Is(mapped, store.ErrInvalidEntity):
			log.Warn("foreign key violation during appointment creation",
				slog.String("error", err.Error()),
				slog.String("user_id", appointment.UserID.String()),
				slog.String("service_id", appointment.ServiceID.String()))
		default:
			log.Error("failed to create appointment",
				slog.String("error", err.Error()),
				slog.String("appointment_id", appointment.ID.String()))
		}
		return mapped
	}

	log.Info("appointment created successfully",
		slog.String("appointment_id", appointment.ID.String()),
		slog.String("user_id", appointment.UserID.String()),
		slog.String("service_id", appointment.ServiceID.String()),
		slog.String("status", string(appointment.Status)))
	return nil
}

const appointmentColumns = `id, starts_at, ends_at, status, confirmation_number, notes, user_id, service_id, created_at, updated_at`

// GetByID implements store.AppointmentStore.GetByID.
func (s *AppointmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	query := fmt.Sprintf(`SELECT %s FROM appointments WHERE id = $1`, appointmentColumns)
	row := s.db.QueryRowContext(ctx, query, id)

	appointment, err := scanAppointment(row.Scan)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, store.ErrAppointmentNotFound
		}
		log.Error("failed to get appointment by ID",
			slog.String("error", err.Error()),
			slog.String("appointment_id", id.String()))
		return nil, MapError(err)
	}

	return appointment, nil
}

// GetByConfirmationNumber implements
// store.AppointmentStore.GetByConfirmationNumber.
func (s *AppointmentStore) GetByConfirmationNumber(ctx context.Context, confirmationNumber int64) ([]*domain.Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments WHERE confirmation_number = $1`, appointmentColumns)
	return s.queryMany(ctx, query, confirmationNumber)
}

// List implements store.AppointmentStore.List.
func (s *AppointmentStore) List(ctx context.Context) ([]*domain.Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments ORDER BY starts_at DESC`, appointmentColumns)
	return s.queryMany(ctx, query)
}

// ListForUser implements store.AppointmentStore.ListForUser.
func (s *AppointmentStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error) {
	query := fmt.Sprintf(`SELECT %s FROM appointments WHERE user_id = $1 ORDER BY starts_at DESC`, appointmentColumns)
	return s.queryMany(ctx, query, userID)
}

func (s *AppointmentStore) queryMany(ctx context.Context, query string, args ...any) ([]*domain.Appointment, error) {
	log := logger.FromContextOrDefault(ctx, s.logger)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		log.Error("failed to query appointments", slog.String("error", err.Error()))
		return nil, MapError(err)
	}
	defer closeRows(rows, log)

	appointments := []*domain.Appointment{}
	for rows.Next() {
		appointment, err := scanAppointment(rows.Scan)
		if err != nil {
			log.Error("failed to scan appointment row", slog.String("error", err.Error()))
			return nil, err
		}
		appointments = append(appointments, appointment)
	}

	if err := rows.Err(); err != nil {
		log.Error("error after scanning appointment rows", slog.String("error", err.Error()))
		return nil, err
	}

	return appointments, nil
}

// Update implements store.AppointmentStore.Update. Foreign keys are
// fixed at creation and deliberately excluded from the statement.
func (s *AppointmentStore) Update(ctx context.Context, appointment *domain.Appointment) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	if err := appointment.Validate(); err != nil {
		log.Warn("appointment validation failed during update",
			slog.String("error", err.Error()),
			slog.String("appointment_id", appointment.ID.String()))
		return err
	}

	query := `
		UPDATE appointments
		SET starts_at = $1, ends_at = $2, status = $3, confirmation_number = $4,
		    notes = $5, updated_at = $6
		WHERE id = $7
	`
	result, err := s.db.ExecContext(
		ctx,
		query,
		appointment.StartsAt,
		appointment.EndsAt,
		appointment.Status,
		appointment.ConfirmationNumber,
		appointment.Notes,
		appointment.UpdatedAt,
		appointment.ID,
	)

	if err != nil {
		log.Error("failed to update appointment",
			slog.String("error", err.Error()),
			slog.String("appointment_id", appointment.ID.String()))
		return MapError(err)
	}

	if err := CheckRowsAffected(result, store.ErrAppointmentNotFound); err != nil {
		return err
	}

	log.Info("appointment updated successfully",
		slog.String("appointment_id", appointment.ID.String()),
		slog.String("status", string(appointment.Status)))
	return nil
}

// Delete implements store.AppointmentStore.Delete.
func (s *AppointmentStore) Delete(ctx context.Context, id uuid.UUID) error {
	log := logger.FromContextOrDefault(ctx, s.logger)

	result, err := s.db.ExecContext(ctx, `DELETE FROM appointments WHERE id = $1`, id)
	if err != nil {
		mapped := MapDeleteError(err)
		if errors.Is(mapped, store.ErrReferenced) {
			log.Warn("appointment delete blocked by references",
				slog.String("appointment_id", id.String()))
		} else {
			log.Error("failed to delete appointment",
				slog.String("error", err.Error()),
				slog.String("appointment_id", id.String()))
		}
		return mapped
	}

	if err := CheckRowsAffected(result, store.ErrAppointmentNotFound); err != nil {
		return err
	}

	log.Info("appointment deleted successfully", slog.String("appointment_id", id.String()))
	return nil
}

// scanAppointment builds a domain.Appointment from a row scan function.
func scanAppointment(scan func(dest ...any) error) (*domain.Appointment, error) {
	var (
		appointment        domain.Appointment
		confirmationNumber sql.NullInt64
		notes              sql.NullString
		status             string
	)

	err := scan(
		&appointment.ID,
		&appointment.StartsAt,
		&appointment.EndsAt,
		&status,
		&confirmationNumber,
		&notes,
		&appointment.UserID,
		&appointment.ServiceID,
		&appointment.CreatedAt,
		&appointment.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}

	appointment.Status = domain.AppointmentStatus(status)
	if confirmationNumber.Valid {
		appointment.ConfirmationNumber = &confirmationNumber.Int64
	}
	if notes.Valid {
		appointment.Notes = &notes.String
	}

	return &appointment, nil
}
