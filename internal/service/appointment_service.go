package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"log/slog"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/store"
)

// BookingService manages appointments.
type BookingService interface {
	// CreateAppointment books a service for a user. When
	// confirmationNumber is nil a fresh one is generated.
	CreateAppointment(ctx context.Context, params CreateAppointmentParams) (*domain.Appointment, error)

	// GetAppointment retrieves an appointment by ID.
	GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error)

	// GetAppointmentByConfirmationNumber retrieves the appointment
	// carrying the given confirmation number. Returns ErrDataIntegrity
	// if more than one matches.
	GetAppointmentByConfirmationNumber(ctx context.Context, confirmationNumber int64) (*domain.Appointment, error)

	// ListAppointments retrieves all appointments, newest start first.
	ListAppointments(ctx context.Context) ([]*domain.Appointment, error)

	// ListAppointmentsForUser retrieves a user's appointments.
	ListAppointmentsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error)

	// UpdateAppointment applies a partial update to an existing
	// appointment and returns the updated appointment.
	UpdateAppointment(ctx context.Context, appointmentID uuid.UUID, update *domain.AppointmentUpdate) (*domain.Appointment, error)

	// DeleteAppointment removes an appointment by ID.
	DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error
}

// CreateAppointmentParams carries the inputs for booking an appointment.
type CreateAppointmentParams struct {
	UserID             uuid.UUID
	ServiceID          uuid.UUID
	StartsAt           time.Time
	EndsAt             time.Time
	Notes              *string
	ConfirmationNumber *int64
}

// BookingServiceImpl implements BookingService backed by an
// AppointmentStore.
type BookingServiceImpl struct {
	appointmentStore store.AppointmentStore
	db               *sql.DB
	logger           *slog.Logger
	randInt63n       func(n int64) int64 // injectable for testing
}

var _ BookingService = (*BookingServiceImpl)(nil)

// NewBookingService creates a new BookingService.
func NewBookingService(appointmentStore store.AppointmentStore, db *sql.DB, logger *slog.Logger) *BookingServiceImpl {
	if logger == nil {
		logger = slog.Default()
	}
	return &BookingServiceImpl{
		appointmentStore: appointmentStore,
		db:               db,
		logger:           logger.With(slog.String("component", "booking_service")),
		randInt63n:       rand.Int63n,
	}
}

const (
	minConfirmationNumber = 100_000_000
	maxConfirmationNumber = 999_999_999

	// confirmationAttempts bounds the retry loop for generated numbers.
	// Collisions are vanishingly rare with 900 million codes.
	confirmationAttempts = 5
)

// CreateAppointment implements BookingService.CreateAppointment.
func (s *BookingServiceImpl) CreateAppointment(
	ctx context.Context,
	params CreateAppointmentParams,
) (*domain.Appointment, error) {
	appt, err := domain.NewAppointment(params.UserID, params.ServiceID, params.StartsAt, params.EndsAt)
	if err != nil {
		s.logger.Warn("invalid appointment data",
			"error", err,
			"user_id", params.UserID)
		return nil, err
	}
	appt.Notes = params.Notes

	if params.ConfirmationNumber != nil {
		if err := domain.ValidateConfirmationNumber(*params.ConfirmationNumber); err != nil {
			return nil, fmt.Errorf("%w: %w", domain.ErrValidation, err)
		}
		appt.ConfirmationNumber = params.ConfirmationNumber
		if err := appt.Validate(); err != nil {
			return nil, err
		}

		if err := s.checkConfirmationNumberAvailable(ctx, *params.ConfirmationNumber, appt.ID); err != nil {
			return nil, err
		}

		err = store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.appointmentStore.WithTx(tx).Create(ctx, appt)
		})
		if err != nil {
			s.logger.Error("failed to create appointment",
				"error", err,
				"user_id", params.UserID)
			return nil, err
		}
	} else if err := s.createWithGeneratedNumber(ctx, appt); err != nil {
		return nil, err
	}

	s.logger.Info("appointment created",
		"appointment_id", appt.ID,
		"user_id", appt.UserID,
		"service_id", appt.ServiceID)
	return appt, nil
}

// createWithGeneratedNumber assigns a random 9-digit confirmation number
// and retries on the unlikely unique violation.
func (s *BookingServiceImpl) createWithGeneratedNumber(ctx context.Context, appt *domain.Appointment) error {
	var lastErr error
	for attempt := 0; attempt < confirmationAttempts; attempt++ {
		n := minConfirmationNumber + s.randInt63n(maxConfirmationNumber-minConfirmationNumber+1)
		appt.ConfirmationNumber = &n

		err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
			return s.appointmentStore.WithTx(tx).Create(ctx, appt)
		})
		if err == nil {
			return nil
		}
		if !errors.Is(err, store.ErrConfirmationNumberExists) {
			s.logger.Error("failed to create appointment",
				"error", err,
				"user_id", appt.UserID)
			return err
		}
		lastErr = err
	}

	s.logger.Error("exhausted confirmation number attempts",
		"error", lastErr,
		"user_id", appt.UserID)
	return lastErr
}

// checkConfirmationNumberAvailable enforces confirmation number
// uniqueness ahead of the insert so callers get a clean duplicate error
// rather than a constraint violation. Finding more than one existing
// holder means the stored data is already corrupt.
func (s *BookingServiceImpl) checkConfirmationNumberAvailable(
	ctx context.Context,
	confirmationNumber int64,
	selfID uuid.UUID,
) error {
	existing, err := s.appointmentStore.GetByConfirmationNumber(ctx, confirmationNumber)
	if err != nil {
		return err
	}

	others := 0
	for _, appt := range existing {
		if appt.ID != selfID {
			others++
		}
	}

	switch {
	case others > 1:
		s.logger.Error("multiple appointments share a confirmation number",
			"confirmation_number", confirmationNumber,
			"count", others)
		return fmt.Errorf("%w: confirmation number %d held by %d appointments",
			ErrDataIntegrity, confirmationNumber, others)
	case others == 1:
		return store.ErrConfirmationNumberExists
	default:
		return nil
	}
}

// GetAppointment implements BookingService.GetAppointment.
func (s *BookingServiceImpl) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error) {
	return s.appointmentStore.GetByID(ctx, appointmentID)
}

// GetAppointmentByConfirmationNumber implements
// BookingService.GetAppointmentByConfirmationNumber.
func (s *BookingServiceImpl) GetAppointmentByConfirmationNumber(
	ctx context.Context,
	confirmationNumber int64,
) (*domain.Appointment, error) {
	matches, err := s.appointmentStore.GetByConfirmationNumber(ctx, confirmationNumber)
	if err != nil {
		return nil, err
	}

	switch len(matches) {
	case 0:
		return nil, store.ErrAppointmentNotFound
	case 1:
		return matches[0], nil
	default:
		s.logger.Error("multiple appointments share a confirmation number",
			"confirmation_number", confirmationNumber,
			"count", len(matches))
		return nil, fmt.Errorf("%w: confirmation number %d held by %d appointments",
			ErrDataIntegrity, confirmationNumber, len(matches))
	}
}

// ListAppointments implements BookingService.ListAppointments.
func (s *BookingServiceImpl) ListAppointments(ctx context.Context) ([]*domain.Appointment, error) {
	return s.appointmentStore.List(ctx)
}

// ListAppointmentsForUser implements BookingService.ListAppointmentsForUser.
func (s *BookingServiceImpl) ListAppointmentsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error) {
	return s.appointmentStore.ListForUser(ctx, userID)
}

// UpdateAppointment implements BookingService.UpdateAppointment. The
// window ordering is re-checked on the merged entity because either side
// may change independently.
func (s *BookingServiceImpl) UpdateAppointment(
	ctx context.Context,
	appointmentID uuid.UUID,
	update *domain.AppointmentUpdate,
) (*domain.Appointment, error) {
	if err := update.Validate(); err != nil {
		s.logger.Warn("invalid appointment update",
			"error", err,
			"appointment_id", appointmentID)
		return nil, err
	}

	if update.ConfirmationNumber != nil {
		if err := s.checkConfirmationNumberAvailable(ctx, *update.ConfirmationNumber, appointmentID); err != nil {
			return nil, err
		}
	}

	var updated *domain.Appointment
	err := store.RunInTransaction(ctx, s.db, func(ctx context.Context, tx *sql.Tx) error {
		txStore := s.appointmentStore.WithTx(tx)

		appt, err := txStore.GetByID(ctx, appointmentID)
		if err != nil {
			return err
		}

		update.Apply(appt)
		appt.UpdatedAt = time.Now().UTC()
		if err := appt.Validate(); err != nil {
			return err
		}

		if err := txStore.Update(ctx, appt); err != nil {
			return err
		}

		updated = appt
		return nil
	})
	if err != nil {
		s.logger.Error("failed to update appointment",
			"error", err,
			"appointment_id", appointmentID)
		return nil, err
	}

	s.logger.Info("appointment updated", "appointment_id", appointmentID)
	return updated, nil
}

// DeleteAppointment implements BookingService.DeleteAppointment.
func (s *BookingServiceImpl) DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	if err := s.appointmentStore.Delete(ctx, appointmentID); err != nil {
		s.logger.Error("failed to delete appointment",
			"error", err,
			"appointment_id", appointmentID)
		return err
	}

	s.logger.Info("appointment deleted", "appointment_id", appointmentID)
	return nil
}
