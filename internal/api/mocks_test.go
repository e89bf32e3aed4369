package api

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/service"
	"github.com/salonworks/booking-api/internal/service/auth"
	"github.com/salonworks/booking-api/internal/store"
)

// Hand-written service and auth mocks for handler tests. Each mock
// returns configured values and records the arguments it saw.

// domainValidationErr wraps a field rule the way domain validators do.
func domainValidationErr(rule error) error {
	return fmt.Errorf("%w: %w", domain.ErrValidation, rule)
}

type mockUserService struct {
	createUserResult *domain.User
	createUserErr    error
	getUserResult    *domain.User
	getUserErr       error
	listUsersResult  []*domain.User
	listUsersErr     error
	updateUserResult *domain.User
	updateUserErr    error
	deleteUserErr    error

	lastUpdate *domain.UserUpdate
}

func (m *mockUserService) CreateUser(ctx context.Context, username, email, password string) (*domain.User, error) {
	if m.createUserErr != nil {
		return nil, m.createUserErr
	}
	return m.createUserResult, nil
}

func (m *mockUserService) GetUser(ctx context.Context, userID uuid.UUID) (*domain.User, error) {
	if m.getUserErr != nil {
		return nil, m.getUserErr
	}
	return m.getUserResult, nil
}

func (m *mockUserService) GetUserByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.getUserResult, m.getUserErr
}

func (m *mockUserService) ListUsers(ctx context.Context) ([]*domain.User, error) {
	return m.listUsersResult, m.listUsersErr
}

func (m *mockUserService) UpdateUser(ctx context.Context, userID uuid.UUID, update *domain.UserUpdate) (*domain.User, error) {
	m.lastUpdate = update
	if m.updateUserErr != nil {
		return nil, m.updateUserErr
	}
	return m.updateUserResult, nil
}

func (m *mockUserService) DeleteUser(ctx context.Context, userID uuid.UUID) error {
	return m.deleteUserErr
}

type mockCatalogService struct {
	createResult *domain.Service
	createErr    error
	getResult    *domain.Service
	getErr       error
	listResult   []*domain.Service
	listErr      error
	updateResult *domain.Service
	updateErr    error
	deleteErr    error
}

func (m *mockCatalogService) CreateService(ctx context.Context, name, description string, durationMinutes int, price float64) (*domain.Service, error) {
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createResult, nil
}

func (m *mockCatalogService) GetService(ctx context.Context, serviceID uuid.UUID) (*domain.Service, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getResult, nil
}

func (m *mockCatalogService) ListServices(ctx context.Context) ([]*domain.Service, error) {
	return m.listResult, m.listErr
}

func (m *mockCatalogService) UpdateService(ctx context.Context, serviceID uuid.UUID, update *domain.ServiceUpdate) (*domain.Service, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updateResult, nil
}

func (m *mockCatalogService) DeleteService(ctx context.Context, serviceID uuid.UUID) error {
	return m.deleteErr
}

type mockBookingService struct {
	createResult      *domain.Appointment
	createErr         error
	getResult         *domain.Appointment
	getErr            error
	getByNumberResult *domain.Appointment
	getByNumberErr    error
	listResult        []*domain.Appointment
	listErr           error
	listForUserResult []*domain.Appointment
	listForUserErr    error
	updateResult      *domain.Appointment
	updateErr         error
	deleteErr         error

	lastCreateParams service.CreateAppointmentParams
	lastNumber       int64
	listForUserID    uuid.UUID
}

func (m *mockBookingService) CreateAppointment(ctx context.Context, params service.CreateAppointmentParams) (*domain.Appointment, error) {
	m.lastCreateParams = params
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createResult, nil
}

func (m *mockBookingService) GetAppointment(ctx context.Context, appointmentID uuid.UUID) (*domain.Appointment, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getResult, nil
}

func (m *mockBookingService) GetAppointmentByConfirmationNumber(ctx context.Context, confirmationNumber int64) (*domain.Appointment, error) {
	m.lastNumber = confirmationNumber
	if m.getByNumberErr != nil {
		return nil, m.getByNumberErr
	}
	return m.getByNumberResult, nil
}

func (m *mockBookingService) ListAppointments(ctx context.Context) ([]*domain.Appointment, error) {
	return m.listResult, m.listErr
}

func (m *mockBookingService) ListAppointmentsForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error) {
	m.listForUserID = userID
	return m.listForUserResult, m.listForUserErr
}

func (m *mockBookingService) UpdateAppointment(ctx context.Context, appointmentID uuid.UUID, update *domain.AppointmentUpdate) (*domain.Appointment, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updateResult, nil
}

func (m *mockBookingService) DeleteAppointment(ctx context.Context, appointmentID uuid.UUID) error {
	return m.deleteErr
}

type mockNotificationService struct {
	createResult *domain.Notification
	createErr    error
	getResult    *domain.Notification
	getErr       error
	listResult   []*domain.Notification
	listErr      error
	updateResult *domain.Notification
	updateErr    error
	deleteErr    error

	lastCreateParams service.CreateNotificationParams
}

func (m *mockNotificationService) CreateNotification(ctx context.Context, params service.CreateNotificationParams) (*domain.Notification, error) {
	m.lastCreateParams = params
	if m.createErr != nil {
		return nil, m.createErr
	}
	return m.createResult, nil
}

func (m *mockNotificationService) GetNotification(ctx context.Context, notificationID uuid.UUID) (*domain.Notification, error) {
	if m.getErr != nil {
		return nil, m.getErr
	}
	return m.getResult, nil
}

func (m *mockNotificationService) ListNotifications(ctx context.Context) ([]*domain.Notification, error) {
	return m.listResult, m.listErr
}

func (m *mockNotificationService) UpdateNotification(ctx context.Context, notificationID uuid.UUID, update *domain.NotificationUpdate) (*domain.Notification, error) {
	if m.updateErr != nil {
		return nil, m.updateErr
	}
	return m.updateResult, nil
}

func (m *mockNotificationService) DeleteNotification(ctx context.Context, notificationID uuid.UUID) error {
	return m.deleteErr
}

type mockUserStore struct {
	user *domain.User
	err  error
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error { return nil }

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	return m.user, m.err
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	return m.user, m.err
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return m.user, m.err
}

func (m *mockUserStore) List(ctx context.Context) ([]*domain.User, error) { return nil, nil }

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error { return nil }

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error { return nil }

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore { return m }

type mockJWTService struct {
	token       string
	generateErr error
	claims      *auth.Claims
	validateErr error
	lastUserID  uuid.UUID
}

func (m *mockJWTService) GenerateToken(ctx context.Context, userID uuid.UUID) (string, error) {
	m.lastUserID = userID
	return m.token, m.generateErr
}

func (m *mockJWTService) ValidateToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.claims, nil
}

func (m *mockJWTService) GenerateRefreshToken(ctx context.Context, userID uuid.UUID) (string, error) {
	return m.token, m.generateErr
}

func (m *mockJWTService) ValidateRefreshToken(ctx context.Context, tokenString string) (*auth.Claims, error) {
	if m.validateErr != nil {
		return nil, m.validateErr
	}
	return m.claims, nil
}

type mockPasswordVerifier struct {
	shouldSucceed bool
}

func (m *mockPasswordVerifier) Compare(hashedPassword, password string) error {
	if m.shouldSucceed {
		return nil
	}
	return errors.New("password mismatch")
}
