package service

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"
	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/store"
)

// Hand-written store mocks. Each mock tracks which methods were called
// and returns configured values, keeping tests free of a mocking
// framework the way the rest of the suite is.

type mockUserStore struct {
	createCalled        bool
	getByIDCalled       bool
	getByUsernameCalled bool
	listCalled          bool
	updateCalled        bool
	deleteCalled        bool

	createError        error
	getByIDUser        *domain.User
	getByIDError       error
	getByUsernameUser  *domain.User
	getByUsernameError error
	listUsers          []*domain.User
	listError          error
	updateError        error
	deleteError        error
}

func (m *mockUserStore) Create(ctx context.Context, user *domain.User) error {
	m.createCalled = true
	return m.createError
}

func (m *mockUserStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	m.getByIDCalled = true
	if m.getByIDError != nil {
		return nil, m.getByIDError
	}
	return m.getByIDUser, nil
}

func (m *mockUserStore) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	m.getByUsernameCalled = true
	if m.getByUsernameError != nil {
		return nil, m.getByUsernameError
	}
	return m.getByUsernameUser, nil
}

func (m *mockUserStore) GetByEmail(ctx context.Context, email string) (*domain.User, error) {
	return nil, store.ErrUserNotFound
}

func (m *mockUserStore) List(ctx context.Context) ([]*domain.User, error) {
	m.listCalled = true
	return m.listUsers, m.listError
}

func (m *mockUserStore) Update(ctx context.Context, user *domain.User) error {
	m.updateCalled = true
	return m.updateError
}

func (m *mockUserStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalled = true
	return m.deleteError
}

func (m *mockUserStore) WithTx(tx *sql.Tx) store.UserStore {
	return m
}

type mockServiceStore struct {
	createCalled  bool
	getByIDCalled bool
	listCalled    bool
	updateCalled  bool
	deleteCalled  bool

	createError    error
	getByIDService *domain.Service
	getByIDError   error
	listServices   []*domain.Service
	listError      error
	updateError    error
	deleteError    error
}

func (m *mockServiceStore) Create(ctx context.Context, service *domain.Service) error {
	m.createCalled = true
	return m.createError
}

func (m *mockServiceStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error) {
	m.getByIDCalled = true
	if m.getByIDError != nil {
		return nil, m.getByIDError
	}
	return m.getByIDService, nil
}

func (m *mockServiceStore) List(ctx context.Context) ([]*domain.Service, error) {
	m.listCalled = true
	return m.listServices, m.listError
}

func (m *mockServiceStore) Update(ctx context.Context, service *domain.Service) error {
	m.updateCalled = true
	return m.updateError
}

func (m *mockServiceStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalled = true
	return m.deleteError
}

func (m *mockServiceStore) WithTx(tx *sql.Tx) store.ServiceStore {
	return m
}

type mockAppointmentStore struct {
	createCalled      bool
	getByIDCalled     bool
	getByNumberCalled bool
	listCalled        bool
	listForUserCalled bool
	updateCalled      bool
	deleteCalled      bool

	createError             error
	getByIDAppointment      *domain.Appointment
	getByIDError            error
	getByNumberAppointments []*domain.Appointment
	getByNumberError        error
	listAppointments        []*domain.Appointment
	listError               error
	listForUserAppointments []*domain.Appointment
	listForUserError        error
	updateError             error
	deleteError             error
}

func (m *mockAppointmentStore) Create(ctx context.Context, appointment *domain.Appointment) error {
	m.createCalled = true
	return m.createError
}

func (m *mockAppointmentStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error) {
	m.getByIDCalled = true
	if m.getByIDError != nil {
		return nil, m.getByIDError
	}
	return m.getByIDAppointment, nil
}

func (m *mockAppointmentStore) GetByConfirmationNumber(ctx context.Context, confirmationNumber int64) ([]*domain.Appointment, error) {
	m.getByNumberCalled = true
	if m.getByNumberError != nil {
		return nil, m.getByNumberError
	}
	return m.getByNumberAppointments, nil
}

func (m *mockAppointmentStore) List(ctx context.Context) ([]*domain.Appointment, error) {
	m.listCalled = true
	return m.listAppointments, m.listError
}

func (m *mockAppointmentStore) ListForUser(ctx context.Context, userID uuid.UUID) ([]*domain.Appointment, error) {
	m.listForUserCalled = true
	return m.listForUserAppointments, m.listForUserError
}

func (m *mockAppointmentStore) Update(ctx context.Context, appointment *domain.Appointment) error {
	m.updateCalled = true
	return m.updateError
}

func (m *mockAppointmentStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalled = true
	return m.deleteError
}

func (m *mockAppointmentStore) WithTx(tx *sql.Tx) store.AppointmentStore {
	return m
}

type mockNotificationStore struct {
	createCalled  bool
	getByIDCalled bool
	listCalled    bool
	listDueCalled bool
	updateCalled  bool
	deleteCalled  bool

	createError          error
	getByIDNotification  *domain.Notification
	getByIDError         error
	listNotifications    []*domain.Notification
	listError            error
	listDueNotifications []*domain.Notification
	listDueError         error
	updateError          error
	deleteError          error

	// updatedStatuses records the status carried by each Update call, in
	// order, so dispatch outcome persistence can be asserted.
	updatedStatuses []domain.NotificationStatus
}

func (m *mockNotificationStore) Create(ctx context.Context, notification *domain.Notification) error {
	m.createCalled = true
	return m.createError
}

func (m *mockNotificationStore) GetByID(ctx context.Context, id uuid.UUID) (*domain.Notification, error) {
	m.getByIDCalled = true
	if m.getByIDError != nil {
		return nil, m.getByIDError
	}
	return m.getByIDNotification, nil
}

func (m *mockNotificationStore) List(ctx context.Context) ([]*domain.Notification, error) {
	m.listCalled = true
	return m.listNotifications, m.listError
}

func (m *mockNotificationStore) ListDue(ctx context.Context, before time.Time, limit int) ([]*domain.Notification, error) {
	m.listDueCalled = true
	if m.listDueError != nil {
		return nil, m.listDueError
	}
	return m.listDueNotifications, nil
}

func (m *mockNotificationStore) Update(ctx context.Context, notification *domain.Notification) error {
	m.updateCalled = true
	m.updatedStatuses = append(m.updatedStatuses, notification.Status)
	return m.updateError
}

func (m *mockNotificationStore) Delete(ctx context.Context, id uuid.UUID) error {
	m.deleteCalled = true
	return m.deleteError
}

func (m *mockNotificationStore) WithTx(tx *sql.Tx) store.NotificationStore {
	return m
}

// mockSender implements Sender with a configurable outcome.
type mockSender struct {
	sendCalled int
	response   string
	err        error
}

func (m *mockSender) Send(ctx context.Context, notification *domain.Notification) (string, error) {
	m.sendCalled++
	if m.err != nil {
		return "", m.err
	}
	return m.response, nil
}
