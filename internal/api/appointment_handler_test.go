package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/service"
	"github.com/salonworks/booking-api/internal/store"
)

func newAppointmentRouter(bookingService service.BookingService) chi.Router {
	handler := NewAppointmentHandler(bookingService)

	r := chi.NewRouter()
	r.Post("/appointments", handler.CreateAppointment)
	r.Get("/appointments", handler.ListAppointments)
	r.Get("/appointments/confirmation/{number}", handler.GetAppointmentByConfirmationNumber)
	r.Get("/appointments/{id}", handler.GetAppointment)
	r.Patch("/appointments/{id}", handler.UpdateAppointment)
	r.Delete("/appointments/{id}", handler.DeleteAppointment)
	return r
}

func testAPIAppointment(t *testing.T) *domain.Appointment {
	t.Helper()

	startsAt := time.Date(2026, 9, 14, 10, 0, 0, 0, time.UTC)
	appt, err := domain.NewAppointment(uuid.New(), uuid.New(), startsAt, startsAt.Add(time.Hour))
	require.NoError(t, err)
	number := int64(123_456_789)
	appt.ConfirmationNumber = &number
	return appt
}

func TestCreateAppointmentEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("successful booking", func(t *testing.T) {
		t.Parallel()

		appt := testAPIAppointment(t)
		booking := &mockBookingService{createResult: appt}
		router := newAppointmentRouter(booking)

		body := `{
			"user_id": "` + appt.UserID.String() + `",
			"service_id": "` + appt.ServiceID.String() + `",
			"starts_at": "2026-09-14T10:00:00Z",
			"ends_at": "2026-09-14T11:00:00Z",
			"notes": "First visit."
		}`
		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusCreated, recorder.Code)
		assert.Equal(t, appt.UserID, booking.lastCreateParams.UserID)
		require.NotNil(t, booking.lastCreateParams.Notes)
		assert.Equal(t, "First visit.", *booking.lastCreateParams.Notes)
		assert.Nil(t, booking.lastCreateParams.ConfirmationNumber)

		var got domain.Appointment
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
		assert.Equal(t, appt.ID, got.ID)
	})

	t.Run("zoneless datetime rejected at decode", func(t *testing.T) {
		t.Parallel()

		router := newAppointmentRouter(&mockBookingService{})

		body := `{
			"user_id": "` + uuid.New().String() + `",
			"service_id": "` + uuid.New().String() + `",
			"starts_at": "2026-09-14T10:00:00",
			"ends_at": "2026-09-14T11:00:00"
		}`
		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Invalid request format")
	})

	t.Run("ends before starts", func(t *testing.T) {
		t.Parallel()

		booking := &mockBookingService{
			createErr: domainValidationErr(domain.ErrEndsBeforeStarts),
		}
		router := newAppointmentRouter(booking)

		body := `{
			"user_id": "` + uuid.New().String() + `",
			"service_id": "` + uuid.New().String() + `",
			"starts_at": "2026-09-14T10:00:00Z",
			"ends_at": "2026-09-14T09:00:00Z"
		}`
		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "end time cannot be earlier than start time")
	})

	t.Run("confirmation number conflict", func(t *testing.T) {
		t.Parallel()

		booking := &mockBookingService{createErr: store.ErrConfirmationNumberExists}
		router := newAppointmentRouter(booking)

		body := `{
			"user_id": "` + uuid.New().String() + `",
			"service_id": "` + uuid.New().String() + `",
			"starts_at": "2026-09-14T10:00:00Z",
			"ends_at": "2026-09-14T11:00:00Z",
			"confirmation_number": 123456789
		}`
		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusConflict, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Confirmation number already exists")
	})

	t.Run("data corruption stays generic", func(t *testing.T) {
		t.Parallel()

		booking := &mockBookingService{createErr: service.ErrDataIntegrity}
		router := newAppointmentRouter(booking)

		body := `{
			"user_id": "` + uuid.New().String() + `",
			"service_id": "` + uuid.New().String() + `",
			"starts_at": "2026-09-14T10:00:00Z",
			"ends_at": "2026-09-14T11:00:00Z"
		}`
		req := httptest.NewRequest(http.MethodPost, "/appointments", strings.NewReader(body))
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusInternalServerError, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "An unexpected error occurred")
	})
}

func TestGetAppointmentEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		appt := testAPIAppointment(t)
		router := newAppointmentRouter(&mockBookingService{getResult: appt})

		req := httptest.NewRequest(http.MethodGet, "/appointments/"+appt.ID.String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		router := newAppointmentRouter(&mockBookingService{getErr: store.ErrAppointmentNotFound})

		req := httptest.NewRequest(http.MethodGet, "/appointments/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "Appointment not found")
	})

	t.Run("malformed id", func(t *testing.T) {
		t.Parallel()

		router := newAppointmentRouter(&mockBookingService{})

		req := httptest.NewRequest(http.MethodGet, "/appointments/not-a-uuid", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestGetAppointmentByConfirmationNumberEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("found", func(t *testing.T) {
		t.Parallel()

		appt := testAPIAppointment(t)
		booking := &mockBookingService{getByNumberResult: appt}
		router := newAppointmentRouter(booking)

		req := httptest.NewRequest(http.MethodGet, "/appointments/confirmation/123456789", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, int64(123_456_789), booking.lastNumber)
	})

	t.Run("non-numeric number", func(t *testing.T) {
		t.Parallel()

		router := newAppointmentRouter(&mockBookingService{})

		req := httptest.NewRequest(http.MethodGet, "/appointments/confirmation/abc", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "numeric")
	})
}

func TestListAppointmentsEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("all appointments", func(t *testing.T) {
		t.Parallel()

		booking := &mockBookingService{
			listResult: []*domain.Appointment{testAPIAppointment(t)},
		}
		router := newAppointmentRouter(booking)

		req := httptest.NewRequest(http.MethodGet, "/appointments", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
	})

	t.Run("filtered by user", func(t *testing.T) {
		t.Parallel()

		userID := uuid.New()
		booking := &mockBookingService{}
		router := newAppointmentRouter(booking)

		req := httptest.NewRequest(http.MethodGet, "/appointments?user_id="+userID.String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)
		assert.Equal(t, userID, booking.listForUserID)
	})

	t.Run("malformed user filter", func(t *testing.T) {
		t.Parallel()

		router := newAppointmentRouter(&mockBookingService{})

		req := httptest.NewRequest(http.MethodGet, "/appointments?user_id=nope", nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestUpdateAppointmentEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("status change", func(t *testing.T) {
		t.Parallel()

		appt := testAPIAppointment(t)
		appt.Status = domain.AppointmentStatusCanceled
		router := newAppointmentRouter(&mockBookingService{updateResult: appt})

		body := bytes.NewReader([]byte(`{"status": "canceled"}`))
		req := httptest.NewRequest(http.MethodPatch, "/appointments/"+appt.ID.String(), body)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusOK, recorder.Code)

		var got domain.Appointment
		require.NoError(t, json.NewDecoder(recorder.Body).Decode(&got))
		assert.Equal(t, domain.AppointmentStatusCanceled, got.Status)
	})

	t.Run("id in payload rejected", func(t *testing.T) {
		t.Parallel()

		router := newAppointmentRouter(&mockBookingService{
			updateErr: domainValidationErr(domain.ErrIDImmutable),
		})

		body := bytes.NewReader([]byte(`{"id": "` + uuid.New().String() + `"}`))
		req := httptest.NewRequest(http.MethodPatch, "/appointments/"+uuid.New().String(), body)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusBadRequest, recorder.Code)
		assert.Contains(t, recorder.Body.String(), "ID cannot be modified.")
	})
}

func TestDeleteAppointmentEndpoint(t *testing.T) {
	t.Parallel()

	t.Run("deleted", func(t *testing.T) {
		t.Parallel()

		router := newAppointmentRouter(&mockBookingService{})

		req := httptest.NewRequest(http.MethodDelete, "/appointments/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNoContent, recorder.Code)
		assert.Empty(t, recorder.Body.String())
	})

	t.Run("not found", func(t *testing.T) {
		t.Parallel()

		router := newAppointmentRouter(&mockBookingService{deleteErr: store.ErrAppointmentNotFound})

		req := httptest.NewRequest(http.MethodDelete, "/appointments/"+uuid.New().String(), nil)
		recorder := httptest.NewRecorder()
		router.ServeHTTP(recorder, req)

		assert.Equal(t, http.StatusNotFound, recorder.Code)
	})
}
