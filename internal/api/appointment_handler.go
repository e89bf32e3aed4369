package api

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"

	"github.com/salonworks/booking-api/internal/api/shared"
	"github.com/salonworks/booking-api/internal/domain"
	"github.com/salonworks/booking-api/internal/service"
)

// AppointmentHandler handles booking API requests.
type AppointmentHandler struct {
	bookingService service.BookingService
}

// NewAppointmentHandler creates a new AppointmentHandler.
func NewAppointmentHandler(bookingService service.BookingService) *AppointmentHandler {
	return &AppointmentHandler{
		bookingService: bookingService,
	}
}

// CreateAppointment handles POST /appointments.
func (h *AppointmentHandler) CreateAppointment(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := shared.DecodeJSON(r, &req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}
	if err := shared.ValidateRequest(req); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	appt, err := h.bookingService.CreateAppointment(r.Context(), service.CreateAppointmentParams{
		UserID:             req.UserID,
		ServiceID:          req.ServiceID,
		StartsAt:           req.StartsAt,
		EndsAt:             req.EndsAt,
		Notes:              req.Notes,
		ConfirmationNumber: req.ConfirmationNumber,
	})
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, appt)
}

// GetAppointment handles GET /appointments/{id}.
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	appt, err := h.bookingService.GetAppointment(r.Context(), id)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, appt)
}

// GetAppointmentByConfirmationNumber handles
// GET /appointments/confirmation/{number}.
func (h *AppointmentHandler) GetAppointmentByConfirmationNumber(w http.ResponseWriter, r *http.Request) {
	raw := chi.URLParam(r, "number")
	number, err := strconv.ParseInt(raw, 10, 64)
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Confirmation number must be numeric")
		return
	}

	appt, err := h.bookingService.GetAppointmentByConfirmationNumber(r.Context(), number)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, appt)
}

// ListAppointments handles GET /appointments. With a user_id query
// parameter only that user's appointments are returned.
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	if rawUserID := r.URL.Query().Get("user_id"); rawUserID != "" {
		userID, err := parseUUID(rawUserID, "user_id")
		if err != nil {
			shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
			return
		}

		appts, err := h.bookingService.ListAppointmentsForUser(r.Context(), userID)
		if err != nil {
			shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
			return
		}
		shared.RespondWithJSON(w, r, http.StatusOK, appts)
		return
	}

	appts, err := h.bookingService.ListAppointments(r.Context())
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, appts)
}

// UpdateAppointment handles PATCH /appointments/{id}.
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	var update domain.AppointmentUpdate
	if err := shared.DecodeJSON(r, &update); err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, "Invalid request format")
		return
	}

	appt, err := h.bookingService.UpdateAppointment(r.Context(), id, &update)
	if err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, appt)
}

// DeleteAppointment handles DELETE /appointments/{id}.
func (h *AppointmentHandler) DeleteAppointment(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		shared.RespondWithError(w, r, http.StatusBadRequest, GetSafeErrorMessage(err))
		return
	}

	if err := h.bookingService.DeleteAppointment(r.Context(), id); err != nil {
		shared.RespondWithErrorAndLog(w, r, MapErrorToStatusCode(err), GetSafeErrorMessage(err), err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusNoContent, nil)
}
