package handler

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/Beneli93/kvs-backend/internal/service"
)

// AppointmentHandler handles appointment HTTP requests
type AppointmentHandler struct {
	appointmentService service.AppointmentService
	reminderDays       int
	logger             *slog.Logger
}

// NewAppointmentHandler creates a new appointment handler. reminderDays
// is the default window for /appointments/reminders.
func NewAppointmentHandler(appointmentService service.AppointmentService, reminderDays int, logger *slog.Logger) *AppointmentHandler {
	return &AppointmentHandler{
		appointmentService: appointmentService,
		reminderDays:       reminderDays,
		logger:             logger,
	}
}

// BookAppointment handles POST /customers/{id}/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req service.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	customer, err := h.appointmentService.Book(r.Context(), id, &req)
	if err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondCreated(w, customer)
}

// UpdateAppointment handles PUT /customers/{id}/appointments/{index}
func (h *AppointmentHandler) UpdateAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INDEX", "Invalid appointment index")
		return
	}

	var req service.BookAppointmentRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON format")
		return
	}

	if err := h.appointmentService.Update(r.Context(), id, index, &req); err != nil {
		handleError(w, err, h.logger)
		return
	}

	respondSuccess(w, map[string]string{"status": "updated"})
}

// CancelAppointment handles DELETE /customers/{id}/appointments/{index}
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		respondError(w, http.StatusBadRequest, "INVALID_INDEX", "Invalid appointment index")
		return
	}

	if err := h.appointmentService.Cancel(r.Context(), id, index); err != nil {
		handleError(w, err, h.logger)
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// SearchAppointments handles GET /appointments with an optional ?q=
func (h *AppointmentHandler) SearchAppointments(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("q")
	respondSuccess(w, h.appointmentService.Search(r.Context(), term))
}

// UpcomingAppointments handles GET /appointments/upcoming
func (h *AppointmentHandler) UpcomingAppointments(w http.ResponseWriter, r *http.Request) {
	respondSuccess(w, h.appointmentService.Upcoming(r.Context(), time.Now()))
}

// Reminders handles GET /appointments/reminders with an optional
// ?days= override of the configured window
func (h *AppointmentHandler) Reminders(w http.ResponseWriter, r *http.Request) {
	days := h.reminderDays
	if v := r.URL.Query().Get("days"); v != "" {
		parsed, err := strconv.Atoi(v)
		if err != nil || parsed < 0 {
			respondError(w, http.StatusBadRequest, "INVALID_DAYS", "Invalid reminder window")
			return
		}
		days = parsed
	}

	respondSuccess(w, h.appointmentService.Reminders(r.Context(), time.Now(), days))
}
