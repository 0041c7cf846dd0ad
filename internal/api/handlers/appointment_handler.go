package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/zocdoc"
)

// maxBookingPayloadBytes caps booking bodies forwarded to the vendor
const maxBookingPayloadBytes = 1 << 20

// AppointmentService defines the interface for appointment operations.
// Booking, cancel and reschedule payloads are forwarded to the vendor
// verbatim; the gateway validates shape, not content.
type AppointmentService interface {
	BookAppointment(ctx context.Context, payload json.RawMessage) (*zocdoc.AppointmentResponse, error)
	ListAppointments(ctx context.Context, page, pageSize int) (*zocdoc.AppointmentsResponse, error)
	GetAppointment(ctx context.Context, appointmentID string) (*zocdoc.AppointmentResponse, error)
	CancelAppointment(ctx context.Context, payload json.RawMessage) (*zocdoc.AppointmentResponse, error)
	RescheduleAppointment(ctx context.Context, payload json.RawMessage) (*zocdoc.AppointmentResponse, error)
}

// AppointmentHandler handles appointment requests
type AppointmentHandler struct {
	service AppointmentService
}

// NewAppointmentHandler creates a new appointment handler
func NewAppointmentHandler(service AppointmentService) *AppointmentHandler {
	return &AppointmentHandler{
		service: service,
	}
}

// BookAppointment handles POST /api/appointments
func (h *AppointmentHandler) BookAppointment(w http.ResponseWriter, r *http.Request) {
	payload, ok := readJSONPayload(w, r)
	if !ok {
		return
	}

	resp, err := h.service.BookAppointment(r.Context(), payload)
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusCreated, resp)
}

// ListAppointments handles GET /api/appointments
func (h *AppointmentHandler) ListAppointments(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	pageSize := queryInt(r, "page_size", 0)

	resp, err := h.service.ListAppointments(r.Context(), page, pageSize)
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// GetAppointment handles GET /api/appointments/{id}
func (h *AppointmentHandler) GetAppointment(w http.ResponseWriter, r *http.Request) {
	appointmentID := r.PathValue("id")
	if appointmentID == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "appointment id is required")
		return
	}

	resp, err := h.service.GetAppointment(r.Context(), appointmentID)
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// CancelAppointment handles POST /api/appointments/cancel
func (h *AppointmentHandler) CancelAppointment(w http.ResponseWriter, r *http.Request) {
	payload, ok := readJSONPayload(w, r)
	if !ok {
		return
	}

	resp, err := h.service.CancelAppointment(r.Context(), payload)
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// RescheduleAppointment handles POST /api/appointments/reschedule
func (h *AppointmentHandler) RescheduleAppointment(w http.ResponseWriter, r *http.Request) {
	payload, ok := readJSONPayload(w, r)
	if !ok {
		return
	}

	resp, err := h.service.RescheduleAppointment(r.Context(), payload)
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// readJSONPayload reads a request body destined for vendor pass-through
// and rejects anything that is not valid JSON
func readJSONPayload(w http.ResponseWriter, r *http.Request) (json.RawMessage, bool) {
	body, err := io.ReadAll(io.LimitReader(r.Body, maxBookingPayloadBytes))
	if err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "failed to read request body")
		return nil, false
	}
	if len(body) == 0 {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "request body is required")
		return nil, false
	}
	if !json.Valid(body) {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return nil, false
	}
	return body, true
}
