package handlers

import (
	"context"
	"encoding/base64"
	"encoding/json"
	"io"
	"net/http"

	"github.com/google/uuid"

	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/zocdoc"
	"github.com/zatekoja/bookingdemo/internal/infrastructure/observability"
)

// WebhookService defines the interface for webhook simulation
type WebhookService interface {
	SimulateAppointmentWebhook(ctx context.Context, req zocdoc.WebhookMockRequest) (*zocdoc.WebhookMockResponse, error)
}

// WebhookHandler handles webhook simulation and delivery
type WebhookHandler struct {
	service WebhookService
}

// NewWebhookHandler creates a new webhook handler
func NewWebhookHandler(service WebhookService) *WebhookHandler {
	return &WebhookHandler{
		service: service,
	}
}

// SimulateWebhook handles POST /api/webhook_mocks
func (h *WebhookHandler) SimulateWebhook(w http.ResponseWriter, r *http.Request) {
	var req zocdoc.WebhookMockRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}
	if req.WebhookURL == "" || req.WebhookKey == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "webhook_url and webhook_key are required")
		return
	}
	if _, err := base64.StdEncoding.DecodeString(req.WebhookKey); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "webhook_key must be base64 encoded")
		return
	}

	resp, err := h.service.SimulateAppointmentWebhook(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// ReceiveWebhook handles POST /webhooks/appointments. Deliveries are
// assigned a local id and logged; the sandbox only needs a 200.
func (h *WebhookHandler) ReceiveWebhook(w http.ResponseWriter, r *http.Request) {
	body, err := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	if err != nil || len(body) == 0 || !json.Valid(body) {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "delivery body must be JSON")
		return
	}

	deliveryID := uuid.New().String()
	var payload zocdoc.WebhookMockResponse
	if err := json.Unmarshal(body, &payload); err == nil {
		observability.LoggerFromContext(r.Context()).Info().
			Str("delivery_id", deliveryID).
			Str("event_type", payload.EventType).
			Str("appointment_id", payload.Data.AppointmentData.AppointmentID).
			Str("update_type", payload.Data.AppointmentData.AppointmentUpdateType).
			Msg("appointment webhook received")
	}

	respondWithJSON(w, http.StatusOK, map[string]string{"delivery_id": deliveryID})
}
