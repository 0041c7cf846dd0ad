package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/zocdoc"
)

// AvailabilityService defines the interface for availability lookups
type AvailabilityService interface {
	GetAvailability(ctx context.Context, req zocdoc.AvailabilityRequest) (*zocdoc.AvailabilityResponse, error)
}

// AvailabilityHandler handles availability requests
type AvailabilityHandler struct {
	service AvailabilityService
}

// NewAvailabilityHandler creates a new availability handler
func NewAvailabilityHandler(service AvailabilityService) *AvailabilityHandler {
	return &AvailabilityHandler{
		service: service,
	}
}

// GetAvailability handles GET /api/availability
func (h *AvailabilityHandler) GetAvailability(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	idsParam := q.Get("provider_location_ids")
	if idsParam == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "provider_location_ids query parameter is required")
		return
	}
	visitReasonID := q.Get("visit_reason_id")
	if visitReasonID == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "visit_reason_id query parameter is required")
		return
	}
	patientType := q.Get("patient_type")
	if patientType == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "patient_type query parameter is required")
		return
	}

	resp, err := h.service.GetAvailability(r.Context(), zocdoc.AvailabilityRequest{
		ProviderLocationIDs: strings.Split(idsParam, ","),
		VisitReasonID:       visitReasonID,
		PatientType:         patientType,
		StartDate:           q.Get("start_date_in_provider_local_time"),
		EndDate:             q.Get("end_date_in_provider_local_time"),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
