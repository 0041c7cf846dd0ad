package handlers

import (
	"context"
	"net/http"
	"strings"

	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/zocdoc"
)

// ProviderDirectoryService defines the interface for provider directory lookups
type ProviderDirectoryService interface {
	ListNPIs(ctx context.Context, page, pageSize int) (*zocdoc.NPIListResponse, error)
	GetProviders(ctx context.Context, npis []string, insurancePlanID string) (*zocdoc.ProvidersResponse, error)
	SearchProviderLocations(ctx context.Context, req zocdoc.LocationSearchRequest) (*zocdoc.ProviderLocationSearchResponse, error)
}

// ProviderHandler handles provider directory requests
type ProviderHandler struct {
	service ProviderDirectoryService
}

// NewProviderHandler creates a new provider handler
func NewProviderHandler(service ProviderDirectoryService) *ProviderHandler {
	return &ProviderHandler{
		service: service,
	}
}

// ListNPIs handles GET /api/providers/npis
func (h *ProviderHandler) ListNPIs(w http.ResponseWriter, r *http.Request) {
	page := queryInt(r, "page", 0)
	pageSize := queryInt(r, "page_size", 0)

	resp, err := h.service.ListNPIs(r.Context(), page, pageSize)
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// GetProviders handles GET /api/providers
func (h *ProviderHandler) GetProviders(w http.ResponseWriter, r *http.Request) {
	npisParam := r.URL.Query().Get("npis")
	if npisParam == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "npis query parameter is required")
		return
	}
	npis := strings.Split(npisParam, ",")

	resp, err := h.service.GetProviders(r.Context(), npis, r.URL.Query().Get("insurance_plan_id"))
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}

// SearchLocations handles GET /api/provider_locations
func (h *ProviderHandler) SearchLocations(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := zocdoc.LocationSearchRequest{
		ZipCode:         q.Get("zip_code"),
		SpecialtyID:     q.Get("specialty_id"),
		VisitReasonID:   q.Get("visit_reason_id"),
		InsurancePlanID: q.Get("insurance_plan_id"),
		VisitType:       q.Get("visit_type"),
		MaxDistanceMi:   queryFloat(r, "max_distance_mi", 0),
		Page:            queryInt(r, "page", 0),
		PageSize:        queryInt(r, "page_size", 0),
	}

	if req.ZipCode == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "zip_code query parameter is required")
		return
	}
	if req.SpecialtyID == "" && req.VisitReasonID == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "one of specialty_id or visit_reason_id is required")
		return
	}

	resp, err := h.service.SearchProviderLocations(r.Context(), req)
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
