package handlers

import (
	"context"
	"net/http"

	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/zocdoc"
)

// InsuranceService defines the interface for insurance plan lookups
type InsuranceService interface {
	GetInsurancePlans(ctx context.Context, req zocdoc.InsurancePlansRequest) (*zocdoc.InsurancePlansResponse, error)
}

// InsuranceHandler handles insurance plan requests
type InsuranceHandler struct {
	service InsuranceService
}

// NewInsuranceHandler creates a new insurance handler
func NewInsuranceHandler(service InsuranceService) *InsuranceHandler {
	return &InsuranceHandler{
		service: service,
	}
}

// ListPlans handles GET /api/insurance_plans
func (h *InsuranceHandler) ListPlans(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()

	resp, err := h.service.GetInsurancePlans(r.Context(), zocdoc.InsurancePlansRequest{
		Page:         queryInt(r, "page", 0),
		PageSize:     queryInt(r, "page_size", 0),
		Status:       q.Get("status"),
		State:        q.Get("state"),
		PlanType:     q.Get("plan_type"),
		ProgramType:  q.Get("program_type"),
		CareCategory: q.Get("care_category"),
	})
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, resp)
}
