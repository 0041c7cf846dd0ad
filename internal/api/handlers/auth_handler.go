package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/zocdoc"
)

// AuthService defines the interface for vendor authentication
type AuthService interface {
	Authenticate(ctx context.Context, clientID, clientSecret string) (*zocdoc.TokenResponse, error)
}

// AuthHandler handles authentication requests
type AuthHandler struct {
	service AuthService
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(service AuthService) *AuthHandler {
	return &AuthHandler{
		service: service,
	}
}

type authRequest struct {
	ClientID     string `json:"client_id"`
	ClientSecret string `json:"client_secret"`
}

// Authenticate handles POST /api/auth
func (h *AuthHandler) Authenticate(w http.ResponseWriter, r *http.Request) {
	var req authRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "request body must be JSON")
		return
	}
	if req.ClientID == "" || req.ClientSecret == "" {
		respondWithError(w, http.StatusBadRequest, "invalid_request", "client_id and client_secret are required")
		return
	}

	token, err := h.service.Authenticate(r.Context(), req.ClientID, req.ClientSecret)
	if err != nil {
		writeAppError(w, err)
		return
	}

	respondWithJSON(w, http.StatusOK, token)
}
