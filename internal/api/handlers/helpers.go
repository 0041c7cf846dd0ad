package handlers

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/zatekoja/bookingdemo/internal/infrastructure/clients/zocdoc"
	apperrors "github.com/zatekoja/bookingdemo/pkg/errors"
)

// respondWithJSON writes a JSON response
func respondWithJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		log.Error().Err(err).Msg("failed to encode response")
	}
}

// respondWithError writes the normalized error envelope
func respondWithError(w http.ResponseWriter, statusCode int, code, description string) {
	respondWithJSON(w, statusCode, zocdoc.ErrorEnvelope{
		Error:            code,
		ErrorDescription: description,
		Status:           statusCode,
	})
}

// writeAppError maps an application error onto the error envelope,
// keeping vendor codes and statuses intact
func writeAppError(w http.ResponseWriter, err error) {
	appErr := apperrors.AsAppError(err)
	respondWithError(w, appErr.Status, appErr.Message, appErr.Description)
}

// queryInt parses an integer query parameter, falling back on absence
// or garbage
func queryInt(r *http.Request, name string, fallback int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

// queryFloat parses a float query parameter
func queryFloat(r *http.Request, name string, fallback float64) float64 {
	if v := r.URL.Query().Get(name); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
