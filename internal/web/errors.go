package web

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/pcmon/catalog/internal/core"
	"github.com/pcmon/catalog/internal/logging"
)

// writeJSON renders a JSON response with the given status code.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

// writeError logs the technical error and renders its user-facing mapping.
// Collaborator failures answer 503; everything else 500 unless the caller
// chose a status.
func writeError(w http.ResponseWriter, r *http.Request, status int, err error) {
	if errors.Is(err, core.ErrCollaboratorUnavailable) {
		status = http.StatusServiceUnavailable
	}

	logging.FromContext(r.Context()).Error("request failed",
		"status", status,
		"error", err,
	)

	writeJSON(w, status, map[string]string{
		"error": core.FormatUserError(err),
	})
}

// writeBadRequest renders a 400 with a literal message for malformed input.
func writeBadRequest(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusBadRequest, map[string]string{"error": message})
}
