package api

import (
	"encoding/json"
	"net/http"

	apperrors "rentacar/internal/errors"
)

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(payload)
}

// writeError converts a service error into the JSON {message} body, using
// the status carried by the error taxonomy and 500 for everything else.
func writeError(w http.ResponseWriter, err error, fallback string) {
	status := apperrors.StatusOf(err)
	message := fallback
	if status != http.StatusInternalServerError {
		message = err.Error()
	}
	writeJSON(w, status, map[string]string{"message": message})
}
