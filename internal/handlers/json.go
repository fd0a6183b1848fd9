package handlers

import (
	"context"
	"encoding/json"
	"net/http"

	applog "parfumerie/internal/log"
)

const invalidPayloadMessage = "invalid request payload"

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

type validatable interface {
	Validate() error
}

// decodeRequest reads the JSON body into payload and runs its validation.
// It writes the 400 response itself and reports whether handling may go on.
func decodeRequest(w http.ResponseWriter, r *http.Request, payload validatable) bool {
	if err := json.NewDecoder(r.Body).Decode(payload); err != nil {
		applog.Debug(r.Context(), "invalid request payload", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusBadRequest, invalidPayloadMessage)
		return false
	}
	if err := payload.Validate(); err != nil {
		applog.Debug(r.Context(), "request failed validation", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusBadRequest, err.Error())
		return false
	}
	return true
}

// storeFailure logs a repository error and answers 500 with its message.
func storeFailure(w http.ResponseWriter, r *http.Request, err error, msg string, args ...any) {
	applog.Error(r.Context(), msg, append(args, "error", err)...)
	writeJSONError(w, http.StatusInternalServerError, err.Error())
}

func notFoundJSON(w http.ResponseWriter, r *http.Request, message string, args ...any) {
	applog.Debug(r.Context(), message, args...)
	writeJSONError(w, http.StatusNotFound, message)
}
