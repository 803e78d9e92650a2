package api

import (
	"encoding/json"
	"net/http"

	"log/slog"
)

type errorResponse struct {
	Error string `json:"error"`
}

// fieldError is one field-level validation failure. Path is a JSON pointer
// into the request body.
type fieldError struct {
	Path    string `json:"path"`
	Message string `json:"message"`
}

type validationErrorResponse struct {
	Error   string       `json:"error"`
	Details []fieldError `json:"details"`
}

func writeJSON(w http.ResponseWriter, v any, status int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		logger.Error("encode response", slog.Any("err", err))
	}
}

func writeError(w http.ResponseWriter, msg string, status int) {
	writeJSON(w, errorResponse{Error: msg}, status)
}

func writeValidationError(w http.ResponseWriter, details []fieldError) {
	writeJSON(w, validationErrorResponse{Error: "Validation failed", Details: details}, http.StatusBadRequest)
}
