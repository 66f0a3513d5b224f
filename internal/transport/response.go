package transport

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"salon-api/internal/apperr"
)

type ErrorResponse struct {
	Error   string            `json:"error"`
	Details map[string]string `json:"details,omitempty"`
}

func WriteJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func WriteError(w http.ResponseWriter, status int, message string, details map[string]string) {
	WriteJSON(w, status, ErrorResponse{
		Error:   message,
		Details: details,
	})
}

func NoContent(w http.ResponseWriter) {
	w.WriteHeader(http.StatusNoContent)
}

// WriteFailure is the single place request failures become HTTP responses.
// Errors that carry no apperr kind are reported as 500 without exposing
// their text.
func WriteFailure(w http.ResponseWriter, log *slog.Logger, err error) {
	status := StatusOf(err)
	message := http.StatusText(status)
	var details map[string]string

	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		message = appErr.Message
		details = appErr.Details
	}

	if status >= http.StatusInternalServerError {
		log.Error("request failed", slog.Int("status", status), slog.String("error", err.Error()))
		message = "unexpected error"
	} else {
		log.Warn("request rejected", slog.Int("status", status), slog.String("error", err.Error()))
	}

	WriteError(w, status, message, details)
}

func StatusOf(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, apperr.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperr.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, apperr.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, apperr.ErrInvalid), errors.Is(err, apperr.ErrBadRequest):
		return http.StatusBadRequest
	case errors.Is(err, apperr.ErrConflict):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
