package transport

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"salon-api/internal/apperr"
)

func TestStatusOf(t *testing.T) {
	cases := []struct {
		err  error
		want int
	}{
		{apperr.NotFound("service not found"), http.StatusNotFound},
		{apperr.Unauthorized(errors.New("bad token")), http.StatusUnauthorized},
		{apperr.Forbidden(), http.StatusForbidden},
		{apperr.Invalid(map[string]string{"email": "required"}, nil), http.StatusBadRequest},
		{apperr.BadRequest("invalid json", nil), http.StatusBadRequest},
		{apperr.Conflict("email already exists", nil), http.StatusConflict},
		{fmt.Errorf("load: %w", apperr.NotFound("x")), http.StatusNotFound},
		{errors.New("connection reset"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		if got := StatusOf(tc.err); got != tc.want {
			t.Fatalf("StatusOf(%v) = %d, want %d", tc.err, got, tc.want)
		}
	}
}

func TestUnauthorizedKeepsCause(t *testing.T) {
	cause := errors.New("token is expired")
	if err := apperr.Unauthorized(cause); !errors.Is(err, cause) {
		t.Fatalf("expected cause to be preserved")
	}
}

func TestWriteFailureHidesUnexpectedErrors(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteFailure(rec, slog.New(slog.NewTextHandler(io.Discard, nil)), errors.New("secret connection string"))

	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if body.Error != "unexpected error" {
		t.Fatalf("unexpected message %q", body.Error)
	}
}

func TestWriteFailureIncludesDetails(t *testing.T) {
	rec := httptest.NewRecorder()
	WriteFailure(rec, slog.New(slog.NewTextHandler(io.Discard, nil)), apperr.Invalid(map[string]string{"time": "appointmentwindow"}, nil))

	var body ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if rec.Code != http.StatusBadRequest || body.Error != "validation error" || body.Details["time"] != "appointmentwindow" {
		t.Fatalf("unexpected response %d %+v", rec.Code, body)
	}
}
