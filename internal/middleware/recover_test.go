package middleware

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"salon-api/internal/transport"
)

func TestRecoverWritesJSONAndKeepsAccessLine(t *testing.T) {
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	boom := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic("boom")
	})
	h := RequestID()(Logger(log)(Recover(log)(boom)))

	rec := serve(h, "")
	if rec.Code != http.StatusInternalServerError {
		t.Fatalf("expected 500, got %d", rec.Code)
	}
	if ct := rec.Header().Get("Content-Type"); !strings.HasPrefix(ct, "application/json") {
		t.Fatalf("expected json content type, got %q", ct)
	}
	var body transport.ErrorResponse
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode body: %v", err)
	}
	if body.Error != "unexpected error" {
		t.Fatalf("unexpected error message %q", body.Error)
	}

	var access map[string]interface{}
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		var entry map[string]interface{}
		if err := json.Unmarshal([]byte(line), &entry); err != nil {
			t.Fatalf("log line is not json: %q", line)
		}
		if entry["msg"] == "request" {
			access = entry
		}
	}
	if access == nil {
		t.Fatalf("no access line logged: %s", buf.String())
	}
	if access["status"] != float64(http.StatusInternalServerError) {
		t.Fatalf("expected access status 500, got %v", access["status"])
	}
	if access["request_id"] == "" || access["request_id"] == nil {
		t.Fatalf("access line missing request id: %v", access)
	}
}

func TestRecoverRepanicsOnAbort(t *testing.T) {
	h := Recover(discard)(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		panic(http.ErrAbortHandler)
	}))
	defer func() {
		if rec := recover(); rec != http.ErrAbortHandler {
			t.Fatalf("expected ErrAbortHandler to propagate, got %v", rec)
		}
	}()
	h.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/", nil))
}
