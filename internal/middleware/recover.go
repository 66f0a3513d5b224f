package middleware

import (
	"fmt"
	"log/slog"
	"net/http"
	"runtime/debug"

	"salon-api/internal/transport"
)

// Recover turns a panicking handler into a JSON 500. Install it inside
// Logger so the access line still records the failed request.
func Recover(log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			defer func() {
				rec := recover()
				if rec == nil {
					return
				}
				if rec == http.ErrAbortHandler {
					panic(rec)
				}
				reqLog := RequestLogger(log, r)
				reqLog.Error("panic recovered", slog.Any("panic", rec), slog.String("stack", string(debug.Stack())))
				transport.WriteFailure(w, reqLog, fmt.Errorf("panic: %v", rec))
			}()
			next.ServeHTTP(w, r)
		})
	}
}
