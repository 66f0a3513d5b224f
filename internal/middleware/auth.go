package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"salon-api/internal/apperr"
	"salon-api/internal/auth"
	"salon-api/internal/transport"
)

var (
	errMissingAuthorization = errors.New("missing authorization header")
	errInvalidScheme        = errors.New("invalid authentication scheme")
)

// Authenticate verifies the bearer token and stores the caller in the
// request context.
func Authenticate(manager *auth.Manager, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := bearerClaims(manager, r.Header.Get("Authorization"))
			if err != nil {
				transport.WriteFailure(w, RequestLogger(log, r), apperr.Unauthorized(err))
				return
			}
			ctx := auth.WithUser(r.Context(), claims.User())
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func bearerClaims(manager *auth.Manager, header string) (*auth.Claims, error) {
	if header == "" {
		return nil, errMissingAuthorization
	}
	scheme, token, _ := strings.Cut(header, " ")
	if scheme != "Bearer" {
		return nil, errInvalidScheme
	}
	if manager == nil {
		return nil, errors.New("token verification not configured")
	}
	return manager.Parse(strings.TrimSpace(token))
}

// RequirePermission must run after Authenticate. A request without a user
// is treated as holding no permissions.
func RequirePermission(required auth.Permission, log *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user, _ := auth.UserFromContext(r.Context())
			if !user.PermissionLevel.Has(required) {
				RequestLogger(log, r).Debug("permission denied",
					slog.String("user", user.Username),
					slog.String("required", required.String()),
					slog.String("granted", user.PermissionLevel.String()),
				)
				transport.WriteFailure(w, RequestLogger(log, r), apperr.Forbidden())
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}
