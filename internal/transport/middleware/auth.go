package middleware

import (
	"context"
	"errors"
	"log/slog"
	"net/http"

	"github.com/pradikta/taskhub/internal/directory"
	"github.com/pradikta/taskhub/internal/sso"
	"github.com/pradikta/taskhub/internal/transport"
	"github.com/pradikta/taskhub/internal/user"
)

// Authenticator runs the SSO pipeline for a bearer token.
type Authenticator interface {
	Authenticate(ctx context.Context, token string) (*user.User, error)
}

// AuthMiddleware is the single place pipeline failures become HTTP responses.
// Response bodies stay generic; the internal failure kind is only logged.
type AuthMiddleware struct {
	*transport.BaseHandler
	auth Authenticator
}

func NewAuthMiddleware(baseHandler *transport.BaseHandler, auth Authenticator) *AuthMiddleware {
	return &AuthMiddleware{
		BaseHandler: baseHandler,
		auth:        auth,
	}
}

// RequireAuth rejects requests without a valid, active, provisioned user.
func (m *AuthMiddleware) RequireAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.ExtractTokenFromHeader(r)
		if token == "" {
			m.WriteError(w, http.StatusUnauthorized, "missing authorization token")
			return
		}

		u, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			status := statusForAuthError(err)
			m.Logger.Warn("authentication failed",
				"kind", err.Error(),
				"path", r.URL.Path,
				"status", status)
			if status == http.StatusInternalServerError {
				m.WriteError(w, status, "internal server error")
			} else {
				m.WriteError(w, status, "authentication failed")
			}
			return
		}

		next.ServeHTTP(w, r.WithContext(user.NewContext(r.Context(), u)))
	})
}

// OptionalAuth attaches a user when a valid token is presented but never
// blocks the request. Pipeline failures are a deliberate ignored branch here,
// not an error path.
func (m *AuthMiddleware) OptionalAuth(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := m.ExtractTokenFromHeader(r)
		if token == "" {
			next.ServeHTTP(w, r)
			return
		}

		u, err := m.auth.Authenticate(r.Context(), token)
		if err != nil {
			m.Logger.Debug("optional auth: continuing unauthenticated",
				"kind", err.Error(), "path", r.URL.Path)
			next.ServeHTTP(w, r)
			return
		}

		next.ServeHTTP(w, r.WithContext(user.NewContext(r.Context(), u)))
	})
}

// RequireAdmin guards elevated routes; it assumes RequireAuth already ran.
func RequireAdmin(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			u, ok := user.FromContext(r.Context())
			if !ok || u == nil {
				http.Error(w, "Unauthorized", http.StatusUnauthorized)
				return
			}
			if !u.IsAdmin() {
				logger.Warn("access denied: admin role required",
					"user_id", u.ID, "path", r.URL.Path)
				http.Error(w, "Forbidden: insufficient permissions", http.StatusForbidden)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// statusForAuthError maps the closed set of pipeline failure kinds to HTTP
// statuses. Anything outside the set is an unexpected pipeline failure.
func statusForAuthError(err error) int {
	switch {
	case errors.Is(err, sso.ErrMalformedToken),
		errors.Is(err, sso.ErrInvalidSignature),
		errors.Is(err, sso.ErrTokenExpired),
		errors.Is(err, sso.ErrEmailResolve),
		errors.Is(err, sso.ErrEmployeeNotFound),
		errors.Is(err, sso.ErrUserInactive),
		errors.Is(err, user.ErrNotFound):
		return http.StatusUnauthorized
	case errors.Is(err, directory.ErrUnavailable):
		// only reachable when a brand-new provisioning could not complete
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}
