package http

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/rs/zerolog"
	"github.com/sahabulislamsifat/PlantStore/internal/auth"
	"github.com/sahabulislamsifat/PlantStore/internal/domain"
	"github.com/sahabulislamsifat/PlantStore/internal/service"
)

type contextKey string

const (
	sessionEmailKey contextKey = "session_email"
	sessionUserKey  contextKey = "session_user"
)

// SessionCookieName is the HTTP-only cookie carrying the signed token
const SessionCookieName = "token"

// SessionMiddleware extracts the session email from the token cookie
// when one is present. Public routes pass through untouched; protected
// routes assert the email downstream.
func SessionMiddleware(tokens *auth.TokenMaker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookieName)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			email, err := tokens.VerifyToken(cookie.Value)
			if err != nil {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), sessionEmailKey, email)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireUser asserts an authenticated session and loads the caller's
// account into the request context before any data access.
func RequireUser(users *service.UserService) func(http.Handler) http.Handler {
	return requireRoles(users)
}

// RequireRole asserts an authenticated session whose account holds one
// of the given roles.
func RequireRole(users *service.UserService, roles ...domain.Role) func(http.Handler) http.Handler {
	return requireRoles(users, roles...)
}

func requireRoles(users *service.UserService, roles ...domain.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			email := sessionEmail(r.Context())
			if email == "" {
				respondError(w, http.StatusUnauthorized, "unauthorized", "missing or invalid session token")
				return
			}

			user, err := users.GetUser(r.Context(), email)
			if err != nil {
				if errors.Is(err, service.ErrNotFound) {
					respondError(w, http.StatusUnauthorized, "unauthorized", "unknown account")
					return
				}
				respondServiceError(w, err)
				return
			}

			if len(roles) > 0 && !hasRole(user.Role, roles) {
				respondError(w, http.StatusForbidden, "forbidden", "insufficient role")
				return
			}

			ctx := context.WithValue(r.Context(), sessionUserKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func hasRole(role domain.Role, allowed []domain.Role) bool {
	for _, a := range allowed {
		if role == a {
			return true
		}
	}
	return false
}

func sessionEmail(ctx context.Context) string {
	if email, ok := ctx.Value(sessionEmailKey).(string); ok {
		return email
	}
	return ""
}

func sessionUser(ctx context.Context) *domain.User {
	if user, ok := ctx.Value(sessionUserKey).(*domain.User); ok {
		return user
	}
	return nil
}

// RequestLogger writes one line per request with method, path, status
// and latency.
func RequestLogger(logger zerolog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			logger.Info().
				Str("method", r.Method).
				Str("path", r.URL.Path).
				Int("status", rec.status).
				Dur("latency", time.Since(start)).
				Msg("request")
		})
	}
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}
