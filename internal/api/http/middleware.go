package http

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	"rentnest-backend/internal/config"
	"rentnest-backend/internal/domain"
	"rentnest-backend/internal/logger"
	"rentnest-backend/internal/security"

	"github.com/gorilla/mux"
)

type contextKey string

const identityKey contextKey = "identity"

// IdentityFromContext returns the authenticated caller, or nil on public
// routes reached without a token.
func IdentityFromContext(ctx context.Context) *domain.Identity {
	id, _ := ctx.Value(identityKey).(*domain.Identity)
	return id
}

func withIdentity(ctx context.Context, id *domain.Identity) context.Context {
	return context.WithValue(ctx, identityKey, id)
}

func routeName(r *http.Request) string {
	if route := mux.CurrentRoute(r); route != nil {
		return route.GetName()
	}
	return ""
}

// authenticate enforces the security level configured for the matched route.
// A token presented on a public route is still resolved when it is valid.
func (s *Server) authenticate(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		level := config.GetSecurityLevel(routeName(r))
		token := extractToken(r, level)

		if level == config.SecurityPublic {
			if token != "" {
				if claims, err := s.tokens.ValidateToken(token); err == nil {
					r = r.WithContext(withIdentity(r.Context(), claims.Identity()))
				}
			}
			next.ServeHTTP(w, r)
			return
		}

		if token == "" {
			s.writeError(w, domain.ErrUnauthorized)
			return
		}
		claims, err := s.tokens.ValidateToken(token)
		if err != nil {
			if errors.Is(err, security.ErrWrongTokenType) {
				s.writeError(w, domain.ErrForbidden)
				return
			}
			s.writeError(w, unauthorized(err.Error()))
			return
		}
		if err := checkSecurityLevel(level, claims); err != nil {
			s.writeError(w, err)
			return
		}

		next.ServeHTTP(w, r.WithContext(withIdentity(r.Context(), claims.Identity())))
	})
}

func checkSecurityLevel(level config.SecurityLevel, claims *security.UserClaims) error {
	switch level {
	case config.SecuritySession:
		if claims.Type == security.TokenTypeAdmin {
			return forbidden("user session required")
		}
	case config.SecurityAdmin:
		if claims.Type != security.TokenTypeAdmin {
			return forbidden("admin access required")
		}
	case config.SecurityOwner:
		if claims.Role != domain.UserRoleOwner {
			return forbidden("owner account required")
		}
	}
	return nil
}

// extractToken prefers the Authorization header, then the cookie that
// matches the route's audience.
func extractToken(r *http.Request, level config.SecurityLevel) string {
	if h := r.Header.Get("Authorization"); len(h) > 7 && strings.EqualFold(h[:7], "bearer ") {
		return strings.TrimSpace(h[7:])
	}
	name := sessionCookie
	if level == config.SecurityAdmin {
		name = adminCookie
	}
	if c, err := r.Cookie(name); err == nil {
		return c.Value
	}
	if level == config.SecuritySessionOrAdmin {
		if c, err := r.Cookie(adminCookie); err == nil {
			return c.Value
		}
	}
	return ""
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		logger.HTTPRequest(r.Method, r.URL.Path, routeName(r), rec.status, time.Since(start))
	})
}

func (s *Server) recoverPanics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if v := recover(); v != nil {
				logger.Error("Panic while handling request", "path", r.URL.Path, "panic", v)
				writeJSON(w, http.StatusInternalServerError, errorResponse{Error: "internal server error"})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
