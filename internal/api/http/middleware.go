package http

import (
	"context"
	"net/http"
	"strings"
	"time"

	"carrental-backend/internal/domain"
	"carrental-backend/internal/logger"
	"carrental-backend/internal/security"
)

type contextKey string

const claimsContextKey contextKey = "user_claims"

// claimsFrom returns the authenticated user's claims. Only valid behind the
// authenticate middleware.
func claimsFrom(ctx context.Context) *security.UserClaims {
	claims, _ := ctx.Value(claimsContextKey).(*security.UserClaims)
	return claims
}

// authenticate validates the bearer token and stashes the claims in the
// request context.
func authenticate(tokenMgr security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if header == "" {
				writeError(w, domain.NewUnauthorizedError("missing authorization header"))
				return
			}
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				writeError(w, domain.NewUnauthorizedError("authorization header must be a bearer token"))
				return
			}

			claims, err := tokenMgr.ValidateToken(parts[1])
			if err != nil {
				writeError(w, domain.NewUnauthorizedError("invalid or expired token"))
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// requireRoles rejects authenticated users whose role is not in the allow
// list. 403, not 401: the caller is known, just not permitted.
func requireRoles(roles ...domain.UserRole) func(http.Handler) http.Handler {
	allowed := make(map[domain.UserRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := claimsFrom(r.Context())
			if claims == nil {
				writeError(w, domain.NewUnauthorizedError("authentication required"))
				return
			}
			if !allowed[claims.Role] {
				writeJSON(w, http.StatusForbidden, envelope{Success: false, Message: "insufficient permissions"})
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

// requestLogger logs every request with its duration.
func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		next.ServeHTTP(w, r)
		logger.Debug("request handled", "method", r.Method, "path", r.URL.Path, "duration", time.Since(start))
	})
}
