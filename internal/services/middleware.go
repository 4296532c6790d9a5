package services

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"go.uber.org/zap"

	"bibiartisan/internal/util"
)

type claimsKey struct{}

// ClaimsFromContext returns the token claims stored by RequireToken
func ClaimsFromContext(ctx context.Context) (*util.Claims, bool) {
	claims, ok := ctx.Value(claimsKey{}).(*util.Claims)
	return claims, ok
}

// RequireToken only lets through requests bearing a valid token with scope
func RequireToken(secret, scope string, log *zap.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			// Extract token from Authorization header
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				http.Error(w, "Authorization header required", http.StatusUnauthorized)
				return
			}

			// Check Bearer token format
			parts := strings.Split(authHeader, " ")
			if len(parts) != 2 || parts[0] != "Bearer" {
				http.Error(w, "Invalid authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := util.RequireScope(secret, parts[1], scope)
			if err != nil {
				log.Warn("Rejected token", zap.String("path", r.URL.Path), zap.Error(err))
				if errors.Is(err, util.ErrMissingScope) {
					http.Error(w, "Insufficient permissions", http.StatusForbidden)
					return
				}
				http.Error(w, "Invalid or expired token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey{}, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
