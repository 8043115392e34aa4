package middleware

import (
	"context"
	"net/http"
	"strings"

	"pubg-tournament-tracker/models"
	"pubg-tournament-tracker/services"
)

type contextKey string

const claimsContextKey contextKey = "authClaims"

// ClaimsFromContext returns the verified claims placed by Authenticate, or
// nil for an unauthenticated request.
func ClaimsFromContext(ctx context.Context) *services.Claims {
	claims, _ := ctx.Value(claimsContextKey).(*services.Claims)
	return claims
}

// Authenticate verifies the Bearer token and stores its claims in the request
// context. Requests without a valid token are rejected.
func Authenticate(authService services.AuthService) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				unauthorized(w)
				return
			}

			claims, err := authService.ParseToken(token)
			if err != nil {
				unauthorized(w)
				return
			}

			ctx := context.WithValue(r.Context(), claimsContextKey, claims)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// RequireRole allows only callers holding one of the given roles. Must run
// after Authenticate.
func RequireRole(roles ...models.AccessRole) func(http.Handler) http.Handler {
	allowed := make(map[models.AccessRole]bool, len(roles))
	for _, role := range roles {
		allowed[role] = true
	}
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims := ClaimsFromContext(r.Context())
			if claims == nil {
				unauthorized(w)
				return
			}
			if !allowed[claims.Role] {
				forbidden(w)
				return
			}
			next.ServeHTTP(w, r)
		})
	}
}

func unauthorized(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusUnauthorized)
	_, _ = w.Write([]byte(`{"error":"authentication required"}`))
}

func forbidden(w http.ResponseWriter) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusForbidden)
	_, _ = w.Write([]byte(`{"error":"insufficient permissions"}`))
}
