package http

import (
	"net/http"
	"strings"

	"suitrental-backend/internal/domain"
	"suitrental-backend/internal/security"
)

// AuthMiddleware validates the bearer token and attaches the operator claims
// to the request context. The engine trusts these claims; credentials are not
// re-verified downstream.
func AuthMiddleware(tokens security.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			if !strings.HasPrefix(header, "Bearer ") {
				writeJSON(w, http.StatusUnauthorized, errorBody{Message: "missing bearer token"})
				return
			}
			claims, err := tokens.Validate(strings.TrimPrefix(header, "Bearer "))
			if err != nil {
				writeJSON(w, http.StatusUnauthorized, errorBody{Message: "invalid or expired token"})
				return
			}
			next.ServeHTTP(w, r.WithContext(withOperator(r.Context(), claims)))
		})
	}
}

// requireAdmin guards admin-only handlers.
func requireAdmin(w http.ResponseWriter, r *http.Request) bool {
	claims := operatorFromContext(r.Context())
	if claims == nil || claims.Role != string(domain.UserRoleAdmin) {
		writeJSON(w, http.StatusForbidden, errorBody{Message: "admin only"})
		return false
	}
	return true
}
