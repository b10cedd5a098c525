package http

import (
	"context"
	"net/http"
	"strings"

	"greenloop-backend/internal/security"
)

type contextKey string

const claimsKey contextKey = "claims"

func (h *Handler) authMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		header := r.Header.Get("Authorization")
		if !strings.HasPrefix(header, "Bearer ") {
			writeError(w, http.StatusUnauthorized, "missing bearer token")
			return
		}

		claims, err := h.tokens.Validate(strings.TrimPrefix(header, "Bearer "))
		if err != nil {
			writeError(w, http.StatusUnauthorized, "invalid or expired token")
			return
		}

		ctx := context.WithValue(r.Context(), claimsKey, claims)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func claimsFrom(r *http.Request) *security.PrincipalClaims {
	claims, _ := r.Context().Value(claimsKey).(*security.PrincipalClaims)
	return claims
}

// requireCustomer returns the authenticated customer id, or 0 after
// writing a 403 when the principal is not a customer.
func requireCustomer(w http.ResponseWriter, r *http.Request) int64 {
	claims := claimsFrom(r)
	if claims == nil || claims.PrincipalType != security.PrincipalCustomer {
		writeError(w, http.StatusForbidden, "customer account required")
		return 0
	}
	return claims.PrincipalID
}

// requireBusiness returns the authenticated business id, or 0 after
// writing a 403 when the principal is not a business.
func requireBusiness(w http.ResponseWriter, r *http.Request) int64 {
	claims := claimsFrom(r)
	if claims == nil || claims.PrincipalType != security.PrincipalBusiness {
		writeError(w, http.StatusForbidden, "business account required")
		return 0
	}
	return claims.PrincipalID
}
