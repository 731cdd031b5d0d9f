package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/velora/storefront/internal/auth"
	"github.com/velora/storefront/pkg/httputil"
	"github.com/velora/storefront/pkg/logger"
)

// contextKey is an unexported type for context keys to prevent collisions.
type contextKey string

const claimsKey contextKey = "claims"

// Authenticate validates the Authorization bearer token and stores its claims
// in the request context. Requests without a valid token are rejected.
func Authenticate(tokens *auth.TokenManager) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			header := r.Header.Get("Authorization")
			token, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || token == "" {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "authentication required"},
				})
				return
			}

			claims, err := tokens.Validate(token)
			if err != nil {
				httputil.WriteJSON(w, http.StatusUnauthorized, httputil.Response{
					Error: &httputil.ErrorResponse{Code: "UNAUTHORIZED", Message: "invalid or expired token"},
				})
				return
			}

			ctx := context.WithValue(r.Context(), claimsKey, claims)
			ctx = logger.WithUserID(ctx, claims.UserID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// claimsFromContext extracts the authenticated claims from the request context.
func claimsFromContext(ctx context.Context) (*auth.Claims, bool) {
	claims, ok := ctx.Value(claimsKey).(*auth.Claims)
	return claims, ok && claims.UserID != ""
}

// userIDFromContext extracts the authenticated user ID from the request context.
func userIDFromContext(ctx context.Context) (string, bool) {
	claims, ok := claimsFromContext(ctx)
	if !ok {
		return "", false
	}
	return claims.UserID, true
}

// ContentTypeJSON enforces that requests with a body have Content-Type: application/json.
func ContentTypeJSON(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.ContentLength > 0 || r.Method == http.MethodPost || r.Method == http.MethodPut || r.Method == http.MethodPatch {
			ct := r.Header.Get("Content-Type")
			if ct != "" && !strings.HasPrefix(ct, "application/json") {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnsupportedMediaType)
				_, _ = w.Write([]byte(`{"error":{"code":"UNSUPPORTED_MEDIA_TYPE","message":"Content-Type must be application/json"}}`))
				return
			}
		}
		next.ServeHTTP(w, r)
	})
}
