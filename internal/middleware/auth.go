package middleware

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"

	"github.com/timeless-elegance/storefront-gateway/internal/model"
)

type ctxKey string

const (
	ctxCorrelationID ctxKey = "correlation_id"
	ctxBearerToken   ctxKey = "bearer_token"
)

// RequireBearerForMeRoutes enforces an Authorization bearer credential on all
// /me/* routes and stores the raw token in context. The gateway never mints or
// validates sessions itself; an expired token surfaces as a backend 401.
func RequireBearerForMeRoutes(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		path := r.URL.Path
		if path == "/me" || strings.HasPrefix(path, "/me/") {
			token := bearerToken(r)
			if token == "" {
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusUnauthorized)
				_ = json.NewEncoder(w).Encode(model.ErrorResponse{
					Error:         "missing bearer credential",
					CorrelationID: GetCorrelationID(r.Context()),
				})
				return
			}
			ctx := context.WithValue(r.Context(), ctxBearerToken, token)
			next.ServeHTTP(w, r.WithContext(ctx))
			return
		}

		next.ServeHTTP(w, r)
	})
}

func bearerToken(r *http.Request) string {
	h := strings.TrimSpace(r.Header.Get("Authorization"))
	if h == "" {
		return ""
	}
	const prefix = "Bearer "
	if len(h) > len(prefix) && strings.EqualFold(h[:len(prefix)], prefix) {
		return strings.TrimSpace(h[len(prefix):])
	}
	return ""
}

func GetBearerToken(ctx context.Context) string {
	if v := ctx.Value(ctxBearerToken); v != nil {
		if s, ok := v.(string); ok {
			return s
		}
	}
	return ""
}
