package middlewares

import (
	"context"
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
)

// contextKey is an unexported type for context keys in this package, so
// keys cannot collide with other packages using the same string value.
type contextKey string

// ContextKeyRequestID is the context key under which the chi request ID is
// re-exposed to handlers and log calls.
const ContextKeyRequestID contextKey = "x-request-id"

// AttachRequestMetadata copies the chi-generated request ID into a typed
// context key so downstream code can log it without importing chi.
func AttachRequestMetadata(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := middleware.GetReqID(r.Context())
		ctx := context.WithValue(r.Context(), ContextKeyRequestID, requestID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
