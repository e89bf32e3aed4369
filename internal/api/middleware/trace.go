// Package middleware provides the HTTP middleware chain of the booking
// API: request tracing, JWT authentication, and rate limiting.
package middleware

import (
	"log/slog"
	"net/http"

	"github.com/salonworks/booking-api/internal/api/shared"
)

// TraceMiddleware adds a trace ID to the request context. Applied early
// in the chain so every subsequent handler can correlate its logs.
func TraceMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ctx := shared.SetTraceID(r.Context())
		traceID := shared.GetTraceID(ctx)

		slog.Debug("request started",
			slog.String("trace_id", traceID),
			slog.String("method", r.Method),
			slog.String("path", r.URL.Path),
			slog.String("remote_addr", r.RemoteAddr))

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}
