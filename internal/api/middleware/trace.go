package middleware

import (
	"log/slog"
	"net/http"

	"github.com/phrazzld/deckorder-api/internal/api/shared"
	"github.com/phrazzld/deckorder-api/internal/platform/logger"
)

// NewTraceMiddleware returns middleware that stamps each request with a
// trace ID and stores a trace-scoped logger in the request context.
// Handlers that resolve their logger through logger.FromContextOrDefault
// pick up the trace ID on every line without threading it themselves.
// Must run before any handler that logs.
func NewTraceMiddleware(base *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := shared.SetTraceID(r.Context())
			traceID := shared.GetTraceID(ctx)

			log := base.With(slog.String("trace_id", traceID))
			ctx = logger.WithLogger(ctx, log)

			log.Debug("request started",
				slog.String("method", r.Method),
				slog.String("path", r.URL.Path),
				slog.String("remote_addr", r.RemoteAddr))

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
