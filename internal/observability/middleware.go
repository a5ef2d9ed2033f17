package observability

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
	"go.uber.org/zap"
)

// Health-check and scrape endpoints stay out of traces.
var untracedPaths = map[string]struct{}{
	"/metrics": {},
	"/health":  {},
}

func traceable(r *http.Request) bool {
	_, skip := untracedPaths[r.URL.Path]
	return !skip
}

func httpSpanName(_ string, r *http.Request) string {
	return r.Method + " " + r.URL.Path
}

// TracingMiddleware opens a server span per request, continuing any trace the
// caller propagated.
func TracingMiddleware(next http.Handler) http.Handler {
	return otelhttp.NewHandler(next, "http_request",
		otelhttp.WithFilter(traceable),
		otelhttp.WithSpanNameFormatter(httpSpanName),
	)
}

// RequestIDMiddleware stores the request id in the context and echoes it in
// RequestIDHeader.
func RequestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := RequestIDFor(r)
		w.Header().Set(RequestIDHeader, id)
		next.ServeHTTP(w, r.WithContext(ContextWithRequestID(r.Context(), id)))
	})
}

// LoggingMiddleware writes one log line per request after the handler
// returns: error level for 5xx, warn for 4xx, info otherwise.
func LoggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}

		ctx := r.Context()
		fields := []zap.Field{
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", status),
			zap.Int("bytes", ww.BytesWritten()),
			zap.String("request_id", RequestIDFromContext(ctx)),
			zap.Duration("duration", time.Since(start)),
		}
		if rctx := chi.RouteContext(ctx); rctx != nil {
			if pattern := rctx.RoutePattern(); pattern != "" {
				fields = append(fields, zap.String("route", pattern))
			}
		}

		logger := LoggerWithTrace(ctx)
		switch {
		case status >= http.StatusInternalServerError:
			logger.Error("request failed", fields...)
		case status >= http.StatusBadRequest:
			logger.Warn("request rejected", fields...)
		default:
			logger.Info("request completed", fields...)
		}
	})
}
