package scenario

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"calculator-bdd/internal/handlers"
	"calculator-bdd/internal/observability"

	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

// DefaultMaxBodyBytes bounds the feature text accepted by Handler.
const DefaultMaxBodyBytes = 1 << 20

// Handler runs feature text posted over HTTP.
type Handler struct {
	registry     *Registry
	maxBodyBytes int64
}

func NewHandler(registry *Registry, maxBodyBytes int64) *Handler {
	if maxBodyBytes <= 0 {
		maxBodyBytes = DefaultMaxBodyBytes
	}
	return &Handler{registry: registry, maxBodyBytes: maxBodyBytes}
}

// Run handles POST /scenarios/run. The body is feature text; the optional
// tags query parameter may repeat and takes the same expressions as the CLI.
func (h *Handler) Run(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := observability.LoggerWithTrace(ctx)
	requestID := observability.RequestIDFromContext(ctx)

	ctx, span := tracer.Start(ctx, "scenario.http.run",
		trace.WithAttributes(
			attribute.String("request.id", requestID),
		),
	)
	defer span.End()

	body, err := io.ReadAll(http.MaxBytesReader(w, r.Body, h.maxBodyBytes))
	if err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			msg := fmt.Sprintf("feature text exceeds %d bytes", tooLarge.Limit)
			observability.RecordError(ctx, span, logger, requestErrors, "run", msg, err)
			handlers.WriteError(w, http.StatusRequestEntityTooLarge, msg)
			return
		}
		observability.RecordError(ctx, span, logger, requestErrors, "run", "invalid request body", err)
		handlers.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	feature, err := Parse(bytes.NewReader(body), "request.feature")
	if err != nil {
		observability.RecordError(ctx, span, logger, requestErrors, "run", "invalid feature", err)
		handlers.WriteError(w, http.StatusBadRequest, err.Error())
		return
	}

	var tags []string
	for _, expr := range r.URL.Query()["tags"] {
		if expr = strings.TrimSpace(expr); expr != "" {
			tags = append(tags, expr)
		}
	}

	report := NewRunner(h.registry, WithTags(tags...)).Run(ctx, feature)

	span.SetAttributes(
		attribute.String("run.id", report.RunID),
		attribute.Int("run.scenarios.failed", report.Summary.Scenarios.Failed),
	)
	span.SetStatus(codes.Ok, "")

	logger.Info("scenario run served",
		zap.String("run_id", report.RunID),
		zap.String("feature", feature.Name),
		zap.Bool("failed", report.Failed()),
		zap.String("request_id", requestID),
	)

	handlers.WriteJSON(w, http.StatusOK, report)
}
