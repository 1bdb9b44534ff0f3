package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

var apiTracer = otel.Tracer("pyramid-ladder/internal/interfaces/httpapi")
var noopSpan = trace.SpanFromContext(context.Background())

// startSpan opens a child span for handler work and tags it with the
// acting player. Without a request span it returns a no-op.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !shouldCreateHTTPAPISpan(name) {
		return ctx, noopSpan
	}
	a, _ := actorFromContext(ctx)
	return apiTracer.Start(ctx, name, trace.WithAttributes(actorAttributes(a)...))
}

func shouldCreateHTTPAPISpan(name string) bool {
	return strings.HasPrefix(name, "httpapi.Handler.")
}

func actorAttributes(a actor) []attribute.KeyValue {
	attrs := make([]attribute.KeyValue, 0, 2)
	if a.PlayerID != "" {
		attrs = append(attrs, attribute.String("ladder.player_id", a.PlayerID))
	}
	if a.Admin {
		attrs = append(attrs, attribute.Bool("ladder.admin", true))
	}
	return attrs
}
