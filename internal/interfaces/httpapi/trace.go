package httpapi

import (
	"context"
	"strings"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/trace"
)

var (
	tracer       = otel.Tracer("courtvision/httpapi")
	untracedSpan = trace.SpanFromContext(context.Background())
)

// tracedGates are the middleware spans kept alongside handler spans; each one
// may block on Supabase or the profile store.
var tracedGates = map[string]struct{}{
	"httpapi.RequireAuth":    {},
	"httpapi.RequirePremium": {},
}

// startSpan opens a child span only under an existing request span, so
// filtered routes such as /healthz never produce orphan roots.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanFromContext(ctx).SpanContext().IsValid() || !spanTraced(name) {
		return ctx, untracedSpan
	}
	return tracer.Start(ctx, name)
}

func spanTraced(name string) bool {
	if _, ok := tracedGates[name]; ok {
		return true
	}
	return strings.HasPrefix(name, "httpapi.Handler.") && name != "httpapi.Handler.validateRequest"
}
