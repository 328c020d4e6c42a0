package httpapi

import (
	"context"
	"strings"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
	"go.opentelemetry.io/otel/trace/noop"
)

type principalKey struct{}

func withPrincipal(ctx context.Context, p user.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, p)
}

func principalFromContext(ctx context.Context) (user.Principal, bool) {
	p, ok := ctx.Value(principalKey{}).(user.Principal)
	return p, ok
}

var apiTracer = otel.Tracer("github.com/riskibarqy/tournament-registration/internal/interfaces/httpapi")

const handlerSpanPrefix = "httpapi.Handler."

// startSpan opens a child span for handlers only. Middleware and response
// helpers run inside the request span, and untraced requests (health probes)
// never start a root span here.
func startSpan(ctx context.Context, name string) (context.Context, trace.Span) {
	if !trace.SpanContextFromContext(ctx).IsValid() || !isHandlerSpan(name) {
		return ctx, noop.Span{}
	}
	ctx, span := apiTracer.Start(ctx, name)
	if p, ok := principalFromContext(ctx); ok && p.UserID != "" {
		span.SetAttributes(attribute.String("enduser.id", p.UserID))
	}
	return ctx, span
}

func isHandlerSpan(name string) bool {
	return strings.HasPrefix(name, handlerSpanPrefix)
}
