package httpapi

import (
	"context"
	"testing"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"go.opentelemetry.io/otel/trace"
)

func TestIsHandlerSpan(t *testing.T) {
	tests := []struct {
		in   string
		want bool
	}{
		{in: "httpapi.Handler.RegisterTeam", want: true},
		{in: "httpapi.Handler.StreamTeams", want: true},
		{in: "httpapi.RequestLogging", want: false},
		{in: "httpapi.writeError", want: false},
	}
	for _, tt := range tests {
		if got := isHandlerSpan(tt.in); got != tt.want {
			t.Fatalf("isHandlerSpan(%q)=%v want=%v", tt.in, got, tt.want)
		}
	}
}

func TestStartSpanWithoutParentIsNoop(t *testing.T) {
	ctx := context.Background()
	got, span := startSpan(ctx, "httpapi.Handler.Healthz")
	if got != ctx {
		t.Fatalf("expected context unchanged")
	}
	if span.SpanContext().IsValid() {
		t.Fatalf("expected no recording span without a parent")
	}
	span.End()
}

func TestPrincipalRoundTrip(t *testing.T) {
	if _, ok := principalFromContext(context.Background()); ok {
		t.Fatalf("expected no principal")
	}
	ctx := withPrincipal(context.Background(), user.Principal{UserID: "u-1", Provider: user.ProviderGoogle})
	p, ok := principalFromContext(ctx)
	if !ok || p.UserID != "u-1" {
		t.Fatalf("unexpected principal %+v", p)
	}
	if trace.SpanContextFromContext(ctx).IsValid() {
		t.Fatalf("principal must not create a span context")
	}
}
