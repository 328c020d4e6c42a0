package logging

import (
	"bytes"
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/bytedance/sonic"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap/zapcore"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		var entry map[string]any
		if err := sonic.UnmarshalString(line, &entry); err != nil {
			t.Fatalf("decode log line %q: %v", line, err)
		}
		out = append(out, entry)
	}
	return out
}

func TestNewJSON_WritesServiceTraceAndErrorFields(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(LevelInfo, WithService("registration-api"), WithOutput(zapcore.AddSync(&buf)))

	sc := trace.NewSpanContext(trace.SpanContextConfig{
		TraceID:    trace.TraceID{1, 2, 3},
		SpanID:     trace.SpanID{4, 5, 6},
		TraceFlags: trace.FlagsSampled,
	})
	ctx := trace.ContextWithSpanContext(context.Background(), sc)

	logger.With("component", "linkage").WarnContext(ctx, "attach left partial linkage", "team_id", "t-1", "error", errors.New("write rejected"))
	logger.Debug("filtered out")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	entry := entries[0]
	if entry["service"] != "registration-api" || entry["component"] != "linkage" || entry["team_id"] != "t-1" {
		t.Fatalf("missing fields: %+v", entry)
	}
	if entry["error"] != "write rejected" || entry["level"] != "warn" {
		t.Fatalf("unexpected error or level: %+v", entry)
	}
	if entry["trace_id"] != sc.TraceID().String() || entry["span_id"] != sc.SpanID().String() {
		t.Fatalf("missing trace ids: %+v", entry)
	}
}

func TestFieldsHandlesOddArgs(t *testing.T) {
	var buf bytes.Buffer
	logger := NewJSON(LevelDebug, WithOutput(zapcore.AddSync(&buf)))

	logger.Info("odd", 42, "value", "dangling")

	entries := decodeLines(t, &buf)
	if len(entries) != 1 {
		t.Fatalf("expected one entry, got %d", len(entries))
	}
	if entries[0]["arg"] != "value" {
		t.Fatalf("expected non-string key logged as arg, got %+v", entries[0])
	}
	if v, ok := entries[0]["dangling"]; !ok || v != nil {
		t.Fatalf("expected dangling key with null value, got %+v", entries[0])
	}
}

func TestParseLevel(t *testing.T) {
	cases := map[string]Level{"debug": LevelDebug, " WARNING ": LevelWarn, "error": LevelError, "": LevelInfo, "loud": LevelInfo}
	for raw, want := range cases {
		if got := ParseLevel(raw); got != want {
			t.Fatalf("ParseLevel(%q) = %v, want %v", raw, got, want)
		}
	}
}

func TestNilLoggerFallsBackToDefault(t *testing.T) {
	var l *Logger
	l.Info("no panic")
	if err := l.Sync(); err != nil {
		t.Fatalf("sync nil logger: %v", err)
	}
}
