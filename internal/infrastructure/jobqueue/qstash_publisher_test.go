package jobqueue

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/resilience"
)

func TestPublisher_ScheduleReconcile(t *testing.T) {
	t.Parallel()

	var gotPath, gotDelay, gotDedup, gotForward, gotAuth string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotDelay = r.Header.Get("Upstash-Delay")
		gotDedup = r.Header.Get("Upstash-Deduplication-Id")
		gotForward = r.Header.Get("Upstash-Forward-X-Internal-Job-Token")
		gotAuth = r.Header.Get("Authorization")
		w.WriteHeader(http.StatusCreated)
	}))
	defer srv.Close()

	p, err := NewPublisher(srv.Client(), Config{
		BaseURL:          srv.URL,
		Token:            "qstash-token",
		TargetBaseURL:    "https://api.example.com/",
		InternalJobToken: "job-token",
		Delay:            2 * time.Minute,
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	if err := p.ScheduleReconcile(t.Context(), "partial attach"); err != nil {
		t.Fatalf("schedule reconcile: %v", err)
	}

	if want := "/v2/publish/https://api.example.com" + ReconcileJobPath; gotPath != want {
		t.Fatalf("unexpected publish path %q want %q", gotPath, want)
	}
	if gotDelay != "120s" {
		t.Fatalf("unexpected delay header %q", gotDelay)
	}
	if !strings.HasPrefix(gotDedup, "reconcile-") {
		t.Fatalf("unexpected dedup id %q", gotDedup)
	}
	if gotForward != "job-token" {
		t.Fatalf("expected forwarded job token, got %q", gotForward)
	}
	if gotAuth != "Bearer qstash-token" {
		t.Fatalf("unexpected authorization %q", gotAuth)
	}
}

func TestPublisher_OpensCircuitOnServerErrors(t *testing.T) {
	t.Parallel()

	var calls atomic.Int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		calls.Add(1)
		w.WriteHeader(http.StatusBadGateway)
	}))
	defer srv.Close()

	p, err := NewPublisher(srv.Client(), Config{
		BaseURL:       srv.URL,
		TargetBaseURL: "https://api.example.com",
		CircuitBreaker: resilience.CircuitBreakerConfig{
			Enabled:          true,
			FailureThreshold: 2,
			OpenTimeout:      time.Hour,
			HalfOpenMaxReq:   1,
		},
	}, logging.NewNop())
	if err != nil {
		t.Fatalf("new publisher: %v", err)
	}

	for i := 0; i < 3; i++ {
		if err := p.ScheduleReconcile(t.Context(), "retry"); err == nil {
			t.Fatalf("call %d: expected error", i)
		}
	}
	if got := calls.Load(); got != 2 {
		t.Fatalf("expected breaker to stop the third call, got %d upstream calls", got)
	}
}

func TestNewPublisher_RejectsBadURLs(t *testing.T) {
	t.Parallel()

	if _, err := NewPublisher(nil, Config{BaseURL: "ftp://qstash", TargetBaseURL: "https://api"}, nil); err == nil {
		t.Fatalf("expected error for non-http base url")
	}
	if _, err := NewPublisher(nil, Config{BaseURL: "https://qstash", TargetBaseURL: ""}, nil); err == nil {
		t.Fatalf("expected error for empty target url")
	}
}
