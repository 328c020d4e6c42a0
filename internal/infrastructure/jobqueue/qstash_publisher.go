package jobqueue

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/resilience"
	"github.com/valyala/bytebufferpool"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"
)

// ReconcileJobPath is the internal route QStash calls back.
const ReconcileJobPath = "/v1/internal/jobs/reconcile"

var errTransient = crerr.New("qstash transient failure")

func isTransient(err error) bool { return errors.Is(err, errTransient) }

type Config struct {
	BaseURL          string
	Token            string
	TargetBaseURL    string
	Retries          int
	InternalJobToken string
	Timeout          time.Duration
	// Delay postpones the reconcile run and doubles as the dedup window: all
	// requests inside one window collapse into a single job.
	Delay          time.Duration
	CircuitBreaker resilience.CircuitBreakerConfig
}

// Publisher schedules deferred reconcile sweeps through QStash, which calls
// the internal job route with the forwarded job token.
type Publisher struct {
	client           *http.Client
	baseURL          string
	token            string
	targetBaseURL    string
	retries          int
	internalJobToken string
	delay            time.Duration
	breaker          *resilience.CircuitBreaker
	clock            clockwork.Clock
	logger           *logging.Logger
}

func NewPublisher(client *http.Client, cfg Config, logger *logging.Logger) (*Publisher, error) {
	baseURL, err := validateHTTPBaseURL(cfg.BaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_BASE_URL")
	}
	targetBaseURL, err := validateHTTPBaseURL(cfg.TargetBaseURL)
	if err != nil {
		return nil, crerr.Wrap(err, "invalid QSTASH_TARGET_BASE_URL")
	}
	if client == nil {
		client = &http.Client{}
	}
	if cfg.Timeout > 0 {
		withTimeout := *client
		withTimeout.Timeout = cfg.Timeout
		client = &withTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}
	delay := cfg.Delay
	if delay <= 0 {
		delay = time.Minute
	}
	breakerCfg := cfg.CircuitBreaker
	breakerCfg.OnStateChange = func(from, to resilience.CircuitState) {
		logger.Warn("qstash circuit breaker state changed", "from", from, "to", to)
	}

	return &Publisher{
		client:           client,
		baseURL:          baseURL,
		token:            strings.TrimSpace(cfg.Token),
		targetBaseURL:    targetBaseURL,
		retries:          cfg.Retries,
		internalJobToken: strings.TrimSpace(cfg.InternalJobToken),
		delay:            delay,
		breaker:          resilience.NewCircuitBreaker(breakerCfg, clockwork.NewRealClock()),
		clock:            clockwork.NewRealClock(),
		logger:           logger,
	}, nil
}

type reconcilePayload struct {
	Reason      string `json:"reason"`
	RequestedAt string `json:"requested_at"`
}

// ScheduleReconcile enqueues a reconcile sweep after the configured delay.
func (p *Publisher) ScheduleReconcile(ctx context.Context, reason string) error {
	now := p.clock.Now().UTC()
	window := now.Truncate(p.delay).Unix()
	dedupID := "reconcile-" + strconv.FormatInt(window, 10)

	return p.enqueue(ctx, ReconcileJobPath, reconcilePayload{
		Reason:      strings.TrimSpace(reason),
		RequestedAt: now.Format(time.RFC3339),
	}, dedupID)
}

func (p *Publisher) enqueue(ctx context.Context, path string, payload any, dedupID string) error {
	_, err := resilience.Run(p.breaker, isTransient, func() (struct{}, error) {
		return struct{}{}, p.publish(ctx, path, payload, dedupID)
	})
	if errors.Is(err, resilience.ErrCircuitOpen) {
		return fmt.Errorf("qstash is temporarily unavailable: %w", err)
	}
	return err
}

func (p *Publisher) publish(ctx context.Context, path string, payload any, dedupID string) error {
	targetURL := p.targetBaseURL + path
	publishURL := p.baseURL + "/v2/publish/" + targetURL

	body, err := sonic.Marshal(payload)
	if err != nil {
		return crerr.Wrap(err, "marshal job payload")
	}

	if span := trace.SpanFromContext(ctx); span.IsRecording() {
		span.SetAttributes(
			attribute.String("qstash.target_url", targetURL),
			attribute.String("qstash.deduplication_id", dedupID),
			attribute.String("qstash.request_preview", p.preview(publishURL, dedupID)),
		)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, publishURL, strings.NewReader(string(body)))
	if err != nil {
		return crerr.Wrap(err, "create qstash request")
	}
	req.Header.Set("Authorization", "Bearer "+p.token)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Upstash-Method", http.MethodPost)
	req.Header.Set("Upstash-Delay", formatDelay(p.delay))
	req.Header.Set("Upstash-Deduplication-Id", dedupID)
	if p.retries > 0 {
		req.Header.Set("Upstash-Retries", strconv.Itoa(p.retries))
	}
	if p.internalJobToken != "" {
		req.Header.Set("Upstash-Forward-X-Internal-Job-Token", p.internalJobToken)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("%w: publish to %s: %v", errTransient, targetURL, err)
	}
	defer func() {
		_ = resp.Body.Close()
	}()

	if resp.StatusCode/100 != 2 {
		raw, _ := io.ReadAll(io.LimitReader(resp.Body, 4096))
		msg := fmt.Sprintf("publish to %s status=%d body=%s", targetURL, resp.StatusCode, strings.TrimSpace(string(raw)))
		if retryableStatus(resp.StatusCode) {
			return fmt.Errorf("%w: %s", errTransient, msg)
		}
		return crerr.New(msg)
	}

	p.logger.InfoContext(ctx, "reconcile job scheduled", "delay", formatDelay(p.delay), "deduplication_id", dedupID)
	return nil
}

// preview renders the request as a curl command with secrets masked.
func (p *Publisher) preview(publishURL, dedupID string) string {
	buf := bytebufferpool.Get()
	defer bytebufferpool.Put(buf)

	_, _ = buf.WriteString("curl -X POST " + shellQuote(publishURL))
	for _, header := range []string{
		"Authorization: Bearer ***",
		"Upstash-Delay: " + formatDelay(p.delay),
		"Upstash-Deduplication-Id: " + dedupID,
	} {
		_, _ = buf.WriteString(" -H " + shellQuote(header))
	}
	if p.internalJobToken != "" {
		_, _ = buf.WriteString(" -H " + shellQuote("Upstash-Forward-X-Internal-Job-Token: ***"))
	}
	return buf.String()
}

func formatDelay(delay time.Duration) string {
	seconds := int(delay.Round(time.Second).Seconds())
	if seconds < 0 {
		seconds = 0
	}
	return strconv.Itoa(seconds) + "s"
}

func validateHTTPBaseURL(raw string) (string, error) {
	candidate := strings.TrimSpace(raw)
	if candidate == "" {
		return "", crerr.New("value is empty")
	}
	parsed, err := url.Parse(candidate)
	if err != nil {
		return "", crerr.Wrapf(err, "parse %q", candidate)
	}
	if parsed.Scheme != "http" && parsed.Scheme != "https" {
		return "", crerr.Newf("%q uses unsupported scheme %q", candidate, parsed.Scheme)
	}
	if strings.TrimSpace(parsed.Host) == "" {
		return "", crerr.Newf("%q has empty host", candidate)
	}
	return strings.TrimRight(candidate, "/"), nil
}

func shellQuote(value string) string {
	return "'" + strings.ReplaceAll(value, "'", `'"'"'`) + "'"
}

func retryableStatus(code int) bool {
	return code == http.StatusRequestTimeout ||
		code == http.StatusTooManyRequests ||
		code >= http.StatusInternalServerError
}
