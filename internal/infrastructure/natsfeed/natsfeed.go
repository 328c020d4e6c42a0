package natsfeed

import (
	"context"
	"strings"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/nats-io/nats.go"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

const DefaultSubjectPrefix = "registration.changes"

type Config struct {
	URL           string
	SubjectPrefix string
	MaxReconnects int
	ReconnectWait time.Duration
}

func Connect(cfg Config, logger *logging.Logger) (*nats.Conn, error) {
	if logger == nil {
		logger = logging.Default()
	}
	url := strings.TrimSpace(cfg.URL)
	if url == "" {
		url = nats.DefaultURL
	}
	reconnectWait := cfg.ReconnectWait
	if reconnectWait <= 0 {
		reconnectWait = 2 * time.Second
	}

	nc, err := nats.Connect(url,
		nats.Name("tournament-registration"),
		nats.MaxReconnects(cfg.MaxReconnects),
		nats.ReconnectWait(reconnectWait),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logger.Warn("nats disconnected", "error", err)
		}),
		nats.ReconnectHandler(func(nc *nats.Conn) {
			logger.Info("nats reconnected", "url", nc.ConnectedUrl())
		}),
		nats.ErrorHandler(func(_ *nats.Conn, _ *nats.Subscription, err error) {
			logger.Error("nats error", "error", err)
		}),
	)
	if err != nil {
		return nil, crerr.Wrap(err, "connect to nats")
	}
	return nc, nil
}

func subject(prefix string, collection changefeed.Collection) string {
	return normalizePrefix(prefix) + "." + string(collection)
}

func normalizePrefix(prefix string) string {
	prefix = strings.Trim(strings.TrimSpace(prefix), ".")
	if prefix == "" {
		return DefaultSubjectPrefix
	}
	return prefix
}

// Publisher forwards local writes to other API instances. Origin tags every
// change so the sending instance can ignore its own echo.
type Publisher struct {
	nc     *nats.Conn
	prefix string
	origin string
}

func NewPublisher(nc *nats.Conn, prefix, origin string) *Publisher {
	return &Publisher{nc: nc, prefix: normalizePrefix(prefix), origin: origin}
}

func (p *Publisher) Notify(_ context.Context, change changefeed.Change) error {
	if change.Origin == "" {
		change.Origin = p.origin
	}
	raw, err := sonic.Marshal(change)
	if err != nil {
		return crerr.Wrap(err, "encode change")
	}
	if err := p.nc.Publish(subject(p.prefix, change.Collection), raw); err != nil {
		return crerr.Wrap(err, "publish change")
	}
	return nil
}

// Bridge feeds changes published by other instances into a local notifier,
// usually the in-process hub.
type Bridge struct {
	nc     *nats.Conn
	prefix string
	origin string
	target changefeed.Notifier
	logger *logging.Logger
}

func NewBridge(nc *nats.Conn, prefix, origin string, target changefeed.Notifier, logger *logging.Logger) *Bridge {
	if logger == nil {
		logger = logging.Default()
	}
	return &Bridge{nc: nc, prefix: normalizePrefix(prefix), origin: origin, target: target, logger: logger}
}

// Start subscribes until ctx is done.
func (b *Bridge) Start(ctx context.Context) error {
	sub, err := b.nc.Subscribe(b.prefix+".>", func(msg *nats.Msg) {
		b.handle(ctx, msg.Data)
	})
	if err != nil {
		return crerr.Wrapf(err, "subscribe %s.>", b.prefix)
	}

	go func() {
		<-ctx.Done()
		if err := sub.Unsubscribe(); err != nil {
			b.logger.Warn("nats unsubscribe failed", "error", err)
		}
	}()
	return nil
}

func (b *Bridge) handle(ctx context.Context, data []byte) {
	var change changefeed.Change
	if err := sonic.Unmarshal(data, &change); err != nil {
		b.logger.WarnContext(ctx, "drop malformed change", "error", err)
		return
	}
	if change.Origin != "" && change.Origin == b.origin {
		return
	}
	if err := b.target.Notify(ctx, change); err != nil {
		b.logger.WarnContext(ctx, "forward change failed", "collection", string(change.Collection), "error", err)
	}
}
