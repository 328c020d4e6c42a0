package app

import (
	"context"
	"fmt"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/config"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/natsfeed"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
	idgen "github.com/riskibarqy/tournament-registration/internal/platform/id"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

// changeFeed is the in-process hub, optionally bridged to NATS so every API
// instance sees writes made by the others.
type changeFeed struct {
	hub      *changefeed.Hub
	notifier changefeed.Notifier
	close    func(context.Context) error
}

func newChangeFeed(ctx context.Context, cfg config.Config, idGen idgen.Generator, logger *logging.Logger) (*changeFeed, error) {
	hub := changefeed.NewHub()
	feed := &changeFeed{
		hub:      hub,
		notifier: hub,
		close:    func(context.Context) error { return nil },
	}
	if !cfg.NATSEnabled {
		return feed, nil
	}

	origin, err := idGen.NewID()
	if err != nil {
		return nil, fmt.Errorf("generate change feed origin: %w", err)
	}

	nc, err := natsfeed.Connect(natsfeed.Config{
		URL:           cfg.NATSURL,
		SubjectPrefix: cfg.NATSSubjectPrefix,
		MaxReconnects: -1,
		ReconnectWait: 2 * time.Second,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("connect nats: %w", err)
	}

	bridge := natsfeed.NewBridge(nc, cfg.NATSSubjectPrefix, origin, hub, logger)
	if err := bridge.Start(ctx); err != nil {
		nc.Close()
		return nil, err
	}

	feed.notifier = changefeed.Fanout{hub, natsfeed.NewPublisher(nc, cfg.NATSSubjectPrefix, origin)}
	feed.close = func(context.Context) error { return nc.Drain() }
	logger.Info("change feed bridged to nats", "url", cfg.NATSURL, "origin", origin)
	return feed, nil
}
