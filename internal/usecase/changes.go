package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/participant"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

type noopNotifier struct{}

func (noopNotifier) Notify(context.Context, changefeed.Change) error { return nil }

// changePublisher announces writes to live subscribers. Publication is best
// effort: a failed notification never fails the write that caused it.
type changePublisher struct {
	notifier changefeed.Notifier
	logger   *logging.Logger
	now      func() time.Time
}

func newChangePublisher(notifier changefeed.Notifier, logger *logging.Logger) changePublisher {
	if notifier == nil {
		notifier = noopNotifier{}
	}
	if logger == nil {
		logger = logging.Default()
	}
	return changePublisher{notifier: notifier, logger: logger, now: time.Now}
}

func (p changePublisher) publish(ctx context.Context, collection changefeed.Collection, documentID string) {
	if strings.TrimSpace(documentID) == "" {
		return
	}
	change := changefeed.Change{
		Collection: collection,
		DocumentID: documentID,
		At:         p.now().UTC(),
	}
	if err := p.notifier.Notify(ctx, change); err != nil {
		p.logger.WarnContext(ctx, "publish change failed",
			"collection", string(collection),
			"document_id", documentID,
			"error", err,
		)
	}
}

func participantCollection(kind participant.Kind) changefeed.Collection {
	switch kind {
	case participant.KindCoach:
		return changefeed.CollectionCoaches
	case participant.KindManager:
		return changefeed.CollectionManagers
	default:
		return changefeed.CollectionPlayers
	}
}
