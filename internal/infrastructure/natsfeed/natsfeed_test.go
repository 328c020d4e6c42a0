package natsfeed

import (
	"context"
	"testing"
	"time"

	"github.com/bytedance/sonic"
	"github.com/riskibarqy/tournament-registration/internal/platform/changefeed"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

func TestSubject(t *testing.T) {
	t.Parallel()

	if got := subject("", changefeed.CollectionTeams); got != "registration.changes.teams" {
		t.Fatalf("unexpected default subject: %s", got)
	}
	if got := subject(" cup.feed. ", changefeed.CollectionCoaches); got != "cup.feed.coaches" {
		t.Fatalf("unexpected subject: %s", got)
	}
}

func TestBridgeHandle_ForwardsForeignChangesOnly(t *testing.T) {
	t.Parallel()

	hub := changefeed.NewHub()
	ctx, cancel := context.WithCancel(t.Context())
	defer cancel()
	ch := hub.Subscribe(ctx, changefeed.CollectionTeams)

	bridge := NewBridge(nil, "", "instance-a", hub, logging.NewNop())

	own, _ := sonic.Marshal(changefeed.Change{Collection: changefeed.CollectionTeams, DocumentID: "t1", Origin: "instance-a"})
	bridge.handle(ctx, own)
	select {
	case change := <-ch:
		t.Fatalf("expected own change to be skipped, got %+v", change)
	default:
	}

	foreign, _ := sonic.Marshal(changefeed.Change{Collection: changefeed.CollectionTeams, DocumentID: "t2", Origin: "instance-b"})
	bridge.handle(ctx, foreign)
	select {
	case change := <-ch:
		if change.DocumentID != "t2" {
			t.Fatalf("unexpected change: %+v", change)
		}
	case <-time.After(time.Second):
		t.Fatalf("expected foreign change to be forwarded")
	}

	bridge.handle(ctx, []byte("{not json"))
}
