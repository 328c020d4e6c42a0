package changefeed

import (
	"context"
	"sync"
	"time"
)

// Collection names a watched document collection.
type Collection string

const (
	CollectionTeams    Collection = "teams"
	CollectionPlayers  Collection = "players"
	CollectionCoaches  Collection = "coaches"
	CollectionManagers Collection = "managers"
	CollectionUsers    Collection = "users"
)

// Change announces that a document in Collection was written. Subscribers
// re-read the full state; a Change is never applied as a delta.
type Change struct {
	Collection Collection `json:"collection"`
	DocumentID string     `json:"document_id"`
	Origin     string     `json:"origin,omitempty"`
	At         time.Time  `json:"at"`
}

// Notifier publishes changes to interested readers.
type Notifier interface {
	Notify(ctx context.Context, change Change) error
}

// Hub fans changes out to in-process subscribers. Each subscriber has a
// one-slot mailbox, so a slow reader sees the latest pending change instead
// of a backlog.
type Hub struct {
	mu     sync.Mutex
	nextID int
	subs   map[int]*subscription
}

type subscription struct {
	collection Collection
	ch         chan Change
}

func NewHub() *Hub {
	return &Hub{subs: make(map[int]*subscription)}
}

func (h *Hub) Notify(_ context.Context, change Change) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	for _, sub := range h.subs {
		if sub.collection != change.Collection {
			continue
		}
		select {
		case sub.ch <- change:
		default:
			// mailbox full: the pending change already triggers a re-read
		}
	}
	return nil
}

// Subscribe returns a channel of changes for collection. The channel is
// closed once ctx is done.
func (h *Hub) Subscribe(ctx context.Context, collection Collection) <-chan Change {
	sub := &subscription{collection: collection, ch: make(chan Change, 1)}

	h.mu.Lock()
	id := h.nextID
	h.nextID++
	h.subs[id] = sub
	h.mu.Unlock()

	go func() {
		<-ctx.Done()
		h.mu.Lock()
		delete(h.subs, id)
		close(sub.ch)
		h.mu.Unlock()
	}()

	return sub.ch
}

func (h *Hub) Subscribers() int {
	h.mu.Lock()
	defer h.mu.Unlock()
	return len(h.subs)
}

// Fanout forwards a change to every notifier, returning the first error.
type Fanout []Notifier

func (f Fanout) Notify(ctx context.Context, change Change) error {
	var firstErr error
	for _, n := range f {
		if n == nil {
			continue
		}
		if err := n.Notify(ctx, change); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
