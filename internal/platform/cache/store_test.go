package cache

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
)

func TestStore_GetOrLoadCollapsesConcurrentLoads(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	var calls atomic.Int32

	loader := func(context.Context) (string, error) {
		calls.Add(1)
		time.Sleep(20 * time.Millisecond)
		return "user-1", nil
	}

	const workers = 32
	start := make(chan struct{})
	var wg sync.WaitGroup
	wg.Add(workers)
	errCh := make(chan error, workers)

	for i := 0; i < workers; i++ {
		go func() {
			defer wg.Done()
			<-start
			v, err := store.GetOrLoad(context.Background(), "token", loader)
			if err != nil {
				errCh <- err
				return
			}
			if v != "user-1" {
				errCh <- errors.New("unexpected loaded value " + v)
			}
		}()
	}

	close(start)
	wg.Wait()
	close(errCh)
	for err := range errCh {
		t.Fatalf("unexpected error: %v", err)
	}

	if got := calls.Load(); got != 1 {
		t.Fatalf("loader called %d times, want 1", got)
	}
}

func TestStore_EntriesExpireOnClock(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := NewStore[int](time.Minute, WithClock(clock))
	ctx := t.Context()

	store.Set(ctx, "k", 7)
	if v, ok := store.Get(ctx, "k"); !ok || v != 7 {
		t.Fatalf("expected cached value, got %d ok=%v", v, ok)
	}

	clock.Advance(time.Minute)
	if _, ok := store.Get(ctx, "k"); ok {
		t.Fatalf("expected entry to expire after ttl")
	}
}

func TestStore_LoaderErrorsAreNotCached(t *testing.T) {
	t.Parallel()

	store := NewStore[string](time.Minute)
	ctx := t.Context()
	failure := errors.New("introspection down")

	if _, err := store.GetOrLoad(ctx, "k", func(context.Context) (string, error) { return "", failure }); !errors.Is(err, failure) {
		t.Fatalf("expected loader error, got %v", err)
	}
	v, err := store.GetOrLoad(ctx, "k", func(context.Context) (string, error) { return "ok", nil })
	if err != nil || v != "ok" {
		t.Fatalf("expected reload after error, got %q err=%v", v, err)
	}
}

func TestStore_MaxEntriesEvicts(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	store := NewStore[string](time.Minute, WithClock(clock), WithMaxEntries(2))
	ctx := t.Context()

	store.Set(ctx, "a", "1")
	clock.Advance(2 * time.Minute)
	store.Set(ctx, "b", "2")
	store.Set(ctx, "c", "3")

	if store.Len() != 2 {
		t.Fatalf("expected 2 entries, got %d", store.Len())
	}
	if _, ok := store.Get(ctx, "a"); ok {
		t.Fatalf("expected expired entry to be evicted first")
	}
}

func TestStore_DeletePrefix(t *testing.T) {
	t.Parallel()

	store := NewStore[string](0)
	ctx := t.Context()
	store.Set(ctx, "principal:a", "1")
	store.Set(ctx, "principal:b", "2")
	store.Set(ctx, "other", "3")

	store.DeletePrefix(ctx, "principal:")
	if store.Len() != 1 {
		t.Fatalf("expected one entry left, got %d", store.Len())
	}
}
