package resilience

import (
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestGroup_DoCollapsesConcurrentCalls(t *testing.T) {
	var g Group[string]
	var calls atomic.Int32

	const callers = 20
	release := make(chan struct{})
	var wg sync.WaitGroup
	results := make([]string, callers)

	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			<-release
			v, err, _ := g.Do("token-hash", func() (string, error) {
				calls.Add(1)
				time.Sleep(20 * time.Millisecond)
				return "user-1", nil
			})
			if err != nil {
				t.Errorf("unexpected error: %v", err)
			}
			results[i] = v
		}()
	}
	close(release)
	wg.Wait()

	if got := calls.Load(); got != 1 {
		t.Fatalf("expected one call, got %d", got)
	}
	for i, v := range results {
		if v != "user-1" {
			t.Fatalf("caller %d got %q", i, v)
		}
	}
}

func TestGroup_DoReturnsZeroValueOnError(t *testing.T) {
	var g Group[*int]
	boom := errors.New("boom")

	v, err, _ := g.Do("k", func() (*int, error) { return nil, boom })
	if !errors.Is(err, boom) {
		t.Fatalf("expected boom, got %v", err)
	}
	if v != nil {
		t.Fatalf("expected nil value, got %v", v)
	}
}
