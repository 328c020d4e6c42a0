package principalcache

import (
	"context"
	"errors"
	"os"
	"sync/atomic"
	"testing"
	"time"

	"github.com/jonboulle/clockwork"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/platform/cache"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
)

type countingVerifier struct {
	calls atomic.Int32
	err   error
}

func (v *countingVerifier) VerifyAccessToken(_ context.Context, token string) (user.Principal, error) {
	v.calls.Add(1)
	if v.err != nil {
		return user.Principal{}, v.err
	}
	return user.Principal{UserID: "user-" + token, Provider: user.ProviderGoogle}, nil
}

func TestCachingVerifier_ReusesPrincipalUntilExpiry(t *testing.T) {
	t.Parallel()

	clock := clockwork.NewFakeClock()
	next := &countingVerifier{}
	v := NewCachingVerifier(next, NewMemoryCache(time.Minute, 10, cache.WithClock(clock)), logging.NewNop())

	for i := 0; i < 3; i++ {
		p, err := v.VerifyAccessToken(t.Context(), "abc")
		if err != nil {
			t.Fatalf("verify: %v", err)
		}
		if p.UserID != "user-abc" {
			t.Fatalf("unexpected principal: %+v", p)
		}
	}
	if got := next.calls.Load(); got != 1 {
		t.Fatalf("expected one upstream call, got %d", got)
	}

	clock.Advance(2 * time.Minute)
	if _, err := v.VerifyAccessToken(t.Context(), "abc"); err != nil {
		t.Fatalf("verify after expiry: %v", err)
	}
	if got := next.calls.Load(); got != 2 {
		t.Fatalf("expected re-verification after ttl, got %d calls", got)
	}
}

func TestCachingVerifier_DoesNotCacheFailures(t *testing.T) {
	t.Parallel()

	next := &countingVerifier{err: errors.New("denied")}
	v := NewCachingVerifier(next, NewMemoryCache(time.Minute, 10), logging.NewNop())

	for i := 0; i < 2; i++ {
		if _, err := v.VerifyAccessToken(t.Context(), "abc"); err == nil {
			t.Fatalf("expected error")
		}
	}
	if got := next.calls.Load(); got != 2 {
		t.Fatalf("expected failures to reach upstream every time, got %d", got)
	}
}

func TestRedisCache_RoundTrip(t *testing.T) {
	url := os.Getenv("REDIS_TEST_URL")
	if url == "" {
		t.Skip("REDIS_TEST_URL not set")
	}

	client, err := Connect(t.Context(), url)
	if err != nil {
		t.Fatalf("connect redis: %v", err)
	}
	defer client.Close()

	c := NewRedisCache(client, time.Minute)
	key := hashToken("redis-round-trip")
	want := user.Principal{UserID: "u1", Email: "a@b.c", Provider: user.ProviderGoogle}
	if err := c.Set(t.Context(), key, want); err != nil {
		t.Fatalf("set: %v", err)
	}
	got, ok, err := c.Get(t.Context(), key)
	if err != nil || !ok {
		t.Fatalf("get: ok=%v err=%v", ok, err)
	}
	if got != want {
		t.Fatalf("unexpected principal: %+v", got)
	}
}
