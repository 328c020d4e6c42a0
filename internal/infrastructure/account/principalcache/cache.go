package principalcache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"github.com/riskibarqy/tournament-registration/internal/domain/user"
	"github.com/riskibarqy/tournament-registration/internal/platform/cache"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/resilience"
)

type Verifier interface {
	VerifyAccessToken(ctx context.Context, token string) (user.Principal, error)
}

// Cache stores verified principals keyed by token hash.
type Cache interface {
	Get(ctx context.Context, key string) (user.Principal, bool, error)
	Set(ctx context.Context, key string, principal user.Principal) error
}

// MemoryCache is a per-process principal cache.
type MemoryCache struct {
	store *cache.Store[user.Principal]
}

func NewMemoryCache(ttl time.Duration, maxEntries int, opts ...cache.Option) *MemoryCache {
	opts = append([]cache.Option{cache.WithMaxEntries(maxEntries)}, opts...)
	return &MemoryCache{store: cache.NewStore[user.Principal](ttl, opts...)}
}

func (c *MemoryCache) Get(ctx context.Context, key string) (user.Principal, bool, error) {
	p, ok := c.store.Get(ctx, key)
	return p, ok, nil
}

func (c *MemoryCache) Set(ctx context.Context, key string, principal user.Principal) error {
	c.store.Set(ctx, key, principal)
	return nil
}

// CachingVerifier wraps a remote verifier so each token is introspected once
// per TTL. Cache failures degrade to calling the verifier.
type CachingVerifier struct {
	next   Verifier
	cache  Cache
	flight resilience.Group[user.Principal]
	logger *logging.Logger
}

func NewCachingVerifier(next Verifier, c Cache, logger *logging.Logger) *CachingVerifier {
	if logger == nil {
		logger = logging.Default()
	}
	return &CachingVerifier{next: next, cache: c, logger: logger}
}

func (v *CachingVerifier) VerifyAccessToken(ctx context.Context, token string) (user.Principal, error) {
	if token == "" || v.cache == nil {
		return v.next.VerifyAccessToken(ctx, token)
	}

	key := hashToken(token)
	cached, ok, err := v.cache.Get(ctx, key)
	if err != nil {
		v.logger.WarnContext(ctx, "principal cache read failed", "error", err)
	}
	if ok {
		return cached, nil
	}

	principal, err, _ := v.flight.Do(key, func() (user.Principal, error) {
		p, verifyErr := v.next.VerifyAccessToken(ctx, token)
		if verifyErr != nil {
			return user.Principal{}, verifyErr
		}
		if setErr := v.cache.Set(ctx, key, p); setErr != nil {
			v.logger.WarnContext(ctx, "principal cache write failed", "error", setErr)
		}
		return p, nil
	})
	return principal, err
}

func hashToken(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
