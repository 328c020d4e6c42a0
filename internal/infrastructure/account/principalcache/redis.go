package principalcache

import (
	"context"
	"time"

	"github.com/bytedance/sonic"
	crerr "github.com/cockroachdb/errors"
	"github.com/redis/go-redis/v9"
	"github.com/riskibarqy/tournament-registration/internal/domain/user"
)

const redisKeyPrefix = "principal:"

// RedisCache shares verified principals across API instances.
type RedisCache struct {
	client *redis.Client
	ttl    time.Duration
}

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	return &RedisCache{client: client, ttl: ttl}
}

// Connect parses url and pings the server.
func Connect(ctx context.Context, url string) (*redis.Client, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, crerr.Wrap(err, "parse redis url")
	}
	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		_ = client.Close()
		return nil, crerr.Wrap(err, "redis ping")
	}
	return client, nil
}

func (c *RedisCache) Get(ctx context.Context, key string) (user.Principal, bool, error) {
	raw, err := c.client.Get(ctx, redisKeyPrefix+key).Bytes()
	if crerr.Is(err, redis.Nil) {
		return user.Principal{}, false, nil
	}
	if err != nil {
		return user.Principal{}, false, crerr.Wrap(err, "redis get principal")
	}

	var p cachedPrincipal
	if err := sonic.Unmarshal(raw, &p); err != nil {
		return user.Principal{}, false, crerr.Wrap(err, "decode cached principal")
	}
	return user.Principal(p), true, nil
}

func (c *RedisCache) Set(ctx context.Context, key string, principal user.Principal) error {
	if c.ttl <= 0 {
		return nil
	}
	raw, err := sonic.Marshal(cachedPrincipal(principal))
	if err != nil {
		return crerr.Wrap(err, "encode principal")
	}
	if err := c.client.Set(ctx, redisKeyPrefix+key, raw, c.ttl).Err(); err != nil {
		return crerr.Wrap(err, "redis set principal")
	}
	return nil
}

type cachedPrincipal struct {
	UserID      string `json:"user_id"`
	Email       string `json:"email,omitempty"`
	DisplayName string `json:"display_name,omitempty"`
	Provider    string `json:"provider,omitempty"`
}
