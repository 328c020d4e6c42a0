package app

import (
	"context"
	"fmt"
	"net/http"

	"github.com/riskibarqy/tournament-registration/internal/config"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/account/anubis"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/account/jwtauth"
	"github.com/riskibarqy/tournament-registration/internal/infrastructure/account/principalcache"
	"github.com/riskibarqy/tournament-registration/internal/platform/logging"
	"github.com/riskibarqy/tournament-registration/internal/platform/resilience"
	"go.opentelemetry.io/contrib/instrumentation/net/http/otelhttp"
)

// newTokenVerifier builds the configured identity provider, wrapped by the
// principal cache unless the cache is switched off.
func newTokenVerifier(ctx context.Context, cfg config.Config, logger *logging.Logger) (principalcache.Verifier, func(context.Context) error, error) {
	noop := func(context.Context) error { return nil }

	var base principalcache.Verifier
	switch cfg.AuthProvider {
	case config.AuthAnubis:
		base = anubis.NewClient(
			&http.Client{
				Timeout:   cfg.AnubisTimeout,
				Transport: otelhttp.NewTransport(http.DefaultTransport),
			},
			anubis.Config{
				BaseURL:        cfg.AnubisBaseURL,
				IntrospectPath: cfg.AnubisIntrospectURL,
				AdminKey:       cfg.AnubisAdminKey,
				Timeout:        cfg.AnubisTimeout,
				CircuitBreaker: resilience.CircuitBreakerConfig{
					Enabled:          cfg.AnubisCircuitEnabled,
					FailureThreshold: cfg.AnubisCircuitFailureCount,
					OpenTimeout:      cfg.AnubisCircuitOpenTimeout,
					HalfOpenMaxReq:   cfg.AnubisCircuitHalfOpenMaxReq,
				},
			},
			logger,
		)
	default:
		verifier, err := jwtauth.NewVerifier(jwtauth.Config{
			Secret:   cfg.JWTSecret,
			Issuer:   cfg.JWTIssuer,
			Audience: cfg.JWTAudience,
			Leeway:   cfg.JWTLeeway,
		})
		if err != nil {
			return nil, nil, fmt.Errorf("build jwt verifier: %w", err)
		}
		base = verifier
	}

	switch cfg.PrincipalCache {
	case config.PrincipalCacheNone:
		return base, noop, nil
	case config.PrincipalCacheRedis:
		client, err := principalcache.Connect(ctx, cfg.RedisURL)
		if err != nil {
			return nil, nil, fmt.Errorf("connect principal cache: %w", err)
		}
		cached := principalcache.NewCachingVerifier(base, principalcache.NewRedisCache(client, cfg.PrincipalCacheTTL), logger)
		return cached, func(context.Context) error { return client.Close() }, nil
	default:
		memoryCache := principalcache.NewMemoryCache(cfg.PrincipalCacheTTL, cfg.PrincipalCacheMaxEntries)
		return principalcache.NewCachingVerifier(base, memoryCache, logger), noop, nil
	}
}
