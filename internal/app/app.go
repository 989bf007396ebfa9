package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog/log"
	"golang.org/x/sync/singleflight"

	"github.com/hyperifyio/metasearch/internal/aggregate"
	"github.com/hyperifyio/metasearch/internal/cache"
	"github.com/hyperifyio/metasearch/internal/search"
)

// DefaultCacheTTL is how long a computed ranking stays valid when no TTL
// is configured.
const DefaultCacheTTL = 10 * time.Minute

// searcher is the fan-out capability App needs from the engine layer.
type searcher interface {
	Search(ctx context.Context, engineNames []string, q search.Query) []search.Outcome
	EngineNames() []string
}

// App wires the engine handler, the aggregator and the result cache into
// the lookup -> fan-out -> aggregate -> store pipeline.
type App struct {
	cfg     Config
	handler searcher
	cache   cache.Cacher
	flight  singleflight.Group
	close   func() error
}

// New builds the application from configuration: resolves the configured
// engines (all-or-nothing), picks the cache backend and shares one tuned
// HTTP client across every engine.
func New(cfg Config) (*App, error) {
	if len(cfg.Engines) == 0 {
		return nil, fmt.Errorf("no engines configured")
	}
	handler, err := search.NewEngineHandler(cfg.Engines, newFanoutHTTPClient(), search.Options{
		SearxURL:  cfg.SearxURL,
		SearxKey:  cfg.SearxKey,
		BraveKey:  cfg.BraveKey,
		FilePath:  cfg.SearchFile,
		UserAgent: cfg.UserAgent,
	})
	if err != nil {
		return nil, fmt.Errorf("init engines: %w", err)
	}
	handler.SetEngineTimeout(cfg.EngineTimeout)

	a := &App{cfg: cfg, handler: handler}
	if a.cfg.CacheTTL <= 0 {
		a.cfg.CacheTTL = DefaultCacheTTL
	}
	if cfg.RedisAddr != "" {
		rc, err := cache.NewRedis(cfg.RedisAddr, cfg.RedisPassword, cfg.RedisDB, "metasearch")
		if err != nil {
			return nil, fmt.Errorf("init cache: %w", err)
		}
		a.cache = rc
		a.close = rc.Close
		log.Info().Str("addr", cfg.RedisAddr).Msg("using redis result cache")
	} else {
		a.cache = cache.NewMemory(cfg.CacheSize)
	}
	return a, nil
}

// Close releases backend resources.
func (a *App) Close() error {
	if a.close != nil {
		return a.close()
	}
	return nil
}

// Search answers one query: cache lookup first, and on a miss one
// fan-out/aggregate pass whose ranking is stored before returning.
// Concurrent misses on the same key coalesce into a single upstream
// fan-out. An empty ranking is a normal no-results answer, not an error.
func (a *App) Search(ctx context.Context, engineNames []string, q search.Query) ([]search.Result, error) {
	key := cache.KeyFrom(q, engineNames)
	if results, ok := a.cache.Lookup(ctx, key); ok {
		log.Debug().Str("query", q.Text).Msg("cache hit")
		return results, nil
	}

	v, err, shared := a.flight.Do(key, func() (any, error) {
		outcomes := a.handler.Search(ctx, engineNames, q)
		for _, o := range outcomes {
			if !o.OK() {
				log.Warn().Str("engine", o.Engine).Err(o.Err).Msg("engine failed")
			}
		}
		ranked := aggregate.Aggregate(outcomes, a.handler.EngineNames())
		a.cache.Store(ctx, key, ranked, a.cfg.CacheTTL)
		return ranked, nil
	})
	if err != nil {
		return nil, err
	}
	if shared {
		log.Debug().Str("query", q.Text).Msg("coalesced concurrent lookup")
	}
	return v.([]search.Result), nil
}
