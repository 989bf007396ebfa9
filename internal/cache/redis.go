package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"

	"github.com/hyperifyio/metasearch/internal/search"
)

// Redis is a Cacher backed by a shared Redis instance, for deployments
// running more than one process. Entries are JSON result lists; expiry is
// delegated to Redis TTLs so lookup never sees a stale entry.
type Redis struct {
	client *redis.Client
	prefix string
}

// NewRedis connects and pings the instance so a bad address fails at
// startup rather than on the first query.
func NewRedis(addr, password string, db int, prefix string) (*Redis, error) {
	client := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := client.Ping(ctx).Err(); err != nil {
		return nil, fmt.Errorf("connect to redis: %w", err)
	}
	if prefix == "" {
		prefix = "metasearch"
	}
	return &Redis{client: client, prefix: prefix}, nil
}

func (r *Redis) key(key string) string { return r.prefix + ":results:" + key }

// Lookup treats every Redis fault as a miss: the caller falls back to the
// upstream fan-out, which is always a correct answer.
func (r *Redis) Lookup(ctx context.Context, key string) ([]search.Result, bool) {
	data, err := r.client.Get(ctx, r.key(key)).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			log.Warn().Err(err).Msg("redis lookup failed")
		}
		return nil, false
	}
	var results []search.Result
	if err := json.Unmarshal(data, &results); err != nil {
		log.Warn().Err(err).Msg("redis entry corrupt")
		return nil, false
	}
	return results, true
}

func (r *Redis) Store(ctx context.Context, key string, results []search.Result, ttl time.Duration) {
	data, err := json.Marshal(results)
	if err != nil {
		log.Warn().Err(err).Msg("encode cache entry failed")
		return
	}
	if err := r.client.Set(ctx, r.key(key), data, ttl).Err(); err != nil {
		log.Warn().Err(err).Msg("redis store failed")
	}
}

// Close releases the underlying connection pool.
func (r *Redis) Close() error { return r.client.Close() }
