package rules

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/redis/go-redis/v9"
)

// cacheKey holds the serialized active snapshot shared across replicas.
const cacheKey = "cannagate:rules:snapshot"

// CachedLoader wraps a loader with a Redis snapshot cache so a fleet of
// replicas reloading at once hits the source of truth only once per TTL.
// Cache failures fall through to the inner loader; the cache can make rule
// loads cheaper, never impossible.
type CachedLoader struct {
	inner  Loader
	client *redis.Client
	ttl    time.Duration
	logger *slog.Logger
}

// NewCachedLoader wraps inner with a Redis cache.
func NewCachedLoader(inner Loader, client *redis.Client, ttl time.Duration, logger *slog.Logger) *CachedLoader {
	return &CachedLoader{inner: inner, client: client, ttl: ttl, logger: logger}
}

// cachedSnapshot is the serialized form stored in Redis.
type cachedSnapshot struct {
	Version string    `json:"version"`
	Rules   []RuleSet `json:"rules"`
}

func (l *CachedLoader) Load(ctx context.Context) (*Table, error) {
	raw, err := l.client.Get(ctx, cacheKey).Bytes()
	switch {
	case err == nil:
		var snap cachedSnapshot
		if err := json.Unmarshal(raw, &snap); err == nil {
			if table, err := NewTable(snap.Version, snap.Rules); err == nil {
				return table, nil
			}
		}
		// A corrupt cache entry is treated as a miss.
		l.logger.WarnContext(ctx, "discarding corrupt rules cache entry")
	case errors.Is(err, redis.Nil):
		// Miss.
	default:
		l.logger.WarnContext(ctx, "rules cache read failed", "error", err)
	}

	table, err := l.inner.Load(ctx)
	if err != nil {
		return nil, err
	}

	if err := l.store(ctx, table); err != nil {
		l.logger.WarnContext(ctx, "rules cache write failed", "error", err)
	}
	return table, nil
}

func (l *CachedLoader) store(ctx context.Context, table *Table) error {
	snap := cachedSnapshot{Version: table.Version()}
	for _, code := range table.Codes() {
		rs, err := table.Lookup(code)
		if err != nil {
			return fmt.Errorf("snapshot own code %s: %w", code, err)
		}
		snap.Rules = append(snap.Rules, rs)
	}
	raw, err := json.Marshal(snap)
	if err != nil {
		return fmt.Errorf("marshal rules snapshot: %w", err)
	}
	return l.client.Set(ctx, cacheKey, raw, l.ttl).Err()
}

// Invalidate drops the cached snapshot so the next load hits the source.
// The admin reload endpoint calls this before reloading.
func (l *CachedLoader) Invalidate(ctx context.Context) error {
	return l.client.Del(ctx, cacheKey).Err()
}
