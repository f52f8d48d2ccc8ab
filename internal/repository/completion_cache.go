package repository

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"habit_tracker/internal/logger"
	"habit_tracker/internal/metrics"
	"habit_tracker/internal/models"

	"github.com/redis/go-redis/v9"
)

const defaultCacheTTL = 5 * time.Minute

// CompletionCache is a cache-aside layer over a CompletionRepo.
// Only the unbounded listing of a habit is cached. Every write bumps the
// habit's version counter and drops the key. Redis failures never fail a
// request, the database stays authoritative.
type CompletionCache struct {
	next CompletionRepo
	rdb  *redis.Client
	ttl  time.Duration
	log  *logger.Logger
}

var _ CompletionRepo = (*CompletionCache)(nil)

func NewCompletionCache(next CompletionRepo, rdb *redis.Client, ttl time.Duration, log *logger.Logger) *CompletionCache {
	if ttl <= 0 {
		ttl = defaultCacheTTL
	}
	return &CompletionCache{next: next, rdb: rdb, ttl: ttl, log: log}
}

func completionsKey(habitID int) string {
	return fmt.Sprintf("habit:%d:completions", habitID)
}

// versionKey counts writes to a habit's completions. A cached listing is
// only served while the counter still matches the one it was read under.
func versionKey(habitID int) string {
	return fmt.Sprintf("habit:%d:completions:version", habitID)
}

type cachedCompletions struct {
	Version string   `json:"version"`
	Dates   []string `json:"dates"`
}

func (c *CompletionCache) List(ctx context.Context, habitID int, dr DateRange) ([]string, error) {
	if !dr.IsZero() {
		return c.next.List(ctx, habitID, dr)
	}

	key, verKey := completionsKey(habitID), versionKey(habitID)
	version, known := "", false
	vals, err := c.rdb.MGet(ctx, key, verKey).Result()
	switch {
	case err != nil:
		metrics.IncrementCacheLookup("error")
		c.warn("completion_cache_get_failed", key, err)
	case len(vals) != 2:
		metrics.IncrementCacheLookup("error")
		c.warn("completion_cache_get_failed", key, fmt.Errorf("mget returned %d values", len(vals)))
	default:
		version, known = redisString(vals[1]), true
		if dates, ok := c.decode(key, vals[0], version); ok {
			metrics.IncrementCacheLookup("hit")
			return dates, nil
		}
	}

	dates, err := c.next.List(ctx, habitID, dr)
	if err != nil {
		return nil, err
	}

	// Without the version the entry could not be checked later.
	if !known {
		return dates, nil
	}
	if data, jerr := json.Marshal(cachedCompletions{Version: version, Dates: dates}); jerr == nil {
		if serr := c.rdb.Set(ctx, key, data, c.ttl).Err(); serr != nil {
			c.warn("completion_cache_set_failed", key, serr)
		}
	}
	return dates, nil
}

// decode returns the cached dates when raw holds an entry written under version.
func (c *CompletionCache) decode(key string, raw any, version string) ([]string, bool) {
	s, ok := raw.(string)
	if !ok {
		metrics.IncrementCacheLookup("miss")
		return nil, false
	}
	var entry cachedCompletions
	if err := json.Unmarshal([]byte(s), &entry); err != nil {
		metrics.IncrementCacheLookup("error")
		c.warn("completion_cache_decode_failed", key, err)
		return nil, false
	}
	if entry.Version != version {
		metrics.IncrementCacheLookup("stale")
		return nil, false
	}
	if entry.Dates == nil {
		entry.Dates = []string{}
	}
	return entry.Dates, true
}

func redisString(v any) string {
	if s, ok := v.(string); ok {
		return s
	}
	return ""
}

func (c *CompletionCache) Exists(ctx context.Context, habitID int, date string) (bool, error) {
	return c.next.Exists(ctx, habitID, date)
}

func (c *CompletionCache) Add(ctx context.Context, comp models.Completion) (bool, error) {
	added, err := c.next.Add(ctx, comp)
	if err != nil {
		return false, err
	}
	c.invalidate(ctx, comp.HabitID)
	return added, nil
}

func (c *CompletionCache) Remove(ctx context.Context, habitID int, date string) (bool, error) {
	removed, err := c.next.Remove(ctx, habitID, date)
	if err != nil {
		return false, err
	}
	c.invalidate(ctx, habitID)
	return removed, nil
}

func (c *CompletionCache) DeleteByHabit(ctx context.Context, habitID int) error {
	if err := c.next.DeleteByHabit(ctx, habitID); err != nil {
		return err
	}
	c.invalidate(ctx, habitID)
	return nil
}

func (c *CompletionCache) invalidate(ctx context.Context, habitID int) {
	key, verKey := completionsKey(habitID), versionKey(habitID)
	// Bumping the version also rejects listings read before this write
	// that are stored after it.
	if err := c.rdb.Incr(ctx, verKey).Err(); err != nil {
		c.warn("completion_cache_version_failed", verKey, err)
	}
	if err := c.rdb.Del(ctx, key).Err(); err != nil {
		c.warn("completion_cache_del_failed", key, err)
	}
}

func (c *CompletionCache) warn(event, key string, err error) {
	if c.log != nil {
		c.log.Warnw(event, "key", key, "err", err)
	}
}
