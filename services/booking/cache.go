package booking

import (
	"context"
	"encoding/json"
	"strconv"
	"sync"
	"time"

	"oasis/models"

	"github.com/go-redis/redis/v8"
	gocache "github.com/patrickmn/go-cache"
	"go.uber.org/zap"
)

const (
	availabilityKeyPrefix = "availability:"
	availabilityGenPrefix = "availability-gen:"
	availabilityEpochKey  = availabilityGenPrefix + "all"
)

// AvailabilityCache holds computed availability per date. Entries are addressed by a
// generation that Invalidate/InvalidateAll advance, so a value computed before an
// invalidation is stored under a generation no reader asks for again. Misses and
// failures are indistinguishable to callers; the engine recomputes.
type AvailabilityCache interface {
	// Generation returns the date's current generation. Read it before computing and
	// pass it to Set. An empty generation disables caching for that call.
	Generation(ctx context.Context, date time.Time) string
	Get(ctx context.Context, date time.Time, gen string) (*models.Availability, bool)
	Set(ctx context.Context, date time.Time, gen string, a *models.Availability)
	Invalidate(ctx context.Context, date time.Time)
	InvalidateAll(ctx context.Context)
}

// RedisAvailabilityCache stores availability as JSON with a short TTL. The generation is
// "<epoch>.<date counter>", both plain INCR counters.
type RedisAvailabilityCache struct {
	Client *redis.Client
	TTL    time.Duration
	Logger *zap.Logger
}

func NewRedisAvailabilityCache(client *redis.Client, ttl time.Duration, logger *zap.Logger) *RedisAvailabilityCache {
	return &RedisAvailabilityCache{Client: client, TTL: ttl, Logger: logger}
}

func availabilityKey(date time.Time, gen string) string {
	return availabilityKeyPrefix + models.FormatDate(date) + ":" + gen
}

func availabilityGenKey(date time.Time) string {
	return availabilityGenPrefix + models.FormatDate(date)
}

func counter(v interface{}) string {
	if s, ok := v.(string); ok && s != "" {
		return s
	}
	return "0"
}

func (c *RedisAvailabilityCache) Generation(ctx context.Context, date time.Time) string {
	vals, err := c.Client.MGet(ctx, availabilityEpochKey, availabilityGenKey(date)).Result()
	if err != nil || len(vals) != 2 {
		c.Logger.Warn("availability cache generation read failed", zap.Error(err))
		return ""
	}
	return counter(vals[0]) + "." + counter(vals[1])
}

func (c *RedisAvailabilityCache) Get(ctx context.Context, date time.Time, gen string) (*models.Availability, bool) {
	if gen == "" {
		return nil, false
	}
	raw, err := c.Client.Get(ctx, availabilityKey(date, gen)).Bytes()
	if err != nil {
		if err != redis.Nil {
			c.Logger.Warn("availability cache read failed", zap.Error(err))
		}
		return nil, false
	}
	var a models.Availability
	if err := json.Unmarshal(raw, &a); err != nil {
		return nil, false
	}
	return &a, true
}

func (c *RedisAvailabilityCache) Set(ctx context.Context, date time.Time, gen string, a *models.Availability) {
	if gen == "" {
		return
	}
	raw, err := json.Marshal(a)
	if err != nil {
		return
	}
	if err := c.Client.Set(ctx, availabilityKey(date, gen), raw, c.TTL).Err(); err != nil {
		c.Logger.Warn("availability cache write failed", zap.Error(err))
	}
}

func (c *RedisAvailabilityCache) Invalidate(ctx context.Context, date time.Time) {
	if err := c.Client.Incr(ctx, availabilityGenKey(date)).Err(); err != nil {
		c.Logger.Warn("availability cache invalidation failed",
			zap.String("date", models.FormatDate(date)), zap.Error(err))
	}
}

func (c *RedisAvailabilityCache) InvalidateAll(ctx context.Context) {
	if err := c.Client.Incr(ctx, availabilityEpochKey).Err(); err != nil {
		c.Logger.Warn("availability cache flush failed", zap.Error(err))
	}
}

// LocalAvailabilityCache is the in-process cache used when Redis is not available. It
// follows the same generation rules as RedisAvailabilityCache; go-cache handles expiry.
type LocalAvailabilityCache struct {
	entries *gocache.Cache

	mu    sync.Mutex
	epoch int64
	gens  map[string]int64
}

func NewLocalAvailabilityCache(ttl time.Duration) *LocalAvailabilityCache {
	return &LocalAvailabilityCache{
		entries: gocache.New(ttl, 2*ttl),
		gens:    make(map[string]int64),
	}
}

func (c *LocalAvailabilityCache) generation(date time.Time) string {
	return strconv.FormatInt(c.epoch, 10) + "." + strconv.FormatInt(c.gens[models.FormatDate(date)], 10)
}

func (c *LocalAvailabilityCache) Generation(_ context.Context, date time.Time) string {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.generation(date)
}

func (c *LocalAvailabilityCache) Get(_ context.Context, date time.Time, gen string) (*models.Availability, bool) {
	if gen == "" {
		return nil, false
	}
	v, ok := c.entries.Get(availabilityKey(date, gen))
	if !ok {
		return nil, false
	}
	a := v.(models.Availability)
	a.AvailableSlots = append([]string{}, a.AvailableSlots...)
	a.BlockedSlots = append([]string{}, a.BlockedSlots...)
	a.AllDaySlots = append([]string{}, a.AllDaySlots...)
	return &a, true
}

// Set drops values computed under a generation that has since been invalidated.
func (c *LocalAvailabilityCache) Set(_ context.Context, date time.Time, gen string, a *models.Availability) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if gen == "" || gen != c.generation(date) {
		return
	}
	c.entries.SetDefault(availabilityKey(date, gen), *a)
}

func (c *LocalAvailabilityCache) Invalidate(_ context.Context, date time.Time) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gens[models.FormatDate(date)]++
}

func (c *LocalAvailabilityCache) InvalidateAll(context.Context) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.epoch++
	c.entries.Flush()
}

// NoopAvailabilityCache disables caching.
type NoopAvailabilityCache struct{}

func (NoopAvailabilityCache) Generation(context.Context, time.Time) string { return "" }
func (NoopAvailabilityCache) Get(context.Context, time.Time, string) (*models.Availability, bool) {
	return nil, false
}
func (NoopAvailabilityCache) Set(context.Context, time.Time, string, *models.Availability) {}
func (NoopAvailabilityCache) Invalidate(context.Context, time.Time)                         {}
func (NoopAvailabilityCache) InvalidateAll(context.Context)                                 {}
