// Package cache provides a Redis read-through cache in front of the tuition
// store. Redis failures never fail a request; the store is always the
// source of truth.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/ignite/tuition-service/internal/config"
	"github.com/ignite/tuition-service/internal/model"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// Store is the persistence the cache wraps.
type Store interface {
	Create(ctx context.Context, t *model.Tuition) error
	GetByID(ctx context.Context, id string) (*model.Tuition, error)
	GetByIDFresh(ctx context.Context, id string) (*model.Tuition, error)
	List(ctx context.Context) ([]model.Tuition, error)
	ExistsByName(ctx context.Context, name string) (bool, error)
	Delete(ctx context.Context, id string) error
}

// TuitionCache caches GetByID and List. ExistsByName and GetByIDFresh always
// reach the store: a read racing a delete can write a removed tuition back
// into the cache, so checks that guard a change must not trust it.
type TuitionCache struct {
	store Store
	rdb   redis.Cmdable
	ttl   time.Duration
	log   zerolog.Logger
}

// NewTuitionCache wraps store with a cache held in rdb for ttl.
func NewTuitionCache(store Store, rdb redis.Cmdable, ttl time.Duration, log zerolog.Logger) *TuitionCache {
	return &TuitionCache{
		store: store,
		rdb:   rdb,
		ttl:   ttl,
		log:   log.With().Str("component", "tuition_cache").Logger(),
	}
}

// Create stores t and drops the cached listing.
func (c *TuitionCache) Create(ctx context.Context, t *model.Tuition) error {
	if err := c.store.Create(ctx, t); err != nil {
		return err
	}
	c.invalidate(ctx, config.CacheKey.TuitionListKey())
	return nil
}

// GetByID serves from cache, falling back to the store on a miss.
// Misses for unknown ids are not cached.
func (c *TuitionCache) GetByID(ctx context.Context, id string) (*model.Tuition, error) {
	key := config.CacheKey.TuitionKey(id)

	var cached model.Tuition
	if c.get(ctx, key, &cached) {
		return &cached, nil
	}

	t, err := c.store.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, t)
	return t, nil
}

// GetByIDFresh always asks the store and leaves the cache untouched.
func (c *TuitionCache) GetByIDFresh(ctx context.Context, id string) (*model.Tuition, error) {
	return c.store.GetByIDFresh(ctx, id)
}

// List serves the full listing from cache, falling back to the store.
func (c *TuitionCache) List(ctx context.Context) ([]model.Tuition, error) {
	key := config.CacheKey.TuitionListKey()

	var cached []model.Tuition
	if c.get(ctx, key, &cached) {
		return cached, nil
	}

	tuitions, err := c.store.List(ctx)
	if err != nil {
		return nil, err
	}
	c.set(ctx, key, tuitions)
	return tuitions, nil
}

// ExistsByName always asks the store.
func (c *TuitionCache) ExistsByName(ctx context.Context, name string) (bool, error) {
	return c.store.ExistsByName(ctx, name)
}

// Delete removes the tuition and its cache entries.
func (c *TuitionCache) Delete(ctx context.Context, id string) error {
	if err := c.store.Delete(ctx, id); err != nil {
		return err
	}
	c.invalidate(ctx, config.CacheKey.TuitionKey(id), config.CacheKey.TuitionListKey())
	return nil
}

func (c *TuitionCache) get(ctx context.Context, key string, dst any) bool {
	raw, err := c.rdb.Get(ctx, key).Bytes()
	if err != nil {
		if !errors.Is(err, redis.Nil) {
			c.log.Warn().Err(err).Str("key", key).Msg("Cache read failed")
		}
		return false
	}
	if err := json.Unmarshal(raw, dst); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Discarding undecodable cache entry")
		c.invalidate(ctx, key)
		return false
	}
	return true
}

func (c *TuitionCache) set(ctx context.Context, key string, v any) {
	raw, err := json.Marshal(v)
	if err != nil {
		return
	}
	if err := c.rdb.Set(ctx, key, raw, c.ttl).Err(); err != nil {
		c.log.Warn().Err(err).Str("key", key).Msg("Cache write failed")
	}
}

func (c *TuitionCache) invalidate(ctx context.Context, keys ...string) {
	if err := c.rdb.Del(ctx, keys...).Err(); err != nil {
		c.log.Warn().Err(err).Strs("keys", keys).Msg("Cache invalidation failed")
	}
}
