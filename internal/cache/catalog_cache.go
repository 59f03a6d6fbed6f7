package cache

import (
	"context"
	"encoding/json"
	"time"

	dom "tailspin/internal/domain"

	"github.com/redis/go-redis/v9"
)

const (
	keyGames      = "catalog:games"
	keyPublishers = "catalog:publishers"
	keyCategories = "catalog:categories"
)

// CatalogCache caches the catalog list endpoints in Redis. Writes to any
// catalog entity invalidate the affected lists.
type CatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

// NewCatalogCache returns a new CatalogCache.
func NewCatalogCache(rdb *redis.Client, ttl time.Duration) *CatalogCache {
	return &CatalogCache{rdb: rdb, ttl: ttl}
}

func getList[T any](ctx context.Context, rdb *redis.Client, key string) ([]T, error) {
	b, err := rdb.Get(ctx, key).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var list []T
	if err := json.Unmarshal(b, &list); err != nil {
		return nil, err
	}
	return list, nil
}

func setList[T any](ctx context.Context, rdb *redis.Client, key string, list []T, ttl time.Duration) error {
	b, err := json.Marshal(list)
	if err != nil {
		return err
	}
	return rdb.Set(ctx, key, b, ttl).Err()
}

// GetGames returns the cached games list or nil on miss.
func (c *CatalogCache) GetGames(ctx context.Context) ([]dom.Game, error) {
	return getList[dom.Game](ctx, c.rdb, keyGames)
}

// SetGames stores the games list.
func (c *CatalogCache) SetGames(ctx context.Context, list []dom.Game) error {
	return setList(ctx, c.rdb, keyGames, list, c.ttl)
}

// GetPublishers returns the cached publishers list or nil on miss.
func (c *CatalogCache) GetPublishers(ctx context.Context) ([]dom.Publisher, error) {
	return getList[dom.Publisher](ctx, c.rdb, keyPublishers)
}

// SetPublishers stores the publishers list.
func (c *CatalogCache) SetPublishers(ctx context.Context, list []dom.Publisher) error {
	return setList(ctx, c.rdb, keyPublishers, list, c.ttl)
}

// GetCategories returns the cached categories list or nil on miss.
func (c *CatalogCache) GetCategories(ctx context.Context) ([]dom.Category, error) {
	return getList[dom.Category](ctx, c.rdb, keyCategories)
}

// SetCategories stores the categories list.
func (c *CatalogCache) SetCategories(ctx context.Context, list []dom.Category) error {
	return setList(ctx, c.rdb, keyCategories, list, c.ttl)
}

// InvalidateGames drops the games list.
func (c *CatalogCache) InvalidateGames(ctx context.Context) error {
	return c.rdb.Del(ctx, keyGames).Err()
}

// InvalidatePublishers drops the publishers list and the games list,
// which embeds publisher names and counts depend on games.
func (c *CatalogCache) InvalidatePublishers(ctx context.Context) error {
	return c.rdb.Del(ctx, keyPublishers, keyGames).Err()
}

// InvalidateCategories drops the categories list and the games list.
func (c *CatalogCache) InvalidateCategories(ctx context.Context) error {
	return c.rdb.Del(ctx, keyCategories, keyGames).Err()
}

// InvalidateAll drops every catalog list. Game writes use this because
// game counts appear in publisher and category payloads.
func (c *CatalogCache) InvalidateAll(ctx context.Context) error {
	return c.rdb.Del(ctx, keyGames, keyPublishers, keyCategories).Err()
}
