package cache

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	domain "github.com/Stepheeeen/impressa/internal/entity"
	"github.com/Stepheeeen/impressa/internal/usecase"
)

const catalogKey = "catalog:list"

// RedisCatalogCache absorbs repeated catalog page loads with a short TTL.
type RedisCatalogCache struct {
	rdb *redis.Client
	ttl time.Duration
}

func NewRedisCatalogCache(rdb *redis.Client, ttl time.Duration) *RedisCatalogCache {
	return &RedisCatalogCache{rdb: rdb, ttl: ttl}
}

func (c *RedisCatalogCache) GetList(ctx context.Context) ([]domain.Product, bool, error) {
	raw, err := c.rdb.Get(ctx, catalogKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, err
	}
	var ps []domain.Product
	if err := json.Unmarshal(raw, &ps); err != nil {
		return nil, false, err
	}
	return ps, true, nil
}

func (c *RedisCatalogCache) SetList(ctx context.Context, ps []domain.Product) error {
	raw, err := json.Marshal(ps)
	if err != nil {
		return err
	}
	return c.rdb.Set(ctx, catalogKey, raw, c.ttl).Err()
}

var _ usecase.CatalogCache = (*RedisCatalogCache)(nil)
