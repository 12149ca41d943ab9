package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"

	"storefront/internal/domain"
)

const productListKey = "catalog:products"

func NewRedisCache(client *redis.Client, ttl time.Duration) *RedisCache {
	if ttl <= 0 {
		ttl = 10 * time.Minute
	}
	return &RedisCache{client: client, baseTTL: ttl}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) Product(ctx context.Context, id string) (domain.Product, error) {
	var p domain.Product
	err := r.get(ctx, productKey(id), &p)
	return p, err
}

func (r *RedisCache) SetProduct(ctx context.Context, p domain.Product) error {
	return r.set(ctx, productKey(p.ID), p)
}

func (r *RedisCache) Products(ctx context.Context) ([]domain.Product, error) {
	var ps []domain.Product
	if err := r.get(ctx, productListKey, &ps); err != nil {
		return nil, err
	}
	return ps, nil
}

func (r *RedisCache) SetProducts(ctx context.Context, ps []domain.Product) error {
	return r.set(ctx, productListKey, ps)
}

func (r *RedisCache) InvalidateProducts(ctx context.Context) error {
	if err := r.client.Del(ctx, productListKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}

func (r *RedisCache) get(ctx context.Context, key string, dst any) error {
	data, err := r.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return ErrCacheMiss
	}
	if err != nil {
		return fmt.Errorf("redis get failed: %w", err)
	}
	if err := json.Unmarshal(data, dst); err != nil {
		return fmt.Errorf("unmarshal %s failed: %w", key, err)
	}
	return nil
}

func (r *RedisCache) set(ctx context.Context, key string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("marshal %s failed: %w", key, err)
	}
	// jitter spreads expiry of keys written together
	jitter := time.Duration(rand.Int63n(int64(r.baseTTL/5) + 1))
	if err := r.client.Set(ctx, key, data, r.baseTTL+jitter).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func productKey(id string) string {
	return fmt.Sprintf("catalog:product:%s", id)
}
