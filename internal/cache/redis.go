package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math/rand"
	"time"

	"github.com/redis/go-redis/v9"
	"github.com/sahabulislamsifat/PlantStore/internal/domain"
)

const plantsKey = "plants:all"

func NewRedisCache(client *redis.Client) *RedisCache {
	return &RedisCache{
		client:  client,
		baseTTL: 5 * time.Minute,
	}
}

type RedisCache struct {
	client  *redis.Client
	baseTTL time.Duration
}

func (r *RedisCache) GetPlants(ctx context.Context) ([]domain.Plant, error) {
	data, err := r.client.Get(ctx, plantsKey).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrCacheMiss
	}
	if err != nil {
		return nil, fmt.Errorf("redis get failed: %w", err)
	}

	var plants []domain.Plant
	if err2 := json.Unmarshal(data, &plants); err2 != nil {
		return nil, fmt.Errorf("unmarshal plants failed: %w", err2)
	}

	return plants, nil
}

func (r *RedisCache) SetPlants(ctx context.Context, plants []domain.Plant) error {
	data, err := json.Marshal(plants)
	if err != nil {
		return fmt.Errorf("marshal plants failed: %w", err)
	}

	// Jitter spreads out expiry so listings don't all refill at once
	jitter := time.Duration(rand.Intn(60)) * time.Second
	ttl := r.baseTTL + jitter
	if err := r.client.Set(ctx, plantsKey, data, ttl).Err(); err != nil {
		return fmt.Errorf("redis set failed: %w", err)
	}
	return nil
}

func (r *RedisCache) Invalidate(ctx context.Context) error {
	if err := r.client.Del(ctx, plantsKey).Err(); err != nil {
		return fmt.Errorf("redis delete failed: %w", err)
	}
	return nil
}
