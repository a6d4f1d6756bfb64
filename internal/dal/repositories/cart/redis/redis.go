package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	goredis "github.com/go-redis/redis/v8"
	"github.com/spf13/viper"

	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/dal/redis"
	"github.com/Grupo-1-Turma-JS10/garcon-delivery/internal/service/models/cart"
)

// RedisCartRepository keeps carts in Redis so they survive restarts. One key
// per client, JSON payload, sliding TTL refreshed on every save.
type RedisCartRepository struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisCartRepository creates a new Redis cart repository.
func NewRedisCartRepository(client *redis.Client) *RedisCartRepository {
	ttlHours := viper.GetInt("cart.ttl_hours")
	if ttlHours == 0 {
		ttlHours = 72
	}

	return &RedisCartRepository{
		client: client,
		ttl:    time.Duration(ttlHours) * time.Hour,
	}
}

func cartKey(clientID int64) string {
	return fmt.Sprintf("garcon:cart:%d", clientID)
}

// Get loads a cart. A missing key yields an empty unbound cart.
func (r *RedisCartRepository) Get(ctx context.Context, clientID int64) (*cart.Cart, error) {
	payload, err := r.client.DB().Get(ctx, cartKey(clientID)).Bytes()
	if err != nil {
		if errors.Is(err, goredis.Nil) {
			return &cart.Cart{ClientID: clientID}, nil
		}

		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	var c cart.Cart
	if err := json.Unmarshal(payload, &c); err != nil {
		return nil, fmt.Errorf("failed to decode cart: %w", err)
	}

	return &c, nil
}

// Save persists a cart snapshot and refreshes its TTL.
func (r *RedisCartRepository) Save(ctx context.Context, c *cart.Cart) error {
	payload, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to encode cart: %w", err)
	}

	if err := r.client.DB().Set(ctx, cartKey(c.ClientID), payload, r.ttl).Err(); err != nil {
		return fmt.Errorf("failed to save cart: %w", err)
	}

	return nil
}

// Delete removes a cart.
func (r *RedisCartRepository) Delete(ctx context.Context, clientID int64) error {
	if err := r.client.DB().Del(ctx, cartKey(clientID)).Err(); err != nil {
		return fmt.Errorf("failed to delete cart: %w", err)
	}

	return nil
}
