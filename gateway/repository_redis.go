package gateway

import (
	"context"
	"errors"
	"fmt"

	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/bytedance/sonic"
	"github.com/redis/go-redis/v9"
)

const paymentsKey = "payments"

type redisRepository struct {
	cache *redis.Client
}

// NewRedisRepository constructs a repository keeping payments as fields of a
// single Redis hash.
func NewRedisRepository(cache *redis.Client) Repository {
	return &redisRepository{cache: cache}
}

func (r *redisRepository) Add(ctx context.Context, payment *models.Payment) error {
	payload, err := sonic.Marshal(payment)
	if err != nil {
		return fmt.Errorf("encoding payment: %w", err)
	}

	// Insert-only: an existing ID must not be overwritten.
	ok, err := r.cache.HSetNX(ctx, paymentsKey, payment.ID, payload).Result()
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("payment %s already exists: %w", payment.ID, ErrConflict)
	}

	return nil
}

func (r *redisRepository) Get(ctx context.Context, id string) (*models.Payment, error) {
	data, err := r.cache.HGet(ctx, paymentsKey, id).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrNotFound
		}
		return nil, err
	}

	var payment models.Payment
	if err := sonic.Unmarshal([]byte(data), &payment); err != nil {
		return nil, fmt.Errorf("decoding payment: %w", err)
	}

	return &payment, nil
}

func (r *redisRepository) Ping(ctx context.Context) error {
	return r.cache.Ping(ctx).Err()
}
