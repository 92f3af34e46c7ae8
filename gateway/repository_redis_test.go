package gateway_test

import (
	"context"
	"errors"
	"os"
	"testing"

	"github.com/alovak/payment-gateway/gateway"
	"github.com/alovak/payment-gateway/gateway/models"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
)

// TestRedisRepository exercises the Redis backend against a real instance.
// Skips unless REDIS_ADDR is provided and STORE_BACKEND=redis.
func TestRedisRepository(t *testing.T) {
	if os.Getenv("STORE_BACKEND") != "redis" {
		t.Skip("STORE_BACKEND != redis; skipping Redis integration test")
	}
	addr := os.Getenv("REDIS_ADDR")
	if addr == "" {
		t.Skip("REDIS_ADDR not set; skipping Redis integration test")
	}

	cache := redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: os.Getenv("REDIS_PASSWORD"),
	})
	defer cache.Close()

	ctx := context.Background()
	require.NoError(t, cache.Ping(ctx).Err())

	repo := gateway.NewRedisRepository(cache)

	payment := &models.Payment{
		ID:                 uuid.New().String(),
		Amount:             15000,
		CardNumberLastFour: "1111",
		Currency:           "EUR",
		ExpiryMonth:        3,
		ExpiryYear:         2030,
		Status:             models.StatusDeclined,
	}

	require.NoError(t, repo.Add(ctx, payment))

	got, err := repo.Get(ctx, payment.ID)
	require.NoError(t, err)
	require.Equal(t, payment, got)

	// Duplicate insert surfaces as a conflict, not a silent overwrite.
	dup := *payment
	dup.Status = models.StatusAuthorized
	err = repo.Add(ctx, &dup)
	require.True(t, errors.Is(err, gateway.ErrConflict))

	got, err = repo.Get(ctx, payment.ID)
	require.NoError(t, err)
	require.Equal(t, models.StatusDeclined, got.Status)

	_, err = repo.Get(ctx, uuid.New().String())
	require.True(t, errors.Is(err, gateway.ErrNotFound))
}
