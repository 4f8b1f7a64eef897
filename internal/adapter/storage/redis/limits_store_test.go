package redis_test

import (
	"context"
	"testing"
	"time"

	"payments-pipeline/internal/adapter/storage/redis"
	"payments-pipeline/internal/core/domain"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLimitsStore_PolicyCache(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewLimitsStore(client)
	ctx := context.Background()

	policy := &domain.LimitsPolicy{
		Rail:                  domain.MethodPIX,
		MinAmount:             decimal.RequireFromString("0.01"),
		MaxAmount:             decimal.RequireFromString("5000.00"),
		DailyLimitAmount:      decimal.RequireFromString("20000.00"),
		VelocityLimitCount:    10,
		VelocityWindowSeconds: 60,
	}

	t.Run("miss returns nil", func(t *testing.T) {
		got, err := store.GetPolicy(ctx, domain.MethodPIX)
		require.NoError(t, err)
		assert.Nil(t, got)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.SetPolicy(ctx, policy, time.Minute))

		got, err := store.GetPolicy(ctx, domain.MethodPIX)
		require.NoError(t, err)
		require.NotNil(t, got)
		assert.Equal(t, domain.MethodPIX, got.Rail)
		assert.True(t, got.MaxAmount.Equal(policy.MaxAmount))
		assert.Equal(t, 10, got.VelocityLimitCount)
	})

	t.Run("expires after TTL", func(t *testing.T) {
		mr.FastForward(2 * time.Minute)

		got, err := store.GetPolicy(ctx, domain.MethodPIX)
		require.NoError(t, err)
		assert.Nil(t, got)
	})
}

func TestLimitsStore_DailyCounter(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewLimitsStore(client)
	ctx := context.Background()

	t.Run("missing counter", func(t *testing.T) {
		cents, found, err := store.GetDailyCents(ctx, "20260824", "cust-001", domain.MethodPIX)
		require.NoError(t, err)
		assert.False(t, found)
		assert.Zero(t, cents)
	})

	t.Run("round trip", func(t *testing.T) {
		require.NoError(t, store.SetDailyCents(ctx, "20260824", "cust-001", domain.MethodPIX, 123450, time.Hour))

		cents, found, err := store.GetDailyCents(ctx, "20260824", "cust-001", domain.MethodPIX)
		require.NoError(t, err)
		assert.True(t, found)
		assert.Equal(t, int64(123450), cents)
	})

	t.Run("days are independent", func(t *testing.T) {
		_, found, err := store.GetDailyCents(ctx, "20260825", "cust-001", domain.MethodPIX)
		require.NoError(t, err)
		assert.False(t, found)
	})
}

func TestLimitsStore_Velocity(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewLimitsStore(client)
	ctx := context.Background()
	window := time.Minute

	t.Run("empty window", func(t *testing.T) {
		count, err := store.VelocityCount(ctx, "cust-001", domain.MethodPIX, window)
		require.NoError(t, err)
		assert.Zero(t, count)
	})

	t.Run("counts admissions", func(t *testing.T) {
		for i := 0; i < 3; i++ {
			require.NoError(t, store.VelocityAdd(ctx, "cust-001", domain.MethodPIX, window))
		}

		count, err := store.VelocityCount(ctx, "cust-001", domain.MethodPIX, window)
		require.NoError(t, err)
		assert.Equal(t, 3, count)
	})

	t.Run("rails are independent", func(t *testing.T) {
		count, err := store.VelocityCount(ctx, "cust-001", domain.MethodTED, window)
		require.NoError(t, err)
		assert.Zero(t, count)
	})
}
