package redis_test

import (
	"context"
	"testing"
	"time"

	"payments-pipeline/internal/adapter/storage/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitStore_Incr(t *testing.T) {
	mr := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: mr.Addr()})
	defer client.Close()

	store := redis.NewRateLimitStore(client)
	ctx := context.Background()

	t.Run("counts within a window bucket", func(t *testing.T) {
		for want := int64(1); want <= 3; want++ {
			count, err := store.Incr(ctx, "merchant", "merch-001", 100, time.Minute)
			require.NoError(t, err)
			assert.Equal(t, want, count)
		}
	})

	t.Run("dimensions are independent", func(t *testing.T) {
		count, err := store.Incr(ctx, "customer", "merch-001", 100, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("buckets are independent", func(t *testing.T) {
		count, err := store.Incr(ctx, "merchant", "merch-001", 101, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("counter expires after the window", func(t *testing.T) {
		_, err := store.Incr(ctx, "account", "acct-001", 200, time.Minute)
		require.NoError(t, err)

		mr.FastForward(62 * time.Second)

		count, err := store.Incr(ctx, "account", "acct-001", 200, time.Minute)
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
