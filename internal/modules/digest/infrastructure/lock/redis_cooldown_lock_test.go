package lock

import (
	"context"
	"testing"
	"time"

	"FleetOps/internal/modules/digest/domain/digest"
	"FleetOps/pkg/redis"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func startRedis(t *testing.T) *miniredis.Miniredis {
	t.Helper()
	mr := miniredis.RunT(t)
	redis.SetClient(goredis.NewClient(&goredis.Options{Addr: mr.Addr()}))
	t.Cleanup(func() {
		_ = redis.Close()
		redis.SetClient(nil)
	})
	return mr
}

func TestRedisCooldownAcquireRejectReacquire(t *testing.T) {
	mr := startRedis(t)
	l := NewRedisCooldownLock()
	ctx := context.Background()
	start := time.Date(2026, 1, 15, 15, 0, 0, 0, time.UTC)
	window := 15 * time.Minute

	res, err := l.TryAcquire(ctx, digest.ManualCooldownKey, "u-owner", start, window)
	require.NoError(t, err)
	assert.True(t, res.Acquired)
	assert.True(t, mr.Exists(keyPrefix+digest.ManualCooldownKey))

	mr.FastForward(5 * time.Minute)
	res, err = l.TryAcquire(ctx, digest.ManualCooldownKey, "u-owner2", start.Add(5*time.Minute), window)
	require.NoError(t, err)
	assert.False(t, res.Acquired)
	assert.Equal(t, "u-owner", res.LastRunBy)
	assert.True(t, res.LastRunAt.Equal(start))
	assert.True(t, res.NextAvailableAt.Equal(start.Add(window)))

	mr.FastForward(10 * time.Minute)
	res, err = l.TryAcquire(ctx, digest.ManualCooldownKey, "u-owner2", start.Add(window), window)
	require.NoError(t, err)
	assert.True(t, res.Acquired)
}

func TestRedisCooldownWithoutClient(t *testing.T) {
	redis.SetClient(nil)
	_, err := NewRedisCooldownLock().TryAcquire(context.Background(), "k", "u", time.Now(), time.Minute)
	assert.Error(t, err)
}
