package cache

import (
	"context"
	"testing"
	"time"

	"github.com/go-redis/redis/v8"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/barbershop-manager/internal/config"
)

func TestConnect_DisabledWithoutAddr(t *testing.T) {
	client, err := Connect(context.Background(), config.RedisConfig{})
	require.NoError(t, err)
	require.Nil(t, client)
}

func TestFake_RoundTrip(t *testing.T) {
	ctx := context.Background()
	f := NewFake()

	require.NoError(t, f.Set(ctx, "k", "v", time.Minute).Err())
	v, err := f.Get(ctx, "k").Result()
	require.NoError(t, err)
	require.Equal(t, "v", v)
	require.Equal(t, time.Minute, f.TTL("k"))

	n, err := f.Exists(ctx, "k", "missing").Result()
	require.NoError(t, err)
	require.Equal(t, int64(1), n)

	require.Equal(t, int64(1), f.Del(ctx, "k").Val())
	_, err = f.Get(ctx, "k").Result()
	require.ErrorIs(t, err, redis.Nil)
}
