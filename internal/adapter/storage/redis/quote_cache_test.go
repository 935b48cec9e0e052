package redis

import (
	"context"
	"testing"
	"time"

	"tron-wallet-service/internal/core/ports"

	"github.com/alicebob/miniredis/v2"
	goredis "github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestQuoteCache_SetAndGet(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewQuoteCache(client)
	ctx := context.Background()

	// Get before set => nil, nil (miss)
	quote, err := cache.Get(ctx)
	assert.NoError(t, err)
	assert.Nil(t, quote)

	fresh := &ports.PriceQuote{USD: 0.1234, VND: 3122.02, Change24h: -1.1}
	err = cache.Set(ctx, fresh, 30*time.Second)
	require.NoError(t, err)

	quote, err = cache.Get(ctx)
	require.NoError(t, err)
	require.NotNil(t, quote)
	assert.Equal(t, fresh, quote)
}

func TestQuoteCache_TTLExpiry(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewQuoteCache(client)
	ctx := context.Background()

	err := cache.Set(ctx, &ports.PriceQuote{USD: 0.12}, 1*time.Second)
	require.NoError(t, err)

	// Fast-forward time in miniredis
	s.FastForward(2 * time.Second)

	quote, err := cache.Get(ctx)
	assert.NoError(t, err)
	assert.Nil(t, quote, "expired quote should read as a miss")
}

func TestQuoteCache_Overwrite(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewQuoteCache(client)
	ctx := context.Background()

	require.NoError(t, cache.Set(ctx, &ports.PriceQuote{USD: 0.11}, time.Hour))
	require.NoError(t, cache.Set(ctx, &ports.PriceQuote{USD: 0.12}, time.Hour))

	quote, err := cache.Get(ctx)
	require.NoError(t, err)
	assert.Equal(t, 0.12, quote.USD)
}

func TestQuoteCache_CorruptValue(t *testing.T) {
	s := miniredis.RunT(t)
	client := goredis.NewClient(&goredis.Options{Addr: s.Addr()})
	cache := NewQuoteCache(client)
	ctx := context.Background()

	require.NoError(t, s.Set("price:trx", "{not json"))

	_, err := cache.Get(ctx)
	assert.Error(t, err)
}
