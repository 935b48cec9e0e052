package redis

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"tron-wallet-service/internal/core/ports"

	goredis "github.com/redis/go-redis/v9"
)

// QuoteCache implements ports.QuoteCache using Redis. One key holds the
// latest TRX quote; the TTL bounds staleness.
type QuoteCache struct {
	client *goredis.Client
	key    string
}

// NewQuoteCache creates a new Redis-backed quote cache.
func NewQuoteCache(client *goredis.Client) *QuoteCache {
	return &QuoteCache{
		client: client,
		key:    "price:trx",
	}
}

// Get retrieves the cached quote. Returns nil, nil on a miss.
func (c *QuoteCache) Get(ctx context.Context) (*ports.PriceQuote, error) {
	val, err := c.client.Get(ctx, c.key).Bytes()
	if err != nil {
		if err == goredis.Nil {
			return nil, nil
		}
		return nil, fmt.Errorf("redis quote get: %w", err)
	}

	var quote ports.PriceQuote
	if err := json.Unmarshal(val, &quote); err != nil {
		return nil, fmt.Errorf("redis quote decode: %w", err)
	}
	return &quote, nil
}

// Set stores the quote with a TTL.
func (c *QuoteCache) Set(ctx context.Context, quote *ports.PriceQuote, ttl time.Duration) error {
	raw, err := json.Marshal(quote)
	if err != nil {
		return fmt.Errorf("redis quote encode: %w", err)
	}
	if err := c.client.Set(ctx, c.key, raw, ttl).Err(); err != nil {
		return fmt.Errorf("redis quote set: %w", err)
	}
	return nil
}
