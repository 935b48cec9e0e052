package service

import (
	"context"
	"fmt"
	"time"

	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/pkg/apperror"

	"github.com/rs/zerolog"
)

// PriceServiceImpl implements ports.PriceService: a short-TTL cache in
// front of the external price feed, so dashboard polling does not burn
// through the feed's rate limits.
type PriceServiceImpl struct {
	source ports.PriceSource
	cache  ports.QuoteCache
	ttl    time.Duration
	log    zerolog.Logger
}

// NewPriceService creates a new PriceServiceImpl.
func NewPriceService(source ports.PriceSource, cache ports.QuoteCache, ttl time.Duration, log zerolog.Logger) *PriceServiceImpl {
	return &PriceServiceImpl{source: source, cache: cache, ttl: ttl, log: log}
}

// Quote returns the cached TRX quote, fetching and caching on a miss.
// Cache errors degrade to a direct fetch.
func (s *PriceServiceImpl) Quote(ctx context.Context) (*ports.PriceQuote, error) {
	cached, err := s.cache.Get(ctx)
	if err != nil {
		s.log.Warn().Err(err).Msg("price cache read failed, falling through to feed")
	}
	if cached != nil {
		return cached, nil
	}

	quote, err := s.source.FetchQuote(ctx)
	if err != nil {
		return nil, apperror.InternalError(fmt.Errorf("fetch quote: %w", err))
	}

	if err := s.cache.Set(ctx, quote, s.ttl); err != nil {
		s.log.Warn().Err(err).Msg("price cache write failed")
	}

	return quote, nil
}
