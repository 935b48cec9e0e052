package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/internal/core/ports/mocks"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"
)

func setupPriceService(t *testing.T) (
	*PriceServiceImpl,
	*mocks.MockPriceSource,
	*mocks.MockQuoteCache,
	*gomock.Controller,
) {
	ctrl := gomock.NewController(t)
	source := mocks.NewMockPriceSource(ctrl)
	cache := mocks.NewMockQuoteCache(ctrl)
	svc := NewPriceService(source, cache, 30*time.Second, zerolog.Nop())
	return svc, source, cache, ctrl
}

func TestPriceService_Quote_CacheHit(t *testing.T) {
	svc, _, cache, ctrl := setupPriceService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	cached := &ports.PriceQuote{USD: 0.12, VND: 3036, Change24h: 1.5}
	cache.EXPECT().Get(ctx).Return(cached, nil)

	quote, err := svc.Quote(ctx)
	require.NoError(t, err)
	assert.Equal(t, cached, quote)
}

func TestPriceService_Quote_CacheMissFetchesAndCaches(t *testing.T) {
	svc, source, cache, ctrl := setupPriceService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	fresh := &ports.PriceQuote{USD: 0.13, VND: 3289, Change24h: -0.4}

	cache.EXPECT().Get(ctx).Return(nil, nil)
	source.EXPECT().FetchQuote(ctx).Return(fresh, nil)
	cache.EXPECT().Set(ctx, fresh, 30*time.Second).Return(nil)

	quote, err := svc.Quote(ctx)
	require.NoError(t, err)
	assert.Equal(t, fresh, quote)
}

func TestPriceService_Quote_CacheErrorDegradesToFeed(t *testing.T) {
	svc, source, cache, ctrl := setupPriceService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	fresh := &ports.PriceQuote{USD: 0.13}

	cache.EXPECT().Get(ctx).Return(nil, errors.New("redis down"))
	source.EXPECT().FetchQuote(ctx).Return(fresh, nil)
	cache.EXPECT().Set(ctx, fresh, 30*time.Second).Return(errors.New("redis down"))

	quote, err := svc.Quote(ctx)
	require.NoError(t, err, "cache failures must not surface to the caller")
	assert.Equal(t, fresh, quote)
}

func TestPriceService_Quote_FeedFailure(t *testing.T) {
	svc, source, cache, ctrl := setupPriceService(t)
	defer ctrl.Finish()

	ctx := context.Background()
	cache.EXPECT().Get(ctx).Return(nil, nil)
	source.EXPECT().FetchQuote(ctx).Return(nil, errors.New("all feeds unreachable"))

	_, err := svc.Quote(ctx)
	require.Error(t, err)
}
