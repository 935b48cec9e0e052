package price

import (
	"context"
	"fmt"
	"strconv"

	"tron-wallet-service/config"
	"tron-wallet-service/internal/core/ports"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// usdToVNDRate approximates the VND quote when the fallback feed only
// carries USD pairs.
const usdToVNDRate = 25300

// Feed implements ports.PriceSource: CoinGecko first, Binance as
// fallback, and a zero quote when neither answers — price display is
// cosmetic, so degrading beats failing.
type Feed struct {
	http         *resty.Client
	coinGeckoURL string
	binanceURL   string
	log          zerolog.Logger
}

// NewFeed creates a price feed from config.
func NewFeed(cfg config.PriceConfig, log zerolog.Logger) *Feed {
	return &Feed{
		http:         resty.New(),
		coinGeckoURL: cfg.CoinGeckoURL,
		binanceURL:   cfg.BinanceURL,
		log:          log,
	}
}

type coinGeckoResponse struct {
	Tron *struct {
		USD          float64 `json:"usd"`
		VND          float64 `json:"vnd"`
		USD24hChange float64 `json:"usd_24h_change"`
	} `json:"tron"`
}

type binanceTicker struct {
	LastPrice          string `json:"lastPrice"`
	PriceChangePercent string `json:"priceChangePercent"`
}

// FetchQuote returns the current TRX quote.
func (f *Feed) FetchQuote(ctx context.Context) (*ports.PriceQuote, error) {
	if quote, err := f.fromCoinGecko(ctx); err == nil {
		return quote, nil
	} else {
		f.log.Debug().Err(err).Msg("coingecko fetch failed, trying binance")
	}

	if quote, err := f.fromBinance(ctx); err == nil {
		return quote, nil
	} else {
		f.log.Debug().Err(err).Msg("binance fetch failed")
	}

	f.log.Warn().Msg("all price feeds unreachable, serving zero quote")
	return &ports.PriceQuote{}, nil
}

func (f *Feed) fromCoinGecko(ctx context.Context) (*ports.PriceQuote, error) {
	var out coinGeckoResponse
	resp, err := f.http.R().
		SetContext(ctx).
		SetQueryParams(map[string]string{
			"ids":                 "tron",
			"vs_currencies":       "usd,vnd",
			"include_24hr_change": "true",
		}).
		SetHeader("Accept", "application/json").
		SetResult(&out).
		Get(f.coinGeckoURL)
	if err != nil {
		return nil, fmt.Errorf("coingecko: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("coingecko: status %s", resp.Status())
	}
	if out.Tron == nil {
		return nil, fmt.Errorf("coingecko: no tron entry in response")
	}

	return &ports.PriceQuote{
		USD:       out.Tron.USD,
		VND:       out.Tron.VND,
		Change24h: out.Tron.USD24hChange,
	}, nil
}

func (f *Feed) fromBinance(ctx context.Context) (*ports.PriceQuote, error) {
	var out binanceTicker
	resp, err := f.http.R().
		SetContext(ctx).
		SetQueryParam("symbol", "TRXUSDT").
		SetResult(&out).
		Get(f.binanceURL)
	if err != nil {
		return nil, fmt.Errorf("binance: %w", err)
	}
	if resp.IsError() {
		return nil, fmt.Errorf("binance: status %s", resp.Status())
	}

	usd, err := strconv.ParseFloat(out.LastPrice, 64)
	if err != nil {
		return nil, fmt.Errorf("binance: parse lastPrice: %w", err)
	}
	change, err := strconv.ParseFloat(out.PriceChangePercent, 64)
	if err != nil {
		return nil, fmt.Errorf("binance: parse priceChangePercent: %w", err)
	}

	return &ports.PriceQuote{
		USD:       usd,
		VND:       usd * usdToVNDRate,
		Change24h: change,
	}, nil
}
