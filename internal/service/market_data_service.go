package service

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
)

// Candle is a single synthetic OHLC bar
type Candle struct {
	Time   time.Time       `json:"time"`
	Open   decimal.Decimal `json:"open"`
	High   decimal.Decimal `json:"high"`
	Low    decimal.Decimal `json:"low"`
	Close  decimal.Decimal `json:"close"`
	Volume decimal.Decimal `json:"volume"`
}

// basePrices anchors the random walk per asset so charts look plausible
var basePrices = map[string]float64{
	"BTC/USDT": 43000,
	"ETH/USDT": 2300,
	"SOL/USDT": 98,
	"BNB/USDT": 310,
}

var timeframeSteps = map[string]time.Duration{
	"1m":  time.Minute,
	"5m":  5 * time.Minute,
	"15m": 15 * time.Minute,
	"1h":  time.Hour,
	"4h":  4 * time.Hour,
	"1d":  24 * time.Hour,
}

const candlesPerRequest = 96

// MarketDataService generates synthetic OHLC candles. There is no market
// connectivity anywhere in this platform; charts are decorative and the
// series is regenerated on every request. The package-level rand source is
// used because handlers call this concurrently.
type MarketDataService struct{}

// NewMarketDataService creates a new MarketDataService
func NewMarketDataService() *MarketDataService {
	return &MarketDataService{}
}

// SupportedTimeframe reports whether tf is a known timeframe
func SupportedTimeframe(tf string) bool {
	_, ok := timeframeSteps[tf]
	return ok
}

// GenerateOHLC produces a random-walk candle series for the asset ending
// at the current time. Unknown assets start from a generic base price.
func (s *MarketDataService) GenerateOHLC(asset, timeframe string) ([]Candle, error) {
	step, ok := timeframeSteps[timeframe]
	if !ok {
		return nil, fmt.Errorf("unsupported timeframe: %q", timeframe)
	}

	base, ok := basePrices[asset]
	if !ok {
		base = 100
	}

	now := time.Now().UTC().Truncate(step)
	start := now.Add(-time.Duration(candlesPerRequest-1) * step)

	candles := make([]Candle, 0, candlesPerRequest)
	price := base * (0.97 + rand.Float64()*0.06)

	for i := 0; i < candlesPerRequest; i++ {
		open := price

		// Drift up to ±0.8% per bar, with intrabar wicks beyond the body
		change := (rand.Float64() - 0.5) * 0.016
		closePrice := open * (1 + change)

		bodyHigh := open
		bodyLow := closePrice
		if closePrice > open {
			bodyHigh = closePrice
			bodyLow = open
		}
		high := bodyHigh * (1 + rand.Float64()*0.004)
		low := bodyLow * (1 - rand.Float64()*0.004)
		volume := base * (0.5 + rand.Float64()*2.0)

		candles = append(candles, Candle{
			Time:   start.Add(time.Duration(i) * step),
			Open:   decimal.NewFromFloat(open).Round(2),
			High:   decimal.NewFromFloat(high).Round(2),
			Low:    decimal.NewFromFloat(low).Round(2),
			Close:  decimal.NewFromFloat(closePrice).Round(2),
			Volume: decimal.NewFromFloat(volume).Round(2),
		})

		price = closePrice
	}

	return candles, nil
}
