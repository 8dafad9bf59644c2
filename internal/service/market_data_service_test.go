package service

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSupportedTimeframe(t *testing.T) {
	for _, tf := range []string{"1m", "5m", "15m", "1h", "4h", "1d"} {
		assert.True(t, SupportedTimeframe(tf), "timeframe %q", tf)
	}
	for _, tf := range []string{"", "2h", "1w", "30s"} {
		assert.False(t, SupportedTimeframe(tf), "timeframe %q", tf)
	}
}

func TestGenerateOHLCUnsupportedTimeframe(t *testing.T) {
	svc := NewMarketDataService()
	_, err := svc.GenerateOHLC("BTC/USDT", "1w")
	assert.Error(t, err)
}

func TestGenerateOHLC(t *testing.T) {
	svc := NewMarketDataService()

	candles, err := svc.GenerateOHLC("BTC/USDT", "1h")
	require.NoError(t, err)
	require.Len(t, candles, 96)

	for i, c := range candles {
		// High must cap the bar, low must floor it
		assert.True(t, c.High.GreaterThanOrEqual(c.Open), "candle %d", i)
		assert.True(t, c.High.GreaterThanOrEqual(c.Close), "candle %d", i)
		assert.True(t, c.Low.LessThanOrEqual(c.Open), "candle %d", i)
		assert.True(t, c.Low.LessThanOrEqual(c.Close), "candle %d", i)
		assert.True(t, c.Volume.IsPositive(), "candle %d", i)

		if i > 0 {
			assert.Equal(t, time.Hour, c.Time.Sub(candles[i-1].Time), "candle %d", i)
		}
	}

	// Contiguous bars: each close seeds the next open
	for i := 1; i < len(candles); i++ {
		assert.True(t, candles[i].Open.Equal(candles[i-1].Close), "candle %d", i)
	}

	// The walk stays anchored near the asset's base price
	last := candles[len(candles)-1]
	lastClose, _ := last.Close.Float64()
	assert.Greater(t, lastClose, 43000*0.4)
	assert.Less(t, lastClose, 43000*2.5)
}

func TestGenerateOHLCUnknownAssetUsesGenericBase(t *testing.T) {
	svc := NewMarketDataService()

	candles, err := svc.GenerateOHLC("DOGE/USDT", "1d")
	require.NoError(t, err)
	require.Len(t, candles, 96)

	open, _ := candles[0].Open.Float64()
	assert.Greater(t, open, 100*0.5)
	assert.Less(t, open, 100*2.0)
}
