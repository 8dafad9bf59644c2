package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestDrawDailyPercentageBounds(t *testing.T) {
	dailyCap := decimal.RequireFromString("8.00")
	lower := decimal.RequireFromString("-2.8")

	for i := 0; i < 1000; i++ {
		pct := drawDailyPercentage(dailyCap)
		assert.True(t, pct.GreaterThanOrEqual(lower), "draw %d: %s", i, pct)
		assert.True(t, pct.LessThanOrEqual(dailyCap), "draw %d: %s", i, pct)
	}
}

func TestDrawDailyPercentageZeroCapFallsBack(t *testing.T) {
	lower := decimal.RequireFromString("-5.6")
	upper := decimal.RequireFromString("16")

	for i := 0; i < 1000; i++ {
		pct := drawDailyPercentage(decimal.Zero)
		assert.True(t, pct.GreaterThanOrEqual(lower), "draw %d: %s", i, pct)
		assert.True(t, pct.LessThanOrEqual(upper), "draw %d: %s", i, pct)
	}
}
