package http

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"botfolio/internal/domain"
	"botfolio/internal/service"
)

// MarketHandler handles positions and synthetic market data
type MarketHandler struct {
	positionRepo domain.PositionRepository
	marketData   *service.MarketDataService
}

// NewMarketHandler creates a new MarketHandler
func NewMarketHandler(positionRepo domain.PositionRepository, marketData *service.MarketDataService) *MarketHandler {
	return &MarketHandler{positionRepo: positionRepo, marketData: marketData}
}

// ListPositions returns positions, optionally filtered by bot
// GET /api/positions?botId=
func (h *MarketHandler) ListPositions(c echo.Context) error {
	var botID *int64
	if raw := c.QueryParam("botId"); raw != "" {
		id, err := strconv.ParseInt(raw, 10, 64)
		if err != nil {
			return BadRequestResponse(c, "Invalid botId")
		}
		botID = &id
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	positions, err := h.positionRepo.List(ctx, botID)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch positions", err)
	}

	return SuccessResponse(c, positions)
}

// GetOHLC returns a synthetic candle series
// GET /api/market/ohlc?asset=&tf=
func (h *MarketHandler) GetOHLC(c echo.Context) error {
	asset := c.QueryParam("asset")
	if asset == "" {
		asset = "BTC/USDT"
	}
	tf := c.QueryParam("tf")
	if tf == "" {
		tf = "1h"
	}
	if !service.SupportedTimeframe(tf) {
		return BadRequestResponse(c, "Invalid timeframe")
	}

	candles, err := h.marketData.GenerateOHLC(asset, tf)
	if err != nil {
		return BadRequestResponse(c, err.Error())
	}

	return SuccessResponse(c, candles)
}
