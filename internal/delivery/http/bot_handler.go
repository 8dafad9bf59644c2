package http

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"

	"botfolio/internal/domain"
)

const recentPerformanceDays = 7

// BotHandler handles public bot catalog requests
type BotHandler struct {
	botRepo  domain.BotRepository
	perfRepo domain.DailyPerformanceRepository
}

// NewBotHandler creates a new BotHandler
func NewBotHandler(botRepo domain.BotRepository, perfRepo domain.DailyPerformanceRepository) *BotHandler {
	return &BotHandler{botRepo: botRepo, perfRepo: perfRepo}
}

// List returns all bots with their recent performance window
// GET /api/bots
func (h *BotHandler) List(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bots, err := h.botRepo.List(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch bots", err)
	}

	result := make([]domain.BotWithPerformance, 0, len(bots))
	for _, bot := range bots {
		perf, err := h.perfRepo.ListRecentByBot(ctx, bot.ID, recentPerformanceDays)
		if err != nil {
			return InternalServerErrorResponse(c, "Failed to fetch bot performance", err)
		}
		result = append(result, domain.BotWithPerformance{Bot: bot, RecentPerformance: perf})
	}

	return SuccessResponse(c, result)
}

// Get returns a single bot
// GET /api/bots/:id
func (h *BotHandler) Get(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NotFoundResponse(c, "Bot not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bot, err := h.botRepo.GetByID(ctx, id)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, bot)
}
