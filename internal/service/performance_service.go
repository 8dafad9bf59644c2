package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"botfolio/internal/domain"
	"botfolio/internal/usecase"
)

// PerformanceService synthesizes one daily performance record per active
// bot and settles the resulting profit into allocated wallets through the
// ledger. It backs the daily cron job; admins can also post records
// manually.
type PerformanceService struct {
	store  domain.Store
	ledger *usecase.LedgerService
}

// NewPerformanceService creates a new PerformanceService
func NewPerformanceService(store domain.Store, ledger *usecase.LedgerService) *PerformanceService {
	return &PerformanceService{store: store, ledger: ledger}
}

// GenerateDaily records today's synthetic performance for every ACTIVE bot
// that does not have one yet. Individual bot failures are logged and
// skipped so one bad row cannot starve the rest.
func (s *PerformanceService) GenerateDaily(ctx context.Context) error {
	bots, err := s.store.Bots().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bots: %w", err)
	}

	today := time.Now().UTC().Truncate(24 * time.Hour)

	for i := range bots {
		bot := &bots[i]
		if bot.Status != domain.BotStatusActive {
			continue
		}

		exists, err := s.store.Performances().ExistsForDate(ctx, bot.ID, today)
		if err != nil {
			logrus.WithError(err).WithField("bot_id", bot.ID).Error("Failed to check daily performance")
			continue
		}
		if exists {
			continue
		}

		pct := drawDailyPercentage(bot.DailyCapPercentage)
		if _, err := s.ledger.RecordDailyPerformance(ctx, bot, today, pct); err != nil {
			logrus.WithError(err).WithField("bot_id", bot.ID).Error("Failed to record daily performance")
		}
	}

	return nil
}

// drawDailyPercentage draws a synthetic daily return. Skewed positive so
// the simulation looks attractive, capped by the bot's daily cap, with a
// bounded downside.
func drawDailyPercentage(dailyCap decimal.Decimal) decimal.Decimal {
	capF, _ := dailyCap.Float64()
	if capF <= 0 {
		capF = 16.0
	}

	// Draw in [-0.35*cap, cap]
	pct := (rand.Float64()*1.35 - 0.35) * capF
	return decimal.NewFromFloat(pct).Round(2)
}
