package service

import (
	"context"
	"fmt"
	"math/rand"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"botfolio/internal/domain"
)

var seedAssets = []string{"BTC/USDT", "ETH/USDT", "SOL/USDT", "BNB/USDT"}

var seedBots = []domain.Bot{
	{
		Name:               "Falcon Scalper",
		Type:               domain.BotTypeScalping,
		Description:        "High-frequency scalping on tight spreads across major pairs.",
		RiskLevel:          domain.RiskHigh,
		DailyCapPercentage: decimal.RequireFromString("16.00"),
		Status:             domain.BotStatusActive,
	},
	{
		Name:               "Trend Rider",
		Type:               domain.BotTypeTrend,
		Description:        "Follows medium-term momentum with trailing exits.",
		RiskLevel:          domain.RiskMedium,
		DailyCapPercentage: decimal.RequireFromString("8.00"),
		Status:             domain.BotStatusActive,
	},
	{
		Name:               "Range Harvester",
		Type:               domain.BotTypeRange,
		Description:        "Buys support and sells resistance inside established ranges.",
		RiskLevel:          domain.RiskLow,
		DailyCapPercentage: decimal.RequireFromString("4.00"),
		Status:             domain.BotStatusActive,
	},
	{
		Name:               "Event Horizon",
		Type:               domain.BotTypeEvent,
		Description:        "Positions around scheduled macro and exchange events.",
		RiskLevel:          domain.RiskHigh,
		DailyCapPercentage: decimal.RequireFromString("12.00"),
		Status:             domain.BotStatusActive,
	},
	{
		Name:               "Sentinel",
		Type:               domain.BotTypeSentinel,
		Description:        "Defensive rotation that parks capital during drawdowns.",
		RiskLevel:          domain.RiskLow,
		DailyCapPercentage: decimal.RequireFromString("3.00"),
		Status:             domain.BotStatusPaused,
	},
}

// SeedService populates reference data on startup: the bot catalog,
// synthetic positions for display, and the bootstrap admin account.
type SeedService struct {
	store domain.Store
}

// NewSeedService creates a new SeedService
func NewSeedService(store domain.Store) *SeedService {
	return &SeedService{store: store}
}

// Run seeds everything that is missing. Idempotent: existing data is left
// untouched.
func (s *SeedService) Run(ctx context.Context, adminUsername, adminPassword string) error {
	if err := s.seedBots(ctx); err != nil {
		return err
	}
	if err := s.seedPositions(ctx); err != nil {
		return err
	}
	return s.ensureAdminUser(ctx, adminUsername, adminPassword)
}

func (s *SeedService) seedBots(ctx context.Context) error {
	bots, err := s.store.Bots().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bots: %w", err)
	}
	if len(bots) > 0 {
		return nil
	}

	logrus.Info("Seeding bot catalog...")
	for i := range seedBots {
		if _, err := s.store.Bots().Create(ctx, &seedBots[i]); err != nil {
			return fmt.Errorf("failed to seed bot %q: %w", seedBots[i].Name, err)
		}
	}
	return nil
}

// seedPositions creates five synthetic positions per bot, the first one
// left OPEN, mirroring what the dashboard expects to display.
func (s *SeedService) seedPositions(ctx context.Context) error {
	count, err := s.store.Positions().Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count positions: %w", err)
	}
	if count > 0 {
		return nil
	}

	bots, err := s.store.Bots().List(ctx)
	if err != nil {
		return fmt.Errorf("failed to list bots: %w", err)
	}
	if len(bots) == 0 {
		return nil
	}

	logrus.Info("Seeding positions...")
	for _, bot := range bots {
		for i := 0; i < 5; i++ {
			pos := &domain.Position{
				BotID:            bot.ID,
				Asset:            seedAssets[rand.Intn(len(seedAssets))],
				Type:             domain.PositionBuy,
				EntryPrice:       randomPrice(),
				ExitPrice:        randomPrice(),
				ProfitPercentage: randomProfitPct(),
				Status:           domain.PositionClosed,
			}
			if rand.Float64() > 0.5 {
				pos.Type = domain.PositionSell
			}
			if i == 0 {
				pos.Status = domain.PositionOpen
			} else {
				closedAt := time.Now().Add(-time.Duration(rand.Intn(72)) * time.Hour)
				pos.ClosedAt = &closedAt
			}

			if _, err := s.store.Positions().Create(ctx, pos); err != nil {
				return fmt.Errorf("failed to seed position: %w", err)
			}
		}
	}
	return nil
}

func (s *SeedService) ensureAdminUser(ctx context.Context, username, password string) error {
	if password == "" {
		logrus.Warn("ADMIN_PASSWORD not set, skipping admin bootstrap")
		return nil
	}

	if _, err := s.store.Users().GetByUsername(ctx, username); err == nil {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash admin password: %w", err)
	}

	admin := &domain.User{
		ID:           uuid.New(),
		Username:     username,
		PasswordHash: string(hash),
		Role:         domain.RoleAdmin,
	}
	if err := s.store.Users().Create(ctx, admin); err != nil {
		return fmt.Errorf("failed to create admin user: %w", err)
	}

	logrus.WithField("username", username).Info("Bootstrap admin user created")
	return nil
}

func randomPrice() decimal.Decimal {
	return decimal.NewFromFloat(rand.Float64()*50000 + 1000).Round(2)
}

func randomProfitPct() decimal.Decimal {
	return decimal.NewFromFloat(rand.Float64()*5 - 2).Round(2)
}
