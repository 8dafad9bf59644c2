package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Bot is a named trading strategy. Reference data, rarely mutated and
// owned by admins; no real execution happens behind it.
type Bot struct {
	ID                 int64           `json:"id"`
	Name               string          `json:"name"`
	Type               string          `json:"type"`
	Description        string          `json:"description"`
	RiskLevel          string          `json:"risk_level"`
	DailyCapPercentage decimal.Decimal `json:"daily_cap_percentage"`
	Status             string          `json:"status"`
	ImageURL           *string         `json:"image_url,omitempty"`
}

// BotType constants
const (
	BotTypeScalping = "SCALPING"
	BotTypeTrend    = "TREND"
	BotTypeRange    = "RANGE"
	BotTypeEvent    = "EVENT"
	BotTypeSentinel = "SENTINEL"
)

// RiskLevel constants
const (
	RiskLow    = "LOW"
	RiskMedium = "MEDIUM"
	RiskHigh   = "HIGH"
)

// BotStatus constants
const (
	BotStatusActive = "ACTIVE"
	BotStatusPaused = "PAUSED"
)

// DailyPerformance is one synthetic profit record per bot per day.
// Append-only history.
type DailyPerformance struct {
	ID               int64           `json:"id"`
	BotID            int64           `json:"bot_id"`
	Date             time.Time       `json:"date"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
	CreatedAt        time.Time       `json:"created_at"`
}

// BotWithPerformance joins a bot with its recent daily performance window.
type BotWithPerformance struct {
	Bot
	RecentPerformance []DailyPerformance `json:"recent_performance"`
}
