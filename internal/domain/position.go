package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Position is a synthetic historical trade attributed to a bot. Purely
// descriptive; seeded for display and never settled against wallets.
type Position struct {
	ID               int64           `json:"id"`
	BotID            int64           `json:"bot_id"`
	Asset            string          `json:"asset"`
	Type             string          `json:"type"`
	EntryPrice       decimal.Decimal `json:"entry_price"`
	ExitPrice        decimal.Decimal `json:"exit_price"`
	ProfitPercentage decimal.Decimal `json:"profit_percentage"`
	Status           string          `json:"status"`
	OpenedAt         time.Time       `json:"opened_at"`
	ClosedAt         *time.Time      `json:"closed_at,omitempty"`
}

// PositionType constants
const (
	PositionBuy  = "BUY"
	PositionSell = "SELL"
)

// PositionStatus constants
const (
	PositionOpen   = "OPEN"
	PositionClosed = "CLOSED"
)
