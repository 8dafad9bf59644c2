package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Wallet holds a user's balance and cumulative profit. One wallet per user,
// created lazily on first access.
type Wallet struct {
	UserID      uuid.UUID       `json:"user_id"`
	Balance     decimal.Decimal `json:"balance"`
	TotalProfit decimal.Decimal `json:"total_profit"`
	IsFrozen    bool            `json:"is_frozen"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
