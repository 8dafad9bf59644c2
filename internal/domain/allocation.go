package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Allocation is a user's capital commitment to a bot, debited from the
// wallet balance at creation time.
type Allocation struct {
	ID        int64           `json:"id"`
	UserID    uuid.UUID       `json:"user_id"`
	BotID     int64           `json:"bot_id"`
	Amount    decimal.Decimal `json:"amount"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
}

// AllocationWithBot joins an allocation with its bot for display.
type AllocationWithBot struct {
	Allocation
	Bot Bot `json:"bot"`
}
