package domain

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Transaction is an auditable record of a money-movement event.
// Deposits and withdrawals are created PENDING and settle only when an
// admin approves them; allocations and profit credits are COMPLETED
// immediately. A PENDING transaction transitions exactly once to
// COMPLETED or FAILED, and terminal states are final.
type Transaction struct {
	ID          int64           `json:"id"`
	UserID      uuid.UUID       `json:"user_id"`
	Type        string          `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Status      string          `json:"status"`
	Description string          `json:"description"`
	CreatedAt   time.Time       `json:"created_at"`
}

// TransactionType constants
const (
	TxTypeDeposit    = "DEPOSIT"
	TxTypeWithdrawal = "WITHDRAWAL"
	TxTypeAllocation = "ALLOCATION"
	TxTypeProfit     = "PROFIT"
)

// TransactionStatus constants
const (
	TxStatusPending   = "PENDING"
	TxStatusCompleted = "COMPLETED"
	TxStatusFailed    = "FAILED"
)

// PendingTransaction pairs a pending transaction with the requesting user,
// for the admin review queue.
type PendingTransaction struct {
	Transaction
	User User `json:"user"`
}
