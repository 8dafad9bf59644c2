package dto

import (
	"time"

	"botfolio/internal/domain"
	"botfolio/internal/usecase"
)

// DepositRequest represents a deposit request payload. Amounts travel as
// decimal strings end to end; floats would lose precision.
type DepositRequest struct {
	Amount string `json:"amount" validate:"required"`
}

// WithdrawRequest represents a withdrawal request payload
type WithdrawRequest struct {
	Amount        string `json:"amount" validate:"required"`
	Network       string `json:"network" validate:"required,oneof=USDT_TRC20 TRX"`
	WalletAddress string `json:"wallet_address" validate:"required"`
}

// AllocationRequest represents an allocation request payload
type AllocationRequest struct {
	BotID  int64  `json:"bot_id" validate:"required,gt=0"`
	Amount string `json:"amount" validate:"required"`
}

// WalletOutput represents a wallet in API responses, with balances fixed
// to two decimal places for display
type WalletOutput struct {
	UserID      string `json:"user_id"`
	Balance     string `json:"balance"`
	TotalProfit string `json:"total_profit"`
	IsFrozen    bool   `json:"is_frozen"`
	UpdatedAt   string `json:"updated_at"`
}

// PortfolioOutput represents the composed portfolio view
type PortfolioOutput struct {
	TotalBalance       string                     `json:"total_balance"`
	TotalProfit        string                     `json:"total_profit"`
	Wallet             WalletOutput               `json:"wallet"`
	Allocations        []domain.AllocationWithBot `json:"allocations"`
	RecentTransactions []domain.Transaction       `json:"recent_transactions"`
}

// NewWalletOutput maps a domain wallet to its API shape
func NewWalletOutput(w *domain.Wallet) WalletOutput {
	return WalletOutput{
		UserID:      w.UserID.String(),
		Balance:     w.Balance.StringFixed(2),
		TotalProfit: w.TotalProfit.StringFixed(2),
		IsFrozen:    w.IsFrozen,
		UpdatedAt:   w.UpdatedAt.UTC().Format(time.RFC3339),
	}
}

// NewPortfolioOutput maps the usecase portfolio to its API shape
func NewPortfolioOutput(p *usecase.Portfolio) PortfolioOutput {
	return PortfolioOutput{
		TotalBalance:       p.TotalBalance.StringFixed(2),
		TotalProfit:        p.TotalProfit.StringFixed(2),
		Wallet:             NewWalletOutput(p.Wallet),
		Allocations:        p.Allocations,
		RecentTransactions: p.RecentTransactions,
	}
}
