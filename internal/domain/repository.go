package domain

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// WalletRepository defines the interface for wallet data operations
type WalletRepository interface {
	// GetOrCreate returns the user's wallet, creating an empty one if
	// missing. Safe under concurrent first access for the same user.
	GetOrCreate(ctx context.Context, userID uuid.UUID) (*Wallet, error)

	// Get retrieves a wallet, ErrWalletNotFound if absent
	Get(ctx context.Context, userID uuid.UUID) (*Wallet, error)

	// AdjustBalance applies delta (may be negative) as a single atomic
	// server-side increment and returns the updated wallet
	AdjustBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) (*Wallet, error)

	// DebitIfSufficient atomically debits amount only when balance >= amount.
	// Returns ErrInsufficientFunds otherwise.
	DebitIfSufficient(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*Wallet, error)

	// AddProfit atomically credits both balance and total_profit
	AddProfit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*Wallet, error)
}

// TransactionRepository defines the interface for the append-only ledger
type TransactionRepository interface {
	// Create appends a new ledger entry
	Create(ctx context.Context, tx *Transaction) (*Transaction, error)

	// GetByID retrieves a transaction, ErrTransactionNotFound if absent
	GetByID(ctx context.Context, id int64) (*Transaction, error)

	// ListByUser retrieves a user's transactions, newest first
	ListByUser(ctx context.Context, userID uuid.UUID) ([]Transaction, error)

	// ListPendingWithUsers retrieves all pending transactions joined with
	// the requesting user, newest first
	ListPendingWithUsers(ctx context.Context) ([]PendingTransaction, error)

	// ClaimPending transitions a PENDING transaction to newStatus and
	// returns the updated row. ErrTransactionNotPending when the row exists
	// but is terminal, ErrTransactionNotFound when it does not exist.
	ClaimPending(ctx context.Context, id int64, newStatus string) (*Transaction, error)
}

// AllocationRepository defines the interface for capital allocations
type AllocationRepository interface {
	// Create records a new allocation
	Create(ctx context.Context, alloc *Allocation) (*Allocation, error)

	// ListActiveByUser retrieves a user's active allocations joined with bots
	ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]AllocationWithBot, error)

	// ListActiveByBot retrieves all active allocations for a bot
	ListActiveByBot(ctx context.Context, botID int64) ([]Allocation, error)
}

// BotRepository defines the interface for the bot catalog
type BotRepository interface {
	// List retrieves all bots
	List(ctx context.Context) ([]Bot, error)

	// GetByID retrieves a bot, ErrBotNotFound if absent
	GetByID(ctx context.Context, id int64) (*Bot, error)

	// Create inserts a new bot
	Create(ctx context.Context, bot *Bot) (*Bot, error)
}

// DailyPerformanceRepository defines the interface for per-bot daily stats
type DailyPerformanceRepository interface {
	// Create appends a daily performance record
	Create(ctx context.Context, perf *DailyPerformance) (*DailyPerformance, error)

	// ListRecentByBot retrieves the most recent records for a bot
	ListRecentByBot(ctx context.Context, botID int64, limit int) ([]DailyPerformance, error)

	// ExistsForDate reports whether a record exists for the bot on the date
	ExistsForDate(ctx context.Context, botID int64, date time.Time) (bool, error)
}

// PositionRepository defines the interface for synthetic positions
type PositionRepository interface {
	// List retrieves positions newest-opened first, optionally by bot
	List(ctx context.Context, botID *int64) ([]Position, error)

	// Create inserts a new position
	Create(ctx context.Context, pos *Position) (*Position, error)

	// Count returns the number of positions
	Count(ctx context.Context) (int64, error)
}

// UserRepository defines the interface for user data operations
type UserRepository interface {
	// Create creates a new user; ErrUsernameTaken on duplicate username
	Create(ctx context.Context, user *User) error

	// GetByID retrieves a user, ErrUserNotFound if absent
	GetByID(ctx context.Context, id uuid.UUID) (*User, error)

	// GetByUsername retrieves a user by username, ErrUserNotFound if absent
	GetByUsername(ctx context.Context, username string) (*User, error)

	// ListWithWallets retrieves all users joined with their wallets
	ListWithWallets(ctx context.Context) ([]UserWithWallet, error)
}

// Store aggregates every repository and provides transactional scope.
// WithinTx runs fn with a Store whose repositories share one database
// transaction; fn returning an error rolls everything back.
type Store interface {
	Wallets() WalletRepository
	Transactions() TransactionRepository
	Allocations() AllocationRepository
	Bots() BotRepository
	Performances() DailyPerformanceRepository
	Positions() PositionRepository
	Users() UserRepository

	WithinTx(ctx context.Context, fn func(Store) error) error
}
