package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"botfolio/internal/domain"
)

const walletColumns = "user_id, balance, total_profit, is_frozen, updated_at"

// WalletRepository implements domain.WalletRepository on PostgreSQL
type WalletRepository struct {
	q queryable
}

// NewWalletRepository creates a new WalletRepository
func NewWalletRepository(q queryable) *WalletRepository {
	return &WalletRepository{q: q}
}

// GetOrCreate returns the user's wallet, creating an empty one if missing.
// ON CONFLICT DO NOTHING keeps concurrent first requests from failing.
func (r *WalletRepository) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	query := `
		INSERT INTO wallets (user_id, balance, total_profit)
		VALUES ($1, 0, 0)
		ON CONFLICT (user_id) DO NOTHING
	`

	if _, err := r.q.Exec(ctx, query, userID); err != nil {
		return nil, fmt.Errorf("failed to create wallet: %w", err)
	}

	return r.Get(ctx, userID)
}

// Get retrieves a wallet by user ID
func (r *WalletRepository) Get(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	query := `
		SELECT ` + walletColumns + `
		FROM wallets
		WHERE user_id = $1
	`

	wallet, err := scanWallet(r.q.QueryRow(ctx, query, userID))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get wallet: %w", err)
	}

	return wallet, nil
}

// AdjustBalance applies delta as a single server-side increment. Two
// concurrent adjustments serialize on the row; no update can be lost.
func (r *WalletRepository) AdjustBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) (*domain.Wallet, error) {
	query := `
		UPDATE wallets
		SET balance = balance + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + walletColumns

	wallet, err := scanWallet(r.q.QueryRow(ctx, query, userID, delta))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to adjust balance: %w", err)
	}

	return wallet, nil
}

// DebitIfSufficient debits amount only when the current balance covers it.
// The balance check and the debit are one statement, so concurrent debits
// against the same wallet cannot overspend below zero.
func (r *WalletRepository) DebitIfSufficient(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Wallet, error) {
	query := `
		UPDATE wallets
		SET balance = balance - $2, updated_at = NOW()
		WHERE user_id = $1 AND balance >= $2
		RETURNING ` + walletColumns

	wallet, err := scanWallet(r.q.QueryRow(ctx, query, userID, amount))
	if errors.Is(err, pgx.ErrNoRows) {
		// Distinguish a missing wallet from an underfunded one
		if _, getErr := r.Get(ctx, userID); getErr != nil {
			return nil, getErr
		}
		return nil, domain.ErrInsufficientFunds
	}
	if err != nil {
		return nil, fmt.Errorf("failed to debit wallet: %w", err)
	}

	return wallet, nil
}

// AddProfit credits balance and total_profit in one statement
func (r *WalletRepository) AddProfit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Wallet, error) {
	query := `
		UPDATE wallets
		SET balance = balance + $2, total_profit = total_profit + $2, updated_at = NOW()
		WHERE user_id = $1
		RETURNING ` + walletColumns

	wallet, err := scanWallet(r.q.QueryRow(ctx, query, userID, amount))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrWalletNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to add profit: %w", err)
	}

	return wallet, nil
}

func scanWallet(row pgx.Row) (*domain.Wallet, error) {
	wallet := &domain.Wallet{}
	err := row.Scan(
		&wallet.UserID,
		&wallet.Balance,
		&wallet.TotalProfit,
		&wallet.IsFrozen,
		&wallet.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return wallet, nil
}
