package repository

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"botfolio/internal/domain"
)

// queryable is satisfied by both *pgxpool.Pool and pgx.Tx, so every
// repository can run against the pool or inside a transaction.
type queryable interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Store implements domain.Store on PostgreSQL.
type Store struct {
	pool *pgxpool.Pool // nil when the store is transaction-scoped
	q    queryable

	wallets      *WalletRepository
	transactions *TransactionRepository
	allocations  *AllocationRepository
	bots         *BotRepository
	performances *DailyPerformanceRepository
	positions    *PositionRepository
	users        *UserRepository
}

// NewStore creates a Store backed by the connection pool.
func NewStore(pool *pgxpool.Pool) *Store {
	s := newStore(pool)
	s.pool = pool
	return s
}

func newStore(q queryable) *Store {
	return &Store{
		q:            q,
		wallets:      &WalletRepository{q: q},
		transactions: &TransactionRepository{q: q},
		allocations:  &AllocationRepository{q: q},
		bots:         &BotRepository{q: q},
		performances: &DailyPerformanceRepository{q: q},
		positions:    &PositionRepository{q: q},
		users:        &UserRepository{q: q},
	}
}

func (s *Store) Wallets() domain.WalletRepository                { return s.wallets }
func (s *Store) Transactions() domain.TransactionRepository      { return s.transactions }
func (s *Store) Allocations() domain.AllocationRepository        { return s.allocations }
func (s *Store) Bots() domain.BotRepository                      { return s.bots }
func (s *Store) Performances() domain.DailyPerformanceRepository { return s.performances }
func (s *Store) Positions() domain.PositionRepository            { return s.positions }
func (s *Store) Users() domain.UserRepository                    { return s.users }

// WithinTx executes fn with a transaction-scoped Store. The transaction is
// rolled back when fn returns an error and committed otherwise. Nested
// calls reuse the enclosing transaction.
func (s *Store) WithinTx(ctx context.Context, fn func(domain.Store) error) error {
	if s.pool == nil {
		return fn(s)
	}

	tx, err := s.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	if err := fn(newStore(tx)); err != nil {
		return err
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit transaction: %w", err)
	}

	return nil
}
