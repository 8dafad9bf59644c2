package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"botfolio/internal/domain"
)

const transactionColumns = "id, user_id, type, amount, status, COALESCE(description, ''), created_at"

// TransactionRepository implements domain.TransactionRepository on PostgreSQL
type TransactionRepository struct {
	q queryable
}

// NewTransactionRepository creates a new TransactionRepository
func NewTransactionRepository(q queryable) *TransactionRepository {
	return &TransactionRepository{q: q}
}

// Create appends a new ledger entry
func (r *TransactionRepository) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	query := `
		INSERT INTO transactions (user_id, type, amount, status, description)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING ` + transactionColumns

	created, err := scanTransaction(r.q.QueryRow(ctx, query,
		tx.UserID,
		tx.Type,
		tx.Amount,
		tx.Status,
		tx.Description,
	))
	if err != nil {
		return nil, fmt.Errorf("failed to create transaction: %w", err)
	}

	return created, nil
}

// GetByID retrieves a transaction by ID
func (r *TransactionRepository) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE id = $1
	`

	tx, err := scanTransaction(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrTransactionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction %d: %w", id, err)
	}

	return tx, nil
}

// ListByUser retrieves a user's transactions, newest first
func (r *TransactionRepository) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	query := `
		SELECT ` + transactionColumns + `
		FROM transactions
		WHERE user_id = $1
		ORDER BY created_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query transactions: %w", err)
	}
	defer rows.Close()

	txs := []domain.Transaction{}
	for rows.Next() {
		tx := domain.Transaction{}
		err := rows.Scan(
			&tx.ID,
			&tx.UserID,
			&tx.Type,
			&tx.Amount,
			&tx.Status,
			&tx.Description,
			&tx.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan transaction: %w", err)
		}
		txs = append(txs, tx)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating transactions: %w", err)
	}

	return txs, nil
}

// ListPendingWithUsers retrieves all pending transactions joined with the
// requesting user, newest first, for the admin review queue
func (r *TransactionRepository) ListPendingWithUsers(ctx context.Context) ([]domain.PendingTransaction, error) {
	query := `
		SELECT t.id, t.user_id, t.type, t.amount, t.status, COALESCE(t.description, ''), t.created_at,
		       u.id, u.username, u.role, u.created_at, u.updated_at
		FROM transactions t
		JOIN users u ON u.id = t.user_id
		WHERE t.status = $1
		ORDER BY t.created_at DESC, t.id DESC
	`

	rows, err := r.q.Query(ctx, query, domain.TxStatusPending)
	if err != nil {
		return nil, fmt.Errorf("failed to query pending transactions: %w", err)
	}
	defer rows.Close()

	pending := []domain.PendingTransaction{}
	for rows.Next() {
		p := domain.PendingTransaction{}
		err := rows.Scan(
			&p.ID,
			&p.UserID,
			&p.Type,
			&p.Amount,
			&p.Status,
			&p.Description,
			&p.CreatedAt,
			&p.User.ID,
			&p.User.Username,
			&p.User.Role,
			&p.User.CreatedAt,
			&p.User.UpdatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pending transaction: %w", err)
		}
		pending = append(pending, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating pending transactions: %w", err)
	}

	return pending, nil
}

// ClaimPending transitions a PENDING transaction to newStatus. The status
// guard lives in the WHERE clause, so only one of two concurrent claims can
// win; the loser sees the row already terminal.
func (r *TransactionRepository) ClaimPending(ctx context.Context, id int64, newStatus string) (*domain.Transaction, error) {
	query := `
		UPDATE transactions
		SET status = $2
		WHERE id = $1 AND status = $3
		RETURNING ` + transactionColumns

	tx, err := scanTransaction(r.q.QueryRow(ctx, query, id, newStatus, domain.TxStatusPending))
	if errors.Is(err, pgx.ErrNoRows) {
		// Either the row is missing or it is no longer pending
		if _, getErr := r.GetByID(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, domain.ErrTransactionNotPending
	}
	if err != nil {
		return nil, fmt.Errorf("failed to update transaction %d status: %w", id, err)
	}

	return tx, nil
}

func scanTransaction(row pgx.Row) (*domain.Transaction, error) {
	tx := &domain.Transaction{}
	err := row.Scan(
		&tx.ID,
		&tx.UserID,
		&tx.Type,
		&tx.Amount,
		&tx.Status,
		&tx.Description,
		&tx.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	return tx, nil
}
