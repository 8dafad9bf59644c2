package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"

	"botfolio/internal/domain"
)

const userColumns = "id, username, password_hash, role, created_at, updated_at"

// UserRepository implements domain.UserRepository on PostgreSQL
type UserRepository struct {
	q queryable
}

// NewUserRepository creates a new UserRepository
func NewUserRepository(q queryable) *UserRepository {
	return &UserRepository{q: q}
}

// Create creates a new user
func (r *UserRepository) Create(ctx context.Context, user *domain.User) error {
	query := `
		INSERT INTO users (id, username, password_hash, role)
		VALUES ($1, $2, $3, $4)
	`

	_, err := r.q.Exec(ctx, query,
		user.ID,
		user.Username,
		user.PasswordHash,
		user.Role,
	)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE id = $1
	`

	user, err := scanUser(r.q.QueryRow(ctx, query, id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by ID: %w", err)
	}

	return user, nil
}

// GetByUsername retrieves a user by username
func (r *UserRepository) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	query := `
		SELECT ` + userColumns + `
		FROM users
		WHERE username = $1
	`

	user, err := scanUser(r.q.QueryRow(ctx, query, username))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrUserNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get user by username: %w", err)
	}

	return user, nil
}

// ListWithWallets retrieves all users joined with their wallets. Users who
// never touched their portfolio have no wallet yet; those come back nil.
func (r *UserRepository) ListWithWallets(ctx context.Context) ([]domain.UserWithWallet, error) {
	query := `
		SELECT u.id, u.username, u.password_hash, u.role, u.created_at, u.updated_at,
		       w.user_id, w.balance, w.total_profit, w.is_frozen, w.updated_at
		FROM users u
		LEFT JOIN wallets w ON w.user_id = u.id
		ORDER BY u.created_at ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query users: %w", err)
	}
	defer rows.Close()

	users := []domain.UserWithWallet{}
	for rows.Next() {
		u := domain.UserWithWallet{}
		var (
			walletUserID *uuid.UUID
			balance      *decimal.Decimal
			totalProfit  *decimal.Decimal
			isFrozen     *bool
			updatedAt    *time.Time
		)
		err := rows.Scan(
			&u.ID,
			&u.Username,
			&u.PasswordHash,
			&u.Role,
			&u.CreatedAt,
			&u.UpdatedAt,
			&walletUserID,
			&balance,
			&totalProfit,
			&isFrozen,
			&updatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan user: %w", err)
		}
		if walletUserID != nil {
			u.Wallet = &domain.Wallet{
				UserID:      *walletUserID,
				Balance:     *balance,
				TotalProfit: *totalProfit,
				IsFrozen:    *isFrozen,
				UpdatedAt:   *updatedAt,
			}
		}
		users = append(users, u)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating users: %w", err)
	}

	return users, nil
}

func scanUser(row pgx.Row) (*domain.User, error) {
	user := &domain.User{}
	err := row.Scan(
		&user.ID,
		&user.Username,
		&user.PasswordHash,
		&user.Role,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return user, nil
}
