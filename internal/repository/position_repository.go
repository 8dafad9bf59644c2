package repository

import (
	"context"
	"fmt"

	"botfolio/internal/domain"
)

const positionColumns = "id, bot_id, asset, type, entry_price, exit_price, profit_percentage, status, opened_at, closed_at"

// PositionRepository implements domain.PositionRepository on PostgreSQL
type PositionRepository struct {
	q queryable
}

// NewPositionRepository creates a new PositionRepository
func NewPositionRepository(q queryable) *PositionRepository {
	return &PositionRepository{q: q}
}

// List retrieves positions newest-opened first, optionally filtered by bot
func (r *PositionRepository) List(ctx context.Context, botID *int64) ([]domain.Position, error) {
	query := `
		SELECT ` + positionColumns + `
		FROM positions
		WHERE ($1::bigint IS NULL OR bot_id = $1)
		ORDER BY opened_at DESC, id DESC
	`

	rows, err := r.q.Query(ctx, query, botID)
	if err != nil {
		return nil, fmt.Errorf("failed to query positions: %w", err)
	}
	defer rows.Close()

	positions := []domain.Position{}
	for rows.Next() {
		p := domain.Position{}
		err := rows.Scan(
			&p.ID,
			&p.BotID,
			&p.Asset,
			&p.Type,
			&p.EntryPrice,
			&p.ExitPrice,
			&p.ProfitPercentage,
			&p.Status,
			&p.OpenedAt,
			&p.ClosedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan position: %w", err)
		}
		positions = append(positions, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating positions: %w", err)
	}

	return positions, nil
}

// Create inserts a new position
func (r *PositionRepository) Create(ctx context.Context, pos *domain.Position) (*domain.Position, error) {
	query := `
		INSERT INTO positions (bot_id, asset, type, entry_price, exit_price, profit_percentage, status, closed_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + positionColumns

	created := &domain.Position{}
	err := r.q.QueryRow(ctx, query,
		pos.BotID,
		pos.Asset,
		pos.Type,
		pos.EntryPrice,
		pos.ExitPrice,
		pos.ProfitPercentage,
		pos.Status,
		pos.ClosedAt,
	).Scan(
		&created.ID,
		&created.BotID,
		&created.Asset,
		&created.Type,
		&created.EntryPrice,
		&created.ExitPrice,
		&created.ProfitPercentage,
		&created.Status,
		&created.OpenedAt,
		&created.ClosedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create position: %w", err)
	}

	return created, nil
}

// Count returns the number of positions
func (r *PositionRepository) Count(ctx context.Context) (int64, error) {
	var count int64
	if err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM positions`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count positions: %w", err)
	}
	return count, nil
}
