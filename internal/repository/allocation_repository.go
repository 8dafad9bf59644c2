package repository

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"botfolio/internal/domain"
)

// AllocationRepository implements domain.AllocationRepository on PostgreSQL
type AllocationRepository struct {
	q queryable
}

// NewAllocationRepository creates a new AllocationRepository
func NewAllocationRepository(q queryable) *AllocationRepository {
	return &AllocationRepository{q: q}
}

// Create records a new allocation
func (r *AllocationRepository) Create(ctx context.Context, alloc *domain.Allocation) (*domain.Allocation, error) {
	query := `
		INSERT INTO allocations (user_id, bot_id, amount, active)
		VALUES ($1, $2, $3, $4)
		RETURNING id, user_id, bot_id, amount, active, created_at
	`

	created := &domain.Allocation{}
	err := r.q.QueryRow(ctx, query,
		alloc.UserID,
		alloc.BotID,
		alloc.Amount,
		alloc.Active,
	).Scan(
		&created.ID,
		&created.UserID,
		&created.BotID,
		&created.Amount,
		&created.Active,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create allocation: %w", err)
	}

	return created, nil
}

// ListActiveByUser retrieves a user's active allocations joined with bots
func (r *AllocationRepository) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.AllocationWithBot, error) {
	query := `
		SELECT a.id, a.user_id, a.bot_id, a.amount, a.active, a.created_at,
		       b.id, b.name, b.type, b.description, b.risk_level, b.daily_cap_percentage, b.status, b.image_url
		FROM allocations a
		JOIN bots b ON b.id = a.bot_id
		WHERE a.user_id = $1 AND a.active = true
		ORDER BY a.created_at DESC, a.id DESC
	`

	rows, err := r.q.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations: %w", err)
	}
	defer rows.Close()

	allocations := []domain.AllocationWithBot{}
	for rows.Next() {
		a := domain.AllocationWithBot{}
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.BotID,
			&a.Amount,
			&a.Active,
			&a.CreatedAt,
			&a.Bot.ID,
			&a.Bot.Name,
			&a.Bot.Type,
			&a.Bot.Description,
			&a.Bot.RiskLevel,
			&a.Bot.DailyCapPercentage,
			&a.Bot.Status,
			&a.Bot.ImageURL,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}

// ListActiveByBot retrieves all active allocations for a bot
func (r *AllocationRepository) ListActiveByBot(ctx context.Context, botID int64) ([]domain.Allocation, error) {
	query := `
		SELECT id, user_id, bot_id, amount, active, created_at
		FROM allocations
		WHERE bot_id = $1 AND active = true
		ORDER BY created_at ASC
	`

	rows, err := r.q.Query(ctx, query, botID)
	if err != nil {
		return nil, fmt.Errorf("failed to query allocations for bot %d: %w", botID, err)
	}
	defer rows.Close()

	allocations := []domain.Allocation{}
	for rows.Next() {
		a := domain.Allocation{}
		err := rows.Scan(
			&a.ID,
			&a.UserID,
			&a.BotID,
			&a.Amount,
			&a.Active,
			&a.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan allocation: %w", err)
		}
		allocations = append(allocations, a)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating allocations: %w", err)
	}

	return allocations, nil
}
