package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"botfolio/internal/domain"
)

const botColumns = "id, name, type, description, risk_level, daily_cap_percentage, status, image_url"

// BotRepository implements domain.BotRepository on PostgreSQL
type BotRepository struct {
	q queryable
}

// NewBotRepository creates a new BotRepository
func NewBotRepository(q queryable) *BotRepository {
	return &BotRepository{q: q}
}

// List retrieves all bots
func (r *BotRepository) List(ctx context.Context) ([]domain.Bot, error) {
	query := `
		SELECT ` + botColumns + `
		FROM bots
		ORDER BY id ASC
	`

	rows, err := r.q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to query bots: %w", err)
	}
	defer rows.Close()

	bots := []domain.Bot{}
	for rows.Next() {
		bot := domain.Bot{}
		if err := scanBot(rows, &bot); err != nil {
			return nil, fmt.Errorf("failed to scan bot: %w", err)
		}
		bots = append(bots, bot)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating bots: %w", err)
	}

	return bots, nil
}

// GetByID retrieves a bot by ID
func (r *BotRepository) GetByID(ctx context.Context, id int64) (*domain.Bot, error) {
	query := `
		SELECT ` + botColumns + `
		FROM bots
		WHERE id = $1
	`

	bot := &domain.Bot{}
	err := scanBot(r.q.QueryRow(ctx, query, id), bot)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, domain.ErrBotNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get bot %d: %w", id, err)
	}

	return bot, nil
}

// Create inserts a new bot
func (r *BotRepository) Create(ctx context.Context, bot *domain.Bot) (*domain.Bot, error) {
	query := `
		INSERT INTO bots (name, type, description, risk_level, daily_cap_percentage, status, image_url)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING ` + botColumns

	created := &domain.Bot{}
	err := scanBot(r.q.QueryRow(ctx, query,
		bot.Name,
		bot.Type,
		bot.Description,
		bot.RiskLevel,
		bot.DailyCapPercentage,
		bot.Status,
		bot.ImageURL,
	), created)
	if err != nil {
		return nil, fmt.Errorf("failed to create bot: %w", err)
	}

	return created, nil
}

func scanBot(row pgx.Row, bot *domain.Bot) error {
	return row.Scan(
		&bot.ID,
		&bot.Name,
		&bot.Type,
		&bot.Description,
		&bot.RiskLevel,
		&bot.DailyCapPercentage,
		&bot.Status,
		&bot.ImageURL,
	)
}

// DailyPerformanceRepository implements domain.DailyPerformanceRepository
// on PostgreSQL
type DailyPerformanceRepository struct {
	q queryable
}

// NewDailyPerformanceRepository creates a new DailyPerformanceRepository
func NewDailyPerformanceRepository(q queryable) *DailyPerformanceRepository {
	return &DailyPerformanceRepository{q: q}
}

// Create appends a daily performance record
func (r *DailyPerformanceRepository) Create(ctx context.Context, perf *domain.DailyPerformance) (*domain.DailyPerformance, error) {
	query := `
		INSERT INTO daily_performances (bot_id, date, profit_percentage)
		VALUES ($1, $2, $3)
		RETURNING id, bot_id, date, profit_percentage, created_at
	`

	created := &domain.DailyPerformance{}
	err := r.q.QueryRow(ctx, query,
		perf.BotID,
		perf.Date,
		perf.ProfitPercentage,
	).Scan(
		&created.ID,
		&created.BotID,
		&created.Date,
		&created.ProfitPercentage,
		&created.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("failed to create daily performance: %w", err)
	}

	return created, nil
}

// ListRecentByBot retrieves the most recent records for a bot
func (r *DailyPerformanceRepository) ListRecentByBot(ctx context.Context, botID int64, limit int) ([]domain.DailyPerformance, error) {
	query := `
		SELECT id, bot_id, date, profit_percentage, created_at
		FROM daily_performances
		WHERE bot_id = $1
		ORDER BY date DESC
		LIMIT $2
	`

	rows, err := r.q.Query(ctx, query, botID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query daily performances: %w", err)
	}
	defer rows.Close()

	performances := []domain.DailyPerformance{}
	for rows.Next() {
		p := domain.DailyPerformance{}
		err := rows.Scan(
			&p.ID,
			&p.BotID,
			&p.Date,
			&p.ProfitPercentage,
			&p.CreatedAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan daily performance: %w", err)
		}
		performances = append(performances, p)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("error iterating daily performances: %w", err)
	}

	return performances, nil
}

// ExistsForDate reports whether a record exists for the bot on the date
func (r *DailyPerformanceRepository) ExistsForDate(ctx context.Context, botID int64, date time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM daily_performances
			WHERE bot_id = $1 AND date = $2::date
		)
	`

	var exists bool
	if err := r.q.QueryRow(ctx, query, botID, date).Scan(&exists); err != nil {
		return false, fmt.Errorf("failed to check daily performance: %w", err)
	}

	return exists, nil
}
