package http

import (
	"context"
	"strconv"
	"time"

	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"

	"botfolio/internal/delivery/http/dto"
	"botfolio/internal/domain"
	"botfolio/internal/usecase"
)

// AdminHandler handles admin-facing requests: bot management, the pending
// transaction review queue, daily stats and the user list
type AdminHandler struct {
	ledger   *usecase.LedgerService
	botRepo  domain.BotRepository
	perfRepo domain.DailyPerformanceRepository
	txRepo   domain.TransactionRepository
	userRepo domain.UserRepository
}

// NewAdminHandler creates a new AdminHandler
func NewAdminHandler(
	ledger *usecase.LedgerService,
	botRepo domain.BotRepository,
	perfRepo domain.DailyPerformanceRepository,
	txRepo domain.TransactionRepository,
	userRepo domain.UserRepository,
) *AdminHandler {
	return &AdminHandler{
		ledger:   ledger,
		botRepo:  botRepo,
		perfRepo: perfRepo,
		txRepo:   txRepo,
		userRepo: userRepo,
	}
}

// CreateBot inserts a new bot into the catalog
// POST /api/admin/bots
func (h *AdminHandler) CreateBot(c echo.Context) error {
	var req dto.CreateBotRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	dailyCap, err := decimal.NewFromString(req.DailyCapPercentage)
	if err != nil {
		return BadRequestResponse(c, "Invalid daily_cap_percentage")
	}

	status := req.Status
	if status == "" {
		status = domain.BotStatusActive
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	bot, err := h.botRepo.Create(ctx, &domain.Bot{
		Name:               req.Name,
		Type:               req.Type,
		Description:        req.Description,
		RiskLevel:          req.RiskLevel,
		DailyCapPercentage: dailyCap,
		Status:             status,
		ImageURL:           req.ImageURL,
	})
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to create bot", err)
	}

	return CreatedResponse(c, bot)
}

// CreateDailyStats records a daily performance entry and settles profit
// POST /api/admin/daily-stats
func (h *AdminHandler) CreateDailyStats(c echo.Context) error {
	var req dto.CreateDailyPerformanceRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	pct, err := decimal.NewFromString(req.ProfitPercentage)
	if err != nil {
		return BadRequestResponse(c, "Invalid profit_percentage")
	}

	date := time.Now().UTC().Truncate(24 * time.Hour)
	if req.Date != "" {
		date, err = time.Parse("2006-01-02", req.Date)
		if err != nil {
			return BadRequestResponse(c, "Invalid date")
		}
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 10*time.Second)
	defer cancel()

	bot, err := h.botRepo.GetByID(ctx, req.BotID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	perf, err := h.ledger.RecordDailyPerformance(ctx, bot, date, pct)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, perf)
}

// ListPendingTransactions returns the admin review queue
// GET /api/admin/pending-transactions
func (h *AdminHandler) ListPendingTransactions(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	pending, err := h.txRepo.ListPendingWithUsers(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch pending transactions", err)
	}

	return SuccessResponse(c, pending)
}

// ApproveTransaction settles a pending transaction
// POST /api/admin/transactions/:id/approve
func (h *AdminHandler) ApproveTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NotFoundResponse(c, "Transaction not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.ledger.Approve(ctx, id)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, tx)
}

// RejectTransaction fails a pending transaction without balance effect
// POST /api/admin/transactions/:id/reject
func (h *AdminHandler) RejectTransaction(c echo.Context) error {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		return NotFoundResponse(c, "Transaction not found")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.ledger.Reject(ctx, id)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, tx)
}

// ListUsers returns all users joined with their wallets
// GET /api/admin/users
func (h *AdminHandler) ListUsers(c echo.Context) error {
	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	users, err := h.userRepo.ListWithWallets(ctx)
	if err != nil {
		return InternalServerErrorResponse(c, "Failed to fetch users", err)
	}

	return SuccessResponse(c, users)
}
