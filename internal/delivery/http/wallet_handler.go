package http

import (
	"context"
	"time"

	"github.com/labstack/echo/v4"

	"botfolio/internal/delivery/http/dto"
	"botfolio/internal/middleware"
	"botfolio/internal/usecase"
)

// WalletHandler handles user-facing ledger requests: portfolio, deposits,
// withdrawals and allocations
type WalletHandler struct {
	ledger *usecase.LedgerService
}

// NewWalletHandler creates a new WalletHandler
func NewWalletHandler(ledger *usecase.LedgerService) *WalletHandler {
	return &WalletHandler{ledger: ledger}
}

// GetPortfolio returns the composed portfolio view
// GET /api/portfolio
func (h *WalletHandler) GetPortfolio(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	portfolio, err := h.ledger.GetPortfolio(ctx, userID)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return SuccessResponse(c, dto.NewPortfolioOutput(portfolio))
}

// Deposit records a pending deposit request
// POST /api/deposit
func (h *WalletHandler) Deposit(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.DepositRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.ledger.RequestDeposit(ctx, userID, req.Amount)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, tx)
}

// Withdraw records a pending withdrawal request
// POST /api/withdraw
func (h *WalletHandler) Withdraw(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.WithdrawRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	tx, err := h.ledger.RequestWithdrawal(ctx, userID, req.Amount, req.Network, req.WalletAddress)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, tx)
}

// Allocate commits capital to a bot
// POST /api/allocations
func (h *WalletHandler) Allocate(c echo.Context) error {
	userID, err := middleware.GetUserID(c)
	if err != nil {
		return UnauthorizedResponse(c, "User not authenticated")
	}

	var req dto.AllocationRequest
	if err := c.Bind(&req); err != nil {
		return BadRequestResponse(c, "Invalid request payload")
	}
	if err := c.Validate(&req); err != nil {
		return err
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	allocation, err := h.ledger.Allocate(ctx, userID, req.BotID, req.Amount)
	if err != nil {
		return DomainErrorResponse(c, err)
	}

	return CreatedResponse(c, allocation)
}
