package usecase

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"

	"botfolio/internal/domain"
)

// Withdrawal network constants
const (
	NetworkUSDTTRC20 = "USDT_TRC20"
	NetworkTRX       = "TRX"
)

// Portfolio is the composed read view of a user's funds
type Portfolio struct {
	TotalBalance       decimal.Decimal            `json:"total_balance"`
	TotalProfit        decimal.Decimal            `json:"total_profit"`
	Wallet             *domain.Wallet             `json:"wallet"`
	Allocations        []domain.AllocationWithBot `json:"allocations"`
	RecentTransactions []domain.Transaction       `json:"recent_transactions"`
}

// LedgerService owns the wallet/transaction/allocation core: deposit and
// withdrawal requests, allocation of capital to bots, the admin approval
// workflow, and the portfolio read view. Every multi-step mutation runs in
// a single database transaction.
type LedgerService struct {
	store domain.Store
}

// NewLedgerService creates a new LedgerService
func NewLedgerService(store domain.Store) *LedgerService {
	return &LedgerService{store: store}
}

// RequestDeposit records a PENDING deposit. The balance is untouched until
// an admin approves; a request alone can never move funds.
func (s *LedgerService) RequestDeposit(ctx context.Context, userID uuid.UUID, amountStr string) (*domain.Transaction, error) {
	amount, err := domain.ParseAmount(amountStr)
	if err != nil {
		return nil, err
	}

	tx, err := s.store.Transactions().Create(ctx, &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxTypeDeposit,
		Amount:      amount,
		Status:      domain.TxStatusPending,
		Description: "Deposit request - awaiting admin approval",
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"tx_id":   tx.ID,
		"amount":  amount.String(),
	}).Info("Deposit requested")

	return tx, nil
}

// RequestWithdrawal records a PENDING withdrawal after a balance pre-check.
// No funds are debited until an admin approves; an insufficient balance
// leaves no ledger entry behind.
func (s *LedgerService) RequestWithdrawal(ctx context.Context, userID uuid.UUID, amountStr, network, walletAddress string) (*domain.Transaction, error) {
	amount, err := domain.ParseAmount(amountStr)
	if err != nil {
		return nil, err
	}

	wallet, err := s.store.Wallets().Get(ctx, userID)
	if errors.Is(err, domain.ErrWalletNotFound) {
		return nil, domain.ErrInsufficientFunds
	}
	if err != nil {
		return nil, err
	}
	if wallet.Balance.LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}

	networkLabel := "TRON (TRX)"
	if network == NetworkUSDTTRC20 {
		networkLabel = "USDT (TRC20)"
	}

	tx, err := s.store.Transactions().Create(ctx, &domain.Transaction{
		UserID:      userID,
		Type:        domain.TxTypeWithdrawal,
		Amount:      amount,
		Status:      domain.TxStatusPending,
		Description: fmt.Sprintf("Withdrawal via %s to %s", networkLabel, walletAddress),
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"tx_id":   tx.ID,
		"amount":  amount.String(),
	}).Info("Withdrawal requested")

	return tx, nil
}

// Allocate commits capital to a bot: the wallet debit, the allocation row
// and the COMPLETED audit entry are one unit of work. The conditional debit
// keeps concurrent allocations from overspending the same wallet.
func (s *LedgerService) Allocate(ctx context.Context, userID uuid.UUID, botID int64, amountStr string) (*domain.Allocation, error) {
	amount, err := domain.ParseAmount(amountStr)
	if err != nil {
		return nil, err
	}

	var allocation *domain.Allocation
	err = s.store.WithinTx(ctx, func(st domain.Store) error {
		bot, err := st.Bots().GetByID(ctx, botID)
		if err != nil {
			return err
		}

		if _, err := st.Wallets().GetOrCreate(ctx, userID); err != nil {
			return err
		}
		if _, err := st.Wallets().DebitIfSufficient(ctx, userID, amount); err != nil {
			return err
		}

		allocation, err = st.Allocations().Create(ctx, &domain.Allocation{
			UserID: userID,
			BotID:  botID,
			Amount: amount,
			Active: true,
		})
		if err != nil {
			return err
		}

		_, err = st.Transactions().Create(ctx, &domain.Transaction{
			UserID:      userID,
			Type:        domain.TxTypeAllocation,
			Amount:      amount,
			Status:      domain.TxStatusCompleted,
			Description: fmt.Sprintf("Allocated to %s", bot.Name),
		})
		return err
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"user_id": userID,
		"bot_id":  botID,
		"amount":  amount.String(),
	}).Info("Capital allocated")

	return allocation, nil
}

// Approve settles a pending transaction: the status flip and the balance
// effect commit or roll back together. A second approval of the same
// transaction finds it already terminal and fails with
// ErrTransactionNotPending.
func (s *LedgerService) Approve(ctx context.Context, txID int64) (*domain.Transaction, error) {
	var approved *domain.Transaction
	err := s.store.WithinTx(ctx, func(st domain.Store) error {
		tx, err := st.Transactions().ClaimPending(ctx, txID, domain.TxStatusCompleted)
		if err != nil {
			return err
		}
		approved = tx

		switch tx.Type {
		case domain.TxTypeDeposit:
			if _, err := st.Wallets().GetOrCreate(ctx, tx.UserID); err != nil {
				return err
			}
			_, err = st.Wallets().AdjustBalance(ctx, tx.UserID, tx.Amount)
		case domain.TxTypeWithdrawal:
			_, err = st.Wallets().AdjustBalance(ctx, tx.UserID, tx.Amount.Neg())
		default:
			// Other types never settle through approval; no balance effect
		}
		return err
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"tx_id":   txID,
		"user_id": approved.UserID,
		"type":    approved.Type,
		"amount":  approved.Amount.String(),
	}).Info("Transaction approved")

	return approved, nil
}

// Reject fails a pending transaction. Balances are never touched: a
// withdrawal is only debited on approval, and a rejected deposit never
// credits.
func (s *LedgerService) Reject(ctx context.Context, txID int64) (*domain.Transaction, error) {
	rejected, err := s.store.Transactions().ClaimPending(ctx, txID, domain.TxStatusFailed)
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"tx_id":   txID,
		"user_id": rejected.UserID,
		"type":    rejected.Type,
	}).Info("Transaction rejected")

	return rejected, nil
}

// GetPortfolio composes wallet, active allocations and recent transactions
// into one read view, creating the wallet lazily on first access.
func (s *LedgerService) GetPortfolio(ctx context.Context, userID uuid.UUID) (*Portfolio, error) {
	wallet, err := s.store.Wallets().GetOrCreate(ctx, userID)
	if err != nil {
		return nil, err
	}

	allocations, err := s.store.Allocations().ListActiveByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	transactions, err := s.store.Transactions().ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}

	return &Portfolio{
		TotalBalance:       wallet.Balance,
		TotalProfit:        wallet.TotalProfit,
		Wallet:             wallet,
		Allocations:        allocations,
		RecentTransactions: transactions,
	}, nil
}

// RecordDailyPerformance appends a performance record for a bot and settles
// the day's profit into every active allocation's wallet, crediting balance
// and total profit alongside a COMPLETED PROFIT ledger entry. Days at or
// below zero are recorded but settle nothing; this platform never claws
// back simulated profit.
func (s *LedgerService) RecordDailyPerformance(ctx context.Context, bot *domain.Bot, date time.Time, pct decimal.Decimal) (*domain.DailyPerformance, error) {
	var perf *domain.DailyPerformance
	err := s.store.WithinTx(ctx, func(st domain.Store) error {
		var err error
		perf, err = st.Performances().Create(ctx, &domain.DailyPerformance{
			BotID:            bot.ID,
			Date:             date,
			ProfitPercentage: pct,
		})
		if err != nil {
			return err
		}

		if !pct.IsPositive() {
			return nil
		}

		allocations, err := st.Allocations().ListActiveByBot(ctx, bot.ID)
		if err != nil {
			return err
		}

		for _, alloc := range allocations {
			profit := alloc.Amount.Mul(pct).Div(decimal.NewFromInt(100)).Round(8)
			if !profit.IsPositive() {
				continue
			}

			if _, err := st.Wallets().AddProfit(ctx, alloc.UserID, profit); err != nil {
				return err
			}
			_, err = st.Transactions().Create(ctx, &domain.Transaction{
				UserID:      alloc.UserID,
				Type:        domain.TxTypeProfit,
				Amount:      profit,
				Status:      domain.TxStatusCompleted,
				Description: fmt.Sprintf("Daily profit from %s (%s%%)", bot.Name, pct.StringFixed(2)),
			})
			if err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	logrus.WithFields(logrus.Fields{
		"bot_id": bot.ID,
		"date":   date.Format("2006-01-02"),
		"pct":    pct.StringFixed(2),
	}).Info("Daily performance recorded")

	return perf, nil
}
