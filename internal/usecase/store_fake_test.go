package usecase

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"botfolio/internal/domain"
)

// fakeStore is an in-memory domain.Store. Its wallet operations mirror the
// SQL semantics of the real repositories: increments are applied under a
// lock, conditional debits check and mutate in one critical section, and
// pending claims are status-guarded.
type fakeStore struct {
	mu sync.Mutex

	wallets      map[uuid.UUID]*domain.Wallet
	transactions map[int64]*domain.Transaction
	allocations  []*domain.Allocation
	bots         map[int64]*domain.Bot
	performances []*domain.DailyPerformance
	positions    []*domain.Position
	users        map[uuid.UUID]*domain.User

	nextTxID    int64
	nextAllocID int64
	nextBotID   int64
	nextPerfID  int64
	nextPosID   int64
}

func newFakeStore() *fakeStore {
	return &fakeStore{
		wallets:      map[uuid.UUID]*domain.Wallet{},
		transactions: map[int64]*domain.Transaction{},
		bots:         map[int64]*domain.Bot{},
		users:        map[uuid.UUID]*domain.User{},
	}
}

func (s *fakeStore) Wallets() domain.WalletRepository                { return &fakeWallets{s} }
func (s *fakeStore) Transactions() domain.TransactionRepository      { return &fakeTransactions{s} }
func (s *fakeStore) Allocations() domain.AllocationRepository        { return &fakeAllocations{s} }
func (s *fakeStore) Bots() domain.BotRepository                      { return &fakeBots{s} }
func (s *fakeStore) Performances() domain.DailyPerformanceRepository { return &fakePerformances{s} }
func (s *fakeStore) Positions() domain.PositionRepository            { return &fakePositions{s} }
func (s *fakeStore) Users() domain.UserRepository                    { return &fakeUsers{s} }

func (s *fakeStore) WithinTx(ctx context.Context, fn func(domain.Store) error) error {
	return fn(s)
}

func (s *fakeStore) addBot(name string) *domain.Bot {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.nextBotID++
	bot := &domain.Bot{
		ID:                 s.nextBotID,
		Name:               name,
		Type:               domain.BotTypeTrend,
		Description:        "test bot",
		RiskLevel:          domain.RiskMedium,
		DailyCapPercentage: decimal.RequireFromString("8.00"),
		Status:             domain.BotStatusActive,
	}
	s.bots[bot.ID] = bot
	return bot
}

type fakeWallets struct{ s *fakeStore }

func (f *fakeWallets) GetOrCreate(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	w, ok := f.s.wallets[userID]
	if !ok {
		w = &domain.Wallet{
			UserID:      userID,
			Balance:     decimal.Zero,
			TotalProfit: decimal.Zero,
			UpdatedAt:   time.Now(),
		}
		f.s.wallets[userID] = w
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWallets) Get(ctx context.Context, userID uuid.UUID) (*domain.Wallet, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	w, ok := f.s.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	cp := *w
	return &cp, nil
}

func (f *fakeWallets) AdjustBalance(ctx context.Context, userID uuid.UUID, delta decimal.Decimal) (*domain.Wallet, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	w, ok := f.s.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	w.Balance = w.Balance.Add(delta)
	w.UpdatedAt = time.Now()
	cp := *w
	return &cp, nil
}

func (f *fakeWallets) DebitIfSufficient(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Wallet, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	w, ok := f.s.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	if w.Balance.LessThan(amount) {
		return nil, domain.ErrInsufficientFunds
	}
	w.Balance = w.Balance.Sub(amount)
	w.UpdatedAt = time.Now()
	cp := *w
	return &cp, nil
}

func (f *fakeWallets) AddProfit(ctx context.Context, userID uuid.UUID, amount decimal.Decimal) (*domain.Wallet, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	w, ok := f.s.wallets[userID]
	if !ok {
		return nil, domain.ErrWalletNotFound
	}
	w.Balance = w.Balance.Add(amount)
	w.TotalProfit = w.TotalProfit.Add(amount)
	w.UpdatedAt = time.Now()
	cp := *w
	return &cp, nil
}

type fakeTransactions struct{ s *fakeStore }

func (f *fakeTransactions) Create(ctx context.Context, tx *domain.Transaction) (*domain.Transaction, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.nextTxID++
	created := *tx
	created.ID = f.s.nextTxID
	created.CreatedAt = time.Now()
	f.s.transactions[created.ID] = &created
	cp := created
	return &cp, nil
}

func (f *fakeTransactions) GetByID(ctx context.Context, id int64) (*domain.Transaction, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	tx, ok := f.s.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	cp := *tx
	return &cp, nil
}

func (f *fakeTransactions) ListByUser(ctx context.Context, userID uuid.UUID) ([]domain.Transaction, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	txs := []domain.Transaction{}
	for _, tx := range f.s.transactions {
		if tx.UserID == userID {
			txs = append(txs, *tx)
		}
	}
	sort.Slice(txs, func(i, j int) bool { return txs[i].ID > txs[j].ID })
	return txs, nil
}

func (f *fakeTransactions) ListPendingWithUsers(ctx context.Context) ([]domain.PendingTransaction, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	pending := []domain.PendingTransaction{}
	for _, tx := range f.s.transactions {
		if tx.Status != domain.TxStatusPending {
			continue
		}
		p := domain.PendingTransaction{Transaction: *tx}
		if u, ok := f.s.users[tx.UserID]; ok {
			p.User = *u
		}
		pending = append(pending, p)
	}
	sort.Slice(pending, func(i, j int) bool { return pending[i].ID > pending[j].ID })
	return pending, nil
}

func (f *fakeTransactions) ClaimPending(ctx context.Context, id int64, newStatus string) (*domain.Transaction, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	tx, ok := f.s.transactions[id]
	if !ok {
		return nil, domain.ErrTransactionNotFound
	}
	if tx.Status != domain.TxStatusPending {
		return nil, domain.ErrTransactionNotPending
	}
	tx.Status = newStatus
	cp := *tx
	return &cp, nil
}

type fakeAllocations struct{ s *fakeStore }

func (f *fakeAllocations) Create(ctx context.Context, alloc *domain.Allocation) (*domain.Allocation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.nextAllocID++
	created := *alloc
	created.ID = f.s.nextAllocID
	created.CreatedAt = time.Now()
	f.s.allocations = append(f.s.allocations, &created)
	cp := created
	return &cp, nil
}

func (f *fakeAllocations) ListActiveByUser(ctx context.Context, userID uuid.UUID) ([]domain.AllocationWithBot, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	result := []domain.AllocationWithBot{}
	for _, a := range f.s.allocations {
		if a.UserID != userID || !a.Active {
			continue
		}
		item := domain.AllocationWithBot{Allocation: *a}
		if bot, ok := f.s.bots[a.BotID]; ok {
			item.Bot = *bot
		}
		result = append(result, item)
	}
	return result, nil
}

func (f *fakeAllocations) ListActiveByBot(ctx context.Context, botID int64) ([]domain.Allocation, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	result := []domain.Allocation{}
	for _, a := range f.s.allocations {
		if a.BotID == botID && a.Active {
			result = append(result, *a)
		}
	}
	return result, nil
}

type fakeBots struct{ s *fakeStore }

func (f *fakeBots) List(ctx context.Context) ([]domain.Bot, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	bots := []domain.Bot{}
	for _, b := range f.s.bots {
		bots = append(bots, *b)
	}
	sort.Slice(bots, func(i, j int) bool { return bots[i].ID < bots[j].ID })
	return bots, nil
}

func (f *fakeBots) GetByID(ctx context.Context, id int64) (*domain.Bot, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	bot, ok := f.s.bots[id]
	if !ok {
		return nil, domain.ErrBotNotFound
	}
	cp := *bot
	return &cp, nil
}

func (f *fakeBots) Create(ctx context.Context, bot *domain.Bot) (*domain.Bot, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.nextBotID++
	created := *bot
	created.ID = f.s.nextBotID
	f.s.bots[created.ID] = &created
	cp := created
	return &cp, nil
}

type fakePerformances struct{ s *fakeStore }

func (f *fakePerformances) Create(ctx context.Context, perf *domain.DailyPerformance) (*domain.DailyPerformance, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.nextPerfID++
	created := *perf
	created.ID = f.s.nextPerfID
	created.CreatedAt = time.Now()
	f.s.performances = append(f.s.performances, &created)
	cp := created
	return &cp, nil
}

func (f *fakePerformances) ListRecentByBot(ctx context.Context, botID int64, limit int) ([]domain.DailyPerformance, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	result := []domain.DailyPerformance{}
	for _, p := range f.s.performances {
		if p.BotID == botID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].Date.After(result[j].Date) })
	if len(result) > limit {
		result = result[:limit]
	}
	return result, nil
}

func (f *fakePerformances) ExistsForDate(ctx context.Context, botID int64, date time.Time) (bool, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, p := range f.s.performances {
		if p.BotID == botID && p.Date.Equal(date) {
			return true, nil
		}
	}
	return false, nil
}

type fakePositions struct{ s *fakeStore }

func (f *fakePositions) List(ctx context.Context, botID *int64) ([]domain.Position, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	result := []domain.Position{}
	for _, p := range f.s.positions {
		if botID == nil || p.BotID == *botID {
			result = append(result, *p)
		}
	}
	sort.Slice(result, func(i, j int) bool { return result[i].ID > result[j].ID })
	return result, nil
}

func (f *fakePositions) Create(ctx context.Context, pos *domain.Position) (*domain.Position, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	f.s.nextPosID++
	created := *pos
	created.ID = f.s.nextPosID
	created.OpenedAt = time.Now()
	f.s.positions = append(f.s.positions, &created)
	cp := created
	return &cp, nil
}

func (f *fakePositions) Count(ctx context.Context) (int64, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	return int64(len(f.s.positions)), nil
}

type fakeUsers struct{ s *fakeStore }

func (f *fakeUsers) Create(ctx context.Context, user *domain.User) error {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Username == user.Username {
			return domain.ErrUsernameTaken
		}
	}
	cp := *user
	f.s.users[user.ID] = &cp
	return nil
}

func (f *fakeUsers) GetByID(ctx context.Context, id uuid.UUID) (*domain.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	u, ok := f.s.users[id]
	if !ok {
		return nil, domain.ErrUserNotFound
	}
	cp := *u
	return &cp, nil
}

func (f *fakeUsers) GetByUsername(ctx context.Context, username string) (*domain.User, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	for _, u := range f.s.users {
		if u.Username == username {
			cp := *u
			return &cp, nil
		}
	}
	return nil, domain.ErrUserNotFound
}

func (f *fakeUsers) ListWithWallets(ctx context.Context) ([]domain.UserWithWallet, error) {
	f.s.mu.Lock()
	defer f.s.mu.Unlock()
	result := []domain.UserWithWallet{}
	for _, u := range f.s.users {
		item := domain.UserWithWallet{User: *u}
		if w, ok := f.s.wallets[u.ID]; ok {
			cp := *w
			item.Wallet = &cp
		}
		result = append(result, item)
	}
	return result, nil
}
