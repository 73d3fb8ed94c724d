package services

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
	repo "github.com/baharkarakas/tiwiti-backend/internal/repository"
)

// memStore is an in-memory repo.Store with real transactional
// semantics: InTx serializes on one mutex and restores a snapshot when
// fn fails, so atomicity and the concurrent-withdrawal race behave as
// they would against the database.
type memStore struct {
	mu sync.Mutex
	d  *memData
}

type memData struct {
	balances    map[string]models.Balance
	deposits    []models.Deposit
	withdrawals []models.Withdrawal
	logs        []models.TransactionLog
	usages      []models.PersonalUsage
	totals      *models.TotalBalance
	users       map[string]models.User
	audits      []models.AuditLog
}

func newMemStore() *memStore {
	return &memStore{d: &memData{
		balances: map[string]models.Balance{},
		users:    map[string]models.User{},
	}}
}

func (d *memData) clone() *memData {
	c := &memData{
		balances:    make(map[string]models.Balance, len(d.balances)),
		deposits:    append([]models.Deposit(nil), d.deposits...),
		withdrawals: append([]models.Withdrawal(nil), d.withdrawals...),
		logs:        append([]models.TransactionLog(nil), d.logs...),
		usages:      append([]models.PersonalUsage(nil), d.usages...),
		users:       make(map[string]models.User, len(d.users)),
		audits:      append([]models.AuditLog(nil), d.audits...),
	}
	for k, v := range d.balances {
		c.balances[k] = v
	}
	for k, v := range d.users {
		c.users[k] = v
	}
	if d.totals != nil {
		t := *d.totals
		c.totals = &t
	}
	return c
}

func (s *memStore) Repos() repo.Repos { return memRepos(s.d) }

func (s *memStore) InTx(ctx context.Context, fn func(ctx context.Context, r repo.Repos) error) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	snap := s.d.clone()
	if err := fn(ctx, memRepos(s.d)); err != nil {
		s.d = snap
		return err
	}
	return nil
}

func memRepos(d *memData) repo.Repos {
	return repo.Repos{
		Users:           &memUsers{d},
		Balances:        &memBalances{d},
		Movements:       &memMovements{d},
		TransactionLogs: &memLogs{d},
		PersonalUsages:  &memUsages{d},
		TotalBalances:   &memTotals{d},
		AuditLogs:       &memAudits{d},
	}
}

type memBalances struct{ d *memData }

func (r *memBalances) Get(_ context.Context, userID string) (models.Balance, error) {
	b, ok := r.d.balances[userID]
	if !ok {
		return models.Balance{}, models.ErrNoBalanceRecord
	}
	return b, nil
}

func (r *memBalances) GetForUpdate(ctx context.Context, userID string) (models.Balance, error) {
	return r.Get(ctx, userID)
}

func (r *memBalances) CreateIfAbsent(_ context.Context, userID string) error {
	if _, ok := r.d.balances[userID]; !ok {
		r.d.balances[userID] = models.Balance{UserID: userID, Amount: decimal.Zero, UpdatedAt: time.Now()}
	}
	return nil
}

func (r *memBalances) Add(_ context.Context, userID string, delta decimal.Decimal) (models.Balance, error) {
	b, ok := r.d.balances[userID]
	if !ok {
		return models.Balance{}, models.ErrNoBalanceRecord
	}
	b.Amount = b.Amount.Add(delta)
	b.UpdatedAt = time.Now()
	r.d.balances[userID] = b
	return b, nil
}

type memMovements struct{ d *memData }

func (r *memMovements) CreateDeposit(_ context.Context, userID string, amount decimal.Decimal) (models.Deposit, error) {
	d := models.Deposit{ID: uuid.NewString(), UserID: userID, Amount: amount, CreatedAt: time.Now()}
	r.d.deposits = append(r.d.deposits, d)
	return d, nil
}

func (r *memMovements) CreateWithdrawal(_ context.Context, userID string, amount decimal.Decimal) (models.Withdrawal, error) {
	w := models.Withdrawal{ID: uuid.NewString(), UserID: userID, Amount: amount, CreatedAt: time.Now()}
	r.d.withdrawals = append(r.d.withdrawals, w)
	return w, nil
}

func (r *memMovements) SumDeposits(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, d := range r.d.deposits {
		total = total.Add(d.Amount)
	}
	return total, nil
}

func (r *memMovements) SumWithdrawals(_ context.Context) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, w := range r.d.withdrawals {
		total = total.Add(w.Amount)
	}
	return total, nil
}

type memLogs struct{ d *memData }

func (r *memLogs) Create(_ context.Context, l models.TransactionLog) (models.TransactionLog, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	l.UpdatedAt = time.Now()
	r.d.logs = append(r.d.logs, l)
	return l, nil
}

func (r *memLogs) UpdateStatus(_ context.Context, id string, status models.LogStatus) error {
	for i := range r.d.logs {
		if r.d.logs[i].ID == id && r.d.logs[i].Status == models.LogPending {
			r.d.logs[i].Status = status
			r.d.logs[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *memLogs) ListByUser(_ context.Context, userID string, limit, offset int) ([]models.TransactionLog, error) {
	var out []models.TransactionLog
	for _, l := range r.d.logs {
		if l.UserID == userID {
			out = append(out, l)
		}
	}
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memLogs) CountByUser(_ context.Context, userID string) (int64, error) {
	var n int64
	for _, l := range r.d.logs {
		if l.UserID == userID {
			n++
		}
	}
	return n, nil
}

type memUsages struct{ d *memData }

func (r *memUsages) Create(_ context.Context, u models.PersonalUsage) (models.PersonalUsage, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	u.UpdatedAt = time.Now()
	r.d.usages = append(r.d.usages, u)
	return u, nil
}

func (r *memUsages) Delete(_ context.Context, id string) error {
	for i, u := range r.d.usages {
		if u.ID == id {
			r.d.usages = append(r.d.usages[:i], r.d.usages[i+1:]...)
			return nil
		}
	}
	return models.ErrNotFound
}

func (r *memUsages) List(_ context.Context, limit, offset int) ([]models.PersonalUsage, error) {
	out := append([]models.PersonalUsage(nil), r.d.usages...)
	if offset >= len(out) {
		return nil, nil
	}
	out = out[offset:]
	if limit < len(out) {
		out = out[:limit]
	}
	return out, nil
}

func (r *memUsages) SumByType(_ context.Context, t models.UsageType) (decimal.Decimal, error) {
	total := decimal.Zero
	for _, u := range r.d.usages {
		if u.Type == t {
			total = total.Add(u.Amount)
		}
	}
	return total, nil
}

type memTotals struct{ d *memData }

func (r *memTotals) Get(_ context.Context) (models.TotalBalance, error) {
	if r.d.totals == nil {
		return models.TotalBalance{}, models.ErrNotFound
	}
	return *r.d.totals, nil
}

// Acquire is a no-op here: InTx already serializes whole transactions.
func (r *memTotals) Acquire(context.Context) error { return nil }

func (r *memTotals) Upsert(_ context.Context, tb models.TotalBalance) (models.TotalBalance, error) {
	tb.UpdatedAt = time.Now()
	r.d.totals = &tb
	return tb, nil
}

type memUsers struct{ d *memData }

func (r *memUsers) Create(_ context.Context, username, email, passwordHash, role string) (models.User, error) {
	for _, u := range r.d.users {
		if u.Username == username || u.Email == email {
			return models.User{}, models.ErrDuplicateUser
		}
	}
	u := models.User{
		ID: uuid.NewString(), Username: username, Email: email,
		PasswordHash: passwordHash, Role: role,
		CreatedAt: time.Now(), UpdatedAt: time.Now(),
	}
	r.d.users[u.ID] = u
	return u, nil
}

func (r *memUsers) GetByID(_ context.Context, id string) (models.User, error) {
	u, ok := r.d.users[id]
	if !ok {
		return models.User{}, models.ErrNotFound
	}
	return u, nil
}

func (r *memUsers) GetByUsername(_ context.Context, username string) (models.User, error) {
	for _, u := range r.d.users {
		if u.Username == username {
			return u, nil
		}
	}
	return models.User{}, models.ErrNotFound
}

func (r *memUsers) List(_ context.Context) ([]models.User, error) {
	out := make([]models.User, 0, len(r.d.users))
	for _, u := range r.d.users {
		out = append(out, u)
	}
	return out, nil
}

type memAudits struct{ d *memData }

func (r *memAudits) Create(_ context.Context, l models.AuditLog) error {
	l.CreatedAt = time.Now()
	r.d.audits = append(r.d.audits, l)
	return nil
}
