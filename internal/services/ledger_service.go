package services

import (
	"context"
	"errors"
	"log/slog"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/tiwiti-backend/internal/metrics"
	"github.com/baharkarakas/tiwiti-backend/internal/models"
	repo "github.com/baharkarakas/tiwiti-backend/internal/repository"
)

// LedgerService is the balance engine. Every mutation is a single
// transaction script: lock the balance row, apply the delta, write the
// movement row, append the log row, refresh the aggregate snapshot.
// All five happen or none do.
type LedgerService struct {
	store repo.Store
	audit *AuditTrail
	log   *slog.Logger
}

func NewLedgerService(store repo.Store, audit *AuditTrail, log *slog.Logger) *LedgerService {
	return &LedgerService{store: store, audit: audit, log: log}
}

// Deposit credits the user's balance, creating it on first deposit.
func (s *LedgerService) Deposit(ctx context.Context, userID string, amount decimal.Decimal) (models.Balance, error) {
	if !amount.IsPositive() {
		return models.Balance{}, models.ErrInvalidAmount
	}

	var out models.Balance
	err := s.store.InTx(ctx, func(ctx context.Context, r repo.Repos) error {
		if err := r.Balances.CreateIfAbsent(ctx, userID); err != nil {
			return err
		}
		if _, err := r.Balances.GetForUpdate(ctx, userID); err != nil {
			return err
		}
		b, err := r.Balances.Add(ctx, userID, amount)
		if err != nil {
			return err
		}

		dep, err := r.Movements.CreateDeposit(ctx, userID, amount)
		if err != nil {
			return err
		}
		if _, err := r.TransactionLogs.Create(ctx, models.TransactionLog{
			Type:      models.LogDeposit,
			UserID:    userID,
			Amount:    amount,
			DepositID: &dep.ID,
			Status:    models.LogSuccessful,
		}); err != nil {
			return err
		}

		if _, err := recomputeTotals(ctx, r); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return models.Balance{}, err
	}

	metrics.DepositsTotal.Inc()
	s.audit.Emit("deposit", userID, "created", map[string]any{"amount": amount.String()})
	s.log.Info("deposit applied", "user", userID, "amount", amount)
	return out, nil
}

// Withdraw debits the user's balance. On any failure nothing is
// persisted: no withdrawal row, no log row, no balance change.
func (s *LedgerService) Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (models.Balance, error) {
	if !amount.IsPositive() {
		metrics.WithdrawalsRejected.WithLabelValues("invalid_amount").Inc()
		return models.Balance{}, models.ErrInvalidAmount
	}

	var out models.Balance
	err := s.store.InTx(ctx, func(ctx context.Context, r repo.Repos) error {
		b, err := r.Balances.GetForUpdate(ctx, userID)
		if err != nil {
			return err
		}
		if b.Amount.LessThan(amount) {
			return models.ErrInsufficientFunds
		}

		b, err = r.Balances.Add(ctx, userID, amount.Neg())
		if err != nil {
			return err
		}

		wd, err := r.Movements.CreateWithdrawal(ctx, userID, amount)
		if err != nil {
			return err
		}
		if _, err := r.TransactionLogs.Create(ctx, models.TransactionLog{
			Type:         models.LogWithdrawal,
			UserID:       userID,
			Amount:       amount,
			WithdrawalID: &wd.ID,
			Status:       models.LogSuccessful,
		}); err != nil {
			return err
		}

		if _, err := recomputeTotals(ctx, r); err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		switch {
		case errors.Is(err, models.ErrInsufficientFunds):
			metrics.WithdrawalsRejected.WithLabelValues("insufficient_funds").Inc()
		case errors.Is(err, models.ErrNoBalanceRecord):
			metrics.WithdrawalsRejected.WithLabelValues("no_balance_record").Inc()
		}
		return models.Balance{}, err
	}

	metrics.WithdrawalsTotal.Inc()
	s.audit.Emit("withdrawal", userID, "created", map[string]any{"amount": amount.String()})
	s.log.Info("withdrawal applied", "user", userID, "amount", amount)
	return out, nil
}

// GetBalance never creates a row; only deposits do that.
func (s *LedgerService) GetBalance(ctx context.Context, userID string) (models.Balance, error) {
	return s.store.Repos().Balances.Get(ctx, userID)
}

// ListTransactions returns one page of the caller's log rows plus
// their total count, so clients can paginate.
func (s *LedgerService) ListTransactions(ctx context.Context, userID string, limit, offset int) ([]models.TransactionLog, int64, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	logs := s.store.Repos().TransactionLogs
	total, err := logs.CountByUser(ctx, userID)
	if err != nil {
		return nil, 0, err
	}
	page, err := logs.ListByUser(ctx, userID, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	return page, total, nil
}
