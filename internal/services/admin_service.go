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

// AdminService is the aggregate reconciler: it owns PersonalUsage rows
// and the TotalBalance snapshot.
type AdminService struct {
	store repo.Store
	audit *AuditTrail
	log   *slog.Logger
}

func NewAdminService(store repo.Store, audit *AuditTrail, log *slog.Logger) *AdminService {
	return &AdminService{store: store, audit: audit, log: log}
}

// recomputeTotals rebuilds the snapshot from source rows. Always a full
// recomputation, never an incremental delta. Runs inside the caller's
// transaction and takes the snapshot row lock before reading any sum,
// so concurrent reconciliations serialize and each one sees every
// movement committed before it.
func recomputeTotals(ctx context.Context, r repo.Repos) (models.TotalBalance, error) {
	if err := r.TotalBalances.Acquire(ctx); err != nil {
		return models.TotalBalance{}, err
	}
	deposits, err := r.Movements.SumDeposits(ctx)
	if err != nil {
		return models.TotalBalance{}, err
	}
	withdrawals, err := r.Movements.SumWithdrawals(ctx)
	if err != nil {
		return models.TotalBalance{}, err
	}
	deductions, err := r.PersonalUsages.SumByType(ctx, models.UsageDeduction)
	if err != nil {
		return models.TotalBalance{}, err
	}
	refunds, err := r.PersonalUsages.SumByType(ctx, models.UsageRefund)
	if err != nil {
		return models.TotalBalance{}, err
	}

	usage := deductions.Sub(refunds)
	displayed := deposits.Sub(withdrawals)
	tb, err := r.TotalBalances.Upsert(ctx, models.TotalBalance{
		TotalDeposits:         deposits,
		TotalWithdrawals:      withdrawals,
		PersonalUsage:         usage,
		DisplayedTotalBalance: displayed,
		AdminTotalBalance:     displayed.Sub(usage),
	})
	if err != nil {
		return models.TotalBalance{}, err
	}
	metrics.ReconciliationsTotal.Inc()
	return tb, nil
}

// RecordPersonalUsage inserts the entry, logs it admin-only and
// refreshes the snapshot, all atomically. A reconciliation failure
// fails the whole request; the entry does not go in with stale totals.
func (s *AdminService) RecordPersonalUsage(ctx context.Context, adminID string, t models.UsageType, amount decimal.Decimal, description string) (models.PersonalUsage, error) {
	if t != models.UsageDeduction && t != models.UsageRefund {
		return models.PersonalUsage{}, models.ErrInvalidUsageType
	}
	if !amount.IsPositive() {
		return models.PersonalUsage{}, models.ErrInvalidAmount
	}

	logType := models.LogPersonalUsage
	if t == models.UsageRefund {
		logType = models.LogRefund
	}

	var out models.PersonalUsage
	err := s.store.InTx(ctx, func(ctx context.Context, r repo.Repos) error {
		u, err := r.PersonalUsages.Create(ctx, models.PersonalUsage{
			Type:        t,
			Amount:      amount,
			Description: description,
		})
		if err != nil {
			return err
		}
		if _, err := r.TransactionLogs.Create(ctx, models.TransactionLog{
			Type:        logType,
			UserID:      adminID,
			Amount:      amount,
			IsAdminOnly: true,
			Status:      models.LogSuccessful,
		}); err != nil {
			return err
		}
		if _, err := recomputeTotals(ctx, r); err != nil {
			return err
		}
		out = u
		return nil
	})
	if err != nil {
		return models.PersonalUsage{}, err
	}

	s.audit.Emit("personal_usage", out.ID, "created", map[string]any{
		"type": string(t), "amount": amount.String(),
	})
	s.log.Info("personal usage recorded", "type", t, "amount", amount)
	return out, nil
}

func (s *AdminService) DeletePersonalUsage(ctx context.Context, id string) error {
	err := s.store.InTx(ctx, func(ctx context.Context, r repo.Repos) error {
		if err := r.PersonalUsages.Delete(ctx, id); err != nil {
			return err
		}
		_, err := recomputeTotals(ctx, r)
		return err
	})
	if err != nil {
		return err
	}
	s.audit.Emit("personal_usage", id, "deleted", nil)
	return nil
}

// RecomputeTotals rebuilds the snapshot on demand. Idempotent.
func (s *AdminService) RecomputeTotals(ctx context.Context) (models.TotalBalance, error) {
	var tb models.TotalBalance
	err := s.store.InTx(ctx, func(ctx context.Context, r repo.Repos) error {
		var err error
		tb, err = recomputeTotals(ctx, r)
		return err
	})
	return tb, err
}

// TotalBalance returns the current snapshot, computing it first if the
// service has never reconciled.
func (s *AdminService) TotalBalance(ctx context.Context) (models.TotalBalance, error) {
	tb, err := s.store.Repos().TotalBalances.Get(ctx)
	if errors.Is(err, models.ErrNotFound) {
		return s.RecomputeTotals(ctx)
	}
	return tb, err
}

func (s *AdminService) ListPersonalUsage(ctx context.Context, limit, offset int) ([]models.PersonalUsage, error) {
	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}
	return s.store.Repos().PersonalUsages.List(ctx, limit, offset)
}
