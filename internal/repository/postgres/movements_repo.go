package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

type movementsRepo struct{ q DBTX }

func (r *movementsRepo) CreateDeposit(ctx context.Context, userID string, amount decimal.Decimal) (models.Deposit, error) {
	var d models.Deposit
	err := r.q.QueryRow(ctx,
		`INSERT INTO deposits(id, user_id, amount)
		 VALUES($1, $2, $3)
		 RETURNING id, user_id, amount, created_at`,
		uuid.NewString(), userID, amount,
	).Scan(&d.ID, &d.UserID, &d.Amount, &d.CreatedAt)
	return d, mapErr(err)
}

func (r *movementsRepo) CreateWithdrawal(ctx context.Context, userID string, amount decimal.Decimal) (models.Withdrawal, error) {
	var w models.Withdrawal
	err := r.q.QueryRow(ctx,
		`INSERT INTO withdrawals(id, user_id, amount)
		 VALUES($1, $2, $3)
		 RETURNING id, user_id, amount, created_at`,
		uuid.NewString(), userID, amount,
	).Scan(&w.ID, &w.UserID, &w.Amount, &w.CreatedAt)
	return w, mapErr(err)
}

func (r *movementsRepo) SumDeposits(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) FROM deposits`)
}

func (r *movementsRepo) SumWithdrawals(ctx context.Context) (decimal.Decimal, error) {
	return r.sum(ctx, `SELECT COALESCE(SUM(amount), 0) FROM withdrawals`)
}

func (r *movementsRepo) sum(ctx context.Context, query string) (decimal.Decimal, error) {
	var total decimal.Decimal
	if err := r.q.QueryRow(ctx, query).Scan(&total); err != nil {
		return decimal.Zero, mapErr(err)
	}
	return total, nil
}
