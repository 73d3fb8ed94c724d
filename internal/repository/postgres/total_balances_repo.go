package postgres

import (
	"context"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

// The aggregate snapshot lives in exactly one row with a fixed id, so
// concurrent reconciliations serialize on its row lock instead of
// racing over "the most recent row".
const totalBalanceRowID = 1

type totalBalancesRepo struct{ q DBTX }

const totalCols = `total_deposits, total_withdrawals, personal_usage, displayed_total_balance, admin_total_balance, updated_at`

func (r *totalBalancesRepo) Get(ctx context.Context) (models.TotalBalance, error) {
	var tb models.TotalBalance
	err := r.q.QueryRow(ctx,
		`SELECT `+totalCols+` FROM total_balances WHERE id=$1`, totalBalanceRowID,
	).Scan(&tb.TotalDeposits, &tb.TotalWithdrawals, &tb.PersonalUsage,
		&tb.DisplayedTotalBalance, &tb.AdminTotalBalance, &tb.UpdatedAt)
	if isNoRows(err) {
		return models.TotalBalance{}, models.ErrNotFound
	}
	return tb, mapErr(err)
}

// Acquire makes sure the row exists and then locks it. Under read
// committed the statements that follow see everything committed before
// the lock was granted, so sums taken after Acquire cannot miss a
// concurrent movement.
func (r *totalBalancesRepo) Acquire(ctx context.Context) error {
	if _, err := r.q.Exec(ctx,
		`INSERT INTO total_balances(id) VALUES($1) ON CONFLICT (id) DO NOTHING`,
		totalBalanceRowID); err != nil {
		return mapErr(err)
	}
	var id int16
	err := r.q.QueryRow(ctx,
		`SELECT id FROM total_balances WHERE id=$1 FOR UPDATE`, totalBalanceRowID,
	).Scan(&id)
	return mapErr(err)
}

func (r *totalBalancesRepo) Upsert(ctx context.Context, tb models.TotalBalance) (models.TotalBalance, error) {
	err := r.q.QueryRow(ctx,
		`INSERT INTO total_balances(id, total_deposits, total_withdrawals, personal_usage, displayed_total_balance, admin_total_balance, updated_at)
		 VALUES($1,$2,$3,$4,$5,$6,now())
		 ON CONFLICT (id) DO UPDATE SET
		   total_deposits=EXCLUDED.total_deposits,
		   total_withdrawals=EXCLUDED.total_withdrawals,
		   personal_usage=EXCLUDED.personal_usage,
		   displayed_total_balance=EXCLUDED.displayed_total_balance,
		   admin_total_balance=EXCLUDED.admin_total_balance,
		   updated_at=now()
		 RETURNING `+totalCols,
		totalBalanceRowID, tb.TotalDeposits, tb.TotalWithdrawals, tb.PersonalUsage,
		tb.DisplayedTotalBalance, tb.AdminTotalBalance,
	).Scan(&tb.TotalDeposits, &tb.TotalWithdrawals, &tb.PersonalUsage,
		&tb.DisplayedTotalBalance, &tb.AdminTotalBalance, &tb.UpdatedAt)
	return tb, mapErr(err)
}
