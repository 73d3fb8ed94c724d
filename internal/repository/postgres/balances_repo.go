package postgres

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

type balancesRepo struct{ q DBTX }

const balanceCols = `user_id, amount, updated_at`

func (r *balancesRepo) Get(ctx context.Context, userID string) (models.Balance, error) {
	return r.scan(r.q.QueryRow(ctx,
		`SELECT `+balanceCols+` FROM balances WHERE user_id=$1`, userID))
}

func (r *balancesRepo) GetForUpdate(ctx context.Context, userID string) (models.Balance, error) {
	return r.scan(r.q.QueryRow(ctx,
		`SELECT `+balanceCols+` FROM balances WHERE user_id=$1 FOR UPDATE`, userID))
}

func (r *balancesRepo) CreateIfAbsent(ctx context.Context, userID string) error {
	_, err := r.q.Exec(ctx,
		`INSERT INTO balances(user_id, amount, updated_at)
		 VALUES($1, 0, now())
		 ON CONFLICT (user_id) DO NOTHING`,
		userID)
	return mapErr(err)
}

func (r *balancesRepo) Add(ctx context.Context, userID string, delta decimal.Decimal) (models.Balance, error) {
	return r.scan(r.q.QueryRow(ctx,
		`UPDATE balances
		    SET amount = amount + $2,
		        updated_at = now()
		  WHERE user_id = $1
		  RETURNING `+balanceCols,
		userID, delta))
}

func (r *balancesRepo) scan(row interface{ Scan(...any) error }) (models.Balance, error) {
	var b models.Balance
	err := row.Scan(&b.UserID, &b.Amount, &b.UpdatedAt)
	if isNoRows(err) {
		return models.Balance{}, models.ErrNoBalanceRecord
	}
	return b, mapErr(err)
}
