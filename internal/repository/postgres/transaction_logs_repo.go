package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

type transactionLogsRepo struct{ q DBTX }

const logCols = `id, type, user_id, amount, deposit_id, withdrawal_id, is_admin_only, status, updated_at`

func (r *transactionLogsRepo) Create(ctx context.Context, l models.TransactionLog) (models.TransactionLog, error) {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO transaction_logs(id, type, user_id, amount, deposit_id, withdrawal_id, is_admin_only, status)
		 VALUES($1,$2,$3,$4,$5,$6,$7,$8)
		 RETURNING `+logCols,
		l.ID, l.Type, l.UserID, l.Amount, l.DepositID, l.WithdrawalID, l.IsAdminOnly, l.Status,
	).Scan(&l.ID, &l.Type, &l.UserID, &l.Amount, &l.DepositID, &l.WithdrawalID, &l.IsAdminOnly, &l.Status, &l.UpdatedAt)
	return l, mapErr(err)
}

func (r *transactionLogsRepo) UpdateStatus(ctx context.Context, id string, status models.LogStatus) error {
	tag, err := r.q.Exec(ctx,
		`UPDATE transaction_logs
		    SET status=$2, updated_at=now()
		  WHERE id=$1 AND status='pending'`,
		id, status)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *transactionLogsRepo) ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.TransactionLog, error) {
	rows, err := r.q.Query(ctx,
		`SELECT `+logCols+`
		   FROM transaction_logs
		  WHERE user_id=$1
		  ORDER BY updated_at DESC, id
		  LIMIT $2 OFFSET $3`,
		userID, limit, offset)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.TransactionLog
	for rows.Next() {
		var l models.TransactionLog
		if err := rows.Scan(&l.ID, &l.Type, &l.UserID, &l.Amount, &l.DepositID, &l.WithdrawalID, &l.IsAdminOnly, &l.Status, &l.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, l)
	}
	return out, mapErr(rows.Err())
}

func (r *transactionLogsRepo) CountByUser(ctx context.Context, userID string) (int64, error) {
	var n int64
	err := r.q.QueryRow(ctx,
		`SELECT COUNT(*) FROM transaction_logs WHERE user_id=$1`, userID).Scan(&n)
	return n, mapErr(err)
}
