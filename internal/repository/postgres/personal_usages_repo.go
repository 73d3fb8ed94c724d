package postgres

import (
	"context"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

type personalUsagesRepo struct{ q DBTX }

func (r *personalUsagesRepo) Create(ctx context.Context, u models.PersonalUsage) (models.PersonalUsage, error) {
	if u.ID == "" {
		u.ID = uuid.NewString()
	}
	err := r.q.QueryRow(ctx,
		`INSERT INTO personal_usages(id, type, amount, description)
		 VALUES($1,$2,$3,$4)
		 RETURNING id, type, amount, description, updated_at`,
		u.ID, u.Type, u.Amount, u.Description,
	).Scan(&u.ID, &u.Type, &u.Amount, &u.Description, &u.UpdatedAt)
	return u, mapErr(err)
}

func (r *personalUsagesRepo) Delete(ctx context.Context, id string) error {
	tag, err := r.q.Exec(ctx, `DELETE FROM personal_usages WHERE id=$1`, id)
	if err != nil {
		return mapErr(err)
	}
	if tag.RowsAffected() == 0 {
		return models.ErrNotFound
	}
	return nil
}

func (r *personalUsagesRepo) List(ctx context.Context, limit, offset int) ([]models.PersonalUsage, error) {
	rows, err := r.q.Query(ctx,
		`SELECT id, type, amount, description, updated_at
		   FROM personal_usages
		  ORDER BY updated_at DESC, id
		  LIMIT $1 OFFSET $2`,
		limit, offset)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.PersonalUsage
	for rows.Next() {
		var u models.PersonalUsage
		if err := rows.Scan(&u.ID, &u.Type, &u.Amount, &u.Description, &u.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, u)
	}
	return out, mapErr(rows.Err())
}

func (r *personalUsagesRepo) SumByType(ctx context.Context, t models.UsageType) (decimal.Decimal, error) {
	var total decimal.Decimal
	err := r.q.QueryRow(ctx,
		`SELECT COALESCE(SUM(amount), 0) FROM personal_usages WHERE type=$1`, t).Scan(&total)
	if err != nil {
		return decimal.Zero, mapErr(err)
	}
	return total, nil
}
