package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

type usersRepo struct{ q DBTX }

const userCols = `id, username, email, password_hash, role, created_at, updated_at`

func (r *usersRepo) Create(ctx context.Context, username, email, passwordHash, role string) (models.User, error) {
	var u models.User
	err := r.q.QueryRow(ctx,
		`INSERT INTO users(id, username, email, password_hash, role)
		 VALUES($1,$2,$3,$4,$5)
		 RETURNING `+userCols,
		uuid.NewString(), username, email, passwordHash, role,
	).Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if isUniqueViolation(err) {
		return models.User{}, models.ErrDuplicateUser
	}
	return u, mapErr(err)
}

func (r *usersRepo) GetByID(ctx context.Context, id string) (models.User, error) {
	return r.scan(r.q.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE id=$1`, id))
}

func (r *usersRepo) GetByUsername(ctx context.Context, username string) (models.User, error) {
	return r.scan(r.q.QueryRow(ctx, `SELECT `+userCols+` FROM users WHERE username=$1`, username))
}

func (r *usersRepo) List(ctx context.Context) ([]models.User, error) {
	rows, err := r.q.Query(ctx, `SELECT `+userCols+` FROM users ORDER BY created_at`)
	if err != nil {
		return nil, mapErr(err)
	}
	defer rows.Close()

	var out []models.User
	for rows.Next() {
		var u models.User
		if err := rows.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt); err != nil {
			return nil, mapErr(err)
		}
		out = append(out, u)
	}
	return out, mapErr(rows.Err())
}

func (r *usersRepo) scan(row interface{ Scan(...any) error }) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Username, &u.Email, &u.PasswordHash, &u.Role, &u.CreatedAt, &u.UpdatedAt)
	if isNoRows(err) {
		return models.User{}, models.ErrNotFound
	}
	return u, mapErr(err)
}
