package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

// mapErr translates driver-level failures into the domain taxonomy at
// the repository boundary. Serialization conflicts, lock timeouts,
// dead connections and context timeouts all collapse into
// ErrStoreUnavailable so callers can retry; everything else passes
// through wrapped.
func mapErr(err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		switch pgErr.Code {
		case "40001", "40P01", "55P03", "57014": // serialization, deadlock, lock_not_available, canceled
			return fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
		}
	}
	if pgconn.Timeout(err) {
		return fmt.Errorf("%w: %w", models.ErrStoreUnavailable, err)
	}
	return err
}

func isNoRows(err error) bool { return errors.Is(err, pgx.ErrNoRows) }

func isUniqueViolation(err error) bool {
	var pgErr *pgconn.PgError
	return errors.As(err, &pgErr) && pgErr.Code == "23505"
}
