package postgres

import (
	"context"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	repo "github.com/baharkarakas/tiwiti-backend/internal/repository"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx, so every repo
// works the same inside and outside a transaction.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

type Store struct {
	pool *pgxpool.Pool
	// txTimeout bounds every atomic unit; on expiry the transaction is
	// rolled back and the caller sees ErrStoreUnavailable.
	txTimeout time.Duration
}

func NewStore(pool *pgxpool.Pool, txTimeout time.Duration) *Store {
	return &Store{pool: pool, txTimeout: txTimeout}
}

func repos(q DBTX) repo.Repos {
	return repo.Repos{
		Users:           &usersRepo{q},
		Balances:        &balancesRepo{q},
		Movements:       &movementsRepo{q},
		TransactionLogs: &transactionLogsRepo{q},
		PersonalUsages:  &personalUsagesRepo{q},
		TotalBalances:   &totalBalancesRepo{q},
		AuditLogs:       &auditLogsRepo{q},
	}
}

func (s *Store) Repos() repo.Repos { return repos(s.pool) }

// InTx runs fn inside a single read-write transaction and commits only
// if fn returns nil. Any error rolls the whole unit back.
func (s *Store) InTx(ctx context.Context, fn func(ctx context.Context, r repo.Repos) error) error {
	if s.txTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, s.txTimeout)
		defer cancel()
	}

	tx, err := s.pool.BeginTx(ctx, pgx.TxOptions{AccessMode: pgx.ReadWrite})
	if err != nil {
		return mapErr(err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(ctx, repos(tx)); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return mapErr(err)
	}
	return nil
}
