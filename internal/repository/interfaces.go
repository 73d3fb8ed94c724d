package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

type Users interface {
	Create(ctx context.Context, username, email, passwordHash, role string) (models.User, error)
	GetByID(ctx context.Context, id string) (models.User, error)
	GetByUsername(ctx context.Context, username string) (models.User, error)
	List(ctx context.Context) ([]models.User, error)
}

type Balances interface {
	Get(ctx context.Context, userID string) (models.Balance, error)
	// GetForUpdate reads the balance under a row lock, serializing
	// concurrent mutations for the same user. models.ErrNoBalanceRecord
	// when the user has no row.
	GetForUpdate(ctx context.Context, userID string) (models.Balance, error)
	// CreateIfAbsent inserts a zero balance row unless one exists.
	// Only the deposit path may call it; withdrawals and reads never
	// create rows.
	CreateIfAbsent(ctx context.Context, userID string) error
	Add(ctx context.Context, userID string, delta decimal.Decimal) (models.Balance, error)
}

type Movements interface {
	CreateDeposit(ctx context.Context, userID string, amount decimal.Decimal) (models.Deposit, error)
	CreateWithdrawal(ctx context.Context, userID string, amount decimal.Decimal) (models.Withdrawal, error)
	SumDeposits(ctx context.Context) (decimal.Decimal, error)
	SumWithdrawals(ctx context.Context) (decimal.Decimal, error)
}

type TransactionLogs interface {
	Create(ctx context.Context, l models.TransactionLog) (models.TransactionLog, error)
	// UpdateStatus applies the only mutation the log permits:
	// pending -> successful|failed.
	UpdateStatus(ctx context.Context, id string, status models.LogStatus) error
	ListByUser(ctx context.Context, userID string, limit, offset int) ([]models.TransactionLog, error)
	CountByUser(ctx context.Context, userID string) (int64, error)
}

type PersonalUsages interface {
	Create(ctx context.Context, u models.PersonalUsage) (models.PersonalUsage, error)
	Delete(ctx context.Context, id string) error
	List(ctx context.Context, limit, offset int) ([]models.PersonalUsage, error)
	SumByType(ctx context.Context, t models.UsageType) (decimal.Decimal, error)
}

type TotalBalances interface {
	// Get returns the singleton snapshot; models.ErrNotFound before the
	// first reconciliation.
	Get(ctx context.Context) (models.TotalBalance, error)
	// Acquire takes the snapshot row lock for the rest of the
	// transaction, creating the row first if it does not exist. Sums
	// read after Acquire include every previously committed movement.
	Acquire(ctx context.Context) error
	Upsert(ctx context.Context, tb models.TotalBalance) (models.TotalBalance, error)
}

type AuditLogs interface {
	Create(ctx context.Context, l models.AuditLog) error
}

// Repos bundles one implementation of every aggregate, bound either to
// the pool or to a single transaction.
type Repos struct {
	Users           Users
	Balances        Balances
	Movements       Movements
	TransactionLogs TransactionLogs
	PersonalUsages  PersonalUsages
	TotalBalances   TotalBalances
	AuditLogs       AuditLogs
}

// Store is the ledger's durable store. InTx runs fn as one atomic
// all-or-nothing unit: every repo call made through the Repos it hands
// out shares the same transaction, committed iff fn returns nil. The
// context passed to fn carries the store's transaction timeout.
type Store interface {
	Repos() Repos
	InTx(ctx context.Context, fn func(ctx context.Context, r Repos) error) error
}
