package handlers

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/baharkarakas/tiwiti-backend/internal/auth"
	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

type LedgerService interface {
	Deposit(ctx context.Context, userID string, amount decimal.Decimal) (models.Balance, error)
	Withdraw(ctx context.Context, userID string, amount decimal.Decimal) (models.Balance, error)
	GetBalance(ctx context.Context, userID string) (models.Balance, error)
	ListTransactions(ctx context.Context, userID string, limit, offset int) ([]models.TransactionLog, int64, error)
}

type AdminService interface {
	TotalBalance(ctx context.Context) (models.TotalBalance, error)
	ListPersonalUsage(ctx context.Context, limit, offset int) ([]models.PersonalUsage, error)
	RecordPersonalUsage(ctx context.Context, adminID string, t models.UsageType, amount decimal.Decimal, description string) (models.PersonalUsage, error)
	DeletePersonalUsage(ctx context.Context, id string) error
}

type UserService interface {
	Register(ctx context.Context, username, email, password string) (models.User, error)
	Login(ctx context.Context, username, password string) (auth.TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (auth.TokenPair, error)
}
