package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deposit and Withdrawal are immutable fund movements. Creating one is
// what credits or debits the owning user's Balance; they are never
// edited afterwards.

type Deposit struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}

type Withdrawal struct {
	ID        string          `json:"id"`
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	CreatedAt time.Time       `json:"created_at"`
}
