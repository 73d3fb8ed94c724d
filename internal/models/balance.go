package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Balance is the single row per user holding their current funds.
// It is mutated only inside the ledger's atomic units; the amount is
// always Σ successful deposits − Σ successful withdrawals and never
// negative.
type Balance struct {
	UserID    string          `json:"user_id"`
	Amount    decimal.Decimal `json:"amount"`
	UpdatedAt time.Time       `json:"updated_at"`
}
