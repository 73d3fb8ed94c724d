package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type UsageType string

const (
	UsageDeduction UsageType = "deduction"
	UsageRefund    UsageType = "refund"
)

// PersonalUsage tracks the admin's own draw-down against pooled funds.
// It never touches a user Balance; every insert or delete triggers a
// full TotalBalance recomputation.
type PersonalUsage struct {
	ID          string          `json:"id"`
	Type        UsageType       `json:"type"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	UpdatedAt   time.Time       `json:"updated_at"`
}
