package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TotalBalance is the admin aggregate snapshot, kept as a single row
// and always derived by full recomputation from deposits, withdrawals
// and personal_usage rows:
//
//	personal_usage          = Σ deductions − Σ refunds
//	displayed_total_balance = total_deposits − total_withdrawals
//	admin_total_balance     = displayed_total_balance − personal_usage
type TotalBalance struct {
	TotalDeposits         decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals      decimal.Decimal `json:"total_withdrawals"`
	PersonalUsage         decimal.Decimal `json:"personal_usage"`
	DisplayedTotalBalance decimal.Decimal `json:"displayed_total_balance"`
	AdminTotalBalance     decimal.Decimal `json:"admin_total_balance"`
	UpdatedAt             time.Time       `json:"updated_at"`
}
