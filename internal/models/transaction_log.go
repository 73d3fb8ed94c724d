package models

import (
	"time"

	"github.com/shopspring/decimal"
)

type LogType string

const (
	LogDeposit       LogType = "deposit"
	LogWithdrawal    LogType = "withdrawal"
	LogRefund        LogType = "refund"
	LogPersonalUsage LogType = "personal_usage"
)

type LogStatus string

const (
	LogPending    LogStatus = "pending"
	LogSuccessful LogStatus = "successful"
	LogFailed     LogStatus = "failed"
)

// TransactionLog is the append-only audit row written in the same
// transaction as the movement it describes. DepositID and WithdrawalID
// are mutually exclusive and become nil if the source row is deleted;
// the log row itself survives. After creation only the status may
// change, and only pending -> successful|failed.
type TransactionLog struct {
	ID           string          `json:"id"`
	Type         LogType         `json:"type"`
	UserID       string          `json:"user_id"`
	Amount       decimal.Decimal `json:"amount"`
	DepositID    *string         `json:"deposit_id,omitempty"`
	WithdrawalID *string         `json:"withdrawal_id,omitempty"`
	IsAdminOnly  bool            `json:"is_admin_only"`
	Status       LogStatus       `json:"status"`
	UpdatedAt    time.Time       `json:"updated_at"`
}
