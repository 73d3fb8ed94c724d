package models

import "time"

// AuditLog is a best-effort operational event, written after commit.
// The in-transaction TransactionLog is the authoritative record; these
// rows are breadcrumbs for operators.
type AuditLog struct {
	ID         string         `json:"id"`
	EntityType string         `json:"entity_type"`
	EntityID   *string        `json:"entity_id"`
	Action     string         `json:"action"`
	Details    map[string]any `json:"details"`
	CreatedAt  time.Time      `json:"created_at"`
}
