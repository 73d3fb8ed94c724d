package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
	repo "github.com/baharkarakas/tiwiti-backend/internal/repository"
	"github.com/baharkarakas/tiwiti-backend/internal/worker"
)

// AuditTrail writes operational audit rows through the worker pool,
// after the owning transaction has committed. Failures are logged and
// dropped: TransactionLog, written in-transaction, is the record that
// matters.
type AuditTrail struct {
	logs repo.AuditLogs
	wp   *worker.Pool
	log  *slog.Logger
}

func NewAuditTrail(logs repo.AuditLogs, wp *worker.Pool, log *slog.Logger) *AuditTrail {
	return &AuditTrail{logs: logs, wp: wp, log: log}
}

func (a *AuditTrail) Emit(entityType, entityID, action string, details map[string]any) {
	if a == nil {
		return
	}
	entry := models.AuditLog{
		EntityType: entityType,
		EntityID:   &entityID,
		Action:     action,
		Details:    details,
	}
	a.wp.Submit(func() {
		ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := a.logs.Create(ctx, entry); err != nil {
			a.log.Warn("audit write failed", "entity", entityType, "action", action, "err", err)
		}
	})
}
