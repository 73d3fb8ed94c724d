package postgres

import (
	"context"

	"github.com/google/uuid"

	"github.com/baharkarakas/tiwiti-backend/internal/models"
)

type auditLogsRepo struct{ q DBTX }

func (r *auditLogsRepo) Create(ctx context.Context, l models.AuditLog) error {
	if l.ID == "" {
		l.ID = uuid.NewString()
	}
	_, err := r.q.Exec(ctx,
		`INSERT INTO audit_logs(id, entity_type, entity_id, action, details)
		 VALUES($1,$2,$3,$4,$5)`,
		l.ID, l.EntityType, l.EntityID, l.Action, l.Details)
	return mapErr(err)
}
