package postgres

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

type AuditRepository struct {
	db DBTX
}

func NewAuditRepository(db DBTX) *AuditRepository {
	return &AuditRepository{db: db}
}

func (r *AuditRepository) Insert(ctx context.Context, event *domain.AuthEvent) error {
	_, err := r.db.ExecContext(ctx,
		`INSERT INTO auth_events (username, kind, success, remote_ip, occurred_at)
		 VALUES ($1, $2, $3, $4, $5)`,
		event.Username, string(event.Kind), event.Success, event.RemoteIP, event.OccurredAt,
	)
	if err != nil {
		return storeError("insert auth event", err)
	}
	return nil
}
