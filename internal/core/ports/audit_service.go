package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// AuditService records authentication events.
type AuditService interface {
	Process(ctx context.Context, event domain.AuthEvent) error
}
