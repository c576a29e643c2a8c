package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// TodoRepository defines persistence operations for todos.
type TodoRepository interface {
	Create(ctx context.Context, todo *domain.Todo) (*domain.Todo, error)
	// FindByID returns domain.ErrTodoNotFound when no todo matches.
	FindByID(ctx context.Context, id int64) (*domain.Todo, error)
	ListByUser(ctx context.Context, userID int64) ([]*domain.Todo, error)
	// Update overwrites title, description and finished of todo.ID.
	Update(ctx context.Context, todo *domain.Todo) error
	Delete(ctx context.Context, id int64) error
}
