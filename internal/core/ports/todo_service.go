package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// CreateTodoInput holds the fields a user supplies for a new todo.
type CreateTodoInput struct {
	Title       string
	Description *string
}

// UpdateTodoInput replaces every mutable field of a todo.
type UpdateTodoInput struct {
	Title       string
	Description *string
	Finished    bool
}

// TodoService defines use-case operations on todos. Every call is made on
// behalf of an already resolved, active actor.
type TodoService interface {
	Create(ctx context.Context, actor *domain.User, in CreateTodoInput) (*domain.Todo, error)
	List(ctx context.Context, actor *domain.User) ([]*domain.Todo, error)
	Get(ctx context.Context, actor *domain.User, id int64) (*domain.Todo, error)
	Update(ctx context.Context, actor *domain.User, id int64, in UpdateTodoInput) (*domain.Todo, error)
	Delete(ctx context.Context, actor *domain.User, id int64) error
}
