package service

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

// TodoService implements todo use cases with per-item ownership checks.
// Admins may read any todo; only the owner may change or delete it.
type TodoService struct {
	repo   ports.TodoRepository
	logger zerolog.Logger
}

func NewTodoService(repo ports.TodoRepository, logger zerolog.Logger) *TodoService {
	return &TodoService{repo: repo, logger: logger}
}

func (s *TodoService) Create(ctx context.Context, actor *domain.User, in ports.CreateTodoInput) (*domain.Todo, error) {
	todo, err := s.repo.Create(ctx, &domain.Todo{
		Title:       in.Title,
		Description: in.Description,
		UserID:      actor.ID,
	})
	if err != nil {
		return nil, fmt.Errorf("create todo: %w", err)
	}
	s.logger.Debug().Int64("todo_id", todo.ID).Int64("user_id", actor.ID).Msg("todo created")
	return todo, nil
}

// List returns the actor's own todos only, for admins too.
func (s *TodoService) List(ctx context.Context, actor *domain.User) ([]*domain.Todo, error) {
	todos, err := s.repo.ListByUser(ctx, actor.ID)
	if err != nil {
		return nil, fmt.Errorf("list todos: %w", err)
	}
	return todos, nil
}

func (s *TodoService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !todo.OwnedBy(actor) && !actor.IsAdmin() {
		return nil, domain.ErrNotAuthorized
	}
	return todo, nil
}

func (s *TodoService) Update(ctx context.Context, actor *domain.User, id int64, in ports.UpdateTodoInput) (*domain.Todo, error) {
	todo, err := s.ownedTodo(ctx, actor, id)
	if err != nil {
		return nil, err
	}

	todo.Title = in.Title
	todo.Description = in.Description
	todo.Finished = in.Finished

	if err := s.repo.Update(ctx, todo); err != nil {
		return nil, fmt.Errorf("update todo: %w", err)
	}
	return todo, nil
}

func (s *TodoService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	if _, err := s.ownedTodo(ctx, actor, id); err != nil {
		return err
	}
	if err := s.repo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete todo: %w", err)
	}
	s.logger.Debug().Int64("todo_id", id).Int64("user_id", actor.ID).Msg("todo deleted")
	return nil
}

func (s *TodoService) ownedTodo(ctx context.Context, actor *domain.User, id int64) (*domain.Todo, error) {
	todo, err := s.repo.FindByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !todo.OwnedBy(actor) {
		return nil, domain.ErrNotAuthorized
	}
	return todo, nil
}
