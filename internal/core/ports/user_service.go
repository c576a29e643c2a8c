package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// CreateUserInput is the DTO for user registration.
type CreateUserInput struct {
	FirstName string
	LastName  string
	Username  string
	Email     string
	Password  string
	IsActive  bool
	Role      string // empty means domain.RoleUser
}

// ChangePasswordInput carries the current and the new password of username.
type ChangePasswordInput struct {
	Username    string
	Password    string
	NewPassword string
}

// UserService defines use-case operations on user accounts.
type UserService interface {
	Create(ctx context.Context, in CreateUserInput) (*domain.User, error)
	ChangePassword(ctx context.Context, in ChangePasswordInput) error
	List(ctx context.Context) ([]*domain.User, error)
}
