package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// UserRepository defines persistence for user records. Implementations
// encrypt the password on write and decrypt it on read, so callers only ever
// see plaintext in memory.
type UserRepository interface {
	// Create inserts user and returns it with the store-assigned ID.
	// Uniqueness violations are reported as domain.ErrUserExists.
	Create(ctx context.Context, user *domain.User) (*domain.User, error)
	// FindByUsername returns domain.ErrUserNotFound when no user matches.
	// The match is exact; usernames are not case-folded.
	FindByUsername(ctx context.Context, username string) (*domain.User, error)
	List(ctx context.Context) ([]*domain.User, error)
	// UpdatePassword replaces the stored password of username.
	UpdatePassword(ctx context.Context, username, password string) error
}
