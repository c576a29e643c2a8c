package ports

import (
	"context"

	"github.com/todoapp/todo-service/internal/core/domain"
)

// LoginInput carries form credentials plus the caller address used for
// throttling and audit.
type LoginInput struct {
	Username string
	Password string
	RemoteIP string
}

// RefreshInput carries the refresh token presented by the client.
type RefreshInput struct {
	RefreshToken string
	RemoteIP     string
}

// AuthService verifies credentials and issues token pairs.
type AuthService interface {
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, in LoginInput) (*domain.TokenPair, error)
	Refresh(ctx context.Context, in RefreshInput) (*domain.TokenPair, error)
}

// AccessResolver turns a bearer token into a live user.
type AccessResolver interface {
	Resolve(ctx context.Context, bearer string) (*domain.User, error)
	RequireActive(user *domain.User) (*domain.User, error)
}
