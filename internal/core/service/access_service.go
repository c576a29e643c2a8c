package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

// AccessService resolves bearer tokens to users and checks liveness.
type AccessService struct {
	users  ports.UserRepository
	tokens TokenCodec
	log    zerolog.Logger
}

func NewAccessService(users ports.UserRepository, tokens TokenCodec, log zerolog.Logger) *AccessService {
	return &AccessService{users: users, tokens: tokens, log: log}
}

// Resolve verifies bearer as an access token and loads its subject. A bad
// token, a missing subject and an unknown user all yield ErrCredentials so
// callers cannot tell which check failed.
func (s *AccessService) Resolve(ctx context.Context, bearer string) (*domain.User, error) {
	claims, err := s.tokens.VerifyAccess(bearer)
	if err != nil {
		s.log.Debug().Err(err).Msg("access token rejected")
		return nil, domain.ErrCredentials
	}

	user, err := s.users.FindByUsername(ctx, claims.Subject)
	if errors.Is(err, domain.ErrUserNotFound) {
		return nil, domain.ErrCredentials
	}
	if err != nil {
		return nil, fmt.Errorf("resolve user: %w", err)
	}
	return user, nil
}

// RequireActive passes user through when its account is active.
func (s *AccessService) RequireActive(user *domain.User) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrCredentials
	}
	if !user.IsActive {
		return nil, domain.ErrInactiveUser
	}
	return user, nil
}
