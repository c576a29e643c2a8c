package service

import (
	"context"
	"crypto/subtle"
	"fmt"

	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/api/metrics"
	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

type userService struct {
	repo ports.UserRepository
	log  zerolog.Logger
}

// NewUserService returns a UserService implementation.
func NewUserService(repo ports.UserRepository, log zerolog.Logger) ports.UserService {
	return &userService{repo: repo, log: log}
}

// Create registers a new account. Role defaults to user; the store assigns
// the ID and enforces username and email uniqueness.
func (s *userService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	role := domain.Role(in.Role)
	if role == "" {
		role = domain.RoleUser
	}
	if !role.Valid() {
		return nil, fmt.Errorf("%w: %q", domain.ErrInvalidRole, in.Role)
	}

	created, err := s.repo.Create(ctx, &domain.User{
		FirstName: in.FirstName,
		LastName:  in.LastName,
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		IsActive:  in.IsActive,
		Role:      role,
	})
	if err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	metrics.UsersCreatedTotal.WithLabelValues(string(created.Role)).Inc()
	s.log.Info().
		Int64("user_id", created.ID).
		Str("username", created.Username).
		Str("role", string(created.Role)).
		Msg("user created")

	return created, nil
}

// ChangePassword replaces the password of in.Username after checking the
// current one.
func (s *userService) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	user, err := s.repo.FindByUsername(ctx, in.Username)
	if err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	if subtle.ConstantTimeCompare([]byte(user.Password), []byte(in.Password)) != 1 {
		return domain.ErrIncorrectPassword
	}

	if err := s.repo.UpdatePassword(ctx, user.Username, in.NewPassword); err != nil {
		return fmt.Errorf("change password: %w", err)
	}

	s.log.Info().Str("username", user.Username).Msg("password changed")
	return nil
}

func (s *userService) List(ctx context.Context) ([]*domain.User, error) {
	users, err := s.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list users: %w", err)
	}
	return users, nil
}
