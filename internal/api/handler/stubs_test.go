package handler

import (
	"context"
	"io"
	"net/http/httptest"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/api/middleware"
	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

type stubAuthService struct {
	loginFn   func(ctx context.Context, in ports.LoginInput) (*domain.TokenPair, error)
	refreshFn func(ctx context.Context, in ports.RefreshInput) (*domain.TokenPair, error)
}

func (s *stubAuthService) Authenticate(context.Context, string, string) (*domain.User, error) {
	return nil, domain.ErrInvalidCredentials
}

func (s *stubAuthService) Login(ctx context.Context, in ports.LoginInput) (*domain.TokenPair, error) {
	return s.loginFn(ctx, in)
}

func (s *stubAuthService) Refresh(ctx context.Context, in ports.RefreshInput) (*domain.TokenPair, error) {
	return s.refreshFn(ctx, in)
}

type stubUserService struct {
	createFn         func(ctx context.Context, in ports.CreateUserInput) (*domain.User, error)
	changePasswordFn func(ctx context.Context, in ports.ChangePasswordInput) error
	listFn           func(ctx context.Context) ([]*domain.User, error)
}

func (s *stubUserService) Create(ctx context.Context, in ports.CreateUserInput) (*domain.User, error) {
	return s.createFn(ctx, in)
}

func (s *stubUserService) ChangePassword(ctx context.Context, in ports.ChangePasswordInput) error {
	return s.changePasswordFn(ctx, in)
}

func (s *stubUserService) List(ctx context.Context) ([]*domain.User, error) {
	return s.listFn(ctx)
}

type stubTodoService struct {
	createFn func(ctx context.Context, actor *domain.User, in ports.CreateTodoInput) (*domain.Todo, error)
	listFn   func(ctx context.Context, actor *domain.User) ([]*domain.Todo, error)
	getFn    func(ctx context.Context, actor *domain.User, id int64) (*domain.Todo, error)
	updateFn func(ctx context.Context, actor *domain.User, id int64, in ports.UpdateTodoInput) (*domain.Todo, error)
	deleteFn func(ctx context.Context, actor *domain.User, id int64) error
}

func (s *stubTodoService) Create(ctx context.Context, actor *domain.User, in ports.CreateTodoInput) (*domain.Todo, error) {
	return s.createFn(ctx, actor, in)
}

func (s *stubTodoService) List(ctx context.Context, actor *domain.User) ([]*domain.Todo, error) {
	return s.listFn(ctx, actor)
}

func (s *stubTodoService) Get(ctx context.Context, actor *domain.User, id int64) (*domain.Todo, error) {
	return s.getFn(ctx, actor, id)
}

func (s *stubTodoService) Update(ctx context.Context, actor *domain.User, id int64, in ports.UpdateTodoInput) (*domain.Todo, error) {
	return s.updateFn(ctx, actor, id, in)
}

func (s *stubTodoService) Delete(ctx context.Context, actor *domain.User, id int64) error {
	return s.deleteFn(ctx, actor, id)
}

// newTestContext builds an echo context with the validator registered, the
// way the router configures it.
func newTestContext(method, target, contentType string, body io.Reader) (echo.Context, *httptest.ResponseRecorder) {
	e := echo.New()
	e.Validator = NewValidator()
	req := httptest.NewRequest(method, target, body)
	if contentType != "" {
		req.Header.Set(echo.HeaderContentType, contentType)
	}
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func withUser(c echo.Context, u *domain.User) echo.Context {
	c.Set(middleware.UserKey, u)
	return c
}

func alice() *domain.User {
	return &domain.User{ID: 1, FirstName: "Alice", LastName: "Liddell", Username: "alice", Email: "alice@example.com", IsActive: true, Role: domain.RoleUser}
}
