package middleware

import (
	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/api/metrics"
	"github.com/todoapp/todo-service/internal/core/domain"
)

// RolePredicate admits a user or fails with domain.ErrForbidden.
type RolePredicate func(user *domain.User) (*domain.User, error)

// RBAC runs allow against the user injected by Auth.
func RBAC(allow RolePredicate) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFrom(c)
			if !ok {
				return domain.ErrNotAuthenticated
			}
			if _, err := allow(user); err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("forbidden").Inc()
				return err
			}
			return next(c)
		}
	}
}
