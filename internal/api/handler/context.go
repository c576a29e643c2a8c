package handler

import (
	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/api/middleware"
	"github.com/todoapp/todo-service/internal/core/domain"
)

// currentUser returns the user injected by the Auth middleware. A handler
// mounted without the auth chain fails closed with ErrNotAuthenticated.
func currentUser(c echo.Context) (*domain.User, error) {
	user, ok := middleware.UserFrom(c)
	if !ok {
		return nil, domain.ErrNotAuthenticated
	}
	return user, nil
}
