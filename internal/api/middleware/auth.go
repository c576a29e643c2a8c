package middleware

import (
	"errors"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/todoapp/todo-service/internal/api/metrics"
	"github.com/todoapp/todo-service/internal/core/domain"
	"github.com/todoapp/todo-service/internal/core/ports"
)

// UserKey is the echo.Context key under which the resolved user is stored.
const UserKey = "user"

// Auth extracts the bearer token, resolves it to a user and injects the user
// into the context. A missing or non-bearer Authorization header fails with
// domain.ErrNotAuthenticated before the resolver is consulted.
func Auth(resolver ports.AccessResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			token, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				metrics.AccessDeniedTotal.WithLabelValues("not_authenticated").Inc()
				return domain.ErrNotAuthenticated
			}

			user, err := resolver.Resolve(c.Request().Context(), token)
			if err != nil {
				if errors.Is(err, domain.ErrCredentials) {
					metrics.AccessDeniedTotal.WithLabelValues("credentials").Inc()
				}
				return err
			}

			c.Set(UserKey, user)
			return next(c)
		}
	}
}

// Active rejects users whose account is not active.
func Active(resolver ports.AccessResolver) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			user, ok := UserFrom(c)
			if !ok {
				return domain.ErrNotAuthenticated
			}
			if _, err := resolver.RequireActive(user); err != nil {
				metrics.AccessDeniedTotal.WithLabelValues("inactive").Inc()
				return err
			}
			return next(c)
		}
	}
}

// UserFrom returns the user injected by Auth.
func UserFrom(c echo.Context) (*domain.User, bool) {
	user, ok := c.Get(UserKey).(*domain.User)
	return user, ok && user != nil
}

func bearerToken(header string) (string, bool) {
	parts := strings.SplitN(header, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") {
		return "", false
	}
	token := strings.TrimSpace(parts[1])
	return token, token != ""
}
