package api

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog"

	"github.com/todoapp/todo-service/internal/api/handler"
	"github.com/todoapp/todo-service/internal/core/domain"
)

// errorResponse is the canonical error envelope for all API errors.
type errorResponse struct {
	Detail string `json:"detail"`
}

// apiError is the resolved HTTP form of an error.
type apiError struct {
	code      int
	detail    string
	challenge bool // send WWW-Authenticate: Bearer
}

// NewHTTPErrorHandler returns an echo.HTTPErrorHandler that:
//   - Maps known domain errors to their HTTP status codes.
//   - Adds the bearer challenge header to authentication failures.
//   - Logs unexpected errors internally without leaking details to the client.
//   - Renders a consistent JSON envelope: {"detail": "<message>"}.
func NewHTTPErrorHandler(log zerolog.Logger) echo.HTTPErrorHandler {
	return func(err error, c echo.Context) {
		if c.Response().Committed {
			return
		}

		ae, known := classify(err)
		if !known {
			logUnhandled(log, c, err)
		}
		if ae.challenge {
			c.Response().Header().Set(echo.HeaderWWWAuthenticate, "Bearer")
		}
		if c.Request().Method == http.MethodHead {
			_ = c.NoContent(ae.code)
			return
		}
		_ = c.JSON(ae.code, errorResponse{Detail: ae.detail})
	}
}

// statusOf reports the status code the error handler will render for err.
func statusOf(c echo.Context, err error) int {
	if err == nil {
		return c.Response().Status
	}
	ae, _ := classify(err)
	return ae.code
}

// classify maps err to its HTTP form. known is false for errors that are
// rendered as a 500 and need to be logged.
func classify(err error) (ae apiError, known bool) {
	// Echo's own errors (router 404/405, rate limiter 429, body limit, etc.)
	var he *echo.HTTPError
	if errors.As(err, &he) {
		return apiError{code: he.Code, detail: fmt.Sprintf("%v", he.Message)}, true
	}

	var ve *handler.ValidationError
	if errors.As(err, &ve) {
		return apiError{code: http.StatusUnprocessableEntity, detail: ve.Error()}, true
	}

	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		return apiError{code: http.StatusUnauthorized, detail: "Incorrect username or password", challenge: true}, true
	case errors.Is(err, domain.ErrCredentials):
		return apiError{code: http.StatusUnauthorized, detail: "Could not validate credentials", challenge: true}, true
	case errors.Is(err, domain.ErrNotAuthenticated):
		return apiError{code: http.StatusUnauthorized, detail: "Not authenticated", challenge: true}, true
	case errors.Is(err, domain.ErrInactiveUser):
		return apiError{code: http.StatusBadRequest, detail: "Inactive User"}, true
	case errors.Is(err, domain.ErrForbidden):
		return apiError{code: http.StatusForbidden, detail: "Forbidden"}, true
	case errors.Is(err, domain.ErrTooManyAttempts):
		return apiError{code: http.StatusTooManyRequests, detail: "Too many failed login attempts"}, true
	case errors.Is(err, domain.ErrUserExists):
		return apiError{code: http.StatusBadRequest, detail: "Failed to create user. Integrity error."}, true
	case errors.Is(err, domain.ErrUserNotFound):
		return apiError{code: http.StatusNotFound, detail: "User with given username not found."}, true
	case errors.Is(err, domain.ErrIncorrectPassword):
		return apiError{code: http.StatusBadRequest, detail: "Provided current password is incorrect."}, true
	case errors.Is(err, domain.ErrTodoNotFound):
		return apiError{code: http.StatusNotFound, detail: "Todo not found"}, true
	case errors.Is(err, domain.ErrNotAuthorized):
		return apiError{code: http.StatusUnauthorized, detail: "Not authorized."}, true
	case errors.Is(err, domain.ErrInvalidRole):
		return apiError{code: http.StatusUnprocessableEntity, detail: "role must be one of: user admin"}, true
	case errors.Is(err, domain.ErrStore):
		return apiError{code: http.StatusInternalServerError, detail: "Database error occurred."}, false
	}

	// security.ErrDecoding lands here too: stored ciphertext is unusable.
	return apiError{code: http.StatusInternalServerError, detail: "Internal server error"}, false
}

// logUnhandled records the real cause of a 500 response.
func logUnhandled(log zerolog.Logger, c echo.Context, err error) {
	log.Error().
		Err(err).
		Str("method", c.Request().Method).
		Str("path", c.Path()).
		Str("request_id", c.Response().Header().Get(echo.HeaderXRequestID)).
		Msg("unhandled error")
}
