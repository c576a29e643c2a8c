package domain

import "errors"

// Authentication and authorization failures. Each maps to exactly one HTTP
// status and message at the API boundary.
var (
	ErrInvalidCredentials = errors.New("incorrect username or password")
	ErrCredentials        = errors.New("could not validate credentials")
	ErrNotAuthenticated   = errors.New("not authenticated")
	ErrInactiveUser       = errors.New("inactive user")
	ErrForbidden          = errors.New("forbidden")
	ErrTooManyAttempts    = errors.New("too many failed login attempts")
)

// User and todo lifecycle failures.
var (
	ErrUserNotFound      = errors.New("user not found")
	ErrUserExists        = errors.New("user already exists")
	ErrIncorrectPassword = errors.New("provided current password is incorrect")
	ErrTodoNotFound      = errors.New("todo not found")
	ErrNotAuthorized     = errors.New("not authorized")
	ErrInvalidRole       = errors.New("invalid role")
)

// ErrStore marks a persistence failure that is not an integrity violation.
// Repositories wrap driver errors with it so the boundary can tell them
// apart from programming errors.
var ErrStore = errors.New("store error")
