package service

import "github.com/todoapp/todo-service/internal/core/domain"

// RolePredicate returns user unchanged when it may proceed, or ErrForbidden.
type RolePredicate func(user *domain.User) (*domain.User, error)

// RequireAdmin passes only admins.
func RequireAdmin(user *domain.User) (*domain.User, error) {
	return requireRole(user, domain.RoleAdmin)
}

// RequireUser passes only regular users.
func RequireUser(user *domain.User) (*domain.User, error) {
	return requireRole(user, domain.RoleUser)
}

// RequireUserOrAdmin passes both roles.
func RequireUserOrAdmin(user *domain.User) (*domain.User, error) {
	return requireRole(user, domain.RoleUser, domain.RoleAdmin)
}

func requireRole(user *domain.User, allowed ...domain.Role) (*domain.User, error) {
	if user == nil {
		return nil, domain.ErrForbidden
	}
	for _, r := range allowed {
		if user.Role == r {
			return user, nil
		}
	}
	return nil, domain.ErrForbidden
}
