package usecase

import (
	"fmt"

	"github.com/joanmiespada/backender/internal/core/domain"
)

// Cache key layout. Single-entity keys are invalidated individually; list
// keys are invalidated coarsely by pattern since pages are cheap to
// recompute. The shared service prefix is owned by the cache adapter.

func userKey(userID string) string {
	return fmt.Sprintf("user:%s", userID)
}

func userRolesKey(userID string) string {
	return fmt.Sprintf("user:%s:roles", userID)
}

func roleKey(roleID string) string {
	return fmt.Sprintf("role:%s", roleID)
}

func usersListKey(page domain.PageRequest) string {
	return fmt.Sprintf("users:list:%d:%d", page.Page, page.PageSize)
}

func rolesListKey(page domain.PageRequest) string {
	return fmt.Sprintf("roles:list:%d:%d", page.Page, page.PageSize)
}

const (
	usersListPattern = "users:list:*"
	rolesListPattern = "roles:list:*"
	userRolesPattern = "user:*:roles"
)
