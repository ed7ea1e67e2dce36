package usecase

import (
	"errors"
	"fmt"
)

var (
	// ErrUserNotFound is returned when the referenced user does not exist.
	ErrUserNotFound = errors.New("user not found")
	// ErrRoleNotFound is returned when the referenced role does not exist.
	ErrRoleNotFound = errors.New("role not found")
	// ErrExternalIDExists indicates the external identity reference is already registered.
	ErrExternalIDExists = errors.New("external identity reference already exists")
	// ErrRoleNameExists indicates a role with the provided name already exists.
	ErrRoleNameExists = errors.New("role name already exists")
	// ErrRoleAlreadyAssigned indicates the user already holds the role.
	ErrRoleAlreadyAssigned = errors.New("user already has role")
	// ErrRoleNotAssigned indicates the user does not hold the role.
	ErrRoleNotAssigned = errors.New("role not assigned to user")
)

// ValidationError reports malformed input. It never reaches the store.
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation failed on %s: %s", e.Field, e.Message)
}

func newValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
