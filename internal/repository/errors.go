package repository

import "errors"

var (
	// ErrNotFound indicates the requested record does not exist.
	ErrNotFound = errors.New("repository: not found")
	// ErrDuplicateExternalID indicates the external identity reference is already taken.
	ErrDuplicateExternalID = errors.New("repository: external identity reference already exists")
	// ErrDuplicateRoleName indicates a role with the same name already exists.
	ErrDuplicateRoleName = errors.New("repository: role name already exists")
	// ErrRoleAlreadyAssigned indicates the user/role association already exists.
	ErrRoleAlreadyAssigned = errors.New("repository: role already assigned to user")
	// ErrRoleNotAssigned indicates the user/role association does not exist.
	ErrRoleNotAssigned = errors.New("repository: role not assigned to user")
)
