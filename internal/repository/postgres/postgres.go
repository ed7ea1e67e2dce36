package postgres

import (
	"context"
	"errors"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/joanmiespada/backender/internal/repository"
)

type pgExecutor interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

// Constraint names from migrations/0001_init.up.sql. Constraint-violation
// translation keys off these, never off error message text.
const (
	constraintUsersExternalID = "users_external_id_key"
	constraintRolesName       = "roles_name_key"
	constraintUserRolesPK     = "user_roles_pkey"
	constraintUserRolesUserFK = "user_roles_user_id_fkey"
	constraintUserRolesRoleFK = "user_roles_role_id_fkey"
)

const (
	codeUniqueViolation     = "23505"
	codeForeignKeyViolation = "23503"
)

// translateConstraintError maps PostgreSQL constraint violations onto the
// repository sentinels so the service layer sees domain error kinds even when
// a race slips past its pre-checks. Unrecognized errors pass through
// untouched for the caller to wrap.
func translateConstraintError(err error) error {
	var pgErr *pgconn.PgError
	if !errors.As(err, &pgErr) {
		return err
	}

	switch pgErr.Code {
	case codeUniqueViolation:
		switch pgErr.ConstraintName {
		case constraintUsersExternalID:
			return repository.ErrDuplicateExternalID
		case constraintRolesName:
			return repository.ErrDuplicateRoleName
		case constraintUserRolesPK:
			return repository.ErrRoleAlreadyAssigned
		}
	case codeForeignKeyViolation:
		switch pgErr.ConstraintName {
		case constraintUserRolesUserFK, constraintUserRolesRoleFK:
			return repository.ErrNotFound
		}
	}

	return err
}
