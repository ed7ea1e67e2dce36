package postgres

import (
	"context"
	"fmt"
	"time"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joanmiespada/backender/internal/core/port"
	"github.com/joanmiespada/backender/internal/repository"
)

// UserRoleRepository manages user/role association rows. Both Assign and
// Unassign are single statements: concurrent duplicate assigns resolve at the
// composite primary key, not by read-then-write.
type UserRoleRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRoleRepository constructs a PostgreSQL-backed association repository.
func NewUserRoleRepository(exec pgExecutor) *UserRoleRepository {
	repo := &UserRoleRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *UserRoleRepository) WithTx(tx pgx.Tx) *UserRoleRepository {
	if tx == nil {
		return r
	}
	return &UserRoleRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Assign inserts the association row. A duplicate pair surfaces as
// repository.ErrRoleAlreadyAssigned; a missing parent as repository.ErrNotFound.
func (r *UserRoleRepository) Assign(ctx context.Context, userID, roleID string) error {
	stmt, args, err := r.builder.Insert("users.user_roles").
		Columns("user_id", "role_id", "assigned_at").
		Values(userID, roleID, time.Now().UTC()).
		ToSql()
	if err != nil {
		return fmt.Errorf("build assign role sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		if translated := translateConstraintError(err); translated != err {
			return translated
		}
		return fmt.Errorf("assign role: %w", err)
	}

	return nil
}

// Unassign deletes the association row. Zero rows affected surfaces as
// repository.ErrRoleNotAssigned.
func (r *UserRoleRepository) Unassign(ctx context.Context, userID, roleID string) error {
	stmt, args, err := r.builder.Delete("users.user_roles").
		Where(squirrel.Eq{"user_id": userID}).
		Where(squirrel.Eq{"role_id": roleID}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build unassign role sql: %w", err)
	}

	res, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("unassign role: %w", err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrRoleNotAssigned
	}

	return nil
}

var _ port.UserRoleRepository = (*UserRoleRepository)(nil)
