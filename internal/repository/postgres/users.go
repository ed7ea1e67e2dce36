package postgres

import (
	"context"
	"errors"
	"fmt"

	squirrel "github.com/Masterminds/squirrel"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/joanmiespada/backender/internal/core/domain"
	"github.com/joanmiespada/backender/internal/core/port"
	"github.com/joanmiespada/backender/internal/repository"
)

// UserRepository implements port.UserRepository using PostgreSQL.
type UserRepository struct {
	pool    *pgxpool.Pool
	exec    pgExecutor
	builder squirrel.StatementBuilderType
}

// NewUserRepository constructs a repository backed by any executor that satisfies pgExecutor.
func NewUserRepository(exec pgExecutor) *UserRepository {
	repo := &UserRepository{
		exec:    exec,
		builder: squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar),
	}
	if pool, ok := exec.(*pgxpool.Pool); ok {
		repo.pool = pool
	}
	return repo
}

// WithTx returns a repository instance operating within the supplied transaction.
func (r *UserRepository) WithTx(tx pgx.Tx) *UserRepository {
	if tx == nil {
		return r
	}
	return &UserRepository{
		pool:    r.pool,
		exec:    tx,
		builder: r.builder,
	}
}

// Create inserts a new user row.
func (r *UserRepository) Create(ctx context.Context, user domain.User) error {
	stmt, args, err := r.builder.Insert("users.users").
		Columns("id", "external_id", "created_at").
		Values(user.ID, user.ExternalID, user.CreatedAt).
		ToSql()
	if err != nil {
		return fmt.Errorf("build insert user sql: %w", err)
	}

	if _, err := r.exec.Exec(ctx, stmt, args...); err != nil {
		if translated := translateConstraintError(err); translated != err {
			return translated
		}
		return fmt.Errorf("insert user: %w", err)
	}

	return nil
}

// GetByID retrieves a user by identifier.
func (r *UserRepository) GetByID(ctx context.Context, id string) (*domain.User, error) {
	stmt, args, err := r.builder.Select("id", "external_id", "created_at").
		From("users.users").
		Where(squirrel.Eq{"id": id}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)

	var user domain.User
	if err := row.Scan(&user.ID, &user.ExternalID, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user: %w", err)
	}

	return &user, nil
}

// GetByExternalID retrieves a user by the identity-provider reference.
func (r *UserRepository) GetByExternalID(ctx context.Context, externalID string) (*domain.User, error) {
	stmt, args, err := r.builder.Select("id", "external_id", "created_at").
		From("users.users").
		Where(squirrel.Eq{"external_id": externalID}).
		Limit(1).
		ToSql()
	if err != nil {
		return nil, fmt.Errorf("build select user by external id sql: %w", err)
	}

	row := r.exec.QueryRow(ctx, stmt, args...)

	var user domain.User
	if err := row.Scan(&user.ID, &user.ExternalID, &user.CreatedAt); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, repository.ErrNotFound
		}
		return nil, fmt.Errorf("scan user by external id: %w", err)
	}

	return &user, nil
}

// Delete removes a user by ID. Association rows go with it via FK cascade.
func (r *UserRepository) Delete(ctx context.Context, id string) error {
	stmt, args, err := r.builder.Delete("users.users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return fmt.Errorf("build delete user sql: %w", err)
	}

	res, err := r.exec.Exec(ctx, stmt, args...)
	if err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	if res.RowsAffected() == 0 {
		return repository.ErrNotFound
	}

	return nil
}

// List returns one page of users in creation order together with the overall
// count. The two reads are not snapshot-isolated; the total may be off by a
// few under heavy concurrent writes.
func (r *UserRepository) List(ctx context.Context, page domain.PageRequest) ([]domain.User, int64, error) {
	stmt, args, err := r.builder.Select("id", "external_id", "created_at").
		From("users.users").
		OrderBy("created_at ASC", "id ASC").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query users: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, page.Limit())
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.ExternalID, &user.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users: %w", err)
	}

	total, err := r.countUsers(ctx, nil)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

// ListByRole returns one page of users holding the given role.
func (r *UserRepository) ListByRole(ctx context.Context, roleID string, page domain.PageRequest) ([]domain.User, int64, error) {
	stmt, args, err := r.builder.Select("u.id", "u.external_id", "u.created_at").
		From("users.users u").
		Join("users.user_roles ur ON ur.user_id = u.id").
		Where(squirrel.Eq{"ur.role_id": roleID}).
		OrderBy("u.created_at ASC", "u.id ASC").
		Limit(uint64(page.Limit())).
		Offset(uint64(page.Offset())).
		ToSql()
	if err != nil {
		return nil, 0, fmt.Errorf("build list users by role sql: %w", err)
	}

	rows, err := r.exec.Query(ctx, stmt, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("query users by role: %w", err)
	}
	defer rows.Close()

	users := make([]domain.User, 0, page.Limit())
	for rows.Next() {
		var user domain.User
		if err := rows.Scan(&user.ID, &user.ExternalID, &user.CreatedAt); err != nil {
			return nil, 0, fmt.Errorf("scan user by role: %w", err)
		}
		users = append(users, user)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("iterate users by role: %w", err)
	}

	total, err := r.countUsers(ctx, &roleID)
	if err != nil {
		return nil, 0, err
	}

	return users, total, nil
}

func (r *UserRepository) countUsers(ctx context.Context, roleID *string) (int64, error) {
	query := r.builder.Select("COUNT(*)").From("users.users u")
	if roleID != nil {
		query = query.
			Join("users.user_roles ur ON ur.user_id = u.id").
			Where(squirrel.Eq{"ur.role_id": *roleID})
	}

	stmt, args, err := query.ToSql()
	if err != nil {
		return 0, fmt.Errorf("build count users sql: %w", err)
	}

	var total int64
	if err := r.exec.QueryRow(ctx, stmt, args...).Scan(&total); err != nil {
		return 0, fmt.Errorf("count users: %w", err)
	}

	return total, nil
}

var _ port.UserRepository = (*UserRepository)(nil)
