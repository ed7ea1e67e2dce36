package postgres

import "github.com/jackc/pgx/v5/pgxpool"

// Repositories bundles the PostgreSQL-backed repositories sharing one pool.
type Repositories struct {
	Users     *UserRepository
	Roles     *RoleRepository
	UserRoles *UserRoleRepository
}

// NewRepositories wires all repositories against the provided pool.
func NewRepositories(pool *pgxpool.Pool) *Repositories {
	return &Repositories{
		Users:     NewUserRepository(pool),
		Roles:     NewRoleRepository(pool),
		UserRoles: NewUserRoleRepository(pool),
	}
}
