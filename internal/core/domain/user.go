package domain

import "time"

// User is a locally owned identity record. ExternalID references the account
// issued by the external identity provider; credentials never live here.
type User struct {
	ID         string
	ExternalID string
	CreatedAt  time.Time
}

// Role is a named grouping users can be assigned to. Name is unique.
type Role struct {
	ID        string
	Name      string
	CreatedAt time.Time
}

// UserRole links a user with a role. The pair is the identity of the
// association; at most one row exists per pair.
type UserRole struct {
	UserID     string
	RoleID     string
	AssignedAt time.Time
}
