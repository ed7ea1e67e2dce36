package domain

import "time"

// UserCreatedEvent is emitted after a user row is committed.
type UserCreatedEvent struct {
	UserID     string
	ExternalID string
	CreatedAt  time.Time
}

// UserDeletedEvent is emitted after a user and its associations are removed.
type UserDeletedEvent struct {
	UserID    string
	DeletedAt time.Time
}

// RoleCreatedEvent is emitted after a role row is committed.
type RoleCreatedEvent struct {
	RoleID    string
	Name      string
	CreatedAt time.Time
}

// RoleUpdatedEvent is emitted after a role rename is committed.
type RoleUpdatedEvent struct {
	RoleID    string
	Name      string
	UpdatedAt time.Time
}

// RoleDeletedEvent is emitted after a role and its associations are removed.
type RoleDeletedEvent struct {
	RoleID    string
	DeletedAt time.Time
}

// RoleAssignedEvent is emitted after a user/role association is committed.
type RoleAssignedEvent struct {
	UserID     string
	RoleID     string
	AssignedAt time.Time
}

// RoleUnassignedEvent is emitted after a user/role association is removed.
type RoleUnassignedEvent struct {
	UserID       string
	RoleID       string
	UnassignedAt time.Time
}
