package handlers

import (
	"time"

	"github.com/gin-gonic/gin"

	"github.com/joanmiespada/backender/internal/core/domain"
)

// ErrorResponse represents a generic error payload with trace ID for debugging.
type ErrorResponse struct {
	Error   string `json:"error"`
	TraceID string `json:"trace_id,omitempty"`
}

// NewErrorResponse creates an error response with trace ID from context
func NewErrorResponse(c *gin.Context, errorMsg string) ErrorResponse {
	traceID, _ := c.Get("trace_id")
	traceIDStr, _ := traceID.(string)

	return ErrorResponse{
		Error:   errorMsg,
		TraceID: traceIDStr,
	}
}

// MessageResponse represents a simple message payload.
type MessageResponse struct {
	Message string `json:"message"`
}

// UserPayload summarizes a user entity.
type UserPayload struct {
	ID         string    `json:"id"`
	ExternalID string    `json:"external_id"`
	CreatedAt  time.Time `json:"created_at"`
}

// RolePayload summarizes a role entity.
type RolePayload struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}

// UserCreateRequest defines the payload for creating a user.
type UserCreateRequest struct {
	ExternalID string `json:"external_id" binding:"required"`
}

// RoleCreateRequest defines the payload for creating a role.
type RoleCreateRequest struct {
	Name string `json:"name" binding:"required"`
}

// RoleUpdateRequest defines the payload for renaming a role.
type RoleUpdateRequest struct {
	Name string `json:"name" binding:"required"`
}

// UserListResponse wraps a page of users.
type UserListResponse struct {
	Items      []UserPayload `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// RoleListResponse wraps a page of roles.
type RoleListResponse struct {
	Items      []RolePayload `json:"items"`
	Total      int64         `json:"total"`
	Page       int           `json:"page"`
	PageSize   int           `json:"page_size"`
	TotalPages int           `json:"total_pages"`
}

// UserRolesResponse lists the roles assigned to a user.
type UserRolesResponse struct {
	UserID string        `json:"user_id"`
	Roles  []RolePayload `json:"roles"`
}

// HealthResponse describes the service health payload.
type HealthResponse struct {
	Status    string    `json:"status"`
	StartedAt time.Time `json:"started_at"`
	Timestamp time.Time `json:"timestamp"`
}

// ReadyResponse describes readiness probe results with dependency checks.
type ReadyResponse struct {
	Status    string            `json:"status"`
	Checks    map[string]string `json:"checks,omitempty"`
	Timestamp time.Time         `json:"timestamp"`
}

func newUserPayload(user domain.User) UserPayload {
	return UserPayload{
		ID:         user.ID,
		ExternalID: user.ExternalID,
		CreatedAt:  user.CreatedAt,
	}
}

func newRolePayload(role domain.Role) RolePayload {
	return RolePayload{
		ID:        role.ID,
		Name:      role.Name,
		CreatedAt: role.CreatedAt,
	}
}

func newUserListResponse(page domain.Page[domain.User]) UserListResponse {
	items := make([]UserPayload, 0, len(page.Items))
	for _, user := range page.Items {
		items = append(items, newUserPayload(user))
	}

	return UserListResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}

func newRoleListResponse(page domain.Page[domain.Role]) RoleListResponse {
	items := make([]RolePayload, 0, len(page.Items))
	for _, role := range page.Items {
		items = append(items, newRolePayload(role))
	}

	return RoleListResponse{
		Items:      items,
		Total:      page.Total,
		Page:       page.Page,
		PageSize:   page.PageSize,
		TotalPages: page.TotalPages,
	}
}
