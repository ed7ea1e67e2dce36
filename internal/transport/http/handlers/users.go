package handlers

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joanmiespada/backender/internal/core/domain"
	"github.com/joanmiespada/backender/internal/usecase"
)

// UserHandler serves the user resource and its role assignments.
type UserHandler struct {
	users *usecase.UserService
}

// NewUserHandler builds a user handler backed by the given service.
func NewUserHandler(users *usecase.UserService) *UserHandler {
	return &UserHandler{users: users}
}

// RegisterRoutes wires the user endpoints into the provided group.
func (h *UserHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateUser)
	r.GET("", h.ListUsers)
	r.GET("/:user_id", h.GetUser)
	r.DELETE("/:user_id", h.DeleteUser)
	r.GET("/:user_id/roles", h.ListRoles)
	r.POST("/:user_id/roles/:role_id", h.AssignRole)
	r.DELETE("/:user_id/roles/:role_id", h.UnassignRole)
}

// CreateUser registers a user linked to an external identity reference.
func (h *UserHandler) CreateUser(c *gin.Context) {
	var req UserCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid user payload"))
		return
	}

	user, err := h.users.CreateUser(c.Request.Context(), strings.TrimSpace(req.ExternalID))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrExternalIDExists, Status: http.StatusConflict, Message: "external identity reference already exists"},
		}, http.StatusInternalServerError, "failed to create user")
		return
	}

	c.JSON(http.StatusCreated, newUserPayload(*user))
}

// GetUser returns a single user by ID.
func (h *UserHandler) GetUser(c *gin.Context) {
	user, err := h.users.GetUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusInternalServerError, "failed to fetch user")
		return
	}

	c.JSON(http.StatusOK, newUserPayload(*user))
}

// ListUsers returns a page of users. When the external_id query parameter is
// set, the matching user is returned instead.
func (h *UserHandler) ListUsers(c *gin.Context) {
	if externalID := strings.TrimSpace(c.Query("external_id")); externalID != "" {
		user, err := h.users.GetUserByExternalID(c.Request.Context(), externalID)
		if err != nil {
			RespondWithMappedError(c, err, []ErrorCase{
				{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
			}, http.StatusInternalServerError, "failed to fetch user")
			return
		}

		c.JSON(http.StatusOK, newUserPayload(*user))
		return
	}

	page, ok := pageRequestFromQuery(c)
	if !ok {
		return
	}

	result, err := h.users.ListUsers(c.Request.Context(), page)
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "failed to list users")
		return
	}

	c.JSON(http.StatusOK, newUserListResponse(result))
}

// DeleteUser removes a user and all of its role assignments.
func (h *UserHandler) DeleteUser(c *gin.Context) {
	err := h.users.DeleteUser(c.Request.Context(), c.Param("user_id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusInternalServerError, "failed to delete user")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListRoles returns every role assigned to the user.
func (h *UserHandler) ListRoles(c *gin.Context) {
	userID := c.Param("user_id")

	roles, err := h.users.ListRolesForUser(c.Request.Context(), userID)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
		}, http.StatusInternalServerError, "failed to list user roles")
		return
	}

	payloads := make([]RolePayload, 0, len(roles))
	for _, role := range roles {
		payloads = append(payloads, newRolePayload(role))
	}

	c.JSON(http.StatusOK, UserRolesResponse{UserID: userID, Roles: payloads})
}

// AssignRole grants a role to a user.
func (h *UserHandler) AssignRole(c *gin.Context) {
	err := h.users.AssignRole(c.Request.Context(), c.Param("user_id"), c.Param("role_id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
			{Err: usecase.ErrRoleNotFound, Status: http.StatusNotFound, Message: "role not found"},
			{Err: usecase.ErrRoleAlreadyAssigned, Status: http.StatusConflict, Message: "user already has role"},
		}, http.StatusInternalServerError, "failed to assign role")
		return
	}

	c.JSON(http.StatusCreated, MessageResponse{Message: "role assigned"})
}

// UnassignRole revokes a role from a user.
func (h *UserHandler) UnassignRole(c *gin.Context) {
	err := h.users.UnassignRole(c.Request.Context(), c.Param("user_id"), c.Param("role_id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrUserNotFound, Status: http.StatusNotFound, Message: "user not found"},
			{Err: usecase.ErrRoleNotFound, Status: http.StatusNotFound, Message: "role not found"},
			{Err: usecase.ErrRoleNotAssigned, Status: http.StatusConflict, Message: "role not assigned to user"},
		}, http.StatusInternalServerError, "failed to unassign role")
		return
	}

	c.Status(http.StatusNoContent)
}

// pageRequestFromQuery parses pagination parameters, responding with 400 on
// malformed values. Range validation happens in the service layer.
func pageRequestFromQuery(c *gin.Context) (domain.PageRequest, bool) {
	page := domain.DefaultPage
	pageSize := domain.DefaultPageSize

	if raw := c.Query("page"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "page must be an integer"))
			return domain.PageRequest{}, false
		}
		page = parsed
	}

	if raw := c.Query("page_size"); raw != "" {
		parsed, err := strconv.Atoi(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, NewErrorResponse(c, "page_size must be an integer"))
			return domain.PageRequest{}, false
		}
		pageSize = parsed
	}

	return domain.PageRequest{Page: page, PageSize: pageSize}, true
}
