package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/joanmiespada/backender/internal/usecase"
)

// RoleHandler serves the role resource.
type RoleHandler struct {
	roles *usecase.UserService
}

// NewRoleHandler builds a role handler backed by the given service.
func NewRoleHandler(roles *usecase.UserService) *RoleHandler {
	return &RoleHandler{roles: roles}
}

// RegisterRoutes wires the role endpoints into the provided group.
func (h *RoleHandler) RegisterRoutes(r *gin.RouterGroup) {
	r.POST("", h.CreateRole)
	r.GET("", h.ListRoles)
	r.GET("/:role_id", h.GetRole)
	r.PUT("/:role_id", h.UpdateRole)
	r.DELETE("/:role_id", h.DeleteRole)
	r.GET("/:role_id/users", h.ListUsers)
}

// CreateRole creates a role with a unique name.
func (h *RoleHandler) CreateRole(c *gin.Context) {
	var req RoleCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid role payload"))
		return
	}

	role, err := h.roles.CreateRole(c.Request.Context(), strings.TrimSpace(req.Name))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrRoleNameExists, Status: http.StatusConflict, Message: "role name already exists"},
		}, http.StatusInternalServerError, "failed to create role")
		return
	}

	c.JSON(http.StatusCreated, newRolePayload(*role))
}

// GetRole returns a single role by ID.
func (h *RoleHandler) GetRole(c *gin.Context) {
	role, err := h.roles.GetRole(c.Request.Context(), c.Param("role_id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrRoleNotFound, Status: http.StatusNotFound, Message: "role not found"},
		}, http.StatusInternalServerError, "failed to fetch role")
		return
	}

	c.JSON(http.StatusOK, newRolePayload(*role))
}

// UpdateRole renames a role.
func (h *RoleHandler) UpdateRole(c *gin.Context) {
	var req RoleUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, NewErrorResponse(c, "invalid role payload"))
		return
	}

	role, err := h.roles.UpdateRole(c.Request.Context(), c.Param("role_id"), strings.TrimSpace(req.Name))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrRoleNotFound, Status: http.StatusNotFound, Message: "role not found"},
			{Err: usecase.ErrRoleNameExists, Status: http.StatusConflict, Message: "role name already exists"},
		}, http.StatusInternalServerError, "failed to update role")
		return
	}

	c.JSON(http.StatusOK, newRolePayload(*role))
}

// ListRoles returns a page of roles ordered by name.
func (h *RoleHandler) ListRoles(c *gin.Context) {
	page, ok := pageRequestFromQuery(c)
	if !ok {
		return
	}

	result, err := h.roles.ListRoles(c.Request.Context(), page)
	if err != nil {
		RespondWithMappedError(c, err, nil, http.StatusInternalServerError, "failed to list roles")
		return
	}

	c.JSON(http.StatusOK, newRoleListResponse(result))
}

// DeleteRole removes a role and all assignments referencing it.
func (h *RoleHandler) DeleteRole(c *gin.Context) {
	err := h.roles.DeleteRole(c.Request.Context(), c.Param("role_id"))
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrRoleNotFound, Status: http.StatusNotFound, Message: "role not found"},
		}, http.StatusInternalServerError, "failed to delete role")
		return
	}

	c.Status(http.StatusNoContent)
}

// ListUsers returns a page of users holding the role.
func (h *RoleHandler) ListUsers(c *gin.Context) {
	page, ok := pageRequestFromQuery(c)
	if !ok {
		return
	}

	result, err := h.roles.ListUsersForRole(c.Request.Context(), c.Param("role_id"), page)
	if err != nil {
		RespondWithMappedError(c, err, []ErrorCase{
			{Err: usecase.ErrRoleNotFound, Status: http.StatusNotFound, Message: "role not found"},
		}, http.StatusInternalServerError, "failed to list role users")
		return
	}

	c.JSON(http.StatusOK, newUserListResponse(result))
}
