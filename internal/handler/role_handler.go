package handler

import (
	"net/http"

	"fulfillment/internal/middleware"
	"fulfillment/internal/model"
	"fulfillment/internal/service"
	"fulfillment/pkg/response"

	"github.com/gin-gonic/gin"
)

type RoleHandler struct {
	roleService service.RoleService
}

func NewRoleHandler(roleService service.RoleService) *RoleHandler {
	return &RoleHandler{roleService: roleService}
}

func (h *RoleHandler) RegisterRoutes(router *gin.RouterGroup) {
	roles := router.Group("/api/admin/roles")
	roles.Use(middleware.RequireRole(model.RoleAdmin))
	{
		roles.GET("", h.ListRoles)
		roles.GET("/:name/permissions", h.GetRolePermissions)
	}
}

// ListRoles returns all roles with their permissions
// @Summary      List roles
// @Tags         roles
// @Security     BearerAuth
// @Produce      json
// @Success      200  {object}  response.Response{data=[]service.RoleResponse}
// @Router       /api/admin/roles [get]
func (h *RoleHandler) ListRoles(c *gin.Context) {
	roles, err := h.roleService.ListRoles(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, roles))
}

// GetRolePermissions returns the permission codes granted to a role
// @Summary      Get role permissions
// @Tags         roles
// @Security     BearerAuth
// @Produce      json
// @Param        name  path      string  true  "Role name"
// @Success      200   {object}  response.Response{data=[]string}
// @Router       /api/admin/roles/{name}/permissions [get]
func (h *RoleHandler) GetRolePermissions(c *gin.Context) {
	codes, err := h.roleService.GetPermissionsByRoleName(c.Request.Context(), c.Param("name"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, codes))
}
