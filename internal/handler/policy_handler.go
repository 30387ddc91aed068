package handler

import (
	"net/http"
	"strconv"

	"fulfillment/internal/middleware"
	"fulfillment/internal/model"
	"fulfillment/internal/service"
	"fulfillment/pkg/pagination"
	"fulfillment/pkg/response"

	"github.com/gin-gonic/gin"
)

type PolicyHandler struct {
	policyService service.PolicyService
}

func NewPolicyHandler(policyService service.PolicyService) *PolicyHandler {
	return &PolicyHandler{policyService: policyService}
}

func (h *PolicyHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/admin/policies")
	{
		group.GET("", middleware.RequirePermission(model.PermPoliciesRead), h.ListPolicies)
		group.POST("", middleware.RequirePermission(model.PermPoliciesWrite), h.CreatePolicy)
		group.GET("/resolve/:product_id", middleware.RequirePermission(model.PermPoliciesRead), h.ResolvePolicy)
		group.GET("/:id", middleware.RequirePermission(model.PermPoliciesRead), h.GetPolicy)
		group.PUT("/:id", middleware.RequirePermission(model.PermPoliciesWrite), h.UpdatePolicy)
	}
}

// ListPolicies lists return policies
// @Summary      List return policies
// @Tags         policies
// @Security     BearerAuth
// @Produce      json
// @Param        product_id   query     string  false  "Filter by product"
// @Param        category_id  query     string  false  "Filter by category"
// @Param        active_only  query     bool    false  "Only active policies"
// @Param        page         query     int     false  "Page number (default 1)"
// @Param        limit        query     int     false  "Number of items per page (default 20)"
// @Success      200  {object}  response.Response{data=response.Page}
// @Router       /api/admin/policies [get]
func (h *PolicyHandler) ListPolicies(c *gin.Context) {
	p := pagination.Parse(c)
	activeOnly, _ := strconv.ParseBool(c.Query("active_only"))

	policies, total, err := h.policyService.ListPolicies(c.Request.Context(), service.PolicyQuery{
		ProductID:  c.Query("product_id"),
		CategoryID: c.Query("category_id"),
		ActiveOnly: activeOnly,
		Page:       p.Page,
		Limit:      p.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, p.ToPage(policies, total)))
}

// CreatePolicy creates a return policy
// @Summary      Create return policy
// @Tags         policies
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.PolicyRequest  true  "Policy"
// @Success      201  {object}  response.Response{data=model.ReturnPolicy}
// @Failure      400  {object}  response.Response
// @Router       /api/admin/policies [post]
func (h *PolicyHandler) CreatePolicy(c *gin.Context) {
	var req service.PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	policy, err := h.policyService.CreatePolicy(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, policy))
}

// GetPolicy returns one policy
// @Summary      Get return policy
// @Tags         policies
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Policy ID"
// @Success      200  {object}  response.Response{data=model.ReturnPolicy}
// @Failure      404  {object}  response.Response
// @Router       /api/admin/policies/{id} [get]
func (h *PolicyHandler) GetPolicy(c *gin.Context) {
	policy, err := h.policyService.GetPolicy(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, policy))
}

// UpdatePolicy replaces a policy's rules
// @Summary      Update return policy
// @Description  Refused while any open return references the policy
// @Tags         policies
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                 true  "Policy ID"
// @Param        payload  body      service.PolicyRequest  true  "Policy"
// @Success      200  {object}  response.Response{data=model.ReturnPolicy}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/admin/policies/{id} [put]
func (h *PolicyHandler) UpdatePolicy(c *gin.Context) {
	var req service.PolicyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	policy, err := h.policyService.UpdatePolicy(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, policy))
}

// ResolvePolicy shows which policy governs a product
// @Summary      Resolve policy for product
// @Tags         policies
// @Security     BearerAuth
// @Produce      json
// @Param        product_id  path      string  true  "Product ID"
// @Success      200  {object}  response.Response{data=model.ReturnPolicy}
// @Failure      404  {object}  response.Response
// @Router       /api/admin/policies/resolve/{product_id} [get]
func (h *PolicyHandler) ResolvePolicy(c *gin.Context) {
	policy, err := h.policyService.ResolveForProduct(c.Request.Context(), c.Param("product_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, policy))
}
