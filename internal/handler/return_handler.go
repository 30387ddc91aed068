package handler

import (
	"net/http"

	"fulfillment/internal/middleware"
	"fulfillment/internal/service"
	"fulfillment/pkg/pagination"
	"fulfillment/pkg/response"

	"github.com/gin-gonic/gin"
)

// ReturnHandler serves the customer-facing return routes.
type ReturnHandler struct {
	returnService service.ReturnService
}

func NewReturnHandler(returnService service.ReturnService) *ReturnHandler {
	return &ReturnHandler{returnService: returnService}
}

func (h *ReturnHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/returns")
	group.Use(middleware.RequireAuth())
	{
		group.GET("/eligibility/:order_id/:order_item_id", h.CheckEligibility)
		group.POST("/request/:order_id/:order_item_id", h.CreateReturn)
		group.GET("/my-returns", h.ListMyReturns)
		group.PUT("/:id/cancel", h.CancelReturn)
	}
}

// CheckEligibility reports whether an order item can still be returned
// @Summary      Check return eligibility
// @Description  Evaluates delivery, policy and window rules for one order item without writing anything
// @Tags         returns
// @Security     BearerAuth
// @Produce      json
// @Param        order_id       path      string  true  "Order ID"
// @Param        order_item_id  path      string  true  "Order item ID"
// @Success      200  {object}  response.Response{data=service.EligibilityResponse}
// @Failure      403  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/returns/eligibility/{order_id}/{order_item_id} [get]
func (h *ReturnHandler) CheckEligibility(c *gin.Context) {
	res, err := h.returnService.CheckEligibility(c.Request.Context(), c.GetString("userID"), c.Param("order_id"), c.Param("order_item_id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// CreateReturn opens a return request for an order item
// @Summary      Request a return
// @Description  Creates a return request; auto-approved when the policy allows it
// @Tags         returns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        order_id       path      string                       true  "Order ID"
// @Param        order_item_id  path      string                       true  "Order item ID"
// @Param        payload        body      service.CreateReturnRequest  true  "Return request"
// @Success      201  {object}  response.Response{data=model.ReturnRequest}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/returns/request/{order_id}/{order_item_id} [post]
func (h *ReturnHandler) CreateReturn(c *gin.Context) {
	var req service.CreateReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ret, err := h.returnService.CreateReturn(c.Request.Context(), c.GetString("userID"), c.Param("order_id"), c.Param("order_item_id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, ret))
}

// ListMyReturns lists the caller's own return requests
// @Summary      List my returns
// @Tags         returns
// @Security     BearerAuth
// @Produce      json
// @Param        status  query     string  false  "Filter by status"
// @Param        page    query     int     false  "Page number (default 1)"
// @Param        limit   query     int     false  "Number of items per page (default 20)"
// @Success      200  {object}  response.Response{data=response.Page}
// @Router       /api/returns/my-returns [get]
func (h *ReturnHandler) ListMyReturns(c *gin.Context) {
	p := pagination.Parse(c)
	q := service.ReturnQuery{Status: c.Query("status"), Page: p.Page, Limit: p.Limit}

	items, total, err := h.returnService.ListMyReturns(c.Request.Context(), c.GetString("userID"), q)
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, p.ToPage(items, total)))
}

// CancelReturn withdraws a pending or approved return
// @Summary      Cancel my return
// @Tags         returns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                       true   "Return ID"
// @Param        payload  body      service.CancelReturnRequest  false  "Cancellation note"
// @Success      200  {object}  response.Response{data=model.ReturnRequest}
// @Failure      403  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/returns/{id}/cancel [put]
func (h *ReturnHandler) CancelReturn(c *gin.Context) {
	var req service.CancelReturnRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	ret, err := h.returnService.CancelReturn(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, ret))
}
