package handler

import (
	"net/http"

	"fulfillment/internal/middleware"
	"fulfillment/internal/model"
	"fulfillment/internal/service"
	"fulfillment/pkg/pagination"
	"fulfillment/pkg/response"

	"github.com/gin-gonic/gin"
)

type DamagedInventoryHandler struct {
	damagedService service.DamagedInventoryService
}

func NewDamagedInventoryHandler(damagedService service.DamagedInventoryService) *DamagedInventoryHandler {
	return &DamagedInventoryHandler{damagedService: damagedService}
}

func (h *DamagedInventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/admin/damaged-inventory")
	{
		group.GET("", middleware.RequirePermission(model.PermDamagedInvRead), h.ListRecords)
		group.POST("", middleware.RequirePermission(model.PermDamagedInvWrite), h.CreateRecord)
		group.GET("/:id", middleware.RequirePermission(model.PermDamagedInvRead), h.GetRecord)
		group.PUT("/:id", middleware.RequirePermission(model.PermDamagedInvWrite), h.UpdateRecord)
	}
}

// ListRecords lists damaged stock
// @Summary      List damaged inventory
// @Tags         damaged-inventory
// @Security     BearerAuth
// @Produce      json
// @Param        product_id         query     string  false  "Filter by product"
// @Param        return_request_id  query     string  false  "Filter by originating return"
// @Param        status             query     string  false  "Filter by status"
// @Param        source             query     string  false  "Filter by source"
// @Param        page               query     int     false  "Page number (default 1)"
// @Param        limit              query     int     false  "Number of items per page (default 20)"
// @Success      200  {object}  response.Response{data=response.Page}
// @Failure      400  {object}  response.Response
// @Router       /api/admin/damaged-inventory [get]
func (h *DamagedInventoryHandler) ListRecords(c *gin.Context) {
	p := pagination.Parse(c)
	records, total, err := h.damagedService.ListRecords(c.Request.Context(), service.DamagedInventoryQuery{
		ProductID:       c.Query("product_id"),
		ReturnRequestID: c.Query("return_request_id"),
		Status:          c.Query("status"),
		Source:          c.Query("source"),
		Page:            p.Page,
		Limit:           p.Limit,
	})
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, p.ToPage(records, total)))
}

// CreateRecord records damage found outside the returns flow
// @Summary      Record damaged stock
// @Tags         damaged-inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        payload  body      service.CreateDamagedInventoryRequest  true  "Damage record"
// @Success      201  {object}  response.Response{data=model.DamagedInventory}
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /api/admin/damaged-inventory [post]
func (h *DamagedInventoryHandler) CreateRecord(c *gin.Context) {
	var req service.CreateDamagedInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rec, err := h.damagedService.CreateRecord(c.Request.Context(), c.GetString("userID"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, response.Success(http.StatusCreated, rec))
}

// GetRecord returns one damage record
// @Summary      Get damaged inventory record
// @Tags         damaged-inventory
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Record ID"
// @Success      200  {object}  response.Response{data=model.DamagedInventory}
// @Failure      404  {object}  response.Response
// @Router       /api/admin/damaged-inventory/{id} [get]
func (h *DamagedInventoryHandler) GetRecord(c *gin.Context) {
	rec, err := h.damagedService.GetRecord(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}

// UpdateRecord advances a damage record's assessment
// @Summary      Update damaged inventory record
// @Tags         damaged-inventory
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                                 true  "Record ID"
// @Param        payload  body      service.UpdateDamagedInventoryRequest  true  "Assessment"
// @Success      200  {object}  response.Response{data=model.DamagedInventory}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/admin/damaged-inventory/{id} [put]
func (h *DamagedInventoryHandler) UpdateRecord(c *gin.Context) {
	var req service.UpdateDamagedInventoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	rec, err := h.damagedService.UpdateRecord(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, rec))
}
