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

type InventoryHandler struct {
	inventoryService service.InventoryService
}

func NewInventoryHandler(inventoryService service.InventoryService) *InventoryHandler {
	return &InventoryHandler{inventoryService: inventoryService}
}

func (h *InventoryHandler) RegisterRoutes(router *gin.RouterGroup) {
	inventory := router.Group("/api/admin/inventory")
	{
		inventory.GET("/:product_id/stock-card", middleware.RequirePermission(model.PermReturnsRead), h.GetStockCard)
	}
}

// GetStockCard returns a product's stock level and movement history
// @Summary      Get stock card
// @Description  Current stock with paginated movements, newest first
// @Tags         inventory
// @Security     BearerAuth
// @Produce      json
// @Param        product_id  path      string  true   "Product ID"
// @Param        page        query     int     false  "Page number (default 1)"
// @Param        limit       query     int     false  "Number of items per page (default 20)"
// @Success      200  {object}  response.Response{data=service.StockCardResponse}
// @Failure      404  {object}  response.Response
// @Router       /api/admin/inventory/{product_id}/stock-card [get]
func (h *InventoryHandler) GetStockCard(c *gin.Context) {
	p := pagination.Parse(c)

	card, err := h.inventoryService.GetStockCard(c.Request.Context(), c.Param("product_id"), p.Page, p.Limit)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, card))
}
