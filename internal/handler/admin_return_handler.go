package handler

import (
	"bytes"
	"fmt"
	"net/http"
	"time"

	"fulfillment/internal/middleware"
	"fulfillment/internal/model"
	"fulfillment/internal/service"
	"fulfillment/pkg/pagination"
	"fulfillment/pkg/response"

	"github.com/gin-gonic/gin"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

// AdminReturnHandler serves the staff routes driving a return through
// review, receipt, inspection and refund.
type AdminReturnHandler struct {
	returnService       service.ReturnService
	qualityCheckService service.QualityCheckService
	refundService       service.RefundService
}

func NewAdminReturnHandler(
	returnService service.ReturnService,
	qualityCheckService service.QualityCheckService,
	refundService service.RefundService,
) *AdminReturnHandler {
	return &AdminReturnHandler{
		returnService:       returnService,
		qualityCheckService: qualityCheckService,
		refundService:       refundService,
	}
}

func (h *AdminReturnHandler) RegisterRoutes(router *gin.RouterGroup) {
	group := router.Group("/api/admin/returns")
	{
		group.GET("", middleware.RequirePermission(model.PermReturnsRead), h.ListReturns)
		group.GET("/export", middleware.RequirePermission(model.PermReturnsRead), h.ExportReturns)
		group.GET("/:id", middleware.RequirePermission(model.PermReturnsRead), h.GetReturn)
		group.PUT("/:id/process", middleware.RequirePermission(model.PermReturnsProcess), h.ProcessReturn)
		group.PUT("/:id/receive", middleware.RequirePermission(model.PermReturnsReceive), h.MarkReceived)
		group.PUT("/:id/inspection/start", middleware.RequirePermission(model.PermReturnsInspect), h.StartInspection)
		group.GET("/:id/quality-check", middleware.RequirePermission(model.PermReturnsRead), h.GetQualityCheck)
		group.PUT("/:id/quality-check", middleware.RequirePermission(model.PermReturnsInspect), h.SubmitQualityCheck)
		group.PUT("/:id/refund", middleware.RequirePermission(model.PermReturnsRefund), h.ProcessRefund)
	}
}

func returnQueryFrom(c *gin.Context, p pagination.Params) service.ReturnQuery {
	return service.ReturnQuery{
		UserID:  c.Query("user_id"),
		OrderID: c.Query("order_id"),
		Status:  c.Query("status"),
		Search:  c.Query("search"),
		Page:    p.Page,
		Limit:   p.Limit,
	}
}

// ListReturns lists return requests across all customers
// @Summary      List returns
// @Tags         admin-returns
// @Security     BearerAuth
// @Produce      json
// @Param        status    query     string  false  "Filter by status"
// @Param        order_id  query     string  false  "Filter by order"
// @Param        user_id   query     string  false  "Filter by customer"
// @Param        search    query     string  false  "Search by return number"
// @Param        page      query     int     false  "Page number (default 1)"
// @Param        limit     query     int     false  "Number of items per page (default 20)"
// @Success      200  {object}  response.Response{data=response.Page}
// @Failure      400  {object}  response.Response
// @Router       /api/admin/returns [get]
func (h *AdminReturnHandler) ListReturns(c *gin.Context) {
	p := pagination.Parse(c)
	items, total, err := h.returnService.ListReturns(c.Request.Context(), returnQueryFrom(c, p))
	if err != nil {
		respondError(c, err)
		return
	}

	c.JSON(http.StatusOK, response.Success(http.StatusOK, p.ToPage(items, total)))
}

// ExportReturns downloads the filtered returns list as a spreadsheet
// @Summary      Export returns
// @Tags         admin-returns
// @Security     BearerAuth
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        status    query     string  false  "Filter by status"
// @Param        order_id  query     string  false  "Filter by order"
// @Param        user_id   query     string  false  "Filter by customer"
// @Success      200  {file}    file
// @Failure      400  {object}  response.Response
// @Router       /api/admin/returns/export [get]
func (h *AdminReturnHandler) ExportReturns(c *gin.Context) {
	var buf bytes.Buffer
	if _, err := h.returnService.ExportReturns(c.Request.Context(), returnQueryFrom(c, pagination.Params{}), &buf); err != nil {
		respondError(c, err)
		return
	}

	filename := fmt.Sprintf("returns-%s.xlsx", time.Now().UTC().Format("20060102"))
	c.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	c.Data(http.StatusOK, xlsxContentType, buf.Bytes())
}

// GetReturn returns one request with its status history
// @Summary      Get return
// @Tags         admin-returns
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Return ID"
// @Success      200  {object}  response.Response{data=model.ReturnRequest}
// @Failure      404  {object}  response.Response
// @Router       /api/admin/returns/{id} [get]
func (h *AdminReturnHandler) GetReturn(c *gin.Context) {
	ret, err := h.returnService.GetReturn(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, ret))
}

// ProcessReturn approves or rejects a pending return
// @Summary      Approve or reject a return
// @Tags         admin-returns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true  "Return ID"
// @Param        payload  body      service.ProcessReturnRequest  true  "Decision"
// @Success      200  {object}  response.Response{data=model.ReturnRequest}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /api/admin/returns/{id}/process [put]
func (h *AdminReturnHandler) ProcessReturn(c *gin.Context) {
	var req service.ProcessReturnRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	ret, err := h.returnService.ProcessReturn(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, ret))
}

// MarkReceived records the returned parcel arriving at the warehouse
// @Summary      Mark return received
// @Tags         admin-returns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true   "Return ID"
// @Param        payload  body      service.ReceiveReturnRequest  false  "Shipment details"
// @Success      200  {object}  response.Response{data=model.ReturnRequest}
// @Failure      409  {object}  response.Response
// @Router       /api/admin/returns/{id}/receive [put]
func (h *AdminReturnHandler) MarkReceived(c *gin.Context) {
	var req service.ReceiveReturnRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	ret, err := h.returnService.MarkReceived(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, ret))
}

// StartInspection marks the quality check as in progress
// @Summary      Start inspection
// @Tags         admin-returns
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Return ID"
// @Success      200  {object}  response.Response{data=model.QualityCheck}
// @Failure      409  {object}  response.Response
// @Router       /api/admin/returns/{id}/inspection/start [put]
func (h *AdminReturnHandler) StartInspection(c *gin.Context) {
	qc, err := h.qualityCheckService.StartInspection(c.Request.Context(), c.GetString("userID"), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, qc))
}

// GetQualityCheck returns the inspection record of a return
// @Summary      Get quality check
// @Tags         admin-returns
// @Security     BearerAuth
// @Produce      json
// @Param        id   path      string  true  "Return ID"
// @Success      200  {object}  response.Response{data=model.QualityCheck}
// @Failure      404  {object}  response.Response
// @Router       /api/admin/returns/{id}/quality-check [get]
func (h *AdminReturnHandler) GetQualityCheck(c *gin.Context) {
	qc, err := h.qualityCheckService.GetQualityCheck(c.Request.Context(), c.Param("id"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, qc))
}

// SubmitQualityCheck records the inspection outcome and applies the disposition
// @Summary      Submit quality check
// @Tags         admin-returns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                          true  "Return ID"
// @Param        payload  body      service.QualityCheckSubmission  true  "Inspection outcome"
// @Success      200  {object}  response.Response{data=service.QualityCheckResult}
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Failure      422  {object}  response.Response
// @Router       /api/admin/returns/{id}/quality-check [put]
func (h *AdminReturnHandler) SubmitQualityCheck(c *gin.Context) {
	var req service.QualityCheckSubmission
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	res, err := h.qualityCheckService.SubmitQualityCheck(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}

// ProcessRefund issues the refund for an inspected return
// @Summary      Process refund
// @Tags         admin-returns
// @Security     BearerAuth
// @Accept       json
// @Produce      json
// @Param        id       path      string                        true   "Return ID"
// @Param        payload  body      service.ProcessRefundRequest  false  "Refund note"
// @Success      200  {object}  response.Response{data=service.RefundOutcome}
// @Failure      409  {object}  response.Response
// @Failure      502  {object}  response.Response
// @Router       /api/admin/returns/{id}/refund [put]
func (h *AdminReturnHandler) ProcessRefund(c *gin.Context) {
	var req service.ProcessRefundRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}

	res, err := h.refundService.ProcessRefund(c.Request.Context(), c.GetString("userID"), c.Param("id"), req)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, res))
}
