package handler

import (
	"net/http"
	"time"

	"fulfillment/internal/middleware"
	"fulfillment/internal/model"
	"fulfillment/internal/service"
	"fulfillment/pkg/response"

	"github.com/gin-gonic/gin"
)

type StatisticsHandler struct {
	statisticsService service.StatisticsService
}

func NewStatisticsHandler(statisticsService service.StatisticsService) *StatisticsHandler {
	return &StatisticsHandler{statisticsService: statisticsService}
}

func (h *StatisticsHandler) RegisterRoutes(router *gin.RouterGroup) {
	statsGroup := router.Group("/api/admin/statistics")
	{
		statsGroup.GET("/returns", middleware.RequirePermission(model.PermReturnsRead), h.GetReturnStatistics)
	}
}

// @Summary      Get return statistics
// @Description  Return volume, refunds and restocking fees per period, with top returned products and reasons
// @Tags         statistics
// @Produce      json
// @Param        group_by    query string false "week, month, quarter or year (default month)"
// @Param        start_date  query string false "Start Date (RFC3339), defaults to the start of the month"
// @Param        end_date    query string false "End Date (RFC3339), defaults to now"
// @Success      200 {object} response.Response{data=model.ReturnStatistics}
// @Failure      400 {object} response.Response "Invalid date format"
// @Security     BearerAuth
// @Router       /api/admin/statistics/returns [get]
func (h *StatisticsHandler) GetReturnStatistics(c *gin.Context) {
	now := time.Now().UTC()
	startDate := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)
	endDate := now

	var err error
	if raw := c.Query("start_date"); raw != "" {
		if startDate, err = time.Parse(time.RFC3339, raw); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid start_date format, expected RFC3339"))
			return
		}
	}
	if raw := c.Query("end_date"); raw != "" {
		if endDate, err = time.Parse(time.RFC3339, raw); err != nil {
			c.JSON(http.StatusBadRequest, response.Error(http.StatusBadRequest, "invalid end_date format, expected RFC3339"))
			return
		}
	}

	stats, err := h.statisticsService.GetReturnStatistics(c.Request.Context(), service.StatisticsFilter{
		GroupBy:   c.Query("group_by"),
		StartDate: startDate,
		EndDate:   endDate,
	})
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, response.Success(http.StatusOK, stats))
}
