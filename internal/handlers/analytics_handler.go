package handlers

import (
	"context"

	"assessment-service/internal/service"
	"assessment-service/internal/utils"

	"github.com/gin-gonic/gin"
)

type AnalyticsHandler struct {
	Service *service.AnalyticsService
}

func NewAnalyticsHandler(s *service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{Service: s}
}

// GetReport returns the platform-wide category report
func (h *AnalyticsHandler) GetReport(c *gin.Context) {
	report, err := h.Service.GetReport(context.Background())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to build analytics report", err)
		return
	}
	utils.SuccessResponse(c, "Analytics report retrieved", report)
}

// Refresh recomputes the report immediately instead of waiting for the
// scheduled run
func (h *AnalyticsHandler) Refresh(c *gin.Context) {
	report, err := h.Service.Refresh(context.Background())
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to refresh analytics report", err)
		return
	}
	utils.SuccessResponse(c, "Analytics report refreshed", report)
}
