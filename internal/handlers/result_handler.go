package handlers

import (
	"context"

	"assessment-service/internal/service"
	"assessment-service/internal/utils"

	"github.com/gin-gonic/gin"
)

type ResultHandler struct {
	Service *service.ResultService
}

func NewResultHandler(s *service.ResultService) *ResultHandler {
	return &ResultHandler{Service: s}
}

// GetMyHistory returns the caller's snapshots, optionally filtered with
// ?category=, newest first
func (h *ResultHandler) GetMyHistory(c *gin.Context) {
	userID := currentUserID(c)
	category := c.Query("category")

	snapshots, err := h.Service.GetHistory(context.Background(), userID, category)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load result history", err)
		return
	}

	utils.SuccessResponse(c, "Result history retrieved", gin.H{
		"results": snapshots,
		"count":   len(snapshots),
	})
}

// GetUserHistory lets an administrator view any user's snapshots
func (h *ResultHandler) GetUserHistory(c *gin.Context) {
	userID := c.Param("id")
	category := c.Query("category")

	snapshots, err := h.Service.GetHistory(context.Background(), userID, category)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load result history", err)
		return
	}

	utils.SuccessResponse(c, "Result history retrieved", gin.H{
		"user_id": userID,
		"results": snapshots,
		"count":   len(snapshots),
	})
}

// GetLatestOverall returns the caller's most recent whole-test result
func (h *ResultHandler) GetLatestOverall(c *gin.Context) {
	userID := currentUserID(c)

	snapshot, err := h.Service.GetLatestOverall(context.Background(), userID)
	if err != nil {
		utils.InternalErrorResponse(c, "Failed to load latest result", err)
		return
	}
	if snapshot == nil {
		utils.NotFoundResponse(c, "No completed tests yet")
		return
	}

	utils.SuccessResponse(c, "Latest result retrieved", snapshot)
}
