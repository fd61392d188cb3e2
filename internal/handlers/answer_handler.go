package handlers

import (
	"context"
	"net/http"

	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type AnswerHandler struct {
	Service *service.AnswerService
}

func NewAnswerHandler(s *service.AnswerService) *AnswerHandler {
	return &AnswerHandler{Service: s}
}

// GetUserAnswers lets an administrator inspect a user's stored answer
// records, newest first
func (h *AnswerHandler) GetUserAnswers(c *gin.Context) {
	userID := c.Param("id")
	answers, err := h.Service.GetUserAnswers(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"answers": answers,
		"count":   len(answers),
	})
}
