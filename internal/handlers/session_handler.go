package handlers

import (
	"context"
	"errors"
	"net/http"
	"time"

	"assessment-service/internal/scoring"
	"assessment-service/internal/selection"
	"assessment-service/internal/service"

	"github.com/gin-gonic/gin"
)

type SessionHandler struct {
	Service *service.AssessmentService
}

func NewSessionHandler(s *service.AssessmentService) *SessionHandler {
	return &SessionHandler{Service: s}
}

// StartTest opens a session with a fresh question set for the caller
func (h *SessionHandler) StartTest(c *gin.Context) {
	userID := currentUserID(c)

	session, questions, err := h.Service.StartTest(context.Background(), userID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrTooManyRequests):
			testsStarted.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusTooManyRequests, gin.H{
				"error": "Too many test starts, try again in a minute",
			})
		case errors.Is(err, selection.ErrPoolTooSmall):
			testsStarted.WithLabelValues("rejected").Inc()
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Not enough questions available, contact an administrator",
			})
		case errors.Is(err, selection.ErrPoolUnavailable):
			testsStarted.WithLabelValues("failure").Inc()
			c.JSON(http.StatusServiceUnavailable, gin.H{
				"error": "Question pool unavailable, try again shortly",
			})
		default:
			testsStarted.WithLabelValues("failure").Inc()
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to start test",
				"details": err.Error(),
			})
		}
		return
	}

	testsStarted.WithLabelValues("success").Inc()
	activeSessions.Inc()

	c.JSON(http.StatusCreated, gin.H{
		"session_id":    session.ID,
		"session_token": session.SessionToken,
		"questions":     questions,
		"count":         len(questions),
	})
}

// SubmitTest grades the caller's answers for one session
func (h *SessionHandler) SubmitTest(c *gin.Context) {
	sessionID := c.Param("id")
	userID := currentUserID(c)

	var req struct {
		Answers map[string]string `json:"answers" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{
			"error":   "Invalid submission format",
			"details": err.Error(),
		})
		return
	}

	start := time.Now()
	session, outcome, err := h.Service.SubmitTest(context.Background(), userID, sessionID, req.Answers)
	if err != nil {
		testsScored.WithLabelValues("failure").Inc()
		scoringDuration.WithLabelValues("failure").Observe(time.Since(start).Seconds())
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, service.ErrSessionAccess):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		case errors.Is(err, service.ErrSessionClosed):
			c.JSON(http.StatusConflict, gin.H{"error": "Session is already completed"})
		case errors.Is(err, scoring.ErrIncompleteSubmission):
			c.JSON(http.StatusBadRequest, gin.H{
				"error":   "Every question needs an answer",
				"details": err.Error(),
			})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{
				"error":   "Failed to score submission",
				"details": err.Error(),
			})
		}
		return
	}

	testsScored.WithLabelValues("success").Inc()
	scoringDuration.WithLabelValues("success").Observe(time.Since(start).Seconds())
	activeSessions.Dec()
	if outcome.Failed() {
		persistenceFailures.Add(float64(len(outcome.Failures)))
	}

	response := gin.H{
		"session_id": session.ID,
		"report":     session.Report,
		"persistence": gin.H{
			"answers_written":   outcome.AnswersWritten,
			"snapshots_written": outcome.SnapshotsWritten,
			"failures":          outcome.Failures,
		},
	}
	if outcome.Failed() {
		response["warning"] = "Some results could not be saved; your score above is complete"
	}
	c.JSON(http.StatusOK, response)
}

// GetPoolInfo reports the current question pool status
func (h *SessionHandler) GetPoolInfo(c *gin.Context) {
	info, err := h.Service.PoolInfo(context.Background())
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   "Failed to get pool info",
			"details": err.Error(),
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{"pool_info": info})
}

// GetSession returns one of the caller's sessions
func (h *SessionHandler) GetSession(c *gin.Context) {
	sessionID := c.Param("id")
	userID := currentUserID(c)

	session, err := h.Service.GetSession(context.Background(), userID, sessionID)
	if err != nil {
		switch {
		case errors.Is(err, service.ErrSessionNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "Session not found"})
		case errors.Is(err, service.ErrSessionAccess):
			c.JSON(http.StatusForbidden, gin.H{"error": "Access denied"})
		default:
			c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		}
		return
	}
	c.JSON(http.StatusOK, session)
}

// ListSessions returns the caller's sessions, newest first
func (h *SessionHandler) ListSessions(c *gin.Context) {
	userID := currentUserID(c)

	sessions, err := h.Service.ListSessions(context.Background(), userID)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"sessions": sessions,
		"count":    len(sessions),
	})
}
