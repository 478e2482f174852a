package handlers

import (
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// TriggerDailyReport runs the daily report outside its schedule and
// returns the digest that was (or would have been) delivered.
func (h *Handler) TriggerDailyReport(c *gin.Context) {
	summary, err := h.reporting.DispatchDailyReport(c.Request.Context(), time.Now())
	if err != nil {
		if summary == "" {
			h.respondError(c, err)
			return
		}
		// The digest was built but could not be delivered.
		h.logger.Error("daily report delivery failed", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to deliver report", "summary": summary})
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

type alertTestRequest struct {
	Text string `json:"text"`
}

// TestAlert sends a probe message through the alert webhook.
func (h *Handler) TestAlert(c *gin.Context) {
	if h.notifier == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "alert webhook not configured"})
		return
	}

	var req alertTestRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("invalid alert payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}
	if req.Text == "" {
		req.Text = "Chemical inventory alert test."
	}

	if err := h.notifier.SendText(c.Request.Context(), req.Text); err != nil {
		h.logger.Error("failed sending test alert", zap.Error(err))
		c.JSON(http.StatusBadGateway, gin.H{"error": "unable to send alert"})
		return
	}
	c.Status(http.StatusAccepted)
}
