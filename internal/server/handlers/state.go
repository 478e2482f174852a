package handlers

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chemstock/internal/domain/models"
)

// GetState returns the full persisted document, migrated to the
// current shape.
func (h *Handler) GetState(c *gin.Context) {
	doc, err := h.inventory.Document(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, doc)
}

// ReplaceState overwrites the full persisted document, used by bulk
// import and restore tooling.
func (h *Handler) ReplaceState(c *gin.Context) {
	var doc models.Document
	if err := c.ShouldBindJSON(&doc); err != nil {
		h.logger.Warn("invalid state payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	saved, err := h.inventory.ReplaceDocument(c.Request.Context(), doc)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, saved)
}

// GetDashboard projects the current collection. The optional date
// query parameter pins the reference date; by default the projection
// runs against today.
func (h *Handler) GetDashboard(c *gin.Context) {
	var reference time.Time
	if raw := c.Query("date"); raw != "" {
		t, ok := models.ParseDate(raw)
		if !ok {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid date, want YYYY-MM-DD"})
			return
		}
		reference = t
	}

	portfolio, err := h.inventory.Dashboard(c.Request.Context(), reference)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}
