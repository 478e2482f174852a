package handlers

import (
	"errors"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type snapshotInfo struct {
	Date          string `json:"date"`
	ChemicalCount int    `json:"chemicalCount"`
}

// ListSnapshots returns snapshot metadata in insertion order.
func (h *Handler) ListSnapshots(c *gin.Context) {
	snapshots, err := h.inventory.Snapshots(c.Request.Context())
	if err != nil {
		h.respondError(c, err)
		return
	}

	infos := make([]snapshotInfo, 0, len(snapshots))
	for _, snap := range snapshots {
		infos = append(infos, snapshotInfo{Date: snap.Date, ChemicalCount: len(snap.Chemicals)})
	}
	c.JSON(http.StatusOK, gin.H{"snapshots": infos})
}

type captureRequest struct {
	Date string `json:"date"`
}

// CaptureSnapshot freezes the current collection. The body may carry a
// date; an empty body captures under today's date.
func (h *Handler) CaptureSnapshot(c *gin.Context) {
	var req captureRequest
	if err := c.ShouldBindJSON(&req); err != nil && !errors.Is(err, io.EOF) {
		h.logger.Warn("invalid snapshot payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	snap, err := h.inventory.CaptureSnapshot(c.Request.Context(), req.Date)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, snap)
}

// GetSnapshot returns the full snapshot stored under the date parameter.
func (h *Handler) GetSnapshot(c *gin.Context) {
	snap, err := h.inventory.Snapshot(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, snap)
}

// DeleteSnapshot removes the snapshot stored under the date parameter.
func (h *Handler) DeleteSnapshot(c *gin.Context) {
	if err := h.inventory.DeleteSnapshot(c.Request.Context(), c.Param("date")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// SnapshotDashboard replays the projection for a stored snapshot with
// the snapshot's own date as the reference.
func (h *Handler) SnapshotDashboard(c *gin.Context) {
	portfolio, err := h.inventory.SnapshotDashboard(c.Request.Context(), c.Param("date"))
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, portfolio)
}
