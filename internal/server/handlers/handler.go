// Package handlers adapts the inventory and reporting services onto
// the HTTP API.
package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chemstock/internal/service/inventory"
	"chemstock/internal/service/reporting"
	"chemstock/pkg/clients/notify"
)

// Handler carries the services behind the HTTP API.
type Handler struct {
	inventory *inventory.Service
	reporting *reporting.Service
	notifier  notify.Client
	logger    *zap.Logger
}

// New constructs the HTTP handler adapter. The notifier may be nil
// when no alert webhook is configured.
func New(inventorySvc *inventory.Service, reportingSvc *reporting.Service, notifier notify.Client, logger *zap.Logger) *Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Handler{
		inventory: inventorySvc,
		reporting: reportingSvc,
		notifier:  notifier,
		logger:    logger,
	}
}

// respondError maps service errors onto HTTP status codes.
func (h *Handler) respondError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, inventory.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.Is(err, inventory.ErrNameRequired), errors.Is(err, inventory.ErrBadSnapshotDate):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		h.logger.Error("request failed", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
