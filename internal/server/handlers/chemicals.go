package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"chemstock/internal/domain/models"
)

// CreateChemical appends a new chemical record.
func (h *Handler) CreateChemical(c *gin.Context) {
	var chem models.Chemical
	if err := c.ShouldBindJSON(&chem); err != nil {
		h.logger.Warn("invalid chemical payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	created, err := h.inventory.CreateChemical(c.Request.Context(), chem)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusCreated, created)
}

// UpdateChemical replaces the full record behind the id parameter.
func (h *Handler) UpdateChemical(c *gin.Context) {
	var chem models.Chemical
	if err := c.ShouldBindJSON(&chem); err != nil {
		h.logger.Warn("invalid chemical payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.inventory.UpdateChemical(c.Request.Context(), c.Param("id"), chem)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// PatchChemical applies a partial update, the quick-edit path.
func (h *Handler) PatchChemical(c *gin.Context) {
	var patch models.ChemicalPatch
	if err := c.ShouldBindJSON(&patch); err != nil {
		h.logger.Warn("invalid patch payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	updated, err := h.inventory.PatchChemical(c.Request.Context(), c.Param("id"), patch)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, updated)
}

// DeleteChemical removes the record behind the id parameter.
func (h *Handler) DeleteChemical(c *gin.Context) {
	if err := h.inventory.DeleteChemical(c.Request.Context(), c.Param("id")); err != nil {
		h.respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

type reorderRequest struct {
	IDs []string `json:"ids" binding:"required"`
}

// ReorderChemicals rewrites the collection display order.
func (h *Handler) ReorderChemicals(c *gin.Context) {
	var req reorderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("invalid reorder payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	ordered, err := h.inventory.ReorderChemicals(c.Request.Context(), req.IDs)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"chemicals": ordered})
}

// UpdateShifts replaces the plant shift configuration.
func (h *Handler) UpdateShifts(c *gin.Context) {
	var shifts map[string]int
	if err := c.ShouldBindJSON(&shifts); err != nil {
		h.logger.Warn("invalid shifts payload", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	cfg, err := h.inventory.UpdateShifts(c.Request.Context(), shifts)
	if err != nil {
		h.respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cfg)
}
