package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexacrm/internal/repository"
)

type OpportunityHandler struct {
	repo   *repository.OpportunityRepository
	logger *zap.Logger
}

func NewOpportunityHandler(repo *repository.OpportunityRepository, logger *zap.Logger) *OpportunityHandler {
	return &OpportunityHandler{repo: repo, logger: logger}
}

// List handles GET /api/opportunities
func (h *OpportunityHandler) List(c *gin.Context) {
	includeArchived := c.Query("includeArchived") == "true"
	opportunities, err := h.repo.List(includeArchived)
	if err != nil {
		h.logger.Error("list opportunities failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, opportunities)
}

// Create handles POST /api/opportunities
func (h *OpportunityHandler) Create(c *gin.Context) {
	var in repository.OpportunityCreate
	if err := bindJSON(c, &in); err != nil {
		h.logger.Warn("create opportunity: bad request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	opportunity, err := h.repo.Create(in)
	if err != nil {
		h.logger.Warn("create opportunity failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, opportunity)
}

// Update handles PUT /api/opportunities/:id
func (h *OpportunityHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var in repository.OpportunityUpdate
	if err := bindJSON(c, &in); err != nil {
		h.logger.Warn("update opportunity: bad request body",
			zap.String("opportunity_id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	opportunity, err := h.repo.Update(id, in)
	if err != nil {
		h.logger.Warn("update opportunity failed",
			zap.String("opportunity_id", id),
			zap.Error(err),
		)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, opportunity)
}

// Delete handles DELETE /api/opportunities/:id (archives).
func (h *OpportunityHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	opportunity, err := h.repo.Archive(id)
	if err != nil {
		h.logger.Warn("archive opportunity failed",
			zap.String("opportunity_id", id),
			zap.Error(err),
		)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, opportunity)
}
