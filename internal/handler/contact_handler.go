package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexacrm/internal/repository"
)

type ContactHandler struct {
	repo   *repository.ContactRepository
	logger *zap.Logger
}

func NewContactHandler(repo *repository.ContactRepository, logger *zap.Logger) *ContactHandler {
	return &ContactHandler{repo: repo, logger: logger}
}

// List handles GET /api/contacts
func (h *ContactHandler) List(c *gin.Context) {
	includeArchived := c.Query("includeArchived") == "true"
	contacts, err := h.repo.List(includeArchived)
	if err != nil {
		h.logger.Error("list contacts failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contacts)
}

// Create handles POST /api/contacts
func (h *ContactHandler) Create(c *gin.Context) {
	var in repository.ContactCreate
	if err := bindJSON(c, &in); err != nil {
		h.logger.Warn("create contact: bad request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	contact, err := h.repo.Create(in)
	if err != nil {
		h.logger.Warn("create contact failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, contact)
}

// Update handles PUT /api/contacts/:id
func (h *ContactHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var in repository.ContactUpdate
	if err := bindJSON(c, &in); err != nil {
		h.logger.Warn("update contact: bad request body",
			zap.String("contact_id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	contact, err := h.repo.Update(id, in)
	if err != nil {
		h.logger.Warn("update contact failed",
			zap.String("contact_id", id),
			zap.Error(err),
		)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}

// Delete handles DELETE /api/contacts/:id. Deletion archives; nothing is
// ever removed from the store.
func (h *ContactHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	contact, err := h.repo.Archive(id)
	if err != nil {
		h.logger.Warn("archive contact failed",
			zap.String("contact_id", id),
			zap.Error(err),
		)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, contact)
}
