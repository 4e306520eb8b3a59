package handler

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"nexacrm/internal/repository"
	"nexacrm/internal/service/ai"
)

// writeError maps the domain error taxonomy onto the HTTP surface:
// validation 400, not found 404, conflict 409, everything else 500.
// Gateway failures carry the upstream message as details.
func writeError(c *gin.Context, err error) {
	var verr *repository.ValidationError
	var cerr *repository.ConflictError
	var gerr *ai.GatewayError

	switch {
	case errors.Is(err, repository.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": err.Error()})
	case errors.As(err, &verr):
		c.JSON(http.StatusBadRequest, gin.H{"error": verr.Error()})
	case errors.As(err, &cerr):
		c.JSON(http.StatusConflict, gin.H{"error": cerr.Error()})
	case errors.As(err, &gerr):
		c.JSON(http.StatusInternalServerError, gin.H{
			"error":   gerr.Error(),
			"details": gerr.Err.Error(),
		})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal error"})
	}
}
