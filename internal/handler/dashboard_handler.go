package handler

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexacrm/internal/service/dashboard"
)

type DashboardHandler struct {
	service *dashboard.Service
	logger  *zap.Logger
}

func NewDashboardHandler(service *dashboard.Service, logger *zap.Logger) *DashboardHandler {
	return &DashboardHandler{service: service, logger: logger}
}

// Metrics handles GET /api/metrics
func (h *DashboardHandler) Metrics(c *gin.Context) {
	snapshot, err := h.service.Compute(time.Now())
	if err != nil {
		h.logger.Error("compute dashboard metrics failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, snapshot)
}
