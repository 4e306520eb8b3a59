package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexacrm/internal/model"
	"nexacrm/internal/service/ai"
)

type AIHandler struct {
	service *ai.Service
	logger  *zap.Logger
}

func NewAIHandler(service *ai.Service, logger *zap.Logger) *AIHandler {
	return &AIHandler{service: service, logger: logger}
}

// Summarize handles POST /api/ai/summarize
func (h *AIHandler) Summarize(c *gin.Context) {
	var req struct {
		Notes string `json:"notes"`
	}
	if err := bindJSONLenient(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	summary, err := h.service.Summarize(c.Request.Context(), req.Notes)
	if err != nil {
		h.logger.Error("ai summarize failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"summary": summary})
}

// Predict handles POST /api/ai/predict
func (h *AIHandler) Predict(c *gin.Context) {
	var req struct {
		Description string           `json:"description"`
		Value       model.FlexNumber `json:"value"`
	}
	if err := bindJSONLenient(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	probability, err := h.service.Predict(c.Request.Context(), req.Description, req.Value.Value)
	if err != nil {
		h.logger.Error("ai predict failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"probability": probability})
}

// Advise handles POST /api/ai/advise
func (h *AIHandler) Advise(c *gin.Context) {
	var req struct {
		Contact                ai.ContactProfile `json:"contact"`
		OpportunityDescription string            `json:"opportunityDescription"`
	}
	if err := bindJSONLenient(c, &req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	advice, err := h.service.Advise(c.Request.Context(), req.Contact, req.OpportunityDescription)
	if err != nil {
		h.logger.Error("ai advise failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"advice": advice})
}
