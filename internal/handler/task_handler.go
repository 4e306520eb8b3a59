package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"nexacrm/internal/repository"
)

type TaskHandler struct {
	repo   *repository.TaskRepository
	logger *zap.Logger
}

func NewTaskHandler(repo *repository.TaskRepository, logger *zap.Logger) *TaskHandler {
	return &TaskHandler{repo: repo, logger: logger}
}

// List handles GET /api/tasks
func (h *TaskHandler) List(c *gin.Context) {
	includeArchived := c.Query("includeArchived") == "true"
	tasks, err := h.repo.List(includeArchived)
	if err != nil {
		h.logger.Error("list tasks failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, tasks)
}

// Create handles POST /api/tasks
func (h *TaskHandler) Create(c *gin.Context) {
	var in repository.TaskCreate
	if err := bindJSON(c, &in); err != nil {
		h.logger.Warn("create task: bad request body", zap.Error(err))
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := h.repo.Create(in)
	if err != nil {
		h.logger.Warn("create task failed", zap.Error(err))
		writeError(c, err)
		return
	}
	c.JSON(http.StatusCreated, task)
}

// Update handles PUT /api/tasks/:id
func (h *TaskHandler) Update(c *gin.Context) {
	id := c.Param("id")

	var in repository.TaskUpdate
	if err := bindJSON(c, &in); err != nil {
		h.logger.Warn("update task: bad request body",
			zap.String("task_id", id),
			zap.Error(err),
		)
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body"})
		return
	}

	task, err := h.repo.Update(id, in)
	if err != nil {
		h.logger.Warn("update task failed",
			zap.String("task_id", id),
			zap.Error(err),
		)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}

// Delete handles DELETE /api/tasks/:id (archives).
func (h *TaskHandler) Delete(c *gin.Context) {
	id := c.Param("id")

	task, err := h.repo.Archive(id)
	if err != nil {
		h.logger.Warn("archive task failed",
			zap.String("task_id", id),
			zap.Error(err),
		)
		writeError(c, err)
		return
	}
	c.JSON(http.StatusOK, task)
}
