package api

import (
	"context"
	"net/http"
	"time"

	"interntrack/internal/entity"

	"github.com/gin-gonic/gin"
)

// CreateTask logs a task for the calling account. The owner is always the
// caller; any user id in the payload is ignored.
func (h *HTTPHandler) CreateTask(c *gin.Context) {
	var req entity.TaskCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	task, err := h.workflow.CreateTask(ctx, CurrentUser(c), req)
	if err != nil {
		WorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.TaskResponse{
		Success: true,
		Task:    *task,
	})
}

// ListUserTasks returns the tasks of the account in the path, date ascending.
func (h *HTTPHandler) ListUserTasks(c *gin.Context) {
	ownerID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	tasks, err := h.workflow.ListTasksForOwner(ctx, CurrentUser(c), ownerID)
	if err != nil {
		WorkflowError(c, err)
		return
	}

	if tasks == nil {
		tasks = []entity.DbTask{}
	}
	c.JSON(http.StatusOK, tasks)
}

// UpdateTask edits a task's name, hours or description. The date is
// immutable after creation.
func (h *HTTPHandler) UpdateTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	var req entity.TaskUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	task, err := h.workflow.UpdateTask(ctx, CurrentUser(c), taskID, req)
	if err != nil {
		WorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.TaskResponse{
		Success: true,
		Task:    *task,
	})
}

// DeleteTask removes a task. Deleting an id that is already gone succeeds.
func (h *HTTPHandler) DeleteTask(c *gin.Context) {
	taskID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if err := h.workflow.DeleteTask(ctx, CurrentUser(c), taskID); err != nil {
		WorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.OKResponse{Success: true})
}
