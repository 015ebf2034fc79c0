package api

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"interntrack/internal/entity"

	"github.com/gin-gonic/gin"
)

// ListPendingUsers returns accounts awaiting admin review.
func (h *HTTPHandler) ListPendingUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.workflow.ListPending(ctx, CurrentUser(c))
	if err != nil {
		WorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, makeUserSummaries(users))
}

// ApproveUser activates a pending account with a role and, for interns, a
// supervisor assignment.
func (h *HTTPHandler) ApproveUser(c *gin.Context) {
	var req entity.ApproveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.workflow.Approve(ctx, CurrentUser(c), req.UserID, strings.TrimSpace(req.Role), req.SupervisorID)
	if err != nil {
		WorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.ApproveResponse{
		Success: true,
		User:    makeUserSummary(user),
	})
}

// RejectUser moves a pending account to the terminal rejected state.
func (h *HTTPHandler) RejectUser(c *gin.Context) {
	var req entity.RejectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	if _, err := h.workflow.Reject(ctx, CurrentUser(c), req.UserID); err != nil {
		WorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, entity.OKResponse{Success: true})
}

// ListSupervisors returns the active supervisors as directory entries.
func (h *HTTPHandler) ListSupervisors(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.workflow.ListSupervisors(ctx, CurrentUser(c))
	if err != nil {
		WorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, makeDirectoryEntries(users))
}

// ListInterns returns the active interns of the supervisor in the path.
func (h *HTTPHandler) ListInterns(c *gin.Context) {
	supervisorID, ok := parseIDParam(c, "id")
	if !ok {
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.workflow.ListInterns(ctx, CurrentUser(c), supervisorID)
	if err != nil {
		WorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, makeDirectoryEntries(users))
}

// ListAllUsers returns every account, credential stripped.
func (h *HTTPHandler) ListAllUsers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	users, err := h.workflow.ListAll(ctx, CurrentUser(c))
	if err != nil {
		WorkflowError(c, err)
		return
	}

	c.JSON(http.StatusOK, makeUserSummaries(users))
}

func parseIDParam(c *gin.Context, name string) (uint, bool) {
	raw := strings.TrimSpace(c.Param(name))
	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		BadRequest(c, ErrCodeInvalidRequest, "invalid "+name+" parameter")
		return 0, false
	}
	return uint(id), true
}
