package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"interntrack/internal/entity"
	"interntrack/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
)

func (h *HTTPHandler) Signup(c *gin.Context) {
	var req entity.SignupRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.workflow.Signup(ctx, req.Name, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrConflict) {
			ErrorResponse(c, http.StatusConflict, ErrCodeConflict, "Email already registered.")
			return
		}
		WorkflowError(c, err)
		return
	}

	c.JSON(http.StatusCreated, entity.SignupResponse{
		Success: true,
		User:    makeUserSummary(user),
	})
}

func (h *HTTPHandler) Login(c *gin.Context) {
	var req entity.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		InvalidPayload(c)
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 5*time.Second)
	defer cancel()

	user, err := h.workflow.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			logrus.WithField("email", req.Email).Warn("login attempt failed")
		}
		WorkflowError(c, err)
		return
	}

	token, expiresAt, err := h.authManager.GenerateToken(user)
	if err != nil {
		logrus.WithError(err).Error("failed to generate token")
		InternalError(c, "failed to create session")
		return
	}

	c.JSON(http.StatusOK, entity.LoginResponse{
		Success:   true,
		Token:     token,
		ExpiresAt: expiresAt,
		User:      makeIdentity(user),
	})
}

// Me returns the identity behind the presented token so the front end can
// restore a session after reload.
func (h *HTTPHandler) Me(c *gin.Context) {
	user := CurrentUser(c)
	if user == nil {
		Unauthorized(c, "authentication required")
		return
	}
	c.JSON(http.StatusOK, makeIdentity(user))
}
