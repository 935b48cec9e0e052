package handler

import (
	"context"
	"net/http"

	"tron-wallet-service/internal/adapter/http/dto"
	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/pkg/apperror"
	"tron-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// MonitorController is the lifecycle surface the HTTP layer needs from the
// balance monitor: start polling on login, stop on logout, and poke it when
// the user asks for a manual refresh.
type MonitorController interface {
	StartFor(ctx context.Context, username string)
	StopFor(username string)
	RefreshNow(username string)
}

// AuthHandler handles authentication endpoints.
type AuthHandler struct {
	authSvc  ports.AuthService
	monitors MonitorController
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authSvc ports.AuthService, monitors MonitorController) *AuthHandler {
	return &AuthHandler{authSvc: authSvc, monitors: monitors}
}

// Register handles POST /api/v1/auth/register.
func (h *AuthHandler) Register(c *gin.Context) {
	var req dto.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	if err := h.authSvc.Register(c.Request.Context(), req.Username, req.Password); err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.RegisterResponse{Username: req.Username})
}

// Login handles POST /api/v1/auth/login. A successful login also starts
// the user's balance monitor.
func (h *AuthHandler) Login(c *gin.Context) {
	var req dto.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	token, expiry, err := h.authSvc.Login(c.Request.Context(), req.Username, req.Password)
	if err != nil {
		response.Error(c, err)
		return
	}

	if h.monitors != nil {
		// The monitor outlives this request.
		h.monitors.StartFor(context.WithoutCancel(c.Request.Context()), req.Username)
	}

	response.OK(c, dto.LoginResponse{
		Token:  token,
		Expiry: expiry.Unix(),
	})
}

// Logout handles POST /api/v1/auth/logout. Tokens are stateless; logout
// exists to stop the balance monitor.
func (h *AuthHandler) Logout(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	if h.monitors != nil {
		h.monitors.StopFor(sess.Username)
	}

	response.OK(c, gin.H{"logged_out": true})
}

// HealthCheck handles GET /health — deep health check verifying all dependencies.
func HealthCheck(checkers ...ports.HealthChecker) gin.HandlerFunc {
	return func(c *gin.Context) {
		type depStatus struct {
			Status string `json:"status"`
			Error  string `json:"error,omitempty"`
		}

		deps := make(map[string]depStatus)
		allHealthy := true

		for _, checker := range checkers {
			if err := checker.Ping(c.Request.Context()); err != nil {
				deps[checker.Name()] = depStatus{Status: "unhealthy", Error: err.Error()}
				allHealthy = false
			} else {
				deps[checker.Name()] = depStatus{Status: "healthy"}
			}
		}

		status := "healthy"
		httpCode := http.StatusOK
		if !allHealthy {
			status = "degraded"
			httpCode = http.StatusServiceUnavailable
		}

		c.JSON(httpCode, gin.H{
			"status":       status,
			"dependencies": deps,
		})
	}
}
