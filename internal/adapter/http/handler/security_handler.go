package handler

import (
	"tron-wallet-service/internal/adapter/http/dto"
	"tron-wallet-service/internal/core/domain"
	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/pkg/apperror"
	"tron-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// SecurityHandler handles second-factor enrollment endpoints.
type SecurityHandler struct {
	twoFactorSvc ports.TwoFactorService
}

// NewSecurityHandler creates a new SecurityHandler.
func NewSecurityHandler(twoFactorSvc ports.TwoFactorService) *SecurityHandler {
	return &SecurityHandler{twoFactorSvc: twoFactorSvc}
}

// Status handles GET /api/v1/security/2fa.
func (h *SecurityHandler) Status(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	profile, err := h.twoFactorSvc.Profile(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TwoFactorStatusResponse{Enabled: profile.TwoFactorEnabled})
}

// Setup handles POST /api/v1/security/2fa/setup. The challenge is not
// persisted; the client proves possession of it on confirm.
func (h *SecurityHandler) Setup(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	challenge, err := h.twoFactorSvc.BeginEnrollment(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TwoFactorSetupResponse{
		Secret:          challenge.Secret,
		ProvisioningURI: challenge.ProvisioningURI,
	})
}

// Confirm handles POST /api/v1/security/2fa/confirm.
func (h *SecurityHandler) Confirm(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TwoFactorConfirmRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	challenge := domain.EnrollmentChallenge{Secret: req.Secret}
	if err := h.twoFactorSvc.ConfirmEnrollment(c.Request.Context(), sess, req.Code, challenge); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TwoFactorStatusResponse{Enabled: true})
}

// Disable handles DELETE /api/v1/security/2fa.
func (h *SecurityHandler) Disable(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	if err := h.twoFactorSvc.Disable(c.Request.Context(), sess); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TwoFactorStatusResponse{Enabled: false})
}
