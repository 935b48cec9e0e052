package handler

import (
	"tron-wallet-service/internal/adapter/http/dto"
	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/pkg/apperror"
	"tron-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// WalletHandler handles wallet-related endpoints.
type WalletHandler struct {
	walletSvc ports.WalletService
	monitors  MonitorController
}

// NewWalletHandler creates a new WalletHandler.
func NewWalletHandler(walletSvc ports.WalletService, monitors MonitorController) *WalletHandler {
	return &WalletHandler{walletSvc: walletSvc, monitors: monitors}
}

// List handles GET /api/v1/wallets.
func (h *WalletHandler) List(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	wallets, err := h.walletSvc.List(c.Request.Context(), sess)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.WalletResponse, 0, len(wallets))
	for _, w := range wallets {
		out = append(out, dto.WalletFromDomain(w))
	}
	response.OK(c, out)
}

// Create handles POST /api/v1/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.CreateWalletRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	wallet, err := h.walletSvc.Create(c.Request.Context(), sess, req.Name)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.Created(c, dto.WalletFromDomain(*wallet))
}

// Delete handles DELETE /api/v1/wallets/:id.
func (h *WalletHandler) Delete(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	if err := h.walletSvc.Delete(c.Request.Context(), sess, c.Param("id")); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"deleted": true})
}

// Refresh handles POST /api/v1/wallets/refresh. It kicks the balance
// monitor; the refreshed balances land asynchronously.
func (h *WalletHandler) Refresh(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	h.monitors.RefreshNow(sess.Username)
	response.OK(c, gin.H{"refreshing": true})
}
