package handler

import (
	"tron-wallet-service/internal/adapter/http/dto"
	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/pkg/apperror"
	"tron-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// TransferHandler handles transfer endpoints.
type TransferHandler struct {
	transferSvc ports.TransferService
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(transferSvc ports.TransferService) *TransferHandler {
	return &TransferHandler{transferSvc: transferSvc}
}

// Begin handles POST /api/v1/transfers. With 2FA enabled the response
// status is AWAITING_CODE and the client must follow up on /transfers/code.
func (h *TransferHandler) Begin(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TransferRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}
	dto.SanitizeStruct(&req)

	outcome, err := h.transferSvc.Begin(c.Request.Context(), sess, req.WalletID, req.Recipient, req.Amount)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransferResponse{
		Status: string(outcome.Status),
		TxID:   outcome.TxID,
	})
}

// SubmitCode handles POST /api/v1/transfers/code.
func (h *TransferHandler) SubmitCode(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	var req dto.TransferCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, apperror.Validation(err.Error()))
		return
	}

	outcome, err := h.transferSvc.SubmitCode(c.Request.Context(), sess, req.Code)
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, dto.TransferResponse{
		Status: string(outcome.Status),
		TxID:   outcome.TxID,
	})
}
