package handler

import (
	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// PriceHandler serves TRX price quotes.
type PriceHandler struct {
	priceSvc ports.PriceService
}

// NewPriceHandler creates a new PriceHandler.
func NewPriceHandler(priceSvc ports.PriceService) *PriceHandler {
	return &PriceHandler{priceSvc: priceSvc}
}

// Quote handles GET /api/v1/price. Public: quotes carry no user data.
func (h *PriceHandler) Quote(c *gin.Context) {
	quote, err := h.priceSvc.Quote(c.Request.Context())
	if err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, quote)
}
