package handler

import (
	"tron-wallet-service/internal/adapter/http/dto"
	"tron-wallet-service/internal/core/ports"
	"tron-wallet-service/pkg/apperror"
	"tron-wallet-service/pkg/response"

	"github.com/gin-gonic/gin"
)

// NotificationHandler serves the per-user notification feed. The feed is
// written only by the reconciliation engine, so the handler talks to the
// repository directly.
type NotificationHandler struct {
	notifs ports.NotificationRepository
}

// NewNotificationHandler creates a new NotificationHandler.
func NewNotificationHandler(notifs ports.NotificationRepository) *NotificationHandler {
	return &NotificationHandler{notifs: notifs}
}

// List handles GET /api/v1/notifications. Newest first.
func (h *NotificationHandler) List(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	records, err := h.notifs.List(c.Request.Context(), sess.Username)
	if err != nil {
		response.Error(c, err)
		return
	}

	out := make([]dto.NotificationResponse, 0, len(records))
	for _, n := range records {
		out = append(out, dto.NotificationFromDomain(n))
	}
	response.OK(c, out)
}

// MarkAllRead handles POST /api/v1/notifications/read.
func (h *NotificationHandler) MarkAllRead(c *gin.Context) {
	sess, ok := sessionFromContext(c)
	if !ok {
		response.Error(c, apperror.ErrInvalidToken())
		return
	}

	if err := h.notifs.MarkAllRead(c.Request.Context(), sess.Username); err != nil {
		response.Error(c, err)
		return
	}

	response.OK(c, gin.H{"read": true})
}
