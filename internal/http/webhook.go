package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/service"
)

type NotificationReconciler interface {
	Handle(ctx context.Context, n service.Notification) (domain.PaymentStatus, error)
}

type WebhookHandler struct {
	svc NotificationReconciler
}

func NewWebhookHandler(svc NotificationReconciler) *WebhookHandler {
	return &WebhookHandler{svc: svc}
}

// POST /webhooks/doku
//
// Malformed payloads get a 400 and are never retried by the gateway;
// store failures get a 5xx so the gateway resends the notification.
func (h *WebhookHandler) Notify(c *gin.Context) {
	var n service.Notification
	if err := c.ShouldBindJSON(&n); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid notification body"})
		return
	}

	_, err := h.svc.Handle(c.Request.Context(), n)
	switch {
	case errors.Is(err, service.ErrMalformedNotification):
		logrus.WithError(err).Warn("rejected malformed gateway notification")
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	case errors.Is(err, domain.ErrBookingNotFound):
		c.JSON(http.StatusBadRequest, gin.H{"error": "unknown invoice number"})
	case err != nil:
		logrus.WithError(err).Error("failed to reconcile gateway notification")
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to update booking"})
	default:
		c.JSON(http.StatusOK, gin.H{"success": true})
	}
}
