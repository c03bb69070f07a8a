package httpx

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/doku"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/service"
)

type PaymentInitiator interface {
	Initiate(ctx context.Context, in service.InitiateInput, who service.Identity) (*service.InitiateResult, error)
}

type PaymentHandler struct {
	svc PaymentInitiator
}

func NewPaymentHandler(svc PaymentInitiator) *PaymentHandler {
	return &PaymentHandler{svc: svc}
}

// POST /v1/payments
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var in struct {
		BookingID   string `json:"booking_id"`
		CourtID     string `json:"court_id"`
		BookingDate string `json:"booking_date"` // YYYY-MM-DD
		TimeSlot    string `json:"time_slot"`    // HH:MM
		Amount      int64  `json:"amount"`
	}
	if err := c.ShouldBindJSON(&in); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	res, err := h.svc.Initiate(c.Request.Context(), service.InitiateInput{
		BookingID:   in.BookingID,
		CourtID:     in.CourtID,
		BookingDate: in.BookingDate,
		TimeSlot:    in.TimeSlot,
		Amount:      in.Amount,
	}, identityFrom(c))
	if err != nil {
		c.JSON(paymentErrorStatus(err), gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, res)
}

// paymentErrorStatus keeps the taxonomy visible to the UI without leaking
// gateway internals: rejections and protocol faults are the gateway's
// fault (502), exhaustion is 503, everything invalid is on the caller.
func paymentErrorStatus(err error) int {
	var unavailable *doku.UnavailableError
	switch {
	case errors.Is(err, service.ErrInvalidRequest):
		return http.StatusBadRequest
	case errors.Is(err, service.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, domain.ErrSlotTaken), errors.Is(err, domain.ErrCourtFull):
		return http.StatusConflict
	case errors.As(err, &unavailable):
		return http.StatusServiceUnavailable
	case isGatewayError(err):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

func isGatewayError(err error) bool {
	var rejected *doku.RejectedError
	var protocol *doku.ProtocolError
	return errors.As(err, &rejected) || errors.As(err, &protocol) || errors.Is(err, doku.ErrMissingSecret)
}
