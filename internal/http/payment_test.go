package httpx

import (
	"context"
	"errors"
	"net/http"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/usausernob/lapangan-putroagung-rangkah/internal/doku"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/domain"
	"github.com/usausernob/lapangan-putroagung-rangkah/internal/service"
)

type initiatorStub struct {
	in  service.InitiateInput
	who service.Identity
	res *service.InitiateResult
	err error
}

func (s *initiatorStub) Initiate(_ context.Context, in service.InitiateInput, who service.Identity) (*service.InitiateResult, error) {
	s.in = in
	s.who = who
	return s.res, s.err
}

func paymentRouter(stub *initiatorStub) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(func(c *gin.Context) {
		c.Set("sub", "user-1")
		c.Set("name", "Budi")
		c.Set("email", "budi@example.com")
	})
	r.POST("/v1/payments", NewPaymentHandler(stub).Initiate)
	return r
}

func TestInitiateReturnsCheckoutLink(t *testing.T) {
	stub := &initiatorStub{res: &service.InitiateResult{
		PaymentURL:    "https://sandbox.doku.com/checkout/link/abc",
		InvoiceNumber: "bk-1",
	}}
	w := postJSON(t, paymentRouter(stub), "/v1/payments",
		`{"court_id": "soccer", "booking_date": "2026-09-10", "time_slot": "09:00", "amount": 200000}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"payment_url": "https://sandbox.doku.com/checkout/link/abc", "invoice_number": "bk-1"}`, w.Body.String())

	assert.Equal(t, "soccer", stub.in.CourtID)
	assert.Equal(t, int64(200000), stub.in.Amount)
	assert.Equal(t, "user-1", stub.who.ID)
	assert.Equal(t, "Budi", stub.who.Name)
}

func TestInitiateMapsErrorsToStatusCodes(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"invalid input", service.ErrInvalidRequest, http.StatusBadRequest},
		{"not the owner", service.ErrUnauthorized, http.StatusUnauthorized},
		{"slot taken", domain.ErrSlotTaken, http.StatusConflict},
		{"court at cap", domain.ErrCourtFull, http.StatusConflict},
		{"gateway exhausted", &doku.UnavailableError{Attempts: 3, Err: errors.New("connection refused")}, http.StatusServiceUnavailable},
		{"gateway rejected", &doku.RejectedError{Status: 400, Message: "invalid signature"}, http.StatusBadGateway},
		{"gateway protocol fault", &doku.ProtocolError{ContentType: "text/html"}, http.StatusBadGateway},
		{"missing secret", doku.ErrMissingSecret, http.StatusBadGateway},
		{"anything else", assert.AnError, http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			stub := &initiatorStub{err: tc.err}
			w := postJSON(t, paymentRouter(stub), "/v1/payments",
				`{"court_id": "soccer", "booking_date": "2026-09-10", "time_slot": "09:00", "amount": 200000}`)
			assert.Equal(t, tc.want, w.Code)
		})
	}
}

func TestInitiateRejectsUnparsableBody(t *testing.T) {
	stub := &initiatorStub{}
	w := postJSON(t, paymentRouter(stub), "/v1/payments", `{"amount": "not a number"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Empty(t, stub.in.CourtID, "service is never reached")
}
