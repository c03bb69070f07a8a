package doku

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
)

const (
	checkoutPath = "/checkout/v1/payment"

	attemptTimeout = 90 * time.Second
	maxAttempts    = 3
	initialBackoff = 2 * time.Second
)

// PaymentDueMinutes is how long a generated checkout session stays payable.
const PaymentDueMinutes = 60

// Config carries the checkout credentials. The HMAC scheme authenticates
// via Client-Id plus the secret key only; DOKU's API key is validated at
// startup but never transmitted.
type Config struct {
	ClientID  string
	SecretKey string
	BaseURL   string
}

type Client struct {
	cfg Config
	hc  *http.Client

	// injectable for tests
	sleep        func(ctx context.Context, d time.Duration) error
	now          func() time.Time
	newRequestID func() string
}

func NewClient(cfg Config) *Client {
	return &Client{
		cfg:          cfg,
		hc:           &http.Client{},
		sleep:        sleepCtx,
		now:          time.Now,
		newRequestID: uuid.NewString,
	}
}

type Order struct {
	Amount        int64  `json:"amount"`
	InvoiceNumber string `json:"invoice_number"`
	CallbackURL   string `json:"callback_url"`
}

type Payment struct {
	PaymentDueDate int `json:"payment_due_date"` // minutes
}

type Customer struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	Email string `json:"email"`
}

type CheckoutRequest struct {
	Order    Order    `json:"order"`
	Payment  Payment  `json:"payment"`
	Customer Customer `json:"customer"`
}

type CheckoutResponse struct {
	Response struct {
		Order struct {
			InvoiceNumber string `json:"invoice_number"`
		} `json:"order"`
		Payment struct {
			URL         string `json:"url"`
			TokenID     string `json:"token_id"`
			ExpiredDate string `json:"expired_date"`
		} `json:"payment"`
	} `json:"response"`
}

// PaymentURL is the hosted checkout page the customer is redirected to.
func (r *CheckoutResponse) PaymentURL() string {
	return r.Response.Payment.URL
}

// CreatePayment delivers a signed payment-creation request. 4xx rejections
// and protocol errors fail immediately; 5xx and transport failures are
// retried up to 3 total attempts with 2s then 4s of backoff.
func (c *Client) CreatePayment(ctx context.Context, req CheckoutRequest) (*CheckoutResponse, error) {
	if c.cfg.SecretKey == "" {
		return nil, ErrMissingSecret
	}

	// Marshal once: the digest must cover the exact wire bytes.
	body, err := json.Marshal(req)
	if err != nil {
		return nil, fmt.Errorf("marshal checkout request: %w", err)
	}

	var lastErr error
	for attempt := 1; attempt <= maxAttempts; attempt++ {
		if attempt > 1 {
			if err := c.sleep(ctx, initialBackoff<<(attempt-2)); err != nil {
				return nil, err
			}
		}

		resp, err := c.attempt(ctx, body)
		if err == nil {
			return resp, nil
		}
		var rejected *RejectedError
		var protocol *ProtocolError
		if errors.As(err, &rejected) || errors.As(err, &protocol) {
			return nil, err
		}
		lastErr = err
		logrus.WithError(err).WithField("attempt", attempt).Warn("doku checkout attempt failed")
	}
	return nil, &UnavailableError{Attempts: maxAttempts, Err: lastErr}
}

func (c *Client) attempt(ctx context.Context, body []byte) (*CheckoutResponse, error) {
	ctx, cancel := context.WithTimeout(ctx, attemptTimeout)
	defer cancel()

	// A reused Request-Id risks gateway-side idempotency collisions, so
	// every attempt signs with a fresh one.
	requestID := c.newRequestID()
	ts := c.now().UTC().Truncate(time.Second).Format("2006-01-02T15:04:05Z")

	signature, err := Sign(c.cfg.ClientID, requestID, ts, checkoutPath, Digest(body), c.cfg.SecretKey)
	if err != nil {
		return nil, err
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, c.cfg.BaseURL+checkoutPath, bytes.NewReader(body))
	if err != nil {
		return nil, fmt.Errorf("build doku request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Client-Id", c.cfg.ClientID)
	httpReq.Header.Set("Request-Id", requestID)
	httpReq.Header.Set("Request-Timestamp", ts)
	httpReq.Header.Set("Signature", signature)

	res, err := c.hc.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("doku request: %w", err)
	}
	defer res.Body.Close()

	raw, err := io.ReadAll(res.Body)
	if err != nil {
		return nil, fmt.Errorf("read doku response: %w", err)
	}

	switch {
	case res.StatusCode >= 400 && res.StatusCode < 500:
		return nil, &RejectedError{Status: res.StatusCode, Message: rejectionMessage(raw), Raw: string(raw)}
	case res.StatusCode >= 500:
		return nil, fmt.Errorf("doku server error: status %d", res.StatusCode)
	}

	ct := res.Header.Get("Content-Type")
	if !strings.Contains(ct, "application/json") {
		return nil, &ProtocolError{ContentType: ct, Body: truncate(string(raw), 200)}
	}

	var out CheckoutResponse
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, &ProtocolError{ContentType: ct, Body: truncate(string(raw), 200)}
	}
	return &out, nil
}

func sleepCtx(ctx context.Context, d time.Duration) error {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n]
}
