package doku

import (
	"encoding/json"
	"fmt"
	"strings"
)

// RejectedError is a definitive 4xx from the gateway. Never retried.
type RejectedError struct {
	Status  int
	Message string
	Raw     string
}

func (e *RejectedError) Error() string {
	return fmt.Sprintf("doku rejected request [%d]: %s", e.Status, e.Message)
}

// ProtocolError is a success-range response the client cannot interpret,
// such as an HTML body on a 200. Retrying reproduces the same response.
type ProtocolError struct {
	ContentType string
	Body        string
}

func (e *ProtocolError) Error() string {
	return fmt.Sprintf("doku returned unexpected response (content-type %q)", e.ContentType)
}

// UnavailableError wraps the last transport or 5xx failure after the
// retry budget is exhausted.
type UnavailableError struct {
	Attempts int
	Err      error
}

func (e *UnavailableError) Error() string {
	return fmt.Sprintf("doku unavailable after %d attempts: %v", e.Attempts, e.Err)
}

func (e *UnavailableError) Unwrap() error { return e.Err }

// rejectionMessage extracts a displayable message from a 4xx body.
// Structured parse first, raw text as the fallback; never fails.
func rejectionMessage(raw []byte) string {
	var parsed struct {
		Message string `json:"message"`
		Error   struct {
			Message string `json:"message"`
		} `json:"error"`
	}
	if err := json.Unmarshal(raw, &parsed); err == nil {
		if parsed.Error.Message != "" {
			return parsed.Error.Message
		}
		if parsed.Message != "" {
			return parsed.Message
		}
	}
	return strings.TrimSpace(string(raw))
}
