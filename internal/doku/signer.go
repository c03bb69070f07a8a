// Package doku implements the DOKU Checkout v1 client: request signing,
// the payment-creation call, and its retry policy.
package doku

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
)

var ErrMissingSecret = errors.New("doku: secret key is not configured")

// Digest returns the base64-encoded SHA-256 of the exact bytes sent on
// the wire. Re-serializing the body before digesting breaks the signature.
func Digest(body []byte) string {
	sum := sha256.Sum256(body)
	return base64.StdEncoding.EncodeToString(sum[:])
}

// Sign computes the Signature header value over the canonical component
// string defined by DOKU's HMAC authentication scheme.
func Sign(clientID, requestID, timestamp, target, digest, secret string) (string, error) {
	if secret == "" {
		return "", ErrMissingSecret
	}
	component := fmt.Sprintf("Client-Id:%s\nRequest-Id:%s\nRequest-Timestamp:%s\nRequest-Target:%s\nDigest:%s",
		clientID, requestID, timestamp, target, digest)
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(component))
	return "HMACSHA256=" + base64.StdEncoding.EncodeToString(mac.Sum(nil)), nil
}
