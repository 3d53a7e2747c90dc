package service

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
)

// HMACSigner signs outgoing notification payloads with HMAC-SHA256.
type HMACSigner struct {
	secret []byte
}

// NewHMACSigner creates a signer for the shared webhook secret.
func NewHMACSigner(secret string) *HMACSigner {
	return &HMACSigner{secret: []byte(secret)}
}

// Sign computes HMAC-SHA256 of payload.
// Returns lowercase hex-encoded signature.
func (s *HMACSigner) Sign(payload string) string {
	mac := hmac.New(sha256.New, s.secret)
	mac.Write([]byte(payload))
	return hex.EncodeToString(mac.Sum(nil))
}

// Verify checks if signature matches HMAC-SHA256(secret, payload) in constant time.
// It is the receiver-side counterpart of Sign: a webhook consumer holding the
// shared secret calls it with CanonicalPayload(X-Timestamp, body) and X-Signature.
func (s *HMACSigner) Verify(payload string, signature string) bool {
	expected := s.Sign(payload)
	return hmac.Equal([]byte(expected), []byte(signature))
}

// CanonicalPayload is the string a webhook receiver must sign to check X-Signature.
// Format: TIMESTAMP|BODY
func CanonicalPayload(timestamp int64, body []byte) string {
	return fmt.Sprintf("%d|%s", timestamp, body)
}
