package utils

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// Identity-provider webhook signature scheme: the provider signs
// "id.timestamp.body" with HMAC-SHA256 and sends base64 signatures in a
// space-separated, version-prefixed header. The shared secret carries a
// "whsec_" prefix over its base64 key material.
const (
	secretPrefix     = "whsec_"
	signatureVersion = "v1"
)

var (
	ErrMissingSignature  = errors.New("missing signature material")
	ErrSignatureMismatch = errors.New("no matching signature")
	ErrTimestampTooOld   = errors.New("webhook timestamp outside tolerance")
)

// VerifyWebhookSignature checks an inbound webhook request against the
// shared secret. msgID, timestamp, and sigHeader come from the request
// headers; payload is the raw body. The timestamp must be within
// tolerance of now in either direction (replayed and pre-dated deliveries
// are both rejected). Comparison is constant-time.
func VerifyWebhookSignature(secret, msgID, timestamp, sigHeader string, payload []byte, now time.Time, tolerance time.Duration) error {
	if msgID == "" || timestamp == "" || sigHeader == "" {
		return ErrMissingSignature
	}

	key, err := decodeSecret(secret)
	if err != nil {
		return err
	}

	ts, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return fmt.Errorf("invalid webhook timestamp: %w", err)
	}
	if tolerance > 0 {
		diff := now.Sub(time.Unix(ts, 0))
		if diff > tolerance || -diff > tolerance {
			return ErrTimestampTooOld
		}
	}

	expected := sign(key, msgID, timestamp, payload)

	// The header may carry several signatures (e.g. after a secret
	// rotation); any one matching is sufficient.
	for _, entry := range strings.Fields(sigHeader) {
		version, sigB64, found := strings.Cut(entry, ",")
		if !found || version != signatureVersion {
			continue
		}
		sig, err := base64.StdEncoding.DecodeString(sigB64)
		if err != nil {
			continue
		}
		if hmac.Equal(sig, expected) {
			return nil
		}
	}
	return ErrSignatureMismatch
}

// SignWebhookPayload produces the header value this verifier accepts.
// Used by tests and by local delivery tooling.
func SignWebhookPayload(secret, msgID, timestamp string, payload []byte) (string, error) {
	key, err := decodeSecret(secret)
	if err != nil {
		return "", err
	}
	sig := sign(key, msgID, timestamp, payload)
	return signatureVersion + "," + base64.StdEncoding.EncodeToString(sig), nil
}

func decodeSecret(secret string) ([]byte, error) {
	if secret == "" {
		return nil, errors.New("empty webhook secret")
	}
	key, err := base64.StdEncoding.DecodeString(strings.TrimPrefix(secret, secretPrefix))
	if err != nil {
		return nil, fmt.Errorf("invalid webhook secret: %w", err)
	}
	return key, nil
}

// signature covers: id + "." + timestamp + "." + body
func sign(key []byte, msgID, timestamp string, payload []byte) []byte {
	mac := hmac.New(sha256.New, key)
	mac.Write([]byte(msgID))
	mac.Write([]byte("."))
	mac.Write([]byte(timestamp))
	mac.Write([]byte("."))
	mac.Write(payload)
	return mac.Sum(nil)
}
