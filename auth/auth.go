// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package auth

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"strings"

	"github.com/google/uuid"
)

var ErrInvalidToken = errors.New("invalid session token")

// NewSessionID mints a fresh anonymous session identity.
func NewSessionID() string {
	return uuid.NewString()
}

// SignSession produces the cookie value "id.sig" where sig is an
// HMAC-SHA256 of the id under the secret. Deterministic and
// verifiable; a client cannot forge a foreign session id without the
// secret.
func SignSession(sessionID, secret string) string {
	return sessionID + "." + signature(sessionID, secret)
}

// VerifySession validates a cookie value produced by SignSession and
// returns the embedded session id. Malformed or tampered tokens fail
// with ErrInvalidToken.
func VerifySession(token, secret string) (string, error) {
	sessionID, sig, ok := strings.Cut(token, ".")
	if !ok || sessionID == "" {
		return "", ErrInvalidToken
	}
	expected := signature(sessionID, secret)
	if !hmac.Equal([]byte(sig), []byte(expected)) {
		return "", ErrInvalidToken
	}
	return sessionID, nil
}

func signature(sessionID, secret string) string {
	h := hmac.New(sha256.New, []byte(secret))
	h.Write([]byte(sessionID))
	sum := h.Sum(nil)
	// URL-safe base64 without padding for a cleaner cookie value
	return strings.TrimRight(base64.URLEncoding.EncodeToString(sum), "=")
}
