// Copyright (c) 2026 Acadex. All rights reserved.
// Author: platform@acadex.app

package sec

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"encoding/hex"
	"fmt"
)

// # Opaque Tokens

// GenerateSecureToken returns a URL-safe random token of byteLength entropy.
//
// Used for refresh tokens and password-reset tokens. The raw value is handed
// to the client; only its [HashToken] digest is ever persisted.
func GenerateSecureToken(byteLength int) (string, error) {
	buffer := make([]byte, byteLength)
	if _, err := rand.Read(buffer); err != nil {
		return "", fmt.Errorf("sec: failed to generate secure token: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buffer), nil
}

// HashToken returns the hex-encoded SHA-256 digest of an opaque token.
//
// Refresh tokens are stored hashed so a database leak cannot be replayed.
func HashToken(token string) string {
	digest := sha256.Sum256([]byte(token))
	return hex.EncodeToString(digest[:])
}
