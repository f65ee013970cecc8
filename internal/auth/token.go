// Copyright (c) 2025-2026 Croquet Bond Nederland
// SPDX-License-Identifier: GPL-3.0-or-later

package auth

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// TokenBytes is the number of random bytes in a session token: 32 bytes
// gives 256 bits of entropy, hex encoded to 64 characters.
const TokenBytes = 32

// GenerateToken returns a new opaque session token from the operating
// system's secure random source.
func GenerateToken() (string, error) {
	buf := make([]byte, TokenBytes)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("generating session token: %w", err)
	}
	return hex.EncodeToString(buf), nil
}
