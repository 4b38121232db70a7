package token

import (
	"crypto/rand"
	"encoding/hex"
	"fmt"
)

// NewConfirmationToken generates a 128-bit cryptographically random token,
// hex encoded. Tokens are capabilities — unpredictability is the whole point,
// so only crypto/rand is acceptable here.
func NewConfirmationToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("generate confirmation token: %w", err)
	}
	return hex.EncodeToString(b), nil
}
