package tokens

import (
	"crypto/hmac"
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// ParseAPIKey strips the configured prefix from a raw bearer token and
// returns the secret portion.
func ParseAPIKey(raw, prefix string) (secret string, ok bool) {
	if !strings.HasPrefix(raw, prefix) {
		return "", false
	}
	return strings.TrimPrefix(raw, prefix), true
}

// HMAC256Hex is the lookup digest stored alongside each user. Keys are
// never stored in plaintext; the HMAC makes the column index-friendly while
// the pepper keeps offline dictionary attacks out of reach.
func HMAC256Hex(pepper, secret string) string {
	m := hmac.New(sha256.New, []byte(pepper))
	m.Write([]byte(secret))
	return hex.EncodeToString(m.Sum(nil)) // 64 hex chars
}

// NewSecret generates a random API key secret (hex, 2*n chars).
func NewSecret(n int) (string, error) {
	b := make([]byte, n)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
