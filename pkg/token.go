package pkg

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
)

const tokenSuffixLen = 4

// IssueToken generates an opaque bearer token for an enrollment link.
//
// The raw token is 256 bits from crypto/rand, hex encoded. Only the SHA-256
// hash is ever persisted; the suffix (last 4 chars) is stored for display so
// operators can reference a link without seeing the secret.
func IssueToken() (raw, hash, suffix string, err error) {
	buf := make([]byte, 32)
	if _, err = rand.Read(buf); err != nil {
		return "", "", "", err
	}
	raw = hex.EncodeToString(buf)
	return raw, HashToken(raw), raw[len(raw)-tokenSuffixLen:], nil
}

// HashToken returns the hex-encoded SHA-256 digest of a raw token. Lookups
// go through this digest only, so a presented token is never compared (or
// logged) directly.
func HashToken(raw string) string {
	sum := sha256.Sum256([]byte(raw))
	return hex.EncodeToString(sum[:])
}
