package utils

import (
	"crypto/sha256"
	"encoding/hex"
)

// Sha256Hex returns the lowercase hex sha256 digest of data.
// Used as the content-addressed dedup key for webhook payloads.
func Sha256Hex(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
