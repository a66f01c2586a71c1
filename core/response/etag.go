package response

import (
	"crypto/sha1"
	"encoding/hex"
)

// ETag returns the strong entity tag for body: its quoted SHA-1 hex digest.
func ETag(body string) string {
	sum := sha1.Sum([]byte(body))
	return `"` + hex.EncodeToString(sum[:]) + `"`
}
