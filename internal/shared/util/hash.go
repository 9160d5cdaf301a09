package util

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// HashClientKey returns a stable, non-reversible identifier for a visitor
// built from request attributes such as remote address and user agent.
func HashClientKey(parts ...string) string {
	sum := sha256.Sum256([]byte(strings.Join(parts, "\x00")))
	return hex.EncodeToString(sum[:])
}
