package core

import (
	"encoding/hex"

	"github.com/go-crypt/x/blake2b"
)

// KeyFromContent generates a deterministic cache key from text content using
// BLAKE2b hashing. Identical content always produces an identical key.
func KeyFromContent(text string) string {
	h, _ := blake2b.New(16, nil) // 16 bytes = 128 bits
	h.Write([]byte(text))
	return hex.EncodeToString(h.Sum(nil))
}
