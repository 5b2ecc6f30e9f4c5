package store

import (
	"crypto/sha256"
	"fmt"
)

// ContentHash returns the hex sha256 of content. Merge cache entries are
// keyed by the hashes of both inputs.
func ContentHash(content []byte) string {
	return fmt.Sprintf("%x", sha256.Sum256(content))
}
