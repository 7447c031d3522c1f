// Package digest computes the SHA-256 and BLAKE3 fingerprints used to
// compare staffroll files across conversions.
package digest

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	"github.com/zeebo/blake3"
)

// HashResult contains both SHA-256 and BLAKE3 hashes for one blob.
type HashResult struct {
	SHA256 string `json:"sha256"`
	BLAKE3 string `json:"blake3"`
	Size   int    `json:"size"`
}

// Sum hashes data with both algorithms.
func Sum(data []byte) HashResult {
	return HashResult{
		SHA256: SHA256Hash(data),
		BLAKE3: Blake3Hash(data),
		Size:   len(data),
	}
}

// SHA256Hash returns the hex SHA-256 of data.
func SHA256Hash(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Blake3Hash returns the hex BLAKE3-256 of data.
func Blake3Hash(data []byte) string {
	h := blake3.Sum256(data)
	return hex.EncodeToString(h[:])
}

// Equal reports whether two results describe the same content.
func (h HashResult) Equal(o HashResult) bool {
	return h.SHA256 == o.SHA256 && h.BLAKE3 == o.BLAKE3 && h.Size == o.Size
}

// Short returns an abbreviated BLAKE3 hash for display.
func (h HashResult) Short() string {
	if len(h.BLAKE3) < 16 {
		return h.BLAKE3
	}
	return h.BLAKE3[:16]
}

func (h HashResult) String() string {
	return fmt.Sprintf("blake3:%s sha256:%s (%d bytes)", h.BLAKE3, h.SHA256, h.Size)
}
