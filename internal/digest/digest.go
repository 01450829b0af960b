// Package digest is the content-identity collaborator: it streams bytes
// through BLAKE3-256 and renders the result as lowercase hex. Hashing itself
// is provided by an external library; this package only adapts it to the
// chunked-read shape the pipeline expects.
package digest

import (
	"encoding/hex"
	"io"

	"github.com/zeebo/blake3"
)

const chunkSize = 64 * 1024

// SumReader streams r through BLAKE3 in chunkSize reads and returns the
// 256-bit digest as lowercase hex. An empty reader still produces the
// well-defined hash of zero bytes, never the empty-string sentinel — callers
// distinguish "could not be read" by checking the error, not the output.
func SumReader(r io.Reader) (string, error) {
	h := blake3.New()
	buf := make([]byte, chunkSize)
	if _, err := io.CopyBuffer(h, r, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}
