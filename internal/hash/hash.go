// Package hash computes content hashes used for change detection across the
// index: a file's hash is compared against the stored hash to decide whether
// it needs reparsing.
package hash

import (
	"crypto/sha256"
	"encoding/hex"
	"io"
	"os"
)

const bufSize = 32 * 1024

// File streams a file's bytes through SHA-256 without reading the whole
// thing into memory, so large files don't spike RSS.
func File(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := sha256.New()
	buf := make([]byte, bufSize)
	if _, err := io.CopyBuffer(h, f, buf); err != nil {
		return "", err
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// Bytes hashes an in-memory buffer.
func Bytes(data []byte) string {
	sum := sha256.Sum256(data)
	return hex.EncodeToString(sum[:])
}
