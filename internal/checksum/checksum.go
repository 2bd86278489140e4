// Package checksum provides the content and URL hashes used as cache keys.
package checksum

import (
	"crypto/md5"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"os"
)

// Sum returns the hex-encoded SHA-256 digest of data.
func Sum(data []byte) string {
	h := sha256.Sum256(data)
	return hex.EncodeToString(h[:])
}

// SumFile returns the hex-encoded SHA-256 digest of the file at path,
// streaming the contents so large videos are not held in memory.
func SumFile(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("checksum: open %s: %w", path, err)
	}
	defer f.Close()

	h := sha256.New()
	if _, err := io.Copy(h, f); err != nil {
		return "", fmt.Errorf("checksum: read %s: %w", path, err)
	}
	return hex.EncodeToString(h.Sum(nil)), nil
}

// URLKey returns the hex-encoded MD5 digest of url. Download-cache entries
// are named by this key, so it must stay stable across runs.
func URLKey(url string) string {
	h := md5.Sum([]byte(url))
	return hex.EncodeToString(h[:])
}

// Short returns the first four hex characters of key, used as a collision
// suffix in asset file titles and poster names.
func Short(key string) string {
	if len(key) < 4 {
		return key
	}
	return key[:4]
}
