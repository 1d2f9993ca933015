package cache

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"
)

// Key derives a stable cache key for one verification request. Identical
// content/url/title/contentType combinations hit the same entry; the caller
// re-stamps the request id on a hit.
func Key(content, url, title, contentType string) string {
	hash := sha256.Sum256([]byte(strings.Join([]string{content, url, title, contentType}, "\x00")))
	return "clarix:v1:" + hex.EncodeToString(hash[:])
}
