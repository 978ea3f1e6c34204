package utils

import (
	"crypto/sha256"
	"encoding/base64"
)

// HashToken digests a raw bearer token for storage. Revocation rows keep
// the hash so a leaked table never yields usable credentials.
func HashToken(raw string) string {
	hasher := sha256.New()
	hasher.Write([]byte(raw))
	return base64.URLEncoding.EncodeToString(hasher.Sum(nil))
}
