package hash

import (
	"encoding/hex"

	"golang.org/x/crypto/sha3"
)

// Hasher derives stable, salted keys for page identifiers
type Hasher struct {
	Key []byte
}

// Sum returns the lowercase hex SHA3-512 digest of the page followed by the key
func (h *Hasher) Sum(page string) (string, error) {
	digest := sha3.New512()

	if _, err := digest.Write([]byte(page)); err != nil {
		return "", err
	}

	if _, err := digest.Write(h.Key); err != nil {
		return "", err
	}

	return hex.EncodeToString(digest.Sum(nil)), nil
}
