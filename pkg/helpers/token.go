package helpers

import (
	"crypto/rand"
	"encoding/hex"
)

// GenOpaqueToken returns a 32-character hex token (128 bits of entropy) for
// one-time email links. Tokens have no decodable structure.
func GenOpaqueToken() (string, error) {
	b := make([]byte, 16)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
