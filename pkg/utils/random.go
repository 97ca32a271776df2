package utils

import (
	"crypto/rand"
	"math/big"
)

// Alphanumeric only: public ids end up in URLs and log lines.
const idAlphabet = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateRandomID returns a random alphanumeric string of length n.
func GenerateRandomID(n int) string {
	limit := big.NewInt(int64(len(idAlphabet)))
	b := make([]byte, n)
	for i := range b {
		num, err := rand.Int(rand.Reader, limit)
		if err != nil {
			// crypto/rand failing means the id is unusable either way
			return ""
		}
		b[i] = idAlphabet[num.Int64()]
	}
	return string(b)
}
