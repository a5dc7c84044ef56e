package auth

import (
	"crypto/rand"
	"fmt"
	"math/big"
)

const tokenChars = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// GenerateSecureToken generates a random token for email verification and
// password reset links using crypto/rand.
func GenerateSecureToken(length int) (string, error) {
	result := make([]byte, length)
	for i := range result {
		n, err := rand.Int(rand.Reader, big.NewInt(int64(len(tokenChars))))
		if err != nil {
			return "", fmt.Errorf("secure random generation failed: %w", err)
		}
		result[i] = tokenChars[n.Int64()]
	}
	return string(result), nil
}
