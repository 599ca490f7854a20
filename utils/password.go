package utils

import (
	"crypto/rand"
	"encoding/base64"
	"fmt"
)

// GenerateSecurePassword creates a random URL-safe password of the specified length
func GenerateSecurePassword(length int) (string, error) {
	// Ensure minimum length
	if length < 8 {
		length = 8
	}

	// base64 yields 4 characters per 3 bytes
	b := make([]byte, (length*3+3)/4)
	if _, err := rand.Read(b); err != nil {
		return "", fmt.Errorf("failed to generate password: %w", err)
	}

	password := base64.RawURLEncoding.EncodeToString(b)
	if len(password) > length {
		password = password[:length]
	}
	return password, nil
}
