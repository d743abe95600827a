package utils

import (
	"crypto/rand"
	"encoding/base32"
	"fmt"
)

// JoinCodeLength is the length of generated project join codes.
const JoinCodeLength = 8

// GenerateJoinCode generates a random join code of 8 uppercase alphanumeric
// characters. Uniqueness is enforced by the join_code unique index; callers
// retry with a fresh code on collision.
func GenerateJoinCode() (string, error) {
	bytes := make([]byte, 5)
	if _, err := rand.Read(bytes); err != nil {
		return "", fmt.Errorf("failed to generate random bytes: %w", err)
	}

	// Base32 yields A-Z2-7, already uppercase alphanumeric.
	return base32.StdEncoding.EncodeToString(bytes)[:JoinCodeLength], nil
}
