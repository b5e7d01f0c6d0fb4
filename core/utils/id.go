package utils

import (
	"crypto/rand"
	"encoding/hex"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

// GenerateSuffix returns a short lowercase disambiguator for colliding
// usernames.
func GenerateSuffix(alphabet string, length int) string {
	id, err := gonanoid.Generate(alphabet, length)
	if err != nil {
		return ""
	}
	return id
}

// GenerateToken generates a cryptographically secure hex token of the given
// character length.
func GenerateToken(length int) string {
	bytes := make([]byte, (length+1)/2)
	if _, err := rand.Read(bytes); err != nil {
		// Fallback to nanoid if crypto/rand fails
		id, _ := gonanoid.Generate("0123456789abcdef", length)
		return id
	}
	return hex.EncodeToString(bytes)[:length]
}
