package utils

import (
	"crypto/rand"
	"encoding/base64"

	gonanoid "github.com/matoous/go-nanoid/v2"
)

const idAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz"

// GenerateSessionID returns a short opaque identifier for a chat session.
func GenerateSessionID() string {
	id, err := gonanoid.Generate(idAlphabet, 21)
	if err != nil {
		return ""
	}
	return id
}

// GenerateStateToken returns a cryptographically secure token for the OAuth
// state round trip.
func GenerateStateToken() string {
	bytes := make([]byte, 32)
	if _, err := rand.Read(bytes); err != nil {
		id, _ := gonanoid.Generate(idAlphabet, 32)
		return id
	}
	return base64.RawURLEncoding.EncodeToString(bytes)
}
