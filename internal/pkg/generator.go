package pkg

import "github.com/google/uuid"

// GenerateGameID returns a random game identifier.
func GenerateGameID() string {
	return uuid.NewString()
}

// GenerateNewSessionID returns a random player session identifier.
func GenerateNewSessionID() string {
	return uuid.NewString()
}
