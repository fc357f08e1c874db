package uid

import "github.com/google/uuid"

// GenerateGameID returns a random identifier for a new game
func GenerateGameID() string {
	return uuid.NewString()
}

// IsGameID reports whether s looks like an id from GenerateGameID
func IsGameID(s string) bool {
	_, err := uuid.Parse(s)
	return err == nil
}
