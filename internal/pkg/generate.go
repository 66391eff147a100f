package pkg

import (
	"fmt"

	petname "github.com/dustinkirkland/golang-petname"
	"github.com/google/uuid"
)

const nameWords = 2

func GenerateGameID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate game id: %w", err)
	}

	return id.String(), nil
}

func GeneratePlayerID() (string, error) {
	id, err := uuid.NewRandom()
	if err != nil {
		return "", fmt.Errorf("failed to generate player id: %w", err)
	}

	return id.String(), nil
}

// GeneratePlayerName returns a readable name like "happy-otter".
func GeneratePlayerName() string {
	return petname.Generate(nameWords, "-")
}
