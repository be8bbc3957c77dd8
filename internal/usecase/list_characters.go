package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
)

// ListCharactersInput contains the parameters for listing character records.
type ListCharactersInput struct{}

// ListCharactersOutput contains the known character records.
type ListCharactersOutput struct {
	Characters []domain.CharacterRecord
}

// ListCharacters is the use case for listing character records that
// combatants can be created from.
type ListCharacters struct {
	characters domain.CharacterSource
}

// NewListCharacters creates a new ListCharacters use case.
func NewListCharacters(characters domain.CharacterSource) *ListCharacters {
	return &ListCharacters{characters: characters}
}

// Execute returns all character records.
func (uc *ListCharacters) Execute(_ context.Context, _ ListCharactersInput) (*ListCharactersOutput, error) {
	chars, err := uc.characters.ListCharacters()
	if err != nil {
		return nil, fmt.Errorf("list characters: %w", err)
	}
	return &ListCharactersOutput{Characters: chars}, nil
}
