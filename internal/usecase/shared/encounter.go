// Package shared provides shared utilities for use cases.
package shared

import (
	"errors"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
)

// maxSaveAttempts bounds how often a mutation is replayed after losing a
// version race.
const maxSaveAttempts = 3

// GetEncounter retrieves an encounter by ID and returns domain.ErrEncounterNotFound if not found.
func GetEncounter(repo domain.EncounterRepository, id int) (*domain.Encounter, error) {
	enc, err := repo.Get(id)
	if err != nil {
		return nil, fmt.Errorf("get encounter: %w", err)
	}
	if enc == nil {
		return nil, fmt.Errorf("encounter #%d: %w", id, domain.ErrEncounterNotFound)
	}
	return enc, nil
}

// MutateEncounter loads an encounter, applies fn and saves the result.
//
// When Save reports a version conflict, the encounter is reloaded and fn is
// applied again to the fresh snapshot, so fn must derive everything it needs
// from the encounter it is given. An error from fn aborts without saving.
func MutateEncounter(repo domain.EncounterRepository, id int, fn func(enc *domain.Encounter) error) (*domain.Encounter, error) {
	var lastErr error
	for range maxSaveAttempts {
		enc, err := GetEncounter(repo, id)
		if err != nil {
			return nil, err
		}
		if err := fn(enc); err != nil {
			return nil, err
		}
		err = repo.Save(enc)
		if err == nil {
			return enc, nil
		}
		if !errors.Is(err, domain.ErrVersionConflict) {
			return nil, fmt.Errorf("save encounter: %w", err)
		}
		lastErr = err
	}
	return nil, fmt.Errorf("save encounter: %w", lastErr)
}

// RequireEditable returns domain.ErrEncounterCompleted for completed encounters.
func RequireEditable(enc *domain.Encounter) error {
	if !enc.Status.AllowsRosterChanges() {
		return fmt.Errorf("encounter #%d: %w", enc.ID, domain.ErrEncounterCompleted)
	}
	return nil
}
