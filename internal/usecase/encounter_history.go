package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// EncounterHistoryInput contains the parameters for inspecting saved versions.
type EncounterHistoryInput struct {
	EncounterID int
	Version     int // 0 = list versions; >0 = load that version
}

// EncounterHistoryOutput contains the version list or one snapshot.
type EncounterHistoryOutput struct {
	Snapshot *domain.Encounter    // Set when a version was requested
	Versions []domain.SnapshotInfo // Set when listing
}

// EncounterHistory is the use case for listing or loading previous snapshots.
type EncounterHistory struct {
	encounters domain.EncounterRepository
}

// NewEncounterHistory creates a new EncounterHistory use case.
func NewEncounterHistory(encounters domain.EncounterRepository) *EncounterHistory {
	return &EncounterHistory{encounters: encounters}
}

// Execute lists the saved versions, or loads one of them.
// Stores that do not keep history report domain.ErrHistoryUnsupported.
func (uc *EncounterHistory) Execute(_ context.Context, in EncounterHistoryInput) (*EncounterHistoryOutput, error) {
	hist, ok := uc.encounters.(domain.SnapshotHistory)
	if !ok {
		return nil, domain.ErrHistoryUnsupported
	}

	if in.Version > 0 {
		snap, err := hist.GetVersion(in.EncounterID, in.Version)
		if err != nil {
			return nil, fmt.Errorf("get encounter version: %w", err)
		}
		if snap == nil {
			return nil, fmt.Errorf("encounter #%d version %d: %w", in.EncounterID, in.Version, domain.ErrEncounterNotFound)
		}
		return &EncounterHistoryOutput{Snapshot: snap}, nil
	}

	if _, err := shared.GetEncounter(uc.encounters, in.EncounterID); err != nil {
		return nil, err
	}
	versions, err := hist.History(in.EncounterID)
	if err != nil {
		return nil, fmt.Errorf("list encounter history: %w", err)
	}
	return &EncounterHistoryOutput{Versions: versions}, nil
}
