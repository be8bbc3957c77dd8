package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
)

// SyncDirection selects whether encounters are pushed or fetched.
type SyncDirection string

// Sync directions.
const (
	SyncPush  SyncDirection = "push"
	SyncFetch SyncDirection = "fetch"
)

// SyncEncountersInput contains the parameters for syncing with the remote.
type SyncEncountersInput struct {
	Direction SyncDirection
}

// SyncEncountersOutput contains the result of a sync.
type SyncEncountersOutput struct{}

// SyncEncounters is the use case for sharing encounters through a git remote.
type SyncEncounters struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewSyncEncounters creates a new SyncEncounters use case.
func NewSyncEncounters(encounters domain.EncounterRepository, logger domain.Logger) *SyncEncounters {
	return &SyncEncounters{
		encounters: encounters,
		logger:     logger,
	}
}

// Execute pushes or fetches the encounter refs.
// Stores without remote support report domain.ErrSyncUnsupported.
func (uc *SyncEncounters) Execute(_ context.Context, in SyncEncountersInput) (*SyncEncountersOutput, error) {
	remote, ok := uc.encounters.(domain.RemoteSync)
	if !ok {
		return nil, domain.ErrSyncUnsupported
	}

	var err error
	switch in.Direction {
	case SyncPush:
		err = remote.Push()
	case SyncFetch:
		err = remote.Fetch()
	default:
		return nil, fmt.Errorf("sync %q: %w", in.Direction, domain.ErrInvalidDirection)
	}
	if err != nil {
		if uc.logger != nil {
			uc.logger.Error(0, "sync", fmt.Sprintf("%s failed: %v", in.Direction, err))
		}
		return nil, fmt.Errorf("%s encounters: %w", in.Direction, err)
	}

	if uc.logger != nil {
		uc.logger.Info(0, "sync", fmt.Sprintf("%s complete", in.Direction))
	}
	return &SyncEncountersOutput{}, nil
}
