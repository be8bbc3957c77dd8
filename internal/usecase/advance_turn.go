package usecase

import (
	"context"
	"fmt"

	"github.com/runoshun/initiative/internal/domain"
	"github.com/runoshun/initiative/internal/usecase/shared"
)

// TurnDirection selects which way the scheduler moves.
type TurnDirection int

// Turn directions.
const (
	TurnNext TurnDirection = iota
	TurnPrevious
)

// AdvanceTurnInput contains the parameters for moving the turn pointer.
type AdvanceTurnInput struct {
	EncounterID int
	Direction   TurnDirection
}

// AdvanceTurnOutput contains the scheduler position after the move.
type AdvanceTurnOutput struct {
	Encounter *domain.Encounter
	Result    domain.TurnResult
}

// AdvanceTurn is the use case for stepping the initiative order.
type AdvanceTurn struct {
	encounters domain.EncounterRepository
	logger     domain.Logger
}

// NewAdvanceTurn creates a new AdvanceTurn use case.
func NewAdvanceTurn(encounters domain.EncounterRepository, logger domain.Logger) *AdvanceTurn {
	return &AdvanceTurn{
		encounters: encounters,
		logger:     logger,
	}
}

// Execute moves to the next or previous turn. Moving forward past the last
// combatant starts a new round and expires finished status effects.
func (uc *AdvanceTurn) Execute(_ context.Context, in AdvanceTurnInput) (*AdvanceTurnOutput, error) {
	var step func(*domain.Encounter) (domain.TurnResult, error)
	switch in.Direction {
	case TurnNext:
		step = (*domain.Encounter).NextTurn
	case TurnPrevious:
		step = (*domain.Encounter).PreviousTurn
	default:
		return nil, fmt.Errorf("turn direction %d: %w", in.Direction, domain.ErrInvalidDirection)
	}

	var res domain.TurnResult
	enc, err := shared.MutateEncounter(uc.encounters, in.EncounterID, func(enc *domain.Encounter) error {
		var err error
		res, err = step(enc)
		return err
	})
	if err != nil {
		return nil, err
	}

	uc.log(enc.ID, res)

	return &AdvanceTurnOutput{Encounter: enc, Result: res}, nil
}

func (uc *AdvanceTurn) log(id int, res domain.TurnResult) {
	if uc.logger == nil {
		return
	}
	if res.NewRound {
		uc.logger.Info(id, "turn", fmt.Sprintf("round %d begins", res.Round))
	}
	for _, x := range res.Expired {
		uc.logger.Info(id, "effect", fmt.Sprintf("%q on %q expired", x.Effect.Name, x.CombatantName))
	}
	if res.Current != nil {
		uc.logger.Debug(id, "turn", fmt.Sprintf("round %d turn %d: %s", res.Round, res.Turn+1, res.Current.Name))
	}
}
