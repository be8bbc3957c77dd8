// Package idgen generates opaque identifiers for combatants and status effects.
package idgen

import (
	"github.com/google/uuid"

	"github.com/runoshun/initiative/internal/domain"
)

// UUIDGenerator produces random (version 4) UUID strings.
type UUIDGenerator struct{}

// NewID returns a new UUID string.
func (UUIDGenerator) NewID() string {
	return uuid.NewString()
}

var _ domain.IDGenerator = UUIDGenerator{}
