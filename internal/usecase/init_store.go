package usecase

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/runoshun/initiative/internal/domain"
)

// InitStoreInput contains the input parameters for InitStore.
type InitStoreInput struct {
	DataDir string // Directory holding config, store file and logs
}

// InitStoreOutput contains the output from InitStore.
type InitStoreOutput struct {
	DataDir            string // Path to the data directory
	AlreadyInitialized bool   // True if the store existed (repair only)
}

// initChecker is implemented by stores that can report whether they exist.
type initChecker interface {
	IsInitialized() bool
}

// InitStore creates the data directory and initializes the encounter store.
type InitStore struct {
	storeInit domain.StoreInitializer
}

// NewInitStore creates a new InitStore use case.
func NewInitStore(storeInit domain.StoreInitializer) *InitStore {
	return &InitStore{storeInit: storeInit}
}

// Execute creates the data and logs directories and initializes the store.
// An existing store is repaired rather than reset.
func (uc *InitStore) Execute(_ context.Context, in InitStoreInput) (*InitStoreOutput, error) {
	already := false
	if c, ok := uc.storeInit.(initChecker); ok {
		already = c.IsInitialized()
	}

	if err := os.MkdirAll(filepath.Join(in.DataDir, "logs"), 0o750); err != nil {
		return nil, fmt.Errorf("create data directory: %w", err)
	}

	if err := uc.storeInit.Initialize(); err != nil {
		return nil, fmt.Errorf("initialize encounter store: %w", err)
	}

	return &InitStoreOutput{
		DataDir:            in.DataDir,
		AlreadyInitialized: already,
	}, nil
}
