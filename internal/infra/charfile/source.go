// Package charfile reads character records from a YAML file in the data directory.
package charfile

import (
	"errors"
	"fmt"
	"os"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/runoshun/initiative/internal/domain"
)

// fileData is the on-disk layout of characters.yaml.
type fileData struct {
	Characters []domain.CharacterRecord `yaml:"characters"`
}

// Source implements domain.CharacterSource backed by a YAML file.
// The file is re-read on every call so edits show up without a restart.
type Source struct {
	path string
}

// New creates a Source for the given file path.
func New(path string) *Source {
	return &Source{path: path}
}

// GetCharacter retrieves a character by ID. Returns nil if not found.
func (s *Source) GetCharacter(id string) (*domain.CharacterRecord, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	for i := range records {
		if records[i].ID == id {
			return &records[i], nil
		}
	}
	return nil, nil
}

// ListCharacters returns all characters ordered by ID.
// A missing file yields an empty list.
func (s *Source) ListCharacters() ([]domain.CharacterRecord, error) {
	records, err := s.load()
	if err != nil {
		return nil, err
	}
	slices.SortFunc(records, func(a, b domain.CharacterRecord) int {
		return strings.Compare(a.ID, b.ID)
	})
	return records, nil
}

func (s *Source) load() ([]domain.CharacterRecord, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return []domain.CharacterRecord{}, nil
		}
		return nil, fmt.Errorf("read characters: %w", err)
	}

	var fd fileData
	if err := yaml.Unmarshal(data, &fd); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}

	seen := make(map[string]bool, len(fd.Characters))
	for _, c := range fd.Characters {
		if c.ID == "" {
			return nil, fmt.Errorf("parse %s: character %q has no id", s.path, c.Name)
		}
		if seen[c.ID] {
			return nil, fmt.Errorf("parse %s: duplicate character id %q", s.path, c.ID)
		}
		seen[c.ID] = true
	}
	if fd.Characters == nil {
		fd.Characters = []domain.CharacterRecord{}
	}
	return fd.Characters, nil
}

var _ domain.CharacterSource = (*Source)(nil)
