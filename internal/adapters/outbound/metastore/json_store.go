package metastore

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/suitelint/suitelint/internal/domain"
)

// JSONStore implements domain.MetadataLoader on the exchange format produced
// by the jar scanner: a map of fully qualified class name to class metadata.
type JSONStore struct{}

func New() *JSONStore {
	return &JSONStore{}
}

// Load reads and parses a metadata file. A missing or malformed file is an
// error: semantic checks silently running against an empty store would pass
// suites that reference classes that no longer exist.
func (s *JSONStore) Load(path string) (*domain.MetadataStore, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading metadata %s: %w", path, err)
	}

	var classes map[string]domain.ClassMetadata
	if err := json.Unmarshal(data, &classes); err != nil {
		return nil, fmt.Errorf("parsing metadata %s: %w", path, err)
	}

	return &domain.MetadataStore{Classes: classes}, nil
}

func (s *JSONStore) Save(path string, store *domain.MetadataStore) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return err
	}

	data, err := json.MarshalIndent(store.Classes, "", "  ")
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0644)
}
