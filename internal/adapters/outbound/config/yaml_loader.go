package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/suitelint/suitelint/internal/domain"
	"gopkg.in/yaml.v3"
)

const fileName = ".suitelint.yaml"

// YAMLLoader implements domain.ConfigLoader by reading .suitelint.yaml.
type YAMLLoader struct{}

// New creates a YAMLLoader.
func New() *YAMLLoader { return &YAMLLoader{} }

// Load reads .suitelint.yaml from projectPath. Returns DefaultConfig if the
// file does not exist.
func (l *YAMLLoader) Load(projectPath string) (domain.Config, error) {
	data, err := os.ReadFile(filepath.Join(projectPath, fileName))
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return domain.DefaultConfig(), nil
		}
		return domain.Config{}, err
	}

	cfg := domain.DefaultConfig()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return domain.Config{}, fmt.Errorf("parsing %s: %w", fileName, err)
	}

	if err := cfg.Validate(); err != nil {
		return domain.Config{}, fmt.Errorf("invalid %s: %w", fileName, err)
	}

	// Zero values fall back to defaults so a partial file stays usable.
	if cfg.MaxFileSizeMB == 0 {
		cfg.MaxFileSizeMB = domain.DefaultMaxFileSizeMB
	}
	if cfg.Workers == 0 {
		cfg.Workers = domain.DefaultWorkers
	}

	return cfg, nil
}
