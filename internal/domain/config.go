package domain

import "fmt"

// Default limits mirrored from the validator's historical behavior.
const (
	DefaultMaxFileSizeMB = 50
	DefaultWorkers       = 4
)

// Config is the project-level validator configuration, loaded from
// .suitelint.yaml when present.
type Config struct {
	// MaxFileSizeMB caps the size of a single suite file.
	MaxFileSizeMB int `yaml:"max_file_size_mb"`
	// Strict treats WARN results as failures for exit-status purposes.
	Strict bool `yaml:"strict"`
	// MetadataPath points at a metadata store JSON file; empty disables
	// semantic checks unless --metadata is given on the command line.
	MetadataPath string `yaml:"metadata_path"`
	// ExcludePaths are directory names skipped during discovery.
	ExcludePaths []string `yaml:"exclude_paths"`
	// Workers bounds batch validation concurrency.
	Workers int `yaml:"workers"`
	// Backup controls whether auto-fix writes a .bak copy first.
	Backup bool `yaml:"backup"`
}

// DefaultConfig returns the configuration used when no .suitelint.yaml
// exists.
func DefaultConfig() Config {
	return Config{
		MaxFileSizeMB: DefaultMaxFileSizeMB,
		Workers:       DefaultWorkers,
		Backup:        true,
	}
}

// Validate catches out-of-range values in user-supplied raw input.
func (c Config) Validate() error {
	if c.MaxFileSizeMB < 0 {
		return fmt.Errorf("max_file_size_mb must not be negative, got %d", c.MaxFileSizeMB)
	}
	if c.Workers < 0 {
		return fmt.Errorf("workers must not be negative, got %d", c.Workers)
	}
	return nil
}
