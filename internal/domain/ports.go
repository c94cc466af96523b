package domain

// TextLoader decodes raw file bytes into text, reporting the encoding used.
type TextLoader interface {
	Load(path string) (text string, encoding string, err error)
}

// ConfigLoader reads the project configuration.
type ConfigLoader interface {
	Load(projectPath string) (Config, error)
}

// MetadataLoader reads and writes the metadata store exchange format.
type MetadataLoader interface {
	Load(path string) (*MetadataStore, error)
	Save(path string, store *MetadataStore) error
}

// SuiteScanner discovers suite XML files under a set of paths.
type SuiteScanner interface {
	Discover(paths []string, excludes []string) ([]string, error)
}

// ReportExporter renders a batch of validation results to a file, choosing
// the format from the output path's extension.
type ReportExporter interface {
	Export(results []*ValidationResult, outputPath string) error
}

// RunHistory persists per-run summaries.
type RunHistory interface {
	Append(projectPath string, entry RunEntry) error
	Load(projectPath string) ([]RunEntry, error)
}

// GitInfo resolves repository facts recorded in report headers.
type GitInfo interface {
	IsGitRepo(path string) bool
	CommitHash(path string) (string, error)
}

// RunEntry is one line of validation history.
type RunEntry struct {
	Timestamp  string `json:"timestamp"`
	CommitHash string `json:"commit_hash,omitempty"`
	Files      int    `json:"files"`
	Passed     int    `json:"passed"`
	Warned     int    `json:"warned"`
	Failed     int    `json:"failed"`
	Errors     int    `json:"errors"`
	Warnings   int    `json:"warnings"`
}
