package application

import (
	"errors"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/suitelint/suitelint/internal/domain"
	"github.com/suitelint/suitelint/internal/domain/fixes"
)

// ErrStale marks a file that changed between validation and fix application.
// The caller should re-run validation instead of writing over fresh edits.
var ErrStale = errors.New("file changed since validation")

// FixOptions control one auto-fix run.
type FixOptions struct {
	// DryRun plans fixes without touching the file.
	DryRun bool
	// NoBackup skips the .bak copy.
	NoBackup bool
	// Codes restricts fixing to the listed codes; empty fixes everything
	// fixable.
	Codes []string
}

// AppliedFix records one finding the engine resolved or skipped.
type AppliedFix struct {
	Code    string `json:"code"`
	Line    int    `json:"line"`
	Message string `json:"message"`
}

// FixReport summarizes one auto-fix run over a single file. Remaining holds
// the findings the engine cannot resolve automatically, so callers can show
// manual fix suggestions for them.
type FixReport struct {
	FilePath   string           `json:"file_path"`
	Applied    []AppliedFix     `json:"applied"`
	Skipped    []AppliedFix     `json:"skipped"`
	Remaining  []domain.Finding `json:"remaining,omitempty"`
	DryRun     bool             `json:"dry_run"`
	BackupPath string           `json:"backup_path,omitempty"`
}

// FixService orchestrates the auto-fix pipeline: validate → select fixable
// findings → apply bottom-up in one pass → back up and rewrite.
type FixService struct {
	validate *ValidateService
	cfg      domain.Config
	locks    *PathLocks
}

func NewFixService(validate *ValidateService, cfg domain.Config, locks *PathLocks) *FixService {
	return &FixService{validate: validate, cfg: cfg, locks: locks}
}

// FixFile validates the file and applies every selected auto-fixable finding
// in one pass.
func (s *FixService) FixFile(path string, opts FixOptions) (*FixReport, error) {
	s.locks.Lock(path)
	defer s.locks.Unlock(path)

	result, err := s.validate.validateLocked(path)
	if err != nil {
		return nil, err
	}
	return s.applyLocked(path, result, opts)
}

// ApplyFixes applies fixes for a previously obtained validation result.
// It returns ErrStale when the file changed after that validation, so stale
// findings never patch fresh edits.
func (s *FixService) ApplyFixes(path string, result *domain.ValidationResult, opts FixOptions) (*FixReport, error) {
	s.locks.Lock(path)
	defer s.locks.Unlock(path)
	return s.applyLocked(path, result, opts)
}

// applyLocked runs the fix pass under the path lock. Fixes run in descending
// line order so a deletion never shifts a finding that has not been applied
// yet. Findings with no handler, or whose line no longer looks like what the
// handler expects, are reported as skipped.
func (s *FixService) applyLocked(path string, result *domain.ValidationResult, opts FixOptions) (*FixReport, error) {
	wanted := make(map[string]bool, len(opts.Codes))
	for _, c := range opts.Codes {
		wanted[strings.ToUpper(c)] = true
	}

	report := &FixReport{FilePath: path, DryRun: opts.DryRun}

	var fixable []domain.Finding
	for _, f := range result.Findings {
		if !f.AutoFixable || (len(wanted) > 0 && !wanted[f.Code]) {
			report.Remaining = append(report.Remaining, f)
			continue
		}
		fixable = append(fixable, f)
	}

	if len(fixable) == 0 {
		return report, nil
	}

	sort.SliceStable(fixable, func(i, j int) bool {
		return fixable[i].Line > fixable[j].Line
	})

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	lines := strings.Split(string(data), "\n")
	for _, f := range fixable {
		entry := AppliedFix{Code: f.Code, Line: f.Line, Message: f.Message}
		var ok bool
		if lines, ok = fixes.Apply(f, lines); ok {
			report.Applied = append(report.Applied, entry)
		} else {
			report.Skipped = append(report.Skipped, entry)
		}
	}

	if opts.DryRun || len(report.Applied) == 0 {
		return report, nil
	}

	// The file may have been rewritten by another process between
	// validation and now; writing would clobber those edits.
	info, err := os.Stat(path)
	if err != nil {
		return nil, err
	}
	if info.Size() != result.FileSize || !info.ModTime().Equal(result.ModTime) {
		return nil, fmt.Errorf("%w: %s", ErrStale, path)
	}

	if s.cfg.Backup && !opts.NoBackup {
		backup := path + ".bak"
		if err := os.WriteFile(backup, data, 0644); err != nil {
			return nil, fmt.Errorf("writing backup: %w", err)
		}
		report.BackupPath = backup
	}

	if err := os.WriteFile(path, []byte(strings.Join(lines, "\n")), 0644); err != nil {
		return nil, fmt.Errorf("writing %s: %w", path, err)
	}

	return report, nil
}
