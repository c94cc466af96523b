package domain

import (
	"fmt"
	"sort"
	"time"
)

// Severity classifies how serious a finding is. FAIL is driven only by
// ERROR-severity findings; WARNING findings alone yield WARN.
type Severity string

const (
	SeverityError   Severity = "ERROR"
	SeverityWarning Severity = "WARNING"
)

// Finding is one detected problem in a suite file. Findings are created by
// the pre-flight scanner or the hierarchy validator, enriched with the
// source line by Finalize, and immutable afterwards.
type Finding struct {
	Code        string            `json:"code"`
	Severity    Severity          `json:"severity"`
	Message     string            `json:"message"`
	Line        int               `json:"line"`
	Col         int               `json:"col,omitempty"`
	Context     string            `json:"context,omitempty"`
	Suggestion  string            `json:"suggestion,omitempty"`
	AutoFixable bool              `json:"auto_fixable"`
	Meta        map[string]string `json:"meta,omitempty"`
}

// Location returns a human-readable position string.
func (f Finding) Location() string {
	switch {
	case f.Line > 0 && f.Col > 0:
		return fmt.Sprintf("Line %d, Col %d", f.Line, f.Col)
	case f.Line > 0:
		return fmt.Sprintf("Line %d", f.Line)
	}
	return "Unknown"
}

func (f Finding) IsError() bool   { return f.Severity == SeverityError }
func (f Finding) IsWarning() bool { return f.Severity == SeverityWarning }

// Status of a validated file, derived from its findings.
type Status string

const (
	StatusPass Status = "PASS"
	StatusWarn Status = "WARN"
	StatusFail Status = "FAIL"
)

// ValidationResult aggregates the findings for one validated file.
// It is created once per run and read-only afterwards; status and counts
// are pure functions of the finding sequence.
type ValidationResult struct {
	FilePath     string        `json:"file_path"`
	Findings     []Finding     `json:"findings"`
	ValidatedAt  time.Time     `json:"validated_at"`
	Duration     time.Duration `json:"duration"`
	FileSize     int64         `json:"file_size"`
	ModTime      time.Time     `json:"mod_time"`
	Encoding     string        `json:"encoding,omitempty"`
	MetadataUsed bool          `json:"metadata_used"`
}

func (r *ValidationResult) ErrorCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityError {
			n++
		}
	}
	return n
}

func (r *ValidationResult) WarningCount() int {
	n := 0
	for _, f := range r.Findings {
		if f.Severity == SeverityWarning {
			n++
		}
	}
	return n
}

// Status derives PASS/WARN/FAIL from the finding sequence.
func (r *ValidationResult) Status() Status {
	switch {
	case r.ErrorCount() > 0:
		return StatusFail
	case len(r.Findings) > 0:
		return StatusWarn
	}
	return StatusPass
}

// ByCode groups findings by their error code.
func (r *ValidationResult) ByCode() map[string][]Finding {
	grouped := make(map[string][]Finding)
	for _, f := range r.Findings {
		grouped[f.Code] = append(grouped[f.Code], f)
	}
	return grouped
}

// BySeverity groups findings by severity.
func (r *ValidationResult) BySeverity() map[Severity][]Finding {
	grouped := make(map[Severity][]Finding)
	for _, f := range r.Findings {
		grouped[f.Severity] = append(grouped[f.Severity], f)
	}
	return grouped
}

// SortFindings orders findings by line ascending, then code ascending.
// The ordering is stable across repeated runs on identical input.
func SortFindings(findings []Finding) {
	sort.SliceStable(findings, func(i, j int) bool {
		if findings[i].Line != findings[j].Line {
			return findings[i].Line < findings[j].Line
		}
		return findings[i].Code < findings[j].Code
	})
}
