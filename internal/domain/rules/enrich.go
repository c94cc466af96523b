package rules

import (
	"strings"

	"github.com/suitelint/suitelint/internal/domain"
)

// Finalize attaches source-line context to every finding, merges duplicates
// from the two scan stages, and returns the sorted sequence that becomes the
// ValidationResult's finding list. It never discovers new problems and never
// drops a unique finding.
func Finalize(findings []domain.Finding, lines []string) []domain.Finding {
	type key struct {
		code string
		line int
	}

	merged := make(map[key]int, len(findings))
	out := make([]domain.Finding, 0, len(findings))

	for _, f := range findings {
		if f.Line > 0 && f.Line <= len(lines) {
			f.Context = strings.TrimSpace(lines[f.Line-1])
		}

		k := key{f.Code, f.Line}
		if idx, dup := merged[k]; dup {
			// Same logical problem seen by both stages: keep the more
			// specific message.
			if moreSpecific(f, out[idx]) {
				out[idx] = f
			}
			continue
		}
		merged[k] = len(out)
		out = append(out, f)
	}

	domain.SortFindings(out)
	return out
}

// moreSpecific prefers findings that carry a suggestion or a longer message.
func moreSpecific(a, b domain.Finding) bool {
	if (a.Suggestion != "") != (b.Suggestion != "") {
		return a.Suggestion != ""
	}
	return len(a.Message) > len(b.Message)
}
