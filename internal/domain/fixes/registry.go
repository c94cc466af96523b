package fixes

import (
	"fmt"

	"github.com/suitelint/suitelint/internal/domain"
)

// Suggestion is a tutorial-style remediation for one finding: a title,
// ordered explanatory steps, an example snippet, and the surrounding source
// context. Generated on demand, never persisted.
type Suggestion struct {
	Title   string   `json:"title"`
	Steps   []string `json:"steps"`
	Code    string   `json:"code,omitempty"`
	Context string   `json:"context,omitempty"`
}

// Generator produces a Suggestion from a finding and the offending source
// line. Generators are pure: they never mutate any file, and no generator
// branches on another generator's code.
type Generator func(f domain.Finding, badLine string) Suggestion

// Generate dispatches on the finding's code. A code with no registered
// generator yields a generic fallback naming the error message, never a
// failure.
func Generate(f domain.Finding, lines []string) Suggestion {
	badLine := "..."
	if f.Line > 0 && f.Line <= len(lines) {
		badLine = trimLine(lines[f.Line-1])
	}

	var s Suggestion
	if gen, ok := generators[f.Code]; ok {
		s = gen(f, badLine)
	} else {
		s = Suggestion{
			Title: "Fix: " + f.Message,
			Steps: []string{
				fmt.Sprintf("Error at %s.", f.Location()),
				"Review the XML structure around this line.",
			},
		}
	}
	s.Context = contextView(lines, f.Line)
	return s
}

// VerifyRegistry checks once at startup that every auto-fixable code has
// both a fix generator and an auto-fix handler, and that every registered
// code exists in the code registry. A gap is a programming error and fails
// fast.
func VerifyRegistry() error {
	for code := range domain.AutoFixable {
		if _, ok := generators[code]; !ok {
			return fmt.Errorf("auto-fixable code %s has no fix generator", code)
		}
		if _, ok := fixHandlers[code]; !ok {
			return fmt.Errorf("auto-fixable code %s has no auto-fix handler", code)
		}
	}
	for code := range generators {
		if _, ok := domain.Codes[code]; !ok {
			return fmt.Errorf("fix generator registered for unknown code %s", code)
		}
	}
	for code := range fixHandlers {
		if !domain.AutoFixable[code] {
			return fmt.Errorf("auto-fix handler registered for non-auto-fixable code %s", code)
		}
	}
	return nil
}

// contextView renders the lines around the error with a marker on the
// offending one.
func contextView(lines []string, errLine int) string {
	if len(lines) == 0 || errLine < 1 {
		return ""
	}
	const radius = 3
	start := errLine - radius
	if start < 1 {
		start = 1
	}
	end := errLine + radius - 1
	if end > len(lines) {
		end = len(lines)
	}

	var b []byte
	for i := start; i <= end; i++ {
		marker := " "
		if i == errLine {
			marker = ">"
		}
		b = append(b, fmt.Sprintf("%s %3d | %s\n", marker, i, trimLine(lines[i-1]))...)
	}
	if len(b) > 0 {
		b = b[:len(b)-1]
	}
	return string(b)
}

func trimLine(line string) string {
	for len(line) > 0 && (line[len(line)-1] == '\n' || line[len(line)-1] == '\r') {
		line = line[:len(line)-1]
	}
	return line
}

// metaName returns the offending name carried in the finding's metadata bag.
func metaName(f domain.Finding) string {
	if f.Meta == nil {
		return ""
	}
	return f.Meta["name"]
}
