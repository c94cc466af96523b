package fixes

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/suitelint/suitelint/internal/domain"
)

// fixHandler rewrites the source lines to resolve one finding. It returns
// the new lines and whether the fix was applied. A handler never touches a
// line above the finding, so applying fixes in descending line order keeps
// the remaining findings' positions valid.
type fixHandler func(f domain.Finding, lines []string) ([]string, bool)

var fixHandlers = map[string]fixHandler{
	"E101": addAttr("suite", "name", func(f domain.Finding) string { return "AutoFixedSuite" }),
	"E103": addAttr("test", "name", func(f domain.Finding) string { return fmt.Sprintf("AutoFixedTest_%d", f.Line) }),
	"E104": renameDuplicateTest,
	"E107": removeEmptyBlock("classes"),
	"E108": removeEmptyBlock("methods"),
	"E109": removeEmptyBlock("packages"),
	"E112": addAttr("class", "name", placeholder),
	"E116": addAttr("package", "name", placeholder),
	"E122": addAttr("include", "name", placeholder),
	"E124": addAttr("exclude", "name", placeholder),
	"E130": addAttr("parameter", "name", placeholder),
	"E131": addAttr("parameter", "value", placeholder),
	"E132": removeTagLine("parameter"),
	"E160": removeTagLine("class"),
	"E161": removeTagLine("include"),
	"E170": stripSpacesInName,
}

func placeholder(domain.Finding) string { return "CHANGE_ME" }

// Apply resolves a single finding against the in-memory lines. Callers must
// apply findings in descending line order within one pass.
func Apply(f domain.Finding, lines []string) ([]string, bool) {
	h, ok := fixHandlers[f.Code]
	if !ok || f.Line < 1 || f.Line > len(lines) {
		return lines, false
	}
	return h(f, lines)
}

// CanFix reports whether the engine has a handler for the finding.
func CanFix(f domain.Finding) bool {
	_, ok := fixHandlers[f.Code]
	return ok
}

var nameAttrPattern = regexp.MustCompile(`name\s*=\s*"([^"]*)"`)

// addAttr inserts attr="value" into the named tag on the finding's line.
// Not applied when the tag is absent or the attribute is already present.
func addAttr(tag, attr string, value func(domain.Finding) string) fixHandler {
	attrPattern := regexp.MustCompile(attr + `\s*=\s*"`)
	return func(f domain.Finding, lines []string) ([]string, bool) {
		line := lines[f.Line-1]
		open := strings.Index(line, "<"+tag)
		if open < 0 {
			return lines, false
		}
		rest := line[open:]
		end := strings.Index(rest, ">")
		if end < 0 {
			return lines, false
		}
		if attrPattern.MatchString(rest[:end]) {
			return lines, false
		}
		insert := end
		if insert > 0 && rest[insert-1] == '/' {
			insert--
		}
		for insert > 0 && rest[insert-1] == ' ' {
			insert--
		}
		fixed := line[:open] + rest[:insert] + fmt.Sprintf(` %s="%s"`, attr, value(f)) + rest[insert:]
		out := append([]string(nil), lines...)
		out[f.Line-1] = fixed
		return out, true
	}
}

// renameDuplicateTest appends a suffix to the later of two identically named
// tests so both keep running.
func renameDuplicateTest(f domain.Finding, lines []string) ([]string, bool) {
	line := lines[f.Line-1]
	if !strings.Contains(line, "<test") {
		return lines, false
	}
	m := nameAttrPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return lines, false
	}
	fixed := line[:m[3]] + "_Copy" + line[m[3]:]
	out := append([]string(nil), lines...)
	out[f.Line-1] = fixed
	return out, true
}

// removeTagLine deletes the finding's line when it holds the whole element,
// which is the shape duplicate entries take in practice. Multi-line elements
// are left for manual review.
func removeTagLine(tag string) fixHandler {
	return func(f domain.Finding, lines []string) ([]string, bool) {
		line := lines[f.Line-1]
		if !strings.Contains(line, "<"+tag) {
			return lines, false
		}
		if !strings.Contains(line, "/>") && !strings.Contains(line, "</"+tag+">") {
			return lines, false
		}
		return deleteRange(lines, f.Line, f.Line), true
	}
}

// removeEmptyBlock deletes an empty container, self-closing or spanning a
// handful of whitespace-only lines down to its closing tag.
func removeEmptyBlock(tag string) fixHandler {
	return func(f domain.Finding, lines []string) ([]string, bool) {
		line := lines[f.Line-1]
		if !strings.Contains(line, "<"+tag) {
			return lines, false
		}
		closing := "</" + tag + ">"
		if strings.Contains(line, "/>") || strings.Contains(line, closing) {
			return deleteRange(lines, f.Line, f.Line), true
		}
		const lookahead = 5
		for i := f.Line; i < f.Line+lookahead && i < len(lines); i++ {
			next := strings.TrimSpace(lines[i])
			if next == "" {
				continue
			}
			if strings.Contains(next, closing) {
				return deleteRange(lines, f.Line, i+1), true
			}
			return lines, false
		}
		return lines, false
	}
}

// stripSpacesInName removes spaces from the name attribute's value.
func stripSpacesInName(f domain.Finding, lines []string) ([]string, bool) {
	line := lines[f.Line-1]
	m := nameAttrPattern.FindStringSubmatchIndex(line)
	if m == nil {
		return lines, false
	}
	val := line[m[2]:m[3]]
	clean := strings.ReplaceAll(val, " ", "")
	if clean == val {
		return lines, false
	}
	out := append([]string(nil), lines...)
	out[f.Line-1] = line[:m[2]] + clean + line[m[3]:]
	return out, true
}

// deleteRange removes lines [start, end], 1-based inclusive.
func deleteRange(lines []string, start, end int) []string {
	out := make([]string, 0, len(lines)-(end-start+1))
	out = append(out, lines[:start-1]...)
	out = append(out, lines[end:]...)
	return out
}
