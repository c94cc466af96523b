package rules

import (
	"fmt"
	"regexp"

	"github.com/suitelint/suitelint/internal/domain"
)

var (
	// javaPackagePattern accepts dotted Java package names with an
	// optional trailing wildcard segment.
	javaPackagePattern = regexp.MustCompile(`^[a-zA-Z_$][a-zA-Z0-9_$]*(\.[a-zA-Z_$][a-zA-Z0-9_$]*)*(\.\*)?$`)

	openTagPattern  = regexp.MustCompile(`<(suite|test|classes|class|methods|include|exclude)\b([^>]*)>?`)
	closeTagPattern = regexp.MustCompile(`</(suite|test|classes|class|methods)\s*>`)
	namePattern     = regexp.MustCompile(`\bname="([^"]+)"`)
	selfClosing     = regexp.MustCompile(`/>\s*$`)

	// closeByTag holds one precompiled close pattern per scope-opening tag.
	closeByTag = map[string]*regexp.Regexp{
		"suite":   regexp.MustCompile(`</suite\s*>`),
		"test":    regexp.MustCompile(`</test\s*>`),
		"classes": regexp.MustCompile(`</classes\s*>`),
		"class":   regexp.MustCompile(`</class\s*>`),
		"methods": regexp.MustCompile(`</methods\s*>`),
	}
)

// scope tracks names seen inside one scope-opening tag.
type scope struct {
	tag  string
	seen map[string]int // name -> first line
	done map[string]bool
}

// duplicate name codes per scoped tag.
var preflightCodes = map[string]struct {
	scopeTag string
	code     string
	label    string
}{
	"test":    {"suite", "E104", "test"},
	"class":   {"test", "E160", "class"},
	"include": {"class", "E161", "method"},
}

// Preflight is the regex pass over raw lines. It catches duplicate
// test/class/method names before the full parse, so structural duplicates
// survive even when malformed XML aborts the hierarchy validator. It never
// reports structural errors; overlaps with the hierarchy pass are merged
// later on (code, line) identity.
func Preflight(lines []string) []domain.Finding {
	var findings []domain.Finding

	// Document sentinel so top-level tags always have a scope.
	stack := []*scope{newScope("document")}

	current := func(tag string) *scope {
		for i := len(stack) - 1; i >= 0; i-- {
			if stack[i].tag == tag {
				return stack[i]
			}
		}
		return stack[0]
	}

	for i, line := range lines {
		lineNo := i + 1

		for _, m := range openTagPattern.FindAllStringSubmatch(line, -1) {
			tag, attrs := m[1], m[2]

			if rule, ok := preflightCodes[tag]; ok {
				if nm := namePattern.FindStringSubmatch(attrs); nm != nil {
					name := nm[1]
					sc := current(rule.scopeTag)
					if first, dup := sc.seen[name]; dup {
						f := domain.NewFinding(rule.code,
							fmt.Sprintf("Duplicate %s: '%s'", rule.label, name), lineNo, 0)
						f.Meta = map[string]string{"name": name}
						findings = append(findings, f)
						if !sc.done[name] {
							orig := domain.NewFinding(rule.code,
								fmt.Sprintf("Original definition: '%s'", name), first, 0)
							orig.Meta = map[string]string{"name": name}
							// The fix for a duplicate is removing the later
							// occurrence, never the original.
							orig.AutoFixable = false
							findings = append(findings, orig)
							sc.done[name] = true
						}
					} else {
						sc.seen[name] = lineNo
					}
				}
			}

			// Scope-opening tags push a frame unless self-contained.
			if isScopeTag(tag) && !selfClosing.MatchString(m[0]) && !containsClose(line, tag) {
				stack = append(stack, newScope(tag))
			}
		}

		for _, m := range closeTagPattern.FindAllStringSubmatch(line, -1) {
			tag := m[1]
			// A close with no open frame belongs to a tag that opened and
			// closed on one line and never pushed; popping would destroy the
			// enclosing scope instead.
			if !hasOpenFrame(stack, tag) {
				continue
			}
			// Pop back to the matching scope; tolerate unbalanced input.
			for len(stack) > 1 {
				top := stack[len(stack)-1]
				stack = stack[:len(stack)-1]
				if top.tag == tag {
					break
				}
			}
		}
	}

	return findings
}

func newScope(tag string) *scope {
	return &scope{tag: tag, seen: make(map[string]int), done: make(map[string]bool)}
}

func isScopeTag(tag string) bool {
	_, ok := closeByTag[tag]
	return ok
}

// containsClose reports whether the same line also closes the tag, in which
// case no scope frame is pushed.
func containsClose(line, tag string) bool {
	return closeByTag[tag].MatchString(line)
}

// hasOpenFrame reports whether any pushed frame (above the document
// sentinel) matches the closing tag.
func hasOpenFrame(stack []*scope, tag string) bool {
	for i := len(stack) - 1; i >= 1; i-- {
		if stack[i].tag == tag {
			return true
		}
	}
	return false
}
