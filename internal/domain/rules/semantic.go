package rules

import (
	"fmt"
	"strings"

	"github.com/suitelint/suitelint/internal/domain"
)

// semanticPhase walks the class-reference snapshot recorded by the
// structural pass and cross-checks it against the metadata store. It runs
// only when a store was supplied and the structural pass completed; a
// malformed-XML abort suppresses it entirely.
func (v *HierarchyValidator) semanticPhase() {
	if v.store == nil || v.aborted {
		return
	}

	for _, cr := range v.snapshot {
		class, ok := v.store.Lookup(cr.name)
		if !ok {
			f := v.report("E300", "Class unknown: "+cr.name, cr.line, cr.col)
			f.Meta = map[string]string{"name": cr.name}
			f.Suggestion = didYouMean(cr.name, v.store.ClassNames())
			continue
		}

		for _, inc := range cr.includes {
			if inc.kind != "include" {
				continue
			}
			method, found := class.Methods[inc.name]
			if !found {
				f := v.report("E301", fmt.Sprintf("Method not in %s: %s", cr.name, inc.name), inc.line, inc.col)
				f.Meta = map[string]string{"name": inc.name, "class": cr.name}
				f.Suggestion = didYouMean(inc.name, methodNames(class.Methods))
				continue
			}
			v.checkParamCount(cr.name, inc, method.Parameters)
			for _, p := range inc.params {
				v.checkEnumValue(class.Parameters, p)
			}
		}

		for _, p := range cr.params {
			v.checkEnumValue(class.Parameters, p)
		}
	}
}

// checkParamCount flags includes that declare fewer parameters than the
// method's signature carries, listing the missing names and types so the
// fix generator can suggest the exact XML to add.
func (v *HierarchyValidator) checkParamCount(className string, inc *includeRef, expected []domain.ParameterInfo) {
	declared := len(inc.params)
	if declared >= len(expected) {
		return
	}

	var missing []string
	for _, p := range expected[declared:] {
		missing = append(missing, p.Name+" ("+p.Type+")")
	}

	f := v.report("E302",
		fmt.Sprintf("Parameter count mismatch for '%s': %d declared, %d expected", inc.name, declared, len(expected)),
		inc.line, inc.col)
	f.Meta = map[string]string{
		"name":     inc.name,
		"class":    className,
		"declared": fmt.Sprintf("%d", declared),
		"expected": fmt.Sprintf("%d", len(expected)),
		"missing":  strings.Join(missing, ", "),
	}
}

// checkEnumValue validates a parameter value against the class's recorded
// allowed-value list, when one exists for that parameter name.
func (v *HierarchyValidator) checkEnumValue(allowed map[string][]string, p paramRef) {
	values, ok := allowed[p.name]
	if !ok || len(values) == 0 {
		return
	}
	for _, val := range values {
		if val == p.value {
			return
		}
	}
	f := v.report("E303", fmt.Sprintf("Invalid enum '%s': %s", p.name, p.value), p.line, p.col)
	f.Meta = map[string]string{"name": p.name, "value": p.value}
	f.Suggestion = "Valid: " + strings.Join(values, ", ")
}

func methodNames(methods map[string]domain.MethodMetadata) []string {
	names := make([]string, 0, len(methods))
	for n := range methods {
		names = append(names, n)
	}
	return names
}
