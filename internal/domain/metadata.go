package domain

import "strings"

// ParameterInfo is one entry of a method's ordered parameter list.
type ParameterInfo struct {
	Name string `json:"name"`
	Type string `json:"type"`
}

// MethodMetadata describes one method of an extracted class.
//
// IsTest is set by the extractor when any annotation contains the substring
// "Test". That is a heuristic carried over from the extractor's documented
// behavior, not a precise contract.
type MethodMetadata struct {
	Parameters  []ParameterInfo `json:"parameters"`
	IsTest      bool            `json:"is_test"`
	ReturnType  string          `json:"return_type"`
	Annotations []string        `json:"annotations"`
}

// ClassMetadata is the extracted catalog entry for one Java class.
// Parameters optionally maps a parameter name to its allowed enum values,
// consumed by the invalid-enum check.
type ClassMetadata struct {
	Methods    map[string]MethodMetadata `json:"methods"`
	SourceJar  string                    `json:"source_jar"`
	Parameters map[string][]string       `json:"parameters,omitempty"`
}

// TestMethods lists the methods flagged as test methods.
func (c ClassMetadata) TestMethods() []string {
	var names []string
	for name, m := range c.Methods {
		if m.IsTest {
			names = append(names, name)
		}
	}
	return names
}

// MetadataStore maps fully qualified class names to their extracted
// metadata. It is produced externally, supplied whole to the validator,
// and never mutated here: concurrent readers are safe as long as no writer
// runs during a validation batch.
type MetadataStore struct {
	Classes map[string]ClassMetadata
}

// Lookup returns the metadata for a fully qualified class name.
func (s *MetadataStore) Lookup(className string) (ClassMetadata, bool) {
	if s == nil {
		return ClassMetadata{}, false
	}
	c, ok := s.Classes[className]
	return c, ok
}

// ClassNames returns every known class name. Order is not defined.
func (s *MetadataStore) ClassNames() []string {
	if s == nil {
		return nil
	}
	names := make([]string, 0, len(s.Classes))
	for n := range s.Classes {
		names = append(names, n)
	}
	return names
}

// Len reports the number of known classes.
func (s *MetadataStore) Len() int {
	if s == nil {
		return 0
	}
	return len(s.Classes)
}

// IsTestAnnotation reports whether an annotation marks a test method.
// Substring match on "Test" mirrors the extractor's heuristic.
func IsTestAnnotation(annotation string) bool {
	return strings.Contains(annotation, "Test")
}
