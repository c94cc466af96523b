package rules

import (
	"encoding/xml"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"

	"github.com/suitelint/suitelint/internal/domain"
)

var validParallelValues = map[string]bool{
	"methods": true, "tests": true, "classes": true,
	"instances": true, "false": true, "none": true,
}

// HierarchyValidator is the streaming structural validator. It walks the
// XML token stream with an explicit stack of open elements, validating
// nesting, attributes and duplicates, and records a snapshot of class
// references for the semantic phase. State is disposable after one run.
type HierarchyValidator struct {
	path     string
	basePath string
	store    *domain.MetadataStore

	findings []domain.Finding
	stack    []*frame
	index    *lineIndex
	aborted  bool

	suiteCount int
	suiteLine  int
	testCount  int

	snapshot []*classRef
}

// frame is one open element on the hierarchy stack.
type frame struct {
	tag        string
	line       int
	children   int
	paramNames map[string]bool
	// per-scope duplicate sets, populated on the owning frame only
	classNames  map[string]bool
	methodNames map[string]bool
	hasClasses  bool
	hasPackages bool
	// ref is the snapshot entry for an open <class>; nil when the class has
	// no name, so its includes and parameters are not attributed anywhere.
	ref *classRef
}

// classRef captures a <class> reference plus its includes and parameters,
// checked against the metadata store after the structural pass completes.
type classRef struct {
	name      string
	line, col int
	includes  []*includeRef
	params    []paramRef
}

type includeRef struct {
	name      string
	kind      string // include or exclude
	line, col int
	params    []paramRef
}

type paramRef struct {
	name, value string
	line, col   int
}

// NewHierarchyValidator builds a validator for one file. A nil store
// disables the semantic checks; structural behavior is identical either way.
func NewHierarchyValidator(path string, store *domain.MetadataStore) *HierarchyValidator {
	return &HierarchyValidator{
		path:     path,
		basePath: filepath.Dir(path),
		store:    store,
	}
}

// Validate runs the structural pass and, if it completed, the semantic
// phase. A malformed document yields a single high-priority finding and
// halts further analysis, but the findings gathered so far are returned.
func (v *HierarchyValidator) Validate(text string) []domain.Finding {
	v.index = newLineIndex(text)
	dec := xml.NewDecoder(strings.NewReader(text))

	for {
		offset := dec.InputOffset()
		tok, err := dec.Token()
		if err == io.EOF {
			break
		}
		if err != nil {
			v.abort(err)
			return v.findings
		}

		switch t := tok.(type) {
		case xml.StartElement:
			line, col := v.index.pos(offset)
			v.startElement(t, line, col)
		case xml.EndElement:
			v.endElement()
		}
	}

	v.endDocument()
	v.semanticPhase()
	return v.findings
}

// Aborted reports whether the structural pass hit malformed XML.
func (v *HierarchyValidator) Aborted() bool { return v.aborted }

func (v *HierarchyValidator) report(code, msg string, line, col int) *domain.Finding {
	v.findings = append(v.findings, domain.NewFinding(code, msg, line, col))
	return &v.findings[len(v.findings)-1]
}

// abort classifies a decoder error into the mismatch band and stops the
// structural walk. Semantic checks are suppressed for this file.
func (v *HierarchyValidator) abort(err error) {
	v.aborted = true
	line := 0
	msg := err.Error()
	if syn, ok := err.(*xml.SyntaxError); ok {
		line = syn.Line
		msg = syn.Msg
	}

	switch {
	case strings.Contains(msg, "unexpected EOF"):
		tag := "?"
		if top := v.top(); top != nil {
			tag = top.tag
		}
		v.report("E201", fmt.Sprintf("Unclosed tag <%s>: document ended before it was closed", tag), line, 0)
	case strings.Contains(msg, "closed by"):
		v.report("E200", "Mismatched tag: "+msg, line, 0)
	default:
		v.report("E100", "Syntax error: "+msg, line, 0)
	}
}

func (v *HierarchyValidator) top() *frame {
	if len(v.stack) == 0 {
		return nil
	}
	return v.stack[len(v.stack)-1]
}

// parentIs reports whether the immediate parent of the element currently
// being opened matches the expected tag. Called before the new frame is
// pushed, so the parent is the top of the stack.
func (v *HierarchyValidator) parentIs(expected ...string) bool {
	top := v.top()
	if top == nil {
		return false
	}
	for _, e := range expected {
		if top.tag == e {
			return true
		}
	}
	return false
}

// enclosing returns the nearest open frame with the given tag.
func (v *HierarchyValidator) enclosing(tag string) *frame {
	for i := len(v.stack) - 1; i >= 0; i-- {
		if v.stack[i].tag == tag {
			return v.stack[i]
		}
	}
	return nil
}

func attr(se xml.StartElement, name string) (string, bool) {
	for _, a := range se.Attr {
		if a.Name.Local == name {
			return a.Value, true
		}
	}
	return "", false
}

func (v *HierarchyValidator) startElement(se xml.StartElement, line, col int) {
	tag := se.Name.Local

	if top := v.top(); top != nil {
		top.children++
	}

	f := &frame{tag: tag, line: line, paramNames: make(map[string]bool)}

	switch tag {
	case "suite":
		v.checkSuite(se, line, col)
	case "suite-file":
		v.checkSuiteFile(se, line, col)
	case "test":
		v.checkTest(se, f, line, col)
	case "classes":
		v.checkClasses(line, col)
	case "class":
		v.checkClass(se, f, line, col)
	case "methods":
		if !v.parentIs("class") {
			v.report("E120", "<methods> must be inside <class>", line, col)
		}
	case "include", "exclude":
		v.checkIncludeExclude(se, tag, line, col)
	case "parameter":
		v.checkParameter(se, line, col)
	case "packages":
		v.checkPackages(line, col)
	case "package":
		v.checkPackage(se, line, col)
	case "listeners":
		if !v.parentIs("suite") {
			v.report("E145", "<listeners> should be under <suite>", line, col)
		}
	case "groups":
		if !v.parentIs("test", "suite") {
			v.report("E146", "<groups> must be inside <test> or <suite>", line, col)
		}
	}

	v.stack = append(v.stack, f)
}

func (v *HierarchyValidator) checkSuite(se xml.StartElement, line, col int) {
	v.suiteCount++
	if v.suiteCount == 1 {
		v.suiteLine = line
	} else {
		v.report("E102", "Multiple <suite> tags: a suite file has exactly one root suite", line, col)
	}
	if name, _ := attr(se, "name"); name == "" {
		v.report("E101", "Suite missing name", line, col)
	}

	if parallel, ok := attr(se, "parallel"); ok && !validParallelValues[parallel] {
		f := v.report("E180", fmt.Sprintf("Invalid parallel value: '%s'", parallel), line, col)
		f.Meta = map[string]string{"name": parallel}
	}
	v.checkPositiveInt(se, "thread-count", "E181", line, col)
	v.checkPositiveInt(se, "data-provider-thread-count", "E185", line, col)
	v.checkVerbose(se, line, col)
	v.checkBool(se, "preserve-order", "E183", line, col)
	v.checkBool(se, "group-by-instances", "E184", line, col)
}

func (v *HierarchyValidator) checkPositiveInt(se xml.StartElement, name, code string, line, col int) {
	raw, ok := attr(se, name)
	if !ok {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		f := v.report(code, fmt.Sprintf("%s must be numeric: '%s'", name, raw), line, col)
		f.Meta = map[string]string{"name": raw}
		return
	}
	if n < 1 {
		f := v.report(code, fmt.Sprintf("%s must be positive: '%s'", name, raw), line, col)
		f.Meta = map[string]string{"name": raw}
	}
}

func (v *HierarchyValidator) checkVerbose(se xml.StartElement, line, col int) {
	raw, ok := attr(se, "verbose")
	if !ok {
		return
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n < 0 || n > 10 {
		f := v.report("E182", fmt.Sprintf("verbose must be 0-10: '%s'", raw), line, col)
		f.Meta = map[string]string{"name": raw}
	}
}

func (v *HierarchyValidator) checkBool(se xml.StartElement, name, code string, line, col int) {
	raw, ok := attr(se, name)
	if !ok {
		return
	}
	lower := strings.ToLower(raw)
	if lower != "true" && lower != "false" {
		f := v.report(code, fmt.Sprintf("%s must be true/false: '%s'", name, raw), line, col)
		f.Meta = map[string]string{"name": raw}
	}
}

func (v *HierarchyValidator) checkSuiteFile(se xml.StartElement, line, col int) {
	path, ok := attr(se, "path")
	if !ok || path == "" {
		return
	}
	if _, err := os.Stat(filepath.Join(v.basePath, path)); err != nil {
		f := v.report("E310", "File not found: "+path, line, col)
		f.Meta = map[string]string{"name": path}
	}
}

func (v *HierarchyValidator) checkTest(se xml.StartElement, f *frame, line, col int) {
	v.testCount++
	f.classNames = make(map[string]bool)
	if name, _ := attr(se, "name"); name == "" {
		v.report("E103", "Test missing name", line, col)
	}
	// Duplicate test names are the pre-flight scanner's job; spaces are
	// allowed in test names.
	v.checkPositiveInt(se, "thread-count", "E181", line, col)
	v.checkVerbose(se, line, col)
	v.checkBool(se, "preserve-order", "E183", line, col)
	if parallel, ok := attr(se, "parallel"); ok && !validParallelValues[parallel] {
		fd := v.report("E180", fmt.Sprintf("Invalid parallel value: '%s'", parallel), line, col)
		fd.Meta = map[string]string{"name": parallel}
	}
}

func (v *HierarchyValidator) checkClasses(line, col int) {
	test := v.top()
	if test == nil || test.tag != "test" {
		v.report("E110", "<classes> must be inside <test>", line, col)
		return
	}
	if test.hasPackages {
		v.report("E114", "Cannot mix <classes> and <packages> in same <test>", line, col)
	}
	test.hasClasses = true
}

func (v *HierarchyValidator) checkClass(se xml.StartElement, f *frame, line, col int) {
	if !v.parentIs("classes") {
		v.report("E111", "<class> must be inside <classes>", line, col)
	}
	f.methodNames = make(map[string]bool)

	name, _ := attr(se, "name")
	if name == "" {
		v.report("E112", "Class missing name", line, col)
		return
	}
	v.checkSpace(name, "class", line, col)

	if test := v.enclosing("test"); test != nil && test.classNames != nil {
		if test.classNames[name] {
			fd := v.report("E160", fmt.Sprintf("Duplicate class: '%s'", name), line, col)
			fd.Meta = map[string]string{"name": name}
		} else {
			test.classNames[name] = true
		}
	}

	f.ref = &classRef{name: name, line: line, col: col}
	v.snapshot = append(v.snapshot, f.ref)
}

func (v *HierarchyValidator) checkIncludeExclude(se xml.StartElement, tag string, line, col int) {
	if !v.parentIs("methods") {
		code := "E121"
		if tag == "exclude" {
			code = "E123"
		}
		v.report(code, fmt.Sprintf("<%s> must be inside <methods>", tag), line, col)
	}

	name, _ := attr(se, "name")
	if name == "" {
		if tag == "exclude" {
			v.report("E124", "Exclude missing name", line, col)
		} else {
			v.report("E122", "Include missing name", line, col)
		}
		return
	}
	v.checkSpace(name, tag, line, col)

	if tag == "include" {
		if class := v.enclosing("class"); class != nil && class.methodNames != nil {
			if class.methodNames[name] {
				fd := v.report("E161", fmt.Sprintf("Duplicate method: '%s'", name), line, col)
				fd.Meta = map[string]string{"name": name}
			} else {
				class.methodNames[name] = true
			}
		}
	}

	if cr := v.currentClassRef(); cr != nil {
		cr.includes = append(cr.includes, &includeRef{name: name, kind: tag, line: line, col: col})
	}
}

func (v *HierarchyValidator) checkParameter(se xml.StartElement, line, col int) {
	name, _ := attr(se, "name")
	value, hasValue := attr(se, "value")

	if name == "" {
		v.report("E130", "Parameter missing 'name' attribute", line, col)
	}
	if !hasValue || value == "" {
		fd := v.report("E131", "Parameter missing 'value' attribute", line, col)
		if name != "" {
			fd.Meta = map[string]string{"name": name}
		}
	}

	if name != "" {
		// Uniqueness within the immediately enclosing tag.
		if top := v.top(); top != nil {
			if top.paramNames[name] {
				fd := v.report("E132", fmt.Sprintf("Duplicate parameter: '%s'", name), line, col)
				fd.Meta = map[string]string{"name": name}
			} else {
				top.paramNames[name] = true
			}
		}
	}

	if name == "" || value == "" {
		return
	}
	p := paramRef{name: name, value: value, line: line, col: col}
	if cr := v.currentClassRef(); cr != nil {
		if inc := v.currentIncludeRef(cr); inc != nil {
			inc.params = append(inc.params, p)
		} else {
			cr.params = append(cr.params, p)
		}
	}
}

func (v *HierarchyValidator) checkPackages(line, col int) {
	test := v.top()
	if test == nil || test.tag != "test" {
		v.report("E113", "<packages> must be inside <test>", line, col)
		return
	}
	if test.hasClasses {
		v.report("E114", "Cannot mix <packages> and <classes> in same <test>", line, col)
	}
	test.hasPackages = true
}

func (v *HierarchyValidator) checkPackage(se xml.StartElement, line, col int) {
	if !v.parentIs("packages") {
		v.report("E115", "<package> must be inside <packages>", line, col)
	}
	name, _ := attr(se, "name")
	if name == "" {
		v.report("E116", "Package missing name", line, col)
		return
	}
	if !javaPackagePattern.MatchString(name) {
		fd := v.report("E117", fmt.Sprintf("Invalid package name format: '%s'", name), line, col)
		fd.Meta = map[string]string{"name": name}
	}
}

// checkSpace flags forbidden spaces in class/method names. Test names may
// contain spaces; Java identifiers may not.
func (v *HierarchyValidator) checkSpace(name, entity string, line, col int) {
	if strings.Contains(name, " ") {
		fd := v.report("E170", fmt.Sprintf("Space forbidden in %s: '%s'", entity, name), line, col)
		fd.Meta = map[string]string{"name": name}
	}
}

// currentClassRef returns the snapshot entry for the innermost open <class>,
// or nil when that class is nameless.
func (v *HierarchyValidator) currentClassRef() *classRef {
	class := v.enclosing("class")
	if class == nil {
		return nil
	}
	return class.ref
}

// currentIncludeRef returns the snapshot entry for the innermost open
// include/exclude, if the parameter sits inside one.
func (v *HierarchyValidator) currentIncludeRef(cr *classRef) *includeRef {
	top := v.top()
	if top == nil || (top.tag != "include" && top.tag != "exclude") || len(cr.includes) == 0 {
		return nil
	}
	return cr.includes[len(cr.includes)-1]
}

func (v *HierarchyValidator) endElement() {
	top := v.top()
	if top == nil {
		return
	}
	v.stack = v.stack[:len(v.stack)-1]

	if top.children > 0 {
		return
	}
	// Empty container, attributed to the start position.
	switch top.tag {
	case "classes":
		v.report("E107", "Empty <classes> block - no <class> tags found", top.line, 0)
	case "methods":
		v.report("E108", "Empty <methods> block - no <include> tags found", top.line, 0)
	case "packages":
		v.report("E109", "Empty <packages> block - no <package> tags found", top.line, 0)
	case "groups":
		v.report("E147", "Empty <groups> block", top.line, 0)
	}
}

func (v *HierarchyValidator) endDocument() {
	if v.suiteCount == 0 {
		v.report("E105", "Missing <suite>", 0, 0)
		return
	}
	if v.testCount == 0 {
		v.report("E106", "Empty suite - no <test> blocks found", v.suiteLine, 0)
	}
}

// lineIndex maps byte offsets into 1-based line/column positions.
type lineIndex struct {
	starts []int // byte offset of each line start
}

func newLineIndex(text string) *lineIndex {
	ix := &lineIndex{starts: []int{0}}
	for i := 0; i < len(text); i++ {
		if text[i] == '\n' {
			ix.starts = append(ix.starts, i+1)
		}
	}
	return ix
}

func (ix *lineIndex) pos(offset int64) (line, col int) {
	off := int(offset)
	n := sort.Search(len(ix.starts), func(i int) bool { return ix.starts[i] > off })
	line = n // starts[n-1] <= off < starts[n]
	col = off - ix.starts[n-1] + 1
	return line, col
}
