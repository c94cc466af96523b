package domain

// CodeInfo describes one entry of the error code registry.
type CodeInfo struct {
	Description string
	Severity    Severity
	Category    string
}

// Categories of the code taxonomy. Ranges are reserved bands, not
// sequential: renumbering a code across versions requires a migration note.
const (
	CategoryStructure  = "structure"
	CategoryClasses    = "classes"
	CategoryMethods    = "methods"
	CategoryParameters = "parameters"
	CategoryListeners  = "listeners"
	CategoryDuplicates = "duplicates"
	CategoryNaming     = "naming"
	CategoryAttributes = "attributes"
	CategoryMismatch   = "mismatch"
	CategorySemantic   = "semantic"
)

// Codes is the closed, versioned registry of error codes. Every code has
// exactly one fixed severity and one textual category.
var Codes = map[string]CodeInfo{
	// 100-109: suite/file structure
	"E100": {"XML syntax error", SeverityError, CategoryStructure},
	"E101": {"Suite missing name", SeverityError, CategoryStructure},
	"E102": {"Multiple <suite> tags", SeverityError, CategoryStructure},
	"E103": {"Test missing name", SeverityError, CategoryStructure},
	"E104": {"Duplicate test name", SeverityError, CategoryStructure},
	"E105": {"Missing <suite>", SeverityError, CategoryStructure},
	"E106": {"Empty suite", SeverityWarning, CategoryStructure},
	"E107": {"Empty <classes> block", SeverityWarning, CategoryStructure},
	"E108": {"Empty <methods> block", SeverityWarning, CategoryStructure},
	"E109": {"Empty <packages> block", SeverityWarning, CategoryStructure},

	// 110-119: class/package hierarchy placement
	"E110": {"<classes> outside <test>", SeverityError, CategoryClasses},
	"E111": {"<class> outside <classes>", SeverityError, CategoryClasses},
	"E112": {"Class missing name", SeverityError, CategoryClasses},
	"E113": {"<packages> outside <test>", SeverityError, CategoryClasses},
	"E114": {"Cannot mix <packages> and <classes>", SeverityError, CategoryClasses},
	"E115": {"<package> outside <packages>", SeverityError, CategoryClasses},
	"E116": {"Package missing name", SeverityError, CategoryClasses},
	"E117": {"Invalid package name format", SeverityError, CategoryClasses},

	// 120-129: method/include/exclude hierarchy placement
	"E120": {"<methods> outside <class>", SeverityError, CategoryMethods},
	"E121": {"<include> misplaced", SeverityError, CategoryMethods},
	"E122": {"Include missing name", SeverityError, CategoryMethods},
	"E123": {"<exclude> misplaced", SeverityError, CategoryMethods},
	"E124": {"Exclude missing name", SeverityError, CategoryMethods},

	// 130-139: parameter presence/uniqueness
	"E130": {"Parameter missing 'name' attribute", SeverityError, CategoryParameters},
	"E131": {"Parameter missing 'value' attribute", SeverityError, CategoryParameters},
	"E132": {"Duplicate parameter", SeverityError, CategoryParameters},

	// 140-149: listener/group placement
	"E145": {"<listeners> misplaced", SeverityError, CategoryListeners},
	"E146": {"<groups> misplaced", SeverityError, CategoryListeners},
	"E147": {"Empty <groups> block", SeverityWarning, CategoryListeners},

	// 160-169: structural duplicates
	"E160": {"Duplicate class", SeverityWarning, CategoryDuplicates},
	"E161": {"Duplicate method", SeverityWarning, CategoryDuplicates},

	// 170-179: naming rules
	"E170": {"Invalid space in name", SeverityError, CategoryNaming},

	// 180-189: attribute value domains
	"E180": {"Invalid 'parallel' value", SeverityError, CategoryAttributes},
	"E181": {"Invalid 'thread-count' value", SeverityError, CategoryAttributes},
	"E182": {"Invalid 'verbose' value", SeverityError, CategoryAttributes},
	"E183": {"Invalid 'preserve-order' value", SeverityError, CategoryAttributes},
	"E184": {"Invalid boolean attribute", SeverityError, CategoryAttributes},
	"E185": {"Invalid numeric attribute", SeverityError, CategoryAttributes},

	// 200-209: low-level structural mismatch
	"E200": {"Structure mismatch", SeverityError, CategoryMismatch},
	"E201": {"Unclosed tag", SeverityError, CategoryMismatch},

	// 300-319: metadata-driven semantic checks
	"E300": {"Class not found in project", SeverityError, CategorySemantic},
	"E301": {"Method not found in class", SeverityError, CategorySemantic},
	"E302": {"Parameter count mismatch", SeverityWarning, CategorySemantic},
	"E303": {"Invalid enum value", SeverityError, CategorySemantic},
	"E310": {"Suite file not found", SeverityError, CategorySemantic},
}

// AutoFixable is the closed set of codes the auto-fix engine handles.
var AutoFixable = map[string]bool{
	"E101": true, "E103": true, "E104": true,
	"E107": true, "E108": true, "E109": true,
	"E112": true, "E116": true, "E122": true, "E124": true,
	"E130": true, "E131": true, "E132": true,
	"E160": true, "E161": true, "E170": true,
}

// SeverityFor returns the registered severity for a code, defaulting to
// ERROR for unknown codes so nothing is silently downgraded.
func SeverityFor(code string) Severity {
	if info, ok := Codes[code]; ok {
		return info.Severity
	}
	return SeverityError
}

// NewFinding builds a Finding with the registry severity and auto-fixable
// flag for the given code.
func NewFinding(code, message string, line, col int) Finding {
	return Finding{
		Code:        code,
		Severity:    SeverityFor(code),
		Message:     message,
		Line:        line,
		Col:         col,
		AutoFixable: AutoFixable[code],
	}
}
