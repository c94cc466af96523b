package fixes

import (
	"fmt"
	"strings"

	"github.com/suitelint/suitelint/internal/domain"
)

// generators is the explicit dispatch table from error code to suggestion
// generator. Adding a code means adding an entry here; existing entries are
// never modified for it.
var generators = map[string]Generator{
	"E100": fixSyntaxError,
	"E101": fixSuiteMissingName,
	"E102": fixMultipleSuites,
	"E103": fixTestMissingName,
	"E104": fixDuplicateTest,
	"E105": fixMissingSuite,
	"E106": fixEmptySuite,
	"E107": fixEmptyClasses,
	"E108": fixEmptyMethods,
	"E109": fixEmptyPackages,
	"E110": fixClassesOutsideTest,
	"E111": fixClassOutsideClasses,
	"E112": fixClassMissingName,
	"E113": fixPackagesOutsideTest,
	"E114": fixMixedClassesPackages,
	"E115": fixPackageOutsidePackages,
	"E116": fixPackageMissingName,
	"E117": fixInvalidPackageName,
	"E120": fixMethodsOutsideClass,
	"E121": fixIncludeMisplaced,
	"E122": fixIncludeMissingName,
	"E123": fixExcludeMisplaced,
	"E124": fixExcludeMissingName,
	"E130": fixParamMissingName,
	"E131": fixParamMissingValue,
	"E132": fixDuplicateParam,
	"E145": fixListenersMisplaced,
	"E146": fixGroupsMisplaced,
	"E147": fixEmptyGroups,
	"E160": fixDuplicateClass,
	"E161": fixDuplicateMethod,
	"E170": fixSpacesInName,
	"E180": fixInvalidParallel,
	"E181": fixInvalidThreadCount,
	"E182": fixInvalidVerbose,
	"E183": fixInvalidPreserveOrder,
	"E184": fixInvalidBoolean,
	"E185": fixInvalidNumeric,
	"E200": fixStructureMismatch,
	"E201": fixUnclosedTag,
	"E300": fixClassUnknown,
	"E301": fixMethodUnknown,
	"E302": fixParamCountMismatch,
	"E303": fixInvalidEnum,
	"E310": fixSuiteFileNotFound,
}

func fixSyntaxError(f domain.Finding, badLine string) Suggestion {
	steps := []string{
		"Parser error: " + f.Message + ".",
		`Check for missing quotes ("), missing brackets (>), or typos near this line.`,
	}
	return Suggestion{Title: "Fix: XML syntax error", Steps: steps}
}

func fixSuiteMissingName(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: suite missing name",
		Steps: []string{
			"Every TestNG suite must have a name.",
			"Your code: " + badLine,
			`Add name="MySuiteName" to the suite tag.`,
		},
		Code: `<suite name="TestSuite" verbose="1">`,
	}
}

func fixMultipleSuites(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: multiple <suite> tags",
		Steps: []string{
			"A suite file has exactly one root <suite> tag.",
			"Remove extra <suite> tags, or split them into separate files.",
		},
		Code: "<suite name=\"MainSuite\">\n  <test name=\"Test1\">...</test>\n  <test name=\"Test2\">...</test>\n</suite>",
	}
}

func fixTestMissingName(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: test missing name",
		Steps: []string{
			"Every <test> tag must have a unique name.",
			"Your code: " + badLine,
			`Add name="MyTestName" to the test tag.`,
		},
		Code: `<test name="RegressionTests">`,
	}
}

func fixDuplicateTest(f domain.Finding, badLine string) Suggestion {
	name := metaName(f)
	return Suggestion{
		Title: "Fix: duplicate test name",
		Steps: []string{
			fmt.Sprintf("The test name '%s' is used more than once in this suite.", name),
			"Every <test> tag in a suite must have a unique name.",
			"Rename this test to something unique.",
		},
		Code: fmt.Sprintf(`<test name="%s_Run2">`, name),
	}
}

func fixMissingSuite(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: missing <suite> tag",
		Steps: []string{
			"The file has no root <suite> element.",
			"Wrap the whole document in a <suite> tag.",
		},
		Code: "<suite name=\"TestSuite\">\n  <test name=\"Test1\">\n    ...\n  </test>\n</suite>",
	}
}

func fixEmptySuite(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: empty suite",
		Steps: []string{
			"The suite contains no <test> blocks, so nothing would run.",
			"Add at least one <test> with a <classes> block.",
		},
		Code: "<test name=\"Test1\">\n  <classes>\n    <class name=\"com.example.MyTest\"/>\n  </classes>\n</test>",
	}
}

func fixEmptyClasses(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: empty <classes> block",
		Steps: []string{
			"The <classes> block has no <class> tags inside.",
			"Your code: " + badLine,
			"Either add a <class> tag or remove the empty <classes> block.",
		},
		Code: "<classes>\n  <class name=\"com.example.MyTestClass\"/>\n</classes>",
	}
}

func fixEmptyMethods(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: empty <methods> block",
		Steps: []string{
			"The <methods> block has no <include> tags inside.",
			"Your code: " + badLine,
			"Either add <include> tags or remove the block to run all methods.",
		},
		Code: "<methods>\n  <include name=\"testMethod1\"/>\n</methods>",
	}
}

func fixEmptyPackages(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: empty <packages> block",
		Steps: []string{
			"The <packages> block has no <package> tags inside.",
			"Your code: " + badLine,
			"Either add <package> tags or remove the empty block.",
		},
		Code: "<packages>\n  <package name=\"com.example.tests.*\"/>\n</packages>",
	}
}

func fixClassesOutsideTest(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: misplaced <classes>",
		Steps: []string{
			"<classes> must always be inside a <test> container.",
			"Hierarchy: <suite> holds <test>, <test> holds <classes>.",
			"Wrap this block in a <test> tag.",
		},
		Code: "<test name=\"MyTest\">\n  <classes>\n    ...\n  </classes>\n</test>",
	}
}

func fixClassOutsideClasses(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: misplaced <class>",
		Steps: []string{
			"<class> must be inside a <classes> block.",
			"Your code: " + badLine,
			"Wrap your <class> tags in a <classes> block.",
		},
		Code: "<classes>\n  <class name=\"com.example.MyTest\"/>\n</classes>",
	}
}

func fixClassMissingName(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: class missing name",
		Steps: []string{
			"Every <class> must name a fully qualified Java class.",
			"Your code: " + badLine,
			`Add name="com.example.MyTestClass" to the class tag.`,
		},
		Code: `<class name="com.example.MyTestClass"/>`,
	}
}

func fixPackagesOutsideTest(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: misplaced <packages>",
		Steps: []string{
			"<packages> must always be inside a <test> container.",
			"Your code: " + badLine,
			"Wrap your <packages> block in a <test> tag.",
		},
		Code: "<test name=\"MyTest\">\n  <packages>\n    <package name=\"com.example.*\"/>\n  </packages>\n</test>",
	}
}

func fixMixedClassesPackages(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: cannot mix <classes> and <packages>",
		Steps: []string{
			"A <test> holds either <classes> or <packages>, not both.",
			"Pick one approach and remove the other block.",
		},
		Code: "Option 1:\n<classes>\n  <class name=\"com.example.Test1\"/>\n</classes>\n\nOption 2:\n<packages>\n  <package name=\"com.example.*\"/>\n</packages>",
	}
}

func fixPackageOutsidePackages(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: misplaced <package>",
		Steps: []string{
			"<package> must be inside a <packages> container.",
			"Your code: " + badLine,
			"Wrap your <package> tags in a <packages> block.",
		},
	}
}

func fixPackageMissingName(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: package missing name",
		Steps: []string{
			"Every <package> must have a name (e.g. com.example.*).",
			"Your code: " + badLine,
			`Add name="com.example.*" to the package tag.`,
		},
		Code: `<package name="com.example.tests.*"/>`,
	}
}

func fixInvalidPackageName(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: invalid package name format",
		Steps: []string{
			fmt.Sprintf("Package name '%s' does not follow Java naming.", metaName(f)),
			"Start with a letter or underscore, separate parts with dots, optionally end with .* for a wildcard.",
			"Examples: com.example.*, org.tests, my_package.tests.*",
		},
		Code: `<package name="com.example.tests.*"/>`,
	}
}

func fixMethodsOutsideClass(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: misplaced <methods>",
		Steps: []string{
			"<methods> must be inside a <class> block.",
			"Your code: " + badLine,
			"Move the <methods> block under the class it selects from.",
		},
		Code: "<class name=\"com.example.MyClass\">\n  <methods>\n    <include name=\"testMethod\"/>\n  </methods>\n</class>",
	}
}

func fixIncludeMisplaced(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: misplaced <include>",
		Steps: []string{
			"<include> must be inside a <methods> block.",
			"Hierarchy: <class> holds <methods>, <methods> holds <include>.",
			"Move the <include> inside the <methods> block.",
		},
		Code: "<methods>\n  <include name=\"testMethod\"/>\n</methods>",
	}
}

func fixIncludeMissingName(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: include missing name",
		Steps: []string{
			"Every <include> must specify which method to run.",
			"Your code: " + badLine,
			`Add name="methodName" to the include tag.`,
		},
		Code: `<include name="testMethod"/>`,
	}
}

func fixExcludeMisplaced(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: misplaced <exclude>",
		Steps: []string{
			"<exclude> must be inside <methods>, just like <include>.",
			"Your code: " + badLine,
			"Move the <exclude> inside the <methods> block.",
		},
		Code: "<methods>\n  <include name=\"test1\"/>\n  <exclude name=\"test2\"/>\n</methods>",
	}
}

func fixExcludeMissingName(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: exclude missing name",
		Steps: []string{
			"Every <exclude> must specify which method to skip.",
			"Your code: " + badLine,
			`Add name="methodName" to the exclude tag.`,
		},
		Code: `<exclude name="testMethodToSkip"/>`,
	}
}

func fixParamMissingName(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: parameter missing name",
		Steps: []string{
			"Every <parameter> tag must have both 'name' and 'value' attributes.",
			"Your code: " + badLine,
			`Add name="paramName" to the parameter tag.`,
		},
		Code: `<parameter name="paramName" value="paramValue"/>`,
	}
}

func fixParamMissingValue(f domain.Finding, badLine string) Suggestion {
	name := metaName(f)
	if name == "" {
		name = "paramName"
	}
	return Suggestion{
		Title: "Fix: parameter missing value",
		Steps: []string{
			fmt.Sprintf("Parameter '%s' is missing the 'value' attribute.", name),
			"Your code: " + badLine,
			`Add value="..." to the parameter tag.`,
		},
		Code: fmt.Sprintf(`<parameter name="%s" value="yourValue"/>`, name),
	}
}

func fixDuplicateParam(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: duplicate parameter",
		Steps: []string{
			fmt.Sprintf("The parameter '%s' is defined twice in this scope.", metaName(f)),
			"Parameter names must be unique within their enclosing tag.",
			"Delete one of the duplicates or rename one.",
		},
	}
}

func fixListenersMisplaced(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: misplaced <listeners>",
		Steps: []string{
			"<listeners> belongs directly under <suite>.",
			"Move the block out of any <test> and under the suite root.",
		},
		Code: "<suite name=\"S\">\n  <listeners>\n    <listener class-name=\"com.example.MyListener\"/>\n  </listeners>\n</suite>",
	}
}

func fixGroupsMisplaced(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: misplaced <groups>",
		Steps: []string{
			"<groups> belongs under <test> (or <suite> for suite-level groups).",
			"Move the block inside the test it configures.",
		},
		Code: "<test name=\"T\">\n  <groups>\n    <run>\n      <include name=\"smoke\"/>\n    </run>\n  </groups>\n</test>",
	}
}

func fixEmptyGroups(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: empty <groups> block",
		Steps: []string{
			"The <groups> block configures nothing.",
			"Add a <run> selection or remove the block.",
		},
		Code: "<groups>\n  <run>\n    <include name=\"smoke\"/>\n  </run>\n</groups>",
	}
}

func fixDuplicateClass(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: duplicate class",
		Steps: []string{
			fmt.Sprintf("Class '%s' appears twice in this test.", metaName(f)),
			"Merge them into a single <class> block.",
			"Move all <include> methods into the first block.",
		},
	}
}

func fixDuplicateMethod(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: duplicate method",
		Steps: []string{
			fmt.Sprintf("Method '%s' is included twice in this class.", metaName(f)),
			"Remove the second <include>.",
		},
	}
}

func fixSpacesInName(f domain.Finding, badLine string) Suggestion {
	clean := strings.ReplaceAll(metaName(f), " ", "")
	return Suggestion{
		Title: "Fix: forbidden spaces in name",
		Steps: []string{
			fmt.Sprintf("The name '%s' contains spaces.", metaName(f)),
			"Java forbids spaces in class and method names; <test> names may contain them, <class> and <include> names may not.",
			"Your code: " + badLine,
			"Delete the spaces.",
		},
		Code: fmt.Sprintf(`name="%s"`, clean),
	}
}

func fixInvalidParallel(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: invalid 'parallel' value",
		Steps: []string{
			fmt.Sprintf("'%s' is not a valid parallel mode.", metaName(f)),
			"Allowed values: methods, tests, classes, instances, none, false.",
		},
		Code: `<suite name="S" parallel="methods" thread-count="4">`,
	}
}

func fixInvalidThreadCount(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: invalid 'thread-count' value",
		Steps: []string{
			fmt.Sprintf("thread-count must be a positive integer, got '%s'.", metaName(f)),
			"Your code: " + badLine,
		},
		Code: `<suite name="S" parallel="methods" thread-count="4">`,
	}
}

func fixInvalidVerbose(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: invalid 'verbose' value",
		Steps: []string{
			fmt.Sprintf("verbose must be an integer between 0 and 10, got '%s'.", metaName(f)),
			"0 is silent, 10 is the most detailed output.",
		},
		Code: `<suite name="S" verbose="2">`,
	}
}

func fixInvalidPreserveOrder(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: invalid 'preserve-order' value",
		Steps: []string{
			fmt.Sprintf("preserve-order must be true or false, got '%s'.", metaName(f)),
		},
		Code: `<test name="T" preserve-order="true">`,
	}
}

func fixInvalidBoolean(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: invalid boolean attribute",
		Steps: []string{
			fmt.Sprintf("The attribute value '%s' must be true or false.", metaName(f)),
			"Your code: " + badLine,
		},
	}
}

func fixInvalidNumeric(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: invalid numeric attribute",
		Steps: []string{
			fmt.Sprintf("The attribute value '%s' must be a positive integer.", metaName(f)),
			"Your code: " + badLine,
		},
	}
}

func fixStructureMismatch(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: mismatched tags",
		Steps: []string{
			f.Message + ".",
			"You opened one tag but tried to close a different one.",
			"Make the closing tag match the currently open tag.",
		},
	}
}

func fixUnclosedTag(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: unclosed tag",
		Steps: []string{
			f.Message + ".",
			"Add the missing closing tag before the parent block ends.",
		},
	}
}

func fixClassUnknown(f domain.Finding, badLine string) Suggestion {
	steps := []string{
		fmt.Sprintf("Class '%s' was not found in the project metadata.", metaName(f)),
		"Common causes: a typo in the fully qualified name, a missing package segment, or an outdated metadata file.",
	}
	if f.Suggestion != "" {
		steps = append(steps, f.Suggestion)
	}
	return Suggestion{Title: "Fix: class not found in project", Steps: steps}
}

func fixMethodUnknown(f domain.Finding, badLine string) Suggestion {
	steps := []string{
		fmt.Sprintf("Method '%s' was not found in the class.", metaName(f)),
		"Check spelling and case; the method may have been renamed or removed.",
	}
	if f.Suggestion != "" {
		steps = append(steps, f.Suggestion)
	}
	return Suggestion{Title: "Fix: method not found in class", Steps: steps}
}

func fixParamCountMismatch(f domain.Finding, badLine string) Suggestion {
	missing := ""
	if f.Meta != nil {
		missing = f.Meta["missing"]
	}
	steps := []string{
		f.Message + ".",
		"Some parameters may be optional or inherited from the <test> or <suite> level; this warning is safe to ignore if the tests run correctly.",
	}
	code := ""
	if missing != "" {
		steps = append(steps, "Missing: "+missing)
		var params []string
		for _, m := range strings.Split(missing, ", ") {
			name := m
			if i := strings.Index(m, " ("); i > 0 {
				name = m[:i]
			}
			params = append(params, fmt.Sprintf(`  <parameter name="%s" value="..."/>`, name))
		}
		code = fmt.Sprintf("<include name=\"%s\">\n%s\n</include>", metaName(f), strings.Join(params, "\n"))
	}
	return Suggestion{Title: "Fix: parameter count mismatch", Steps: steps, Code: code}
}

func fixInvalidEnum(f domain.Finding, badLine string) Suggestion {
	steps := []string{
		f.Message + ".",
		"Java enums are a fixed set of allowed values; anything else fails at runtime.",
	}
	if f.Suggestion != "" {
		steps = append(steps, f.Suggestion)
	}
	return Suggestion{Title: "Fix: invalid enum value", Steps: steps}
}

func fixSuiteFileNotFound(f domain.Finding, badLine string) Suggestion {
	return Suggestion{
		Title: "Fix: suite file not found",
		Steps: []string{
			fmt.Sprintf("The <suite-file> path '%s' does not exist relative to this file.", metaName(f)),
			"Check the path spelling, and whether the file was moved or renamed.",
		},
		Code: "<suite-files>\n  <suite-file path=\"smoke-tests.xml\"/>\n</suite-files>",
	}
}
