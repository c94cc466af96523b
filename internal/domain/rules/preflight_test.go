package rules_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suitelint/suitelint/internal/domain"
	"github.com/suitelint/suitelint/internal/domain/rules"
)

func preflight(text string) []domain.Finding {
	return rules.Preflight(strings.Split(text, "\n"))
}

func TestPreflight_DuplicateTestNames(t *testing.T) {
	text := `<suite name="S">
  <test name="Smoke">
  </test>
  <test name="Smoke">
  </test>
</suite>`
	findings := preflight(text)

	require.Len(t, findings, 2)
	assert.Equal(t, "E104", findings[0].Code)
	assert.Equal(t, 4, findings[0].Line)
	assert.Contains(t, findings[0].Message, "Smoke")

	// The original definition is reported once, at the first occurrence.
	assert.Equal(t, "E104", findings[1].Code)
	assert.Equal(t, 2, findings[1].Line)
	assert.Contains(t, findings[1].Message, "Original definition")
}

func TestPreflight_OriginalDefinitionReportedOnce(t *testing.T) {
	text := `<suite name="S">
  <test name="Smoke"></test>
  <test name="Smoke"></test>
  <test name="Smoke"></test>
</suite>`
	findings := preflight(text)

	var originals int
	for _, f := range findings {
		if strings.Contains(f.Message, "Original definition") {
			originals++
		}
	}
	assert.Equal(t, 1, originals)
	assert.Len(t, findings, 3)
}

func TestPreflight_SingleLineSiblingTests(t *testing.T) {
	// A test that opens and closes on one line pushes no scope frame; its
	// close tag must not pop the enclosing suite scope.
	text := `<suite name="S">
<test name="A"></test>
<test name="A"></test>
</suite>`
	findings := preflight(text)

	require.Len(t, findings, 2)
	assert.Equal(t, "E104", findings[0].Code)
	assert.Equal(t, 3, findings[0].Line)
	assert.Contains(t, findings[1].Message, "Original definition")
	assert.Equal(t, 2, findings[1].Line)
}

func TestPreflight_DuplicateClassWithinTest(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.A"/>
      <class name="com.example.A"/>
    </classes>
  </test>
</suite>`
	findings := preflight(text)

	f := findings[0]
	assert.Equal(t, "E160", f.Code)
	assert.Equal(t, 5, f.Line)
	assert.Equal(t, "com.example.A", f.Meta["name"])
}

func TestPreflight_SameClassInDifferentTests(t *testing.T) {
	text := `<suite name="S">
  <test name="T1">
    <classes><class name="com.example.A"/></classes>
  </test>
  <test name="T2">
    <classes><class name="com.example.A"/></classes>
  </test>
</suite>`
	findings := preflight(text)
	assert.Empty(t, findings)
}

func TestPreflight_DuplicateIncludeWithinClass(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.A">
        <methods>
          <include name="testOne"/>
          <include name="testOne"/>
        </methods>
      </class>
    </classes>
  </test>
</suite>`
	findings := preflight(text)

	require.NotEmpty(t, findings)
	assert.Equal(t, "E161", findings[0].Code)
	assert.Equal(t, 7, findings[0].Line)
}

func TestPreflight_SameIncludeInDifferentClasses(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.A">
        <methods><include name="testOne"/></methods>
      </class>
      <class name="com.example.B">
        <methods><include name="testOne"/></methods>
      </class>
    </classes>
  </test>
</suite>`
	findings := preflight(text)
	assert.Empty(t, findings)
}

func TestPreflight_SurvivesMalformedXML(t *testing.T) {
	// The regex pass keeps working where the XML parser would abort.
	text := `<suite name="S">
  <test name="Smoke">
  <test name="Smoke">
</suite`
	findings := preflight(text)
	require.NotEmpty(t, findings)
	assert.Equal(t, "E104", findings[0].Code)
}
