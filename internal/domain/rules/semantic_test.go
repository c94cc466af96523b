package rules_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suitelint/suitelint/internal/domain"
	"github.com/suitelint/suitelint/internal/domain/rules"
)

func testStore() *domain.MetadataStore {
	return &domain.MetadataStore{
		Classes: map[string]domain.ClassMetadata{
			"com.example.LoginTest": {
				Methods: map[string]domain.MethodMetadata{
					"testLogin": {IsTest: true},
					"testLoginWithRetry": {
						IsTest: true,
						Parameters: []domain.ParameterInfo{
							{Name: "username", Type: "String"},
							{Name: "retries", Type: "int"},
						},
					},
				},
				Parameters: map[string][]string{
					"browser": {"CHROME", "FIREFOX"},
				},
			},
			"com.example.CheckoutTest": {
				Methods: map[string]domain.MethodMetadata{
					"testCheckout": {IsTest: true},
				},
			},
		},
	}
}

func validateWithStore(t *testing.T, text string) []domain.Finding {
	t.Helper()
	v := rules.NewHierarchyValidator("suite.xml", testStore())
	return v.Validate(text)
}

func TestSemantic_KnownClassAndMethodPass(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.LoginTest">
        <methods><include name="testLogin"/></methods>
      </class>
    </classes>
  </test>
</suite>`
	findings := validateWithStore(t, text)
	assert.Empty(t, findings)
}

func TestSemantic_UnknownClassSuggestsClosest(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.LoginTst"/>
    </classes>
  </test>
</suite>`
	findings := validateWithStore(t, text)

	f, ok := findCode(findings, "E300")
	require.True(t, ok)
	assert.Equal(t, 4, f.Line)
	assert.Equal(t, "com.example.LoginTst", f.Meta["name"])
	assert.Contains(t, f.Suggestion, "com.example.LoginTest")
}

func TestSemantic_UnknownMethodSuggestsClosest(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.LoginTest">
        <methods><include name="testLogn"/></methods>
      </class>
    </classes>
  </test>
</suite>`
	findings := validateWithStore(t, text)

	f, ok := findCode(findings, "E301")
	require.True(t, ok)
	assert.Equal(t, "com.example.LoginTest", f.Meta["class"])
	assert.Contains(t, f.Suggestion, "testLogin")
}

func TestSemantic_NamelessClassIncludesNotMisattributed(t *testing.T) {
	// The second class has no name, so its include must not be checked
	// against the preceding class's metadata.
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.LoginTest">
        <methods><include name="testLogin"/></methods>
      </class>
      <class>
        <methods><include name="zzz"/></methods>
      </class>
    </classes>
  </test>
</suite>`
	findings := validateWithStore(t, text)

	_, hasE301 := findCode(findings, "E301")
	assert.False(t, hasE301, "include of a nameless class checked against the wrong class")
	_, hasE112 := findCode(findings, "E112")
	assert.True(t, hasE112)
}

func TestSemantic_ExcludeNamesAreNotChecked(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.LoginTest">
        <methods><exclude name="noSuchMethod"/></methods>
      </class>
    </classes>
  </test>
</suite>`
	findings := validateWithStore(t, text)
	assert.Empty(t, findings)
}

func TestSemantic_ParameterCountMismatch(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.LoginTest">
        <methods>
          <include name="testLoginWithRetry">
            <parameter name="username" value="bob"/>
          </include>
        </methods>
      </class>
    </classes>
  </test>
</suite>`
	findings := validateWithStore(t, text)

	f, ok := findCode(findings, "E302")
	require.True(t, ok)
	assert.Equal(t, domain.SeverityWarning, f.Severity)
	assert.Equal(t, "1", f.Meta["declared"])
	assert.Equal(t, "2", f.Meta["expected"])
	assert.Equal(t, "retries (int)", f.Meta["missing"])
}

func TestSemantic_ExtraParametersAreAllowed(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.LoginTest">
        <methods>
          <include name="testLogin">
            <parameter name="extra" value="1"/>
          </include>
        </methods>
      </class>
    </classes>
  </test>
</suite>`
	findings := validateWithStore(t, text)
	assert.Empty(t, findings)
}

func TestSemantic_EnumValueChecked(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.LoginTest">
        <parameter name="browser" value="SAFARI"/>
        <methods><include name="testLogin"/></methods>
      </class>
    </classes>
  </test>
</suite>`
	findings := validateWithStore(t, text)

	f, ok := findCode(findings, "E303")
	require.True(t, ok)
	assert.Equal(t, "SAFARI", f.Meta["value"])
	assert.Contains(t, f.Suggestion, "CHROME")
}

func TestSemantic_ValidEnumValuePasses(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes>
      <class name="com.example.LoginTest">
        <parameter name="browser" value="CHROME"/>
        <methods><include name="testLogin"/></methods>
      </class>
    </classes>
  </test>
</suite>`
	findings := validateWithStore(t, text)
	assert.Empty(t, findings)
}

func TestSemantic_SuppressedAfterAbort(t *testing.T) {
	v := rules.NewHierarchyValidator("suite.xml", testStore())
	findings := v.Validate(`<suite name="S"><test name="T"><classes><class name="no.Such.Class">`)

	require.True(t, v.Aborted())
	_, hasSemantic := findCode(findings, "E300")
	assert.False(t, hasSemantic)
}

func TestSemantic_SkippedWithoutStore(t *testing.T) {
	text := `<suite name="S">
  <test name="T">
    <classes><class name="no.Such.Class"/></classes>
  </test>
</suite>`
	findings := validate(t, text)
	assert.NotContains(t, codes(findings), "E300")
}
