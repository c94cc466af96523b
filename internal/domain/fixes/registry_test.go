package fixes_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suitelint/suitelint/internal/domain"
	"github.com/suitelint/suitelint/internal/domain/fixes"
)

func TestVerifyRegistry(t *testing.T) {
	assert.NoError(t, fixes.VerifyRegistry())
}

func TestGenerate_KnownCode(t *testing.T) {
	lines := strings.Split("<suite verbose=\"1\">\n  <test name=\"T\"/>\n</suite>", "\n")
	f := domain.NewFinding("E101", "Suite missing name", 1, 1)

	s := fixes.Generate(f, lines)

	assert.Equal(t, "Fix: suite missing name", s.Title)
	require.NotEmpty(t, s.Steps)
	assert.Contains(t, s.Steps[1], `<suite verbose="1">`)
	assert.NotEmpty(t, s.Code)
}

func TestGenerate_UnregisteredCodeFallsBack(t *testing.T) {
	f := domain.Finding{Code: "E999", Message: "something new", Line: 2}
	s := fixes.Generate(f, nil)

	assert.Equal(t, "Fix: something new", s.Title)
	assert.NotEmpty(t, s.Steps)
}

func TestGenerate_ContextMarksOffendingLine(t *testing.T) {
	text := "<suite name=\"S\">\n  <test name=\"T\">\n    <classes>\n    </classes>\n  </test>\n</suite>"
	lines := strings.Split(text, "\n")
	f := domain.NewFinding("E107", "Empty <classes> block", 3, 0)

	s := fixes.Generate(f, lines)

	require.NotEmpty(t, s.Context)
	assert.Contains(t, s.Context, ">   3 |")
	assert.Contains(t, s.Context, "<classes>")
	assert.Contains(t, s.Context, "  2 |")
}

func TestGenerate_ParamMismatchListsMissing(t *testing.T) {
	f := domain.NewFinding("E302", "Parameter count mismatch for 'testLogin': 1 declared, 2 expected", 6, 5)
	f.Meta = map[string]string{
		"name":    "testLogin",
		"missing": "retries (int)",
	}

	s := fixes.Generate(f, nil)

	assert.Contains(t, s.Steps, "Missing: retries (int)")
	assert.Contains(t, s.Code, `<parameter name="retries" value="..."/>`)
	assert.Contains(t, s.Code, `<include name="testLogin">`)
}

func TestGenerate_DuplicateTestUsesName(t *testing.T) {
	f := domain.NewFinding("E104", "Duplicate test: 'Smoke'", 4, 0)
	f.Meta = map[string]string{"name": "Smoke"}

	s := fixes.Generate(f, nil)

	assert.Contains(t, s.Code, "Smoke_Run2")
}
