package report_test

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/suitelint/suitelint/internal/adapters/outbound/report"
	"github.com/suitelint/suitelint/internal/domain"
)

func sampleResults() []*domain.ValidationResult {
	failing := domain.NewFinding("E101", "Suite missing name", 1, 1)
	warning := domain.NewFinding("E106", "Empty suite", 1, 0)
	return []*domain.ValidationResult{
		{FilePath: "suites/clean.xml", ValidatedAt: time.Now()},
		{FilePath: "suites/broken.xml", Findings: []domain.Finding{failing, warning}},
	}
}

func TestExport_JSON(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.json")
	exp := report.New()
	exp.CommitHash = "abc123"

	require.NoError(t, exp.Export(sampleResults(), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	var decoded struct {
		CommitHash string `json:"commit_hash"`
		Files      int    `json:"files"`
		Passed     int    `json:"passed"`
		Failed     int    `json:"failed"`
		Results    []struct {
			FilePath string `json:"file_path"`
		} `json:"results"`
	}
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.Equal(t, "abc123", decoded.CommitHash)
	assert.Equal(t, 2, decoded.Files)
	assert.Equal(t, 1, decoded.Passed)
	assert.Equal(t, 1, decoded.Failed)
	require.Len(t, decoded.Results, 2)
}

func TestExport_CSV(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.csv")
	require.NoError(t, report.New().Export(sampleResults(), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(string(data)), "\n")
	// Header plus one row per finding; clean files contribute no rows.
	require.Len(t, lines, 3)
	assert.Equal(t, "file,line,col,code,severity,message,suggestion", lines[0])
	assert.Contains(t, lines[1], "suites/broken.xml")
	assert.Contains(t, lines[1], "E101")
}

func TestExport_HTML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "report.html")
	require.NoError(t, report.New().Export(sampleResults(), out))

	data, err := os.ReadFile(out)
	require.NoError(t, err)

	html := string(data)
	assert.Contains(t, html, "suites/broken.xml")
	assert.Contains(t, html, "E101")
	assert.Contains(t, html, "No findings.")
}

func TestExport_UnsupportedExtension(t *testing.T) {
	err := report.New().Export(sampleResults(), filepath.Join(t.TempDir(), "report.pdf"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported report format")
}

func TestExport_CreatesParentDirs(t *testing.T) {
	out := filepath.Join(t.TempDir(), "nested", "deep", "report.json")
	require.NoError(t, report.New().Export(sampleResults(), out))
	assert.FileExists(t, out)
}
