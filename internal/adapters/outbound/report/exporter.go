package report

import (
	"encoding/csv"
	"encoding/json"
	"fmt"
	"html/template"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/suitelint/suitelint/internal/domain"
)

// FileExporter implements domain.ReportExporter, choosing the format from
// the output path's extension: .json, .csv, or .html.
type FileExporter struct {
	// Version is the generator version embedded in report headers.
	Version string
	// CommitHash, when known, is embedded in report headers.
	CommitHash string
}

func New() *FileExporter {
	return &FileExporter{}
}

func (e *FileExporter) Export(results []*domain.ValidationResult, outputPath string) error {
	var render func([]*domain.ValidationResult) ([]byte, error)

	switch strings.ToLower(filepath.Ext(outputPath)) {
	case ".json":
		render = e.renderJSON
	case ".csv":
		render = e.renderCSV
	case ".html":
		render = e.renderHTML
	default:
		return fmt.Errorf("unsupported report format %q (want .json, .csv, or .html)", filepath.Ext(outputPath))
	}

	data, err := render(results)
	if err != nil {
		return err
	}

	if dir := filepath.Dir(outputPath); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return err
		}
	}
	return os.WriteFile(outputPath, data, 0644)
}

type jsonReport struct {
	GeneratedAt string                     `json:"generated_at"`
	Version     string                     `json:"version,omitempty"`
	CommitHash  string                     `json:"commit_hash,omitempty"`
	Files       int                        `json:"files"`
	Passed      int                        `json:"passed"`
	Warned      int                        `json:"warned"`
	Failed      int                        `json:"failed"`
	Results     []*domain.ValidationResult `json:"results"`
}

func (e *FileExporter) renderJSON(results []*domain.ValidationResult) ([]byte, error) {
	rep := jsonReport{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		Version:     e.Version,
		CommitHash:  e.CommitHash,
		Files:       len(results),
		Results:     results,
	}
	for _, r := range results {
		switch r.Status() {
		case domain.StatusPass:
			rep.Passed++
		case domain.StatusWarn:
			rep.Warned++
		case domain.StatusFail:
			rep.Failed++
		}
	}
	return json.MarshalIndent(rep, "", "  ")
}

func (e *FileExporter) renderCSV(results []*domain.ValidationResult) ([]byte, error) {
	var b strings.Builder
	w := csv.NewWriter(&b)

	if err := w.Write([]string{"file", "line", "col", "code", "severity", "message", "suggestion"}); err != nil {
		return nil, err
	}
	for _, r := range results {
		for _, f := range r.Findings {
			row := []string{
				r.FilePath,
				strconv.Itoa(f.Line),
				strconv.Itoa(f.Col),
				f.Code,
				string(f.Severity),
				f.Message,
				f.Suggestion,
			}
			if err := w.Write(row); err != nil {
				return nil, err
			}
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}

var htmlReport = template.Must(template.New("report").Parse(`<!DOCTYPE html>
<html>
<head>
<meta charset="utf-8">
<title>suitelint report</title>
<style>
body { font-family: sans-serif; margin: 2rem; color: #222; }
h1 { font-size: 1.4rem; }
.meta { color: #666; font-size: 0.85rem; margin-bottom: 1.5rem; }
table { border-collapse: collapse; width: 100%; margin-bottom: 2rem; }
th, td { border: 1px solid #ddd; padding: 6px 10px; text-align: left; font-size: 0.9rem; }
th { background: #f5f5f5; }
.ERROR { color: #c0392b; font-weight: bold; }
.WARNING { color: #b9770e; font-weight: bold; }
.pass { color: #1e8449; }
.fail { color: #c0392b; }
.warn { color: #b9770e; }
</style>
</head>
<body>
<h1>suitelint report</h1>
<p class="meta">Generated {{.GeneratedAt}}{{if .CommitHash}} at commit {{.CommitHash}}{{end}} &middot; {{.Files}} file(s)</p>
{{range .Results}}
<h2 class="{{if .Status.IsFail}}fail{{else if .Status.IsWarn}}warn{{else}}pass{{end}}">{{.FilePath}} &mdash; {{.Status}}</h2>
{{if .Findings}}
<table>
<tr><th>Location</th><th>Code</th><th>Severity</th><th>Message</th><th>Suggestion</th></tr>
{{range .Findings}}
<tr>
<td>{{.Location}}</td>
<td>{{.Code}}</td>
<td class="{{.Severity}}">{{.Severity}}</td>
<td>{{.Message}}</td>
<td>{{.Suggestion}}</td>
</tr>
{{end}}
</table>
{{else}}
<p class="pass">No findings.</p>
{{end}}
{{end}}
</body>
</html>
`))

type htmlResult struct {
	FilePath string
	Status   statusView
	Findings []domain.Finding
}

type statusView string

func (s statusView) IsFail() bool { return s == statusView(domain.StatusFail) }
func (s statusView) IsWarn() bool { return s == statusView(domain.StatusWarn) }

type htmlData struct {
	GeneratedAt string
	CommitHash  string
	Files       int
	Results     []htmlResult
}

func (e *FileExporter) renderHTML(results []*domain.ValidationResult) ([]byte, error) {
	data := htmlData{
		GeneratedAt: time.Now().UTC().Format(time.RFC3339),
		CommitHash:  e.CommitHash,
		Files:       len(results),
	}
	for _, r := range results {
		data.Results = append(data.Results, htmlResult{
			FilePath: r.FilePath,
			Status:   statusView(r.Status()),
			Findings: r.Findings,
		})
	}

	var b strings.Builder
	if err := htmlReport.Execute(&b, data); err != nil {
		return nil, err
	}
	return []byte(b.String()), nil
}
