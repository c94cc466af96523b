package tui

import (
	"fmt"
	"io"
	"strconv"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
	"github.com/suitelint/suitelint/internal/domain"
)

const maxTablePathWidth = 48

// WriteResultsTable prints the per-file batch summary as a table.
func WriteResultsTable(w io.Writer, results []*domain.ValidationResult) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"File", "Status", "Errors", "Warnings", "Encoding"})

	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignLeft
	})

	var data [][]string
	for _, r := range results {
		data = append(data, []string{
			truncatePath(r.FilePath, maxTablePathWidth),
			string(r.Status()),
			strconv.Itoa(r.ErrorCount()),
			strconv.Itoa(r.WarningCount()),
			r.Encoding,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// WriteCodesTable prints the error-code taxonomy for the codes command.
func WriteCodesTable(w io.Writer, codes []string) error {
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Code", "Severity", "Category", "Auto-fix", "Description"})

	var data [][]string
	for _, code := range codes {
		info := domain.Codes[code]
		autofix := ""
		if domain.AutoFixable[code] {
			autofix = "yes"
		}
		data = append(data, []string{
			code,
			string(info.Severity),
			info.Category,
			autofix,
			info.Description,
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

func truncatePath(p string, width int) string {
	if len(p) <= width {
		return p
	}
	return fmt.Sprintf("...%s", p[len(p)-width+3:])
}
