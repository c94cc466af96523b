package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/suitelint/suitelint/internal/adapters/outbound/tui"
	"github.com/suitelint/suitelint/internal/domain"
)

func newCodesCmd() *cobra.Command {
	var category string

	cmd := &cobra.Command{
		Use:   "codes",
		Short: "List every error code the validator can report",
		RunE: func(cmd *cobra.Command, args []string) error {
			var codes []string
			for code, info := range domain.Codes {
				if category != "" && info.Category != category {
					continue
				}
				codes = append(codes, code)
			}
			if len(codes) == 0 {
				return fmt.Errorf("no codes in category %q", category)
			}
			sort.Strings(codes)
			return tui.WriteCodesTable(cmd.OutOrStdout(), codes)
		},
	}

	cmd.Flags().StringVar(&category, "category", "", "Only show codes in this category")

	return cmd
}
