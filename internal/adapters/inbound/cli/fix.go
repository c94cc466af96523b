package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/suitelint/suitelint/internal/adapters/outbound/config"
	"github.com/suitelint/suitelint/internal/adapters/outbound/encoding"
	"github.com/suitelint/suitelint/internal/adapters/outbound/metastore"
	"github.com/suitelint/suitelint/internal/adapters/outbound/scanner"
	"github.com/suitelint/suitelint/internal/application"
	"github.com/suitelint/suitelint/internal/domain"
	"github.com/suitelint/suitelint/internal/domain/fixes"
)

func newFixCmd() *cobra.Command {
	var (
		dryRun       bool
		noBackup     bool
		verbose      bool
		codes        []string
		metadataPath string
	)

	cmd := &cobra.Command{
		Use:   "fix [paths...]",
		Short: "Auto-fix fixable findings in suite files",
		Long:  "Apply the safe subset of fixes automatically: missing names, duplicate entries, empty blocks, forbidden spaces. A .bak copy is written next to each modified file unless disabled.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}

			cfg, err := config.New().Load(projectRoot(paths[0]))
			if err != nil {
				return err
			}
			if metadataPath == "" {
				metadataPath = cfg.MetadataPath
			}

			var store *domain.MetadataStore
			if metadataPath != "" {
				store, err = metastore.New().Load(metadataPath)
				if err != nil {
					return err
				}
			}

			files, err := scanner.New().Discover(paths, cfg.ExcludePaths)
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return errors.New("no XML files found")
			}

			locks := application.NewPathLocks()
			validate := application.NewValidateService(encoding.New(), store, cfg, locks)
			svc := application.NewFixService(validate, cfg, locks)

			opts := application.FixOptions{DryRun: dryRun, NoBackup: noBackup, Codes: codes}

			out := cmd.OutOrStdout()
			var applied, skipped, failed int
			for _, f := range files {
				rep, err := svc.FixFile(f, opts)
				if err != nil {
					failed++
					fmt.Fprintf(out, "%s: %v\n", f, err)
					continue
				}
				printFixReport(cmd, rep, verbose)
				applied += len(rep.Applied)
				skipped += len(rep.Skipped)
			}

			verb := "applied"
			if dryRun {
				verb = "planned"
			}
			fmt.Fprintf(out, "\n%d fix(es) %s, %d skipped, %d file(s) failed\n", applied, verb, skipped, failed)

			if failed > 0 {
				return fmt.Errorf("%d file(s) could not be fixed", failed)
			}
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Plan fixes without writing")
	cmd.Flags().BoolVar(&noBackup, "no-backup", false, "Skip the .bak backup copy")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show fix suggestions for findings that cannot be auto-fixed")
	cmd.Flags().StringSliceVar(&codes, "codes", nil, "Only fix the listed codes (e.g. E101,E160)")
	cmd.Flags().StringVarP(&metadataPath, "metadata", "m", "", "Path to metadata store JSON")

	return cmd
}

func printFixReport(cmd *cobra.Command, rep *application.FixReport, verbose bool) {
	out := cmd.OutOrStdout()
	showRemaining := verbose && len(rep.Remaining) > 0
	if len(rep.Applied) == 0 && len(rep.Skipped) == 0 && !showRemaining {
		return
	}

	fmt.Fprintf(out, "%s\n", rep.FilePath)
	for _, a := range rep.Applied {
		mark := "fixed"
		if rep.DryRun {
			mark = "would fix"
		}
		fmt.Fprintf(out, "  %s %s line %d: %s\n", mark, a.Code, a.Line, a.Message)
	}
	for _, s := range rep.Skipped {
		fmt.Fprintf(out, "  skipped %s line %d: %s\n", s.Code, s.Line, s.Message)
	}
	if showRemaining {
		printManualSuggestions(out, rep)
	}
	if rep.BackupPath != "" {
		fmt.Fprintf(out, "  backup written to %s\n", rep.BackupPath)
	}
}

// printManualSuggestions shows fix guidance for findings the engine left
// untouched. The file is re-read so suggestions reference post-fix lines.
func printManualSuggestions(out io.Writer, rep *application.FixReport) {
	var lines []string
	if data, err := os.ReadFile(rep.FilePath); err == nil {
		lines = strings.Split(string(data), "\n")
	}

	for _, f := range rep.Remaining {
		fmt.Fprintf(out, "  manual %s line %d: %s\n", f.Code, f.Line, f.Message)
		s := fixes.Generate(f, lines)
		fmt.Fprintf(out, "    %s\n", s.Title)
		for i, step := range s.Steps {
			fmt.Fprintf(out, "      %d. %s\n", i+1, step)
		}
	}
}
