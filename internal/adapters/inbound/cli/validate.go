package cli

import (
	"encoding/json"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"github.com/suitelint/suitelint/internal/adapters/outbound/config"
	"github.com/suitelint/suitelint/internal/adapters/outbound/encoding"
	"github.com/suitelint/suitelint/internal/adapters/outbound/gitinfo"
	"github.com/suitelint/suitelint/internal/adapters/outbound/history"
	"github.com/suitelint/suitelint/internal/adapters/outbound/metastore"
	"github.com/suitelint/suitelint/internal/adapters/outbound/report"
	"github.com/suitelint/suitelint/internal/adapters/outbound/scanner"
	"github.com/suitelint/suitelint/internal/adapters/outbound/tui"
	"github.com/suitelint/suitelint/internal/application"
	"github.com/suitelint/suitelint/internal/domain"
	"github.com/suitelint/suitelint/internal/logging"
)

func newValidateCmd() *cobra.Command {
	var (
		metadataPath string
		outputPath   string
		strict       bool
		verbose      bool
		jsonOutput   bool
		workers      int
		excludes     []string
	)

	cmd := &cobra.Command{
		Use:   "validate [paths...]",
		Short: "Validate TestNG suite files",
		Long:  "Validate one or more suite XML files, or recursively discover them under directories. With a metadata store, class and method references are checked against the compiled project.",
		RunE: func(cmd *cobra.Command, args []string) error {
			paths := args
			if len(paths) == 0 {
				paths = []string{"."}
			}
			root := projectRoot(paths[0])

			cfg, err := config.New().Load(root)
			if err != nil {
				return err
			}
			if workers > 0 {
				cfg.Workers = workers
			}
			strict = strict || cfg.Strict
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

			files, err := scanner.New().Discover(paths, append(cfg.ExcludePaths, excludes...))
			if err != nil {
				return err
			}
			if len(files) == 0 {
				return fmt.Errorf("no XML files found under %s", strings.Join(paths, ", "))
			}

			locks := application.NewPathLocks()
			svc := application.NewValidateService(encoding.New(), store, cfg, locks)

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			results, batchErr := svc.ValidateBatch(ctx, files)
			if batchErr != nil {
				logging.Logger.Warnf("some files could not be validated: %v", batchErr)
			}

			hash := ""
			if gi := gitinfo.New(); gi.IsGitRepo(root) {
				if h, err := gi.CommitHash(root); err == nil {
					hash = h
				}
			}

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				if err := enc.Encode(results); err != nil {
					return err
				}
			} else {
				renderResults(cmd, results, verbose)
			}

			if outputPath != "" {
				exp := report.New()
				exp.Version = version
				exp.CommitHash = hash
				if err := exp.Export(results, outputPath); err != nil {
					return fmt.Errorf("exporting report: %w", err)
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Report written to %s\n", outputPath)
			}

			appendHistory(root, results, hash)

			var failed, warned int
			for _, r := range results {
				switch r.Status() {
				case domain.StatusFail:
					failed++
				case domain.StatusWarn:
					warned++
				}
			}
			if batchErr != nil {
				return fmt.Errorf("validation incomplete: %w", batchErr)
			}
			if failed > 0 {
				return fmt.Errorf("%d file(s) failed validation", failed)
			}
			if strict && warned > 0 {
				return fmt.Errorf("%d file(s) produced warnings in strict mode", warned)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&metadataPath, "metadata", "m", "", "Path to metadata store JSON for semantic checks")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "Write a report (.json, .csv, or .html)")
	cmd.Flags().BoolVar(&strict, "strict", false, "Treat warnings as failures")
	cmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "Show fix suggestions for every finding")
	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output results as JSON")
	cmd.Flags().IntVar(&workers, "workers", 0, "Concurrent validation workers (default from config)")
	cmd.Flags().StringSliceVar(&excludes, "exclude", nil, "Directory names to skip during discovery")

	return cmd
}

func renderResults(cmd *cobra.Command, results []*domain.ValidationResult, verbose bool) {
	out := cmd.OutOrStdout()
	metadataUsed := len(results) > 0 && results[0].MetadataUsed
	fmt.Fprint(out, tui.RenderBatchHeader(len(results), metadataUsed))

	loader := encoding.New()
	for _, r := range results {
		var lines []string
		if verbose {
			if text, _, err := loader.Load(r.FilePath); err == nil {
				lines = strings.Split(text, "\n")
			}
		}
		fmt.Fprint(out, tui.RenderResult(r, lines, verbose))
	}

	fmt.Fprintln(out)
	if len(results) > 1 {
		if err := tui.WriteResultsTable(out, results); err != nil {
			logging.Logger.Warnf("rendering summary table: %v", err)
		}
	}
	fmt.Fprint(out, tui.RenderBatchFooter(results))
	fmt.Fprintln(out)
}

// projectRoot resolves the directory that anchors config, history, and git
// lookups: the first target itself when it is a directory, otherwise its
// parent.
func projectRoot(path string) string {
	if info, err := os.Stat(path); err == nil && info.IsDir() {
		return path
	}
	return filepath.Dir(path)
}

// appendHistory records the run summary, best-effort.
func appendHistory(root string, results []*domain.ValidationResult, hash string) {
	entry := domain.RunEntry{
		Timestamp:  time.Now().Format(time.RFC3339),
		CommitHash: hash,
		Files:      len(results),
	}
	for _, r := range results {
		entry.Errors += r.ErrorCount()
		entry.Warnings += r.WarningCount()
		switch r.Status() {
		case domain.StatusPass:
			entry.Passed++
		case domain.StatusWarn:
			entry.Warned++
		case domain.StatusFail:
			entry.Failed++
		}
	}
	if err := history.New().Append(root, entry); err != nil {
		logging.Logger.Debugf("appending history: %v", err)
	}
}
