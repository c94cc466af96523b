package cli

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/suitelint/suitelint/internal/domain/fixes"
	"github.com/suitelint/suitelint/internal/logging"
)

var (
	version = "dev"
	commit  = "none"
)

var debugMode bool

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:           "suitelint",
		Short:         "Validate TestNG suite XML before the build does",
		Long:          "suitelint checks TestNG suite files for structural and semantic problems, suggests fixes, and applies the safe ones automatically.",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if err := logging.Init(debugMode); err != nil {
				return fmt.Errorf("initializing logger: %w", err)
			}
			// A code missing its generator or handler is a programming
			// error; refuse to start rather than fail mid-run.
			return fixes.VerifyRegistry()
		},
	}

	cmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug logging")

	cmd.AddCommand(newVersionCmd())
	cmd.AddCommand(newValidateCmd())
	cmd.AddCommand(newFixCmd())
	cmd.AddCommand(newCodesCmd())
	cmd.AddCommand(newMCPCmd())
	return cmd
}

// NewRootCmdForTest returns the root command for testing.
func NewRootCmdForTest() *cobra.Command {
	return newRootCmd()
}

func Execute() error {
	defer logging.Sync()
	return newRootCmd().Execute()
}
