package cli

import (
	mcpadapter "github.com/suitelint/suitelint/internal/adapters/inbound/mcp"

	"github.com/mark3labs/mcp-go/server"
	"github.com/spf13/cobra"
)

func newMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "MCP server commands",
		Long:  "Commands for running the suitelint MCP (Model Context Protocol) server.",
	}
	cmd.AddCommand(newMCPServeCmd())
	return cmd
}

func newMCPServeCmd() *cobra.Command {
	var (
		projectPath  string
		metadataPath string
	)

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Start suitelint MCP server (stdio)",
		Long:  "Start the suitelint MCP server using stdio transport. This lets AI coding assistants validate and fix suite files directly.",
		RunE: func(cmd *cobra.Command, args []string) error {
			if projectPath == "" {
				projectPath = "."
			}
			s := mcpadapter.NewSuitelintMCPServer(projectPath, metadataPath)
			return server.ServeStdio(s)
		},
	}

	cmd.Flags().StringVar(&projectPath, "path", "", "Project path (defaults to current working directory)")
	cmd.Flags().StringVarP(&metadataPath, "metadata", "m", "", "Path to metadata store JSON for semantic checks")

	return cmd
}
