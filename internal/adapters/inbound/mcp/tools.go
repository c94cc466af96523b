package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/suitelint/suitelint/internal/adapters/outbound/config"
	"github.com/suitelint/suitelint/internal/adapters/outbound/encoding"
	"github.com/suitelint/suitelint/internal/adapters/outbound/metastore"
	"github.com/suitelint/suitelint/internal/application"
	"github.com/suitelint/suitelint/internal/domain"
	"github.com/suitelint/suitelint/internal/domain/fixes"
)

// registerTools registers the suitelint MCP tools on the given server.
func registerTools(s *server.MCPServer, projectPath, metadataPath string) {
	s.AddTool(
		mcplib.NewTool("suitelint_validate",
			mcplib.WithDescription("Validate a TestNG suite XML file and return findings as JSON"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the suite XML file"),
			),
		),
		handleValidate(projectPath, metadataPath),
	)

	s.AddTool(
		mcplib.NewTool("suitelint_fix",
			mcplib.WithDescription("Auto-fix fixable findings in a suite XML file and return the fix report"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the suite XML file"),
			),
			mcplib.WithBoolean("dry_run", mcplib.Description("Plan fixes without writing")),
			mcplib.WithString("codes", mcplib.Description("Comma-separated codes to fix (default: all fixable)")),
		),
		handleFix(projectPath, metadataPath),
	)

	s.AddTool(
		mcplib.NewTool("suitelint_suggest",
			mcplib.WithDescription("Return tutorial-style fix suggestions for every finding in a suite XML file"),
			mcplib.WithString("file",
				mcplib.Required(),
				mcplib.Description("Path to the suite XML file"),
			),
		),
		handleSuggest(projectPath, metadataPath),
	)
}

// newServices creates the standard set of outbound adapters and services.
func newServices(projectPath, metadataPath string) (*application.ValidateService, *application.FixService, error) {
	cfg, err := config.New().Load(projectPath)
	if err != nil {
		return nil, nil, err
	}
	if metadataPath == "" {
		metadataPath = cfg.MetadataPath
	}

	var store *domain.MetadataStore
	if metadataPath != "" {
		store, err = metastore.New().Load(metadataPath)
		if err != nil {
			return nil, nil, err
		}
	}

	locks := application.NewPathLocks()
	validate := application.NewValidateService(encoding.New(), store, cfg, locks)
	return validate, application.NewFixService(validate, cfg, locks), nil
}

func handleValidate(projectPath, metadataPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		validate, _, err := newServices(projectPath, metadataPath)
		if err != nil {
			return errorResult(fmt.Sprintf("setup failed: %v", err)), nil
		}

		result, err := validate.ValidateFile(file)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}
		return jsonResult(result)
	}
}

func handleFix(projectPath, metadataPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		dryRun, _ := request.GetArguments()["dry_run"].(bool)
		codes, _ := request.GetArguments()["codes"].(string)

		opts := application.FixOptions{DryRun: dryRun}
		if codes != "" {
			opts.Codes = strings.Split(codes, ",")
		}

		_, fix, err := newServices(projectPath, metadataPath)
		if err != nil {
			return errorResult(fmt.Sprintf("setup failed: %v", err)), nil
		}

		report, err := fix.FixFile(file, opts)
		if err != nil {
			return errorResult(fmt.Sprintf("fix failed: %v", err)), nil
		}
		return jsonResult(report)
	}
}

type suggestEntry struct {
	Finding    domain.Finding  `json:"finding"`
	Suggestion fixes.Suggestion `json:"suggestion"`
}

func handleSuggest(projectPath, metadataPath string) server.ToolHandlerFunc {
	return func(_ context.Context, request mcplib.CallToolRequest) (*mcplib.CallToolResult, error) {
		file, err := request.RequireString("file")
		if err != nil {
			return errorResult(err.Error()), nil
		}

		validate, _, err := newServices(projectPath, metadataPath)
		if err != nil {
			return errorResult(fmt.Sprintf("setup failed: %v", err)), nil
		}

		result, err := validate.ValidateFile(file)
		if err != nil {
			return errorResult(fmt.Sprintf("validation failed: %v", err)), nil
		}

		text, _, err := encoding.New().Load(file)
		if err != nil {
			return errorResult(fmt.Sprintf("reading file: %v", err)), nil
		}
		lines := strings.Split(text, "\n")

		entries := make([]suggestEntry, 0, len(result.Findings))
		for _, f := range result.Findings {
			entries = append(entries, suggestEntry{
				Finding:    f,
				Suggestion: fixes.Generate(f, lines),
			})
		}
		return jsonResult(entries)
	}
}

// jsonResult returns a tool result with the value marshaled as indented JSON.
func jsonResult(v interface{}) (*mcplib.CallToolResult, error) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return nil, fmt.Errorf("marshaling result: %w", err)
	}
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(string(data))},
	}, nil
}

// errorResult returns a tool error result with the given message.
func errorResult(msg string) *mcplib.CallToolResult {
	return &mcplib.CallToolResult{
		Content: []mcplib.Content{mcplib.NewTextContent(msg)},
		IsError: true,
	}
}
