package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	mcplib "github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/suitelint/suitelint/internal/adapters/outbound/history"
	"github.com/suitelint/suitelint/internal/domain"
)

// registerResources registers the suitelint MCP resources on the given
// server.
func registerResources(s *server.MCPServer, projectPath string) {
	s.AddResource(
		mcplib.NewResource(
			"suitelint://codes",
			"Error Codes",
			mcplib.WithResourceDescription("Every error code the validator can report, with severity and category"),
			mcplib.WithMIMEType("application/json"),
		),
		handleCodesResource(),
	)

	s.AddResource(
		mcplib.NewResource(
			"suitelint://history",
			"Run History",
			mcplib.WithResourceDescription("Past validation run summaries for the project"),
			mcplib.WithMIMEType("application/json"),
		),
		handleHistoryResource(projectPath),
	)
}

func handleCodesResource() server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		type codeEntry struct {
			Severity    domain.Severity `json:"severity"`
			Category    string          `json:"category"`
			Description string          `json:"description"`
			AutoFixable bool            `json:"auto_fixable"`
		}

		codes := make(map[string]codeEntry, len(domain.Codes))
		for code, info := range domain.Codes {
			codes[code] = codeEntry{
				Severity:    info.Severity,
				Category:    info.Category,
				Description: info.Description,
				AutoFixable: domain.AutoFixable[code],
			}
		}

		data, err := json.MarshalIndent(codes, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling codes: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "suitelint://codes",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}

func handleHistoryResource(projectPath string) server.ResourceHandlerFunc {
	return func(_ context.Context, _ mcplib.ReadResourceRequest) ([]mcplib.ResourceContents, error) {
		entries, err := history.New().Load(projectPath)
		if err != nil {
			return nil, fmt.Errorf("loading history: %w", err)
		}

		data, err := json.MarshalIndent(entries, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("marshaling history: %w", err)
		}

		return []mcplib.ResourceContents{
			mcplib.TextResourceContents{
				URI:      "suitelint://history",
				MIMEType: "application/json",
				Text:     string(data),
			},
		}, nil
	}
}
