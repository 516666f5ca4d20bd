// ABOUTME: MCP command starts Model Context Protocol server
// ABOUTME: Enables LLM agents like Claude to search the course index via stdio
package commands

import (
	"fmt"
	"log"

	"github.com/spf13/cobra"

	coursemcp "github.com/harper/courserag/internal/mcp"
	"github.com/harper/courserag/internal/tools"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// NewMCPCmd creates the MCP command
func NewMCPCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "mcp",
		Short: "Start MCP server for LLM agents",
		Long: `Start MCP server for LLM agents

Runs the course index as an MCP (Model Context Protocol) server,
exposing search_course_content and get_course_stats over stdio.`,
		Args: cobra.NoArgs,
		RunE: runMCP,
		Example: `  # Start MCP server (typically called by an agent host)
  courserag mcp

  # Configure in claude_desktop_config.json:
  # {
  #   "mcpServers": {
  #     "courserag": {
  #       "command": "courserag",
  #       "args": ["mcp"]
  #     }
  #   }
  # }`,
	}

	return cmd
}

// runMCP starts the MCP server
func runMCP(cmd *cobra.Command, args []string) error {
	svc, err := newServices()
	if err != nil {
		return err
	}
	defer svc.Close()

	searchTool := tools.NewCourseSearchTool(svc.store, svc.cfg.MaxResults)

	server := mcpserver.NewMCPServer(
		"CourseRAG",
		versionInfo.Version,
	)
	coursemcp.RegisterTools(server, searchTool, svc.store)

	if !quiet {
		log.Println("CourseRAG MCP server starting on stdio...")
	}
	if err := mcpserver.ServeStdio(server); err != nil {
		return fmt.Errorf("mcp server: %w", err)
	}
	return nil
}
