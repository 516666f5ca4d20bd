// ABOUTME: MCP tool handler implementations for the course index
// ABOUTME: Delegates to the shared search tool so formatting stays identical
package mcp

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/harper/courserag/internal/models"
	"github.com/harper/courserag/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
)

// StatsProvider exposes catalog introspection
type StatsProvider interface {
	Stats() (*models.CourseStats, error)
}

// Handlers contains the handler functions for the MCP tools
type Handlers struct {
	searchTool *tools.CourseSearchTool
	stats      StatsProvider
}

// SearchCourseContent handles the search_course_content tool
func (h *Handlers) SearchCourseContent(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if _, err := request.RequireString("query"); err != nil {
		return mcp.NewToolResultError("query argument is required and must be a string"), nil
	}

	args, err := json.Marshal(request.GetArguments())
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid arguments: %v", err)), nil
	}

	result, err := h.searchTool.Execute(args)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
	}

	return mcp.NewToolResultText(result.Text), nil
}

// GetCourseStats handles the get_course_stats tool
func (h *Handlers) GetCourseStats(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	stats, err := h.stats.Stats()
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to load stats: %v", err)), nil
	}

	payload, err := json.MarshalIndent(stats, "", "  ")
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("failed to encode stats: %v", err)), nil
	}

	return mcp.NewToolResultText(string(payload)), nil
}
