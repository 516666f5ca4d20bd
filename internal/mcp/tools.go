// ABOUTME: MCP tool definitions and registration for the course index
// ABOUTME: Lets external agents search course content over stdio
package mcp

import (
	"github.com/harper/courserag/internal/tools"
	"github.com/mark3labs/mcp-go/mcp"
	mcpserver "github.com/mark3labs/mcp-go/server"
)

// RegisterTools registers the course tools with the MCP server
func RegisterTools(server *mcpserver.MCPServer, searchTool *tools.CourseSearchTool, stats StatsProvider) *Handlers {
	handlers := &Handlers{
		searchTool: searchTool,
		stats:      stats,
	}

	// 1. search_course_content - semantic search over indexed transcripts
	server.AddTool(mcp.Tool{
		Name:        "search_course_content",
		Description: "Search course materials with smart course name matching and lesson filtering.",
		InputSchema: mcp.ToolInputSchema{
			Type: "object",
			Properties: map[string]interface{}{
				"query": map[string]interface{}{
					"type":        "string",
					"description": "What to search for in course content",
				},
				"course_name": map[string]interface{}{
					"type":        "string",
					"description": "Course title, partial matches work",
				},
				"lesson_number": map[string]interface{}{
					"type":        "number",
					"description": "Specific lesson number to search within",
				},
			},
			Required: []string{"query"},
		},
	}, handlers.SearchCourseContent)

	// 2. get_course_stats - catalog introspection
	server.AddTool(mcp.Tool{
		Name:        "get_course_stats",
		Description: "Get the number of indexed courses and their titles.",
		InputSchema: mcp.ToolInputSchema{
			Type:       "object",
			Properties: map[string]interface{}{},
		},
	}, handlers.GetCourseStats)

	return handlers
}
