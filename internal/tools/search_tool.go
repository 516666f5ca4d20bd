// ABOUTME: CourseSearchTool exposes content-index retrieval to the model
// ABOUTME: Formats hits as labeled snippets and collects source labels
package tools

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"github.com/harper/courserag/internal/models"
	"github.com/harper/courserag/internal/storage"
	openai "github.com/sashabaranov/go-openai"
	"github.com/sashabaranov/go-openai/jsonschema"
)

// SearchToolName is the name the model uses to request retrieval
const SearchToolName = "search_course_content"

// Searcher is the slice of the dual index the tool needs
type Searcher interface {
	Search(query, courseName string, lessonNumber *int, limit int) ([]models.SearchResult, error)
}

// CourseSearchTool performs semantic search over course content
type CourseSearchTool struct {
	searcher   Searcher
	maxResults int
}

// NewCourseSearchTool creates the search tool with a result limit
func NewCourseSearchTool(searcher Searcher, maxResults int) *CourseSearchTool {
	return &CourseSearchTool{
		searcher:   searcher,
		maxResults: maxResults,
	}
}

// Definition returns the function schema offered to the model
func (t *CourseSearchTool) Definition() openai.Tool {
	return openai.Tool{
		Type: openai.ToolTypeFunction,
		Function: &openai.FunctionDefinition{
			Name:        SearchToolName,
			Description: "Search course materials with smart course name matching and lesson filtering",
			Parameters: jsonschema.Definition{
				Type: jsonschema.Object,
				Properties: map[string]jsonschema.Definition{
					"query": {
						Type:        jsonschema.String,
						Description: "What to search for in course content",
					},
					"course_name": {
						Type:        jsonschema.String,
						Description: "Course title (partial matches work, e.g. 'MCP', 'Introduction')",
					},
					"lesson_number": {
						Type:        jsonschema.Integer,
						Description: "Specific lesson number to search within (e.g. 1, 2, 3)",
					},
				},
				Required: []string{"query"},
			},
		},
	}
}

// searchArgs is the argument shape the model sends
type searchArgs struct {
	Query        string `json:"query"`
	CourseName   string `json:"course_name"`
	LessonNumber *int   `json:"lesson_number"`
}

// Execute validates arguments, runs the search, and formats the outcome.
// Empty results and unresolvable course filters are normal outcomes
// returned as text; only argument and index failures are errors.
func (t *CourseSearchTool) Execute(args json.RawMessage) (*Result, error) {
	var parsed searchArgs
	if err := json.Unmarshal(args, &parsed); err != nil {
		return nil, fmt.Errorf("invalid search arguments: %w", err)
	}
	if strings.TrimSpace(parsed.Query) == "" {
		return nil, fmt.Errorf("query argument is required and must be non-empty")
	}

	results, err := t.searcher.Search(parsed.Query, parsed.CourseName, parsed.LessonNumber, t.maxResults)
	if err != nil {
		var unknown *storage.UnknownCourseError
		if errors.As(err, &unknown) {
			return &Result{Text: unknown.Error()}, nil
		}
		return nil, err
	}

	if len(results) == 0 {
		return &Result{Text: t.emptyMessage(parsed)}, nil
	}

	snippets := make([]string, len(results))
	sources := make([]string, 0, len(results))
	seen := make(map[string]bool)
	for i, r := range results {
		label := r.SourceLabel()
		snippets[i] = fmt.Sprintf("[%s]\n%s", label, r.Content)
		if !seen[label] {
			seen[label] = true
			sources = append(sources, label)
		}
	}

	return &Result{
		Text:    strings.Join(snippets, "\n\n"),
		Sources: sources,
	}, nil
}

// emptyMessage describes an empty result set, echoing the filters used
func (t *CourseSearchTool) emptyMessage(args searchArgs) string {
	msg := "No relevant content found"
	if args.CourseName != "" {
		msg += fmt.Sprintf(" in course '%s'", args.CourseName)
	}
	if args.LessonNumber != nil {
		msg += fmt.Sprintf(" in lesson %d", *args.LessonNumber)
	}
	return msg + "."
}
