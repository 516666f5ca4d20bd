// ABOUTME: Search result structures for content retrieval operations
// ABOUTME: Used by the retriever, MCP tools, and the HTTP API
package models

// SearchResult represents one content-index hit with its similarity score
type SearchResult struct {
	Content      string  `json:"content"`
	CourseTitle  string  `json:"course_title"`
	LessonNumber *int    `json:"lesson_number,omitempty"`
	ChunkIndex   int     `json:"chunk_index"`
	Score        float64 `json:"score"`
}

// SourceLabel returns the provenance label for the result's chunk
func (r *SearchResult) SourceLabel() string {
	return FormatSourceLabel(r.CourseTitle, r.LessonNumber)
}

// CourseStats summarizes the catalog for introspection endpoints
type CourseStats struct {
	TotalCourses int      `json:"total_courses"`
	CourseTitles []string `json:"course_titles"`
}
