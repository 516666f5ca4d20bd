// ABOUTME: Chunk represents a bounded window of course transcript text
// ABOUTME: The unit of retrieval, indexed by document-global chunk position
package models

import "fmt"

// Chunk is one retrievable window of transcript text. LessonNumber is nil
// for preamble text that precedes the first lesson marker. Index is the
// zero-based position of the chunk within the whole document.
type Chunk struct {
	Content      string `json:"content"`
	CourseTitle  string `json:"course_title"`
	LessonNumber *int   `json:"lesson_number,omitempty"`
	Index        int    `json:"chunk_index"`
}

// SourceLabel returns the human-readable provenance string for a chunk:
// "<course title> - Lesson <n>", or just the course title for preamble chunks.
func (c *Chunk) SourceLabel() string {
	return FormatSourceLabel(c.CourseTitle, c.LessonNumber)
}

// FormatSourceLabel builds a provenance label from course title and an
// optional lesson number. Shared by Chunk and SearchResult.
func FormatSourceLabel(courseTitle string, lessonNumber *int) string {
	if lessonNumber == nil {
		return courseTitle
	}
	return fmt.Sprintf("%s - Lesson %d", courseTitle, *lessonNumber)
}
