// ABOUTME: Chunker splits lesson sections into fixed-size overlapping windows
// ABOUTME: Prefers sentence boundaries near the target size, hard cut otherwise
package ingest

import (
	"fmt"
	"strings"

	"github.com/harper/courserag/internal/models"
)

// boundaryChars end a sentence or paragraph; windows prefer to break just
// after one of these when it falls within the snapping tolerance.
const boundaryChars = ".!?\n"

// Chunker produces overlapping text windows from parsed documents.
// Chunk indexes increase across the whole document regardless of lesson
// boundaries, so (course title, chunk index) is a stable identifier.
type Chunker struct {
	size      int
	overlap   int
	tolerance int
}

// NewChunker creates a Chunker. The overlap must be smaller than the size;
// that relationship is validated again here so a caller bypassing config
// validation still cannot construct a non-terminating chunker.
func NewChunker(size, overlap int) (*Chunker, error) {
	if size <= 0 {
		return nil, fmt.Errorf("chunk size must be positive, got %d", size)
	}
	if overlap < 0 || overlap >= size {
		return nil, fmt.Errorf("chunk overlap must be in [0, size), got size=%d overlap=%d", size, overlap)
	}
	return &Chunker{
		size:      size,
		overlap:   overlap,
		tolerance: size / 5,
	}, nil
}

// ChunkDocument converts every section of a parsed document into chunks.
// Running it twice on identical input yields identical output.
func (c *Chunker) ChunkDocument(doc *Document) []models.Chunk {
	var chunks []models.Chunk
	index := 0

	for _, section := range doc.Sections {
		for _, window := range c.split(section.Text) {
			content := strings.TrimSpace(window)
			if content == "" {
				continue
			}
			chunks = append(chunks, models.Chunk{
				Content:      content,
				CourseTitle:  doc.Course.Title,
				LessonNumber: section.LessonNumber,
				Index:        index,
			})
			index++
		}
	}

	return chunks
}

// split cuts text into windows of roughly c.size characters with c.overlap
// characters repeated between consecutive windows
func (c *Chunker) split(text string) []string {
	runes := []rune(text)
	if len(runes) == 0 {
		return nil
	}
	if len(runes) <= c.size {
		return []string{text}
	}

	var windows []string
	start := 0
	for start < len(runes) {
		end := start + c.size
		if end >= len(runes) {
			windows = append(windows, string(runes[start:]))
			break
		}

		end = c.snapToBoundary(runes, start, end)
		windows = append(windows, string(runes[start:end]))

		next := end - c.overlap
		if next <= start {
			// Overlap would stall on a short snapped window
			next = start + 1
		}
		start = next
	}
	return windows
}

// snapToBoundary walks backwards from the target end looking for a sentence
// or paragraph boundary within the tolerance. Returns the position just
// after the boundary character, or the hard cut when none is found.
func (c *Chunker) snapToBoundary(runes []rune, start, end int) int {
	limit := end - c.tolerance
	if limit < start+1 {
		limit = start + 1
	}
	for i := end - 1; i >= limit; i-- {
		if strings.ContainsRune(boundaryChars, runes[i]) {
			return i + 1
		}
	}
	return end
}
