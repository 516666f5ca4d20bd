// ABOUTME: Storage is the dual course index: catalog plus content collections
// ABOUTME: Handles ingestion ordering, fuzzy name resolution, and search
package storage

import (
	"errors"
	"fmt"
	"log"
	"sync"

	"github.com/harper/courserag/internal/models"
	"github.com/harper/courserag/internal/storage/sqlite"
)

// ErrDuplicateCourse is returned when a course title is already indexed
var ErrDuplicateCourse = errors.New("course already exists")

// UnknownCourseError reports a course filter that resolved to nothing.
// Search short-circuits on it instead of silently searching unfiltered.
type UnknownCourseError struct {
	Name string
}

func (e *UnknownCourseError) Error() string {
	return fmt.Sprintf("no course found matching %q", e.Name)
}

// Embedder turns text into vectors. Satisfied by llm.Client.
type Embedder interface {
	GenerateEmbedding(text string) ([]float64, error)
	GenerateEmbeddings(texts []string) ([][]float64, error)
}

// Storage manages the two collections of the course index. Courses and
// chunks are immutable once written; re-adding a known title is rejected
// before any embedding work happens.
//
// Storage is safe for concurrent use: reads go straight to SQLite, and the
// ingestion path is serialized so a duplicate check and its insert cannot
// interleave. Content chunks are committed before the catalog entry, so a
// course never resolves by name while its chunks are still missing.
type Storage struct {
	db       *sqlite.DB
	catalog  *sqlite.CatalogStore
	chunks   *sqlite.ChunkStore
	embedder Embedder

	// Minimum similarity for fuzzy course-name resolution
	matchThreshold float64

	mu sync.Mutex // serializes ingestion
}

// New opens the index at dbPath
func New(dbPath string, embedder Embedder, matchThreshold float64) (*Storage, error) {
	db, err := sqlite.Open(dbPath)
	if err != nil {
		return nil, err
	}

	return &Storage{
		db:             db,
		catalog:        sqlite.NewCatalogStore(db),
		chunks:         sqlite.NewChunkStore(db),
		embedder:       embedder,
		matchThreshold: matchThreshold,
	}, nil
}

// Close closes the underlying database
func (s *Storage) Close() error {
	return s.db.Close()
}

// CourseExists reports catalog membership by exact title
func (s *Storage) CourseExists(title string) (bool, error) {
	return s.catalog.Exists(title)
}

// GetCourse retrieves catalog metadata by exact title, nil when absent
func (s *Storage) GetCourse(title string) (*models.Course, error) {
	return s.catalog.Get(title)
}

// AddCourse indexes a course and its chunks. Returns ErrDuplicateCourse when
// the title is already present, before any embeddings are computed.
func (s *Storage) AddCourse(course *models.Course, chunks []models.Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	exists, err := s.catalog.Exists(course.Title)
	if err != nil {
		return err
	}
	if exists {
		return fmt.Errorf("%q: %w", course.Title, ErrDuplicateCourse)
	}

	// Embed chunk text with its provenance label prepended; the label is
	// deterministic so re-chunking identical input embeds identical text.
	texts := make([]string, len(chunks))
	for i := range chunks {
		texts[i] = chunks[i].SourceLabel() + ": " + chunks[i].Content
	}

	var vectors [][]float64
	if len(texts) > 0 {
		vectors, err = s.embedder.GenerateEmbeddings(texts)
		if err != nil {
			return fmt.Errorf("failed to embed chunks for %q: %w", course.Title, err)
		}
	}

	titleVector, err := s.embedder.GenerateEmbedding(course.Title)
	if err != nil {
		return fmt.Errorf("failed to embed title %q: %w", course.Title, err)
	}

	// Content first, catalog second: the course must not be resolvable by
	// name until its chunks are committed.
	if len(chunks) > 0 {
		if err := s.chunks.InsertBatch(chunks, vectors); err != nil {
			return err
		}
	}
	if err := s.catalog.Upsert(course, titleVector); err != nil {
		return fmt.Errorf("failed to write catalog entry for %q: %w", course.Title, err)
	}

	log.Printf("[Storage] Indexed course %q with %d chunks", course.Title, len(chunks))
	return nil
}

// ResolveCourseName fuzzy-matches free text against catalog titles.
// Returns the best title when its score clears the match threshold, or ""
// when nothing matches confidently enough.
func (s *Storage) ResolveCourseName(fuzzy string) (string, error) {
	vector, err := s.embedder.GenerateEmbedding(fuzzy)
	if err != nil {
		return "", fmt.Errorf("failed to embed course name %q: %w", fuzzy, err)
	}

	best, err := s.catalog.BestMatch(vector)
	if err != nil {
		return "", err
	}
	if best == nil || best.Score < s.matchThreshold {
		return "", nil
	}
	return best.Title, nil
}

// Search embeds the query and runs filtered similarity search against the
// content collection. A course filter that fails to resolve short-circuits
// with UnknownCourseError; no content search happens in that case.
func (s *Storage) Search(query, courseName string, lessonNumber *int, limit int) ([]models.SearchResult, error) {
	resolvedTitle := ""
	if courseName != "" {
		title, err := s.ResolveCourseName(courseName)
		if err != nil {
			return nil, err
		}
		if title == "" {
			return nil, &UnknownCourseError{Name: courseName}
		}
		resolvedTitle = title
	}

	vector, err := s.embedder.GenerateEmbedding(query)
	if err != nil {
		return nil, fmt.Errorf("failed to embed query: %w", err)
	}

	return s.chunks.Search(vector, resolvedTitle, lessonNumber, limit)
}

// Stats summarizes the catalog: course count and titles in ingestion order
func (s *Storage) Stats() (*models.CourseStats, error) {
	titles, err := s.catalog.Titles()
	if err != nil {
		return nil, err
	}
	return &models.CourseStats{
		TotalCourses: len(titles),
		CourseTitles: titles,
	}, nil
}

// Reset removes every course and chunk from both collections
func (s *Storage) Reset() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.chunks.DeleteAll(); err != nil {
		return fmt.Errorf("failed to clear content index: %w", err)
	}
	if err := s.catalog.DeleteAll(); err != nil {
		return fmt.Errorf("failed to clear catalog: %w", err)
	}
	return nil
}

// ChunkCount returns the number of stored chunks for a course
func (s *Storage) ChunkCount(title string) (int, error) {
	return s.chunks.CountByCourse(title)
}
