// ABOUTME: Content collection operations for chunk text and embeddings
// ABOUTME: Implements filtered cosine similarity search with deterministic ties
package sqlite

import (
	"database/sql"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/harper/courserag/internal/models"
)

// ChunkStore handles chunk persistence and similarity search
type ChunkStore struct {
	db *DB
}

// NewChunkStore creates a new ChunkStore
func NewChunkStore(db *DB) *ChunkStore {
	return &ChunkStore{db: db}
}

// InsertBatch writes all chunks of one document with their embeddings in a
// single transaction. Chunks and vectors must be parallel slices.
func (s *ChunkStore) InsertBatch(chunks []models.Chunk, vectors [][]float64) error {
	if len(chunks) != len(vectors) {
		return fmt.Errorf("chunk/vector count mismatch: %d vs %d", len(chunks), len(vectors))
	}

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin chunk insert: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.Prepare(`
		INSERT INTO chunks (course_title, chunk_index, lesson_number, content, vector, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("failed to prepare chunk insert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for i, chunk := range chunks {
		var lesson sql.NullInt64
		if chunk.LessonNumber != nil {
			lesson = sql.NullInt64{Int64: int64(*chunk.LessonNumber), Valid: true}
		}
		if _, err := stmt.Exec(chunk.CourseTitle, chunk.Index, lesson, chunk.Content, vectorToBlob(vectors[i]), now); err != nil {
			return fmt.Errorf("failed to insert chunk %d of %q: %w", chunk.Index, chunk.CourseTitle, err)
		}
	}

	return tx.Commit()
}

// Search scores stored chunks against the query vector, optionally
// restricted to one course title and lesson number, and returns up to limit
// hits ordered by descending similarity. Equal scores are broken by
// ascending chunk index so repeated queries return identical orderings.
func (s *ChunkStore) Search(queryVector []float64, courseTitle string, lessonNumber *int, limit int) ([]models.SearchResult, error) {
	query := `SELECT course_title, chunk_index, lesson_number, content, vector FROM chunks`
	var (
		where []string
		args  []any
	)
	if courseTitle != "" {
		where = append(where, "course_title = ?")
		args = append(args, courseTitle)
	}
	if lessonNumber != nil {
		where = append(where, "lesson_number = ?")
		args = append(args, *lessonNumber)
	}
	if len(where) > 0 {
		query += " WHERE " + strings.Join(where, " AND ")
	}

	rows, err := s.db.Query(query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to scan content index: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var results []models.SearchResult
	for rows.Next() {
		var (
			r      models.SearchResult
			lesson sql.NullInt64
			blob   []byte
		)
		if err := rows.Scan(&r.CourseTitle, &r.ChunkIndex, &lesson, &r.Content, &blob); err != nil {
			return nil, err
		}
		if lesson.Valid {
			n := int(lesson.Int64)
			r.LessonNumber = &n
		}
		r.Score = CosineSimilarity(queryVector, blobToVector(blob))
		results = append(results, r)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	sort.SliceStable(results, func(i, j int) bool {
		if results[i].Score != results[j].Score {
			return results[i].Score > results[j].Score
		}
		if results[i].ChunkIndex != results[j].ChunkIndex {
			return results[i].ChunkIndex < results[j].ChunkIndex
		}
		return results[i].CourseTitle < results[j].CourseTitle
	})

	if limit > 0 && len(results) > limit {
		results = results[:limit]
	}
	return results, nil
}

// CountByCourse returns the number of stored chunks for a course
func (s *ChunkStore) CountByCourse(courseTitle string) (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM chunks WHERE course_title = ?`, courseTitle).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count chunks: %w", err)
	}
	return count, nil
}

// DeleteAll removes every content entry
func (s *ChunkStore) DeleteAll() error {
	_, err := s.db.Exec(`DELETE FROM chunks`)
	return err
}
