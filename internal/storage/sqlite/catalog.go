// ABOUTME: Catalog collection operations for course-level metadata
// ABOUTME: Stores title embedding, instructor, and serialized lesson list
package sqlite

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	"github.com/harper/courserag/internal/models"
)

// CatalogStore handles course metadata persistence
type CatalogStore struct {
	db *DB
}

// NewCatalogStore creates a new CatalogStore
func NewCatalogStore(db *DB) *CatalogStore {
	return &CatalogStore{db: db}
}

// TitleMatch is a catalog entry candidate for fuzzy course-name resolution
type TitleMatch struct {
	Title string
	Score float64
}

// Upsert inserts or replaces a course row together with its title embedding
func (s *CatalogStore) Upsert(course *models.Course, titleVector []float64) error {
	lessons, err := json.Marshal(course.Lessons)
	if err != nil {
		return fmt.Errorf("failed to serialize lessons for %q: %w", course.Title, err)
	}

	_, err = s.db.Exec(`
		INSERT INTO courses (title, link, instructor, lessons, title_vector, created_at)
		VALUES (?, ?, ?, ?, ?, ?)
		ON CONFLICT(title) DO UPDATE SET
			link = excluded.link,
			instructor = excluded.instructor,
			lessons = excluded.lessons,
			title_vector = excluded.title_vector
	`, course.Title, course.Link, course.Instructor, string(lessons), vectorToBlob(titleVector), time.Now())

	return err
}

// Exists reports whether a course with the given title is in the catalog
func (s *CatalogStore) Exists(title string) (bool, error) {
	var one int
	err := s.db.QueryRow(`SELECT 1 FROM courses WHERE title = ?`, title).Scan(&one)
	if err == sql.ErrNoRows {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("failed to check catalog membership: %w", err)
	}
	return true, nil
}

// Get retrieves a course by exact title, nil when absent
func (s *CatalogStore) Get(title string) (*models.Course, error) {
	var (
		course  models.Course
		lessons string
	)
	err := s.db.QueryRow(`
		SELECT title, link, instructor, lessons FROM courses WHERE title = ?
	`, title).Scan(&course.Title, &course.Link, &course.Instructor, &lessons)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load course %q: %w", title, err)
	}

	if err := json.Unmarshal([]byte(lessons), &course.Lessons); err != nil {
		return nil, fmt.Errorf("failed to parse lessons for %q: %w", title, err)
	}
	return &course, nil
}

// BestMatch scores every catalog title against the query vector and returns
// the best one. Returns nil when the catalog is empty.
func (s *CatalogStore) BestMatch(queryVector []float64) (*TitleMatch, error) {
	rows, err := s.db.Query(`SELECT title, title_vector FROM courses`)
	if err != nil {
		return nil, fmt.Errorf("failed to scan catalog: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var best *TitleMatch
	for rows.Next() {
		var (
			title string
			blob  []byte
		)
		if err := rows.Scan(&title, &blob); err != nil {
			return nil, err
		}

		score := CosineSimilarity(queryVector, blobToVector(blob))
		if best == nil || score > best.Score {
			best = &TitleMatch{Title: title, Score: score}
		}
	}
	return best, rows.Err()
}

// Titles returns all course titles in ingestion order
func (s *CatalogStore) Titles() ([]string, error) {
	rows, err := s.db.Query(`SELECT title FROM courses ORDER BY created_at ASC, title ASC`)
	if err != nil {
		return nil, fmt.Errorf("failed to list courses: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var titles []string
	for rows.Next() {
		var title string
		if err := rows.Scan(&title); err != nil {
			return nil, err
		}
		titles = append(titles, title)
	}
	return titles, rows.Err()
}

// Count returns the number of courses in the catalog
func (s *CatalogStore) Count() (int, error) {
	var count int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM courses`).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count courses: %w", err)
	}
	return count, nil
}

// DeleteAll removes every catalog entry
func (s *CatalogStore) DeleteAll() error {
	_, err := s.db.Exec(`DELETE FROM courses`)
	return err
}
