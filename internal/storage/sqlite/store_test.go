// ABOUTME: Tests for catalog and chunk persistence against a temp database
// ABOUTME: Verifies upserts, filtered search, score ordering, and tie breaks
package sqlite

import (
	"path/filepath"
	"testing"

	"github.com/harper/courserag/internal/models"
)

func testDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("Open() error = %v", err)
	}
	t.Cleanup(func() { _ = db.Close() })
	return db
}

func TestCatalogUpsertAndGet(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalogStore(db)

	course := &models.Course{
		Title:      "Building RAG Applications",
		Link:       "https://example.com/rag",
		Instructor: "Jane Smith",
		Lessons: []models.Lesson{
			{Number: 0, Title: "Introduction", Link: "https://example.com/rag/0"},
			{Number: 1, Title: "Embeddings"},
		},
	}

	if err := catalog.Upsert(course, []float64{0.1, 0.2, 0.3}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	exists, err := catalog.Exists(course.Title)
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if !exists {
		t.Error("Exists() = false after upsert")
	}

	got, err := catalog.Get(course.Title)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got == nil {
		t.Fatal("Get() = nil after upsert")
	}
	if got.Instructor != "Jane Smith" {
		t.Errorf("Instructor = %q", got.Instructor)
	}
	if len(got.Lessons) != 2 {
		t.Fatalf("got %d lessons, want 2", len(got.Lessons))
	}
	if got.Lessons[0].Link != "https://example.com/rag/0" {
		t.Errorf("lesson link = %q", got.Lessons[0].Link)
	}

	// Upserting again replaces fields rather than erroring
	course.Instructor = "Pat Doe"
	if err := catalog.Upsert(course, []float64{0.1, 0.2, 0.3}); err != nil {
		t.Fatalf("second Upsert() error = %v", err)
	}
	got, err = catalog.Get(course.Title)
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got.Instructor != "Pat Doe" {
		t.Errorf("Instructor after re-upsert = %q, want Pat Doe", got.Instructor)
	}

	count, err := catalog.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if count != 1 {
		t.Errorf("Count() = %d, want 1", count)
	}
}

func TestCatalogGetMissing(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalogStore(db)

	got, err := catalog.Get("Nonexistent Course")
	if err != nil {
		t.Fatalf("Get() error = %v", err)
	}
	if got != nil {
		t.Errorf("Get() = %+v, want nil for missing course", got)
	}

	exists, err := catalog.Exists("Nonexistent Course")
	if err != nil {
		t.Fatalf("Exists() error = %v", err)
	}
	if exists {
		t.Error("Exists() = true for missing course")
	}
}

func TestCatalogBestMatch(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalogStore(db)

	empty, err := catalog.BestMatch([]float64{1, 0})
	if err != nil {
		t.Fatalf("BestMatch() error = %v", err)
	}
	if empty != nil {
		t.Errorf("BestMatch() on empty catalog = %+v, want nil", empty)
	}

	courses := []struct {
		title  string
		vector []float64
	}{
		{"Course A", []float64{1, 0}},
		{"Course B", []float64{0, 1}},
		{"Course C", []float64{0.7, 0.7}},
	}
	for _, c := range courses {
		if err := catalog.Upsert(&models.Course{Title: c.title}, c.vector); err != nil {
			t.Fatalf("Upsert(%q) error = %v", c.title, err)
		}
	}

	match, err := catalog.BestMatch([]float64{0, 1})
	if err != nil {
		t.Fatalf("BestMatch() error = %v", err)
	}
	if match == nil {
		t.Fatal("BestMatch() = nil")
	}
	if match.Title != "Course B" {
		t.Errorf("BestMatch().Title = %q, want Course B", match.Title)
	}
	if match.Score < 0.999 {
		t.Errorf("BestMatch().Score = %f, want ~1.0", match.Score)
	}
}

func TestCatalogTitlesOrder(t *testing.T) {
	db := testDB(t)
	catalog := NewCatalogStore(db)

	for _, title := range []string{"Zeta Course", "Alpha Course", "Mid Course"} {
		if err := catalog.Upsert(&models.Course{Title: title}, []float64{1}); err != nil {
			t.Fatalf("Upsert(%q) error = %v", title, err)
		}
	}

	titles, err := catalog.Titles()
	if err != nil {
		t.Fatalf("Titles() error = %v", err)
	}
	if len(titles) != 3 {
		t.Fatalf("got %d titles, want 3", len(titles))
	}
}

func chunkWith(course string, index int, lesson *int, content string) models.Chunk {
	return models.Chunk{Content: content, CourseTitle: course, LessonNumber: lesson, Index: index}
}

func TestChunkInsertAndSearch(t *testing.T) {
	db := testDB(t)
	store := NewChunkStore(db)

	one, two := 1, 2
	chunks := []models.Chunk{
		chunkWith("Course A", 0, nil, "preamble about the course"),
		chunkWith("Course A", 1, &one, "vectors and embeddings explained"),
		chunkWith("Course A", 2, &two, "tool calling with language models"),
		chunkWith("Course B", 0, &one, "unrelated cooking content"),
	}
	vectors := [][]float64{
		{0.1, 0.9},
		{1, 0},
		{0.9, 0.1},
		{0, 1},
	}
	if err := store.InsertBatch(chunks, vectors); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	results, err := store.Search([]float64{1, 0}, "", nil, 2)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 2 {
		t.Fatalf("got %d results, want 2", len(results))
	}
	if results[0].Content != "vectors and embeddings explained" {
		t.Errorf("top result = %q", results[0].Content)
	}
	if results[0].Score < results[1].Score {
		t.Error("results not ordered by descending score")
	}
}

func TestChunkSearchFilters(t *testing.T) {
	db := testDB(t)
	store := NewChunkStore(db)

	one, two := 1, 2
	chunks := []models.Chunk{
		chunkWith("Course A", 0, &one, "lesson one content"),
		chunkWith("Course A", 1, &two, "lesson two content"),
		chunkWith("Course B", 0, &one, "other course content"),
	}
	vectors := [][]float64{{1, 0}, {1, 0}, {1, 0}}
	if err := store.InsertBatch(chunks, vectors); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	tests := []struct {
		name        string
		course      string
		lesson      *int
		wantCount   int
		wantContent string
	}{
		{name: "no filters", course: "", lesson: nil, wantCount: 3},
		{name: "course filter", course: "Course A", lesson: nil, wantCount: 2},
		{name: "course and lesson filter", course: "Course A", lesson: &two, wantCount: 1, wantContent: "lesson two content"},
		{name: "lesson filter only", course: "", lesson: &one, wantCount: 2},
		{name: "no matching rows", course: "Course C", lesson: nil, wantCount: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			results, err := store.Search([]float64{1, 0}, tt.course, tt.lesson, 10)
			if err != nil {
				t.Fatalf("Search() error = %v", err)
			}
			if len(results) != tt.wantCount {
				t.Fatalf("got %d results, want %d", len(results), tt.wantCount)
			}
			if tt.wantContent != "" && results[0].Content != tt.wantContent {
				t.Errorf("result = %q, want %q", results[0].Content, tt.wantContent)
			}
		})
	}
}

func TestChunkSearchTieBreak(t *testing.T) {
	db := testDB(t)
	store := NewChunkStore(db)

	// Identical vectors give identical scores; order must fall back to
	// ascending chunk index.
	chunks := []models.Chunk{
		chunkWith("Course A", 3, nil, "third"),
		chunkWith("Course A", 1, nil, "first"),
		chunkWith("Course A", 2, nil, "second"),
	}
	vectors := [][]float64{{1, 0}, {1, 0}, {1, 0}}
	if err := store.InsertBatch(chunks, vectors); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}

	results, err := store.Search([]float64{1, 0}, "", nil, 10)
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}
	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for i, want := range []int{1, 2, 3} {
		if results[i].ChunkIndex != want {
			t.Errorf("result %d has ChunkIndex %d, want %d", i, results[i].ChunkIndex, want)
		}
	}
}

func TestChunkInsertBatchMismatch(t *testing.T) {
	db := testDB(t)
	store := NewChunkStore(db)

	chunks := []models.Chunk{chunkWith("Course A", 0, nil, "text")}
	if err := store.InsertBatch(chunks, nil); err == nil {
		t.Error("InsertBatch() = nil error on chunk/vector mismatch")
	}
}

func TestChunkCountAndDelete(t *testing.T) {
	db := testDB(t)
	store := NewChunkStore(db)
	catalog := NewCatalogStore(db)

	chunks := []models.Chunk{
		chunkWith("Course A", 0, nil, "a"),
		chunkWith("Course A", 1, nil, "b"),
	}
	if err := store.InsertBatch(chunks, [][]float64{{1}, {1}}); err != nil {
		t.Fatalf("InsertBatch() error = %v", err)
	}
	if err := catalog.Upsert(&models.Course{Title: "Course A"}, []float64{1}); err != nil {
		t.Fatalf("Upsert() error = %v", err)
	}

	count, err := store.CountByCourse("Course A")
	if err != nil {
		t.Fatalf("CountByCourse() error = %v", err)
	}
	if count != 2 {
		t.Errorf("CountByCourse() = %d, want 2", count)
	}

	if err := store.DeleteAll(); err != nil {
		t.Fatalf("chunks DeleteAll() error = %v", err)
	}
	if err := catalog.DeleteAll(); err != nil {
		t.Fatalf("catalog DeleteAll() error = %v", err)
	}

	count, err = store.CountByCourse("Course A")
	if err != nil {
		t.Fatalf("CountByCourse() error = %v", err)
	}
	if count != 0 {
		t.Errorf("CountByCourse() after delete = %d, want 0", count)
	}
	n, err := catalog.Count()
	if err != nil {
		t.Fatalf("Count() error = %v", err)
	}
	if n != 0 {
		t.Errorf("catalog Count() after delete = %d, want 0", n)
	}
}
