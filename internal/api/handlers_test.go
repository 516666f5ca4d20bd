// ABOUTME: Tests for the HTTP API handlers and router
// ABOUTME: Verifies status codes, JSON shapes, and provider error mapping
package api

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/harper/courserag/internal/core"
	"github.com/harper/courserag/internal/llm"
	"github.com/harper/courserag/internal/models"
)

// fakeAnswerer returns a scripted answer and records the last call
type fakeAnswerer struct {
	answer      *core.Answer
	err         error
	lastQuery   string
	lastSession string
}

func (f *fakeAnswerer) Answer(query, sessionID string) (*core.Answer, error) {
	f.lastQuery = query
	f.lastSession = sessionID
	if f.err != nil {
		return nil, f.err
	}
	return f.answer, nil
}

type fakeStats struct {
	stats *models.CourseStats
	err   error
}

func (f *fakeStats) Stats() (*models.CourseStats, error) {
	return f.stats, f.err
}

func newTestRouter(answerer Answerer, stats StatsProvider) http.Handler {
	return NewRouter(NewHandler(answerer, stats))
}

func TestHealthEndpoint(t *testing.T) {
	router := newTestRouter(&fakeAnswerer{}, &fakeStats{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/health", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var body map[string]string
	if err := json.NewDecoder(rec.Body).Decode(&body); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if body["status"] != "ok" {
		t.Errorf("status field = %q, want ok", body["status"])
	}
}

func TestQueryEndpoint(t *testing.T) {
	answerer := &fakeAnswerer{answer: &core.Answer{
		Text:      "Lesson 1 covers embeddings.",
		Sources:   []string{"Course A - Lesson 1"},
		SessionID: "sess-123",
	}}
	router := newTestRouter(answerer, &fakeStats{})

	body := strings.NewReader(`{"query": "what is in lesson 1?", "session_id": "sess-123"}`)
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/query", body))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200: %s", rec.Code, rec.Body.String())
	}
	if answerer.lastQuery != "what is in lesson 1?" {
		t.Errorf("query passed = %q", answerer.lastQuery)
	}
	if answerer.lastSession != "sess-123" {
		t.Errorf("session passed = %q", answerer.lastSession)
	}

	var resp core.Answer
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if resp.Text != "Lesson 1 covers embeddings." {
		t.Errorf("answer = %q", resp.Text)
	}
	if len(resp.Sources) != 1 || resp.Sources[0] != "Course A - Lesson 1" {
		t.Errorf("sources = %v", resp.Sources)
	}
	if resp.SessionID != "sess-123" {
		t.Errorf("session_id = %q", resp.SessionID)
	}
}

func TestQueryEndpointNilSourcesSerializedAsEmptyArray(t *testing.T) {
	answerer := &fakeAnswerer{answer: &core.Answer{Text: "direct answer", SessionID: "s"}}
	router := newTestRouter(answerer, &fakeStats{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/query",
		strings.NewReader(`{"query": "hi"}`)))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"sources":[]`) {
		t.Errorf("body = %s, want sources as empty array", rec.Body.String())
	}
}

func TestQueryEndpointBadRequests(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{name: "malformed json", body: `{"query": `},
		{name: "missing query", body: `{}`},
		{name: "empty query", body: `{"query": ""}`},
		{name: "whitespace query", body: `{"query": "   "}`},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := newTestRouter(&fakeAnswerer{}, &fakeStats{})
			rec := httptest.NewRecorder()
			router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/query",
				strings.NewReader(tt.body)))

			if rec.Code != http.StatusBadRequest {
				t.Errorf("status = %d, want 400", rec.Code)
			}
		})
	}
}

func TestQueryEndpointProviderError(t *testing.T) {
	answerer := &fakeAnswerer{err: fmt.Errorf("%w: connection refused", llm.ErrProvider)}
	router := newTestRouter(answerer, &fakeStats{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/query",
		strings.NewReader(`{"query": "q"}`)))

	if rec.Code != http.StatusBadGateway {
		t.Errorf("status = %d, want 502 on provider failure", rec.Code)
	}
}

func TestQueryEndpointInternalError(t *testing.T) {
	answerer := &fakeAnswerer{err: fmt.Errorf("database locked")}
	router := newTestRouter(answerer, &fakeStats{})

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/api/query",
		strings.NewReader(`{"query": "q"}`)))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500 on non-provider failure", rec.Code)
	}
}

func TestCoursesEndpoint(t *testing.T) {
	stats := &fakeStats{stats: &models.CourseStats{
		TotalCourses: 2,
		CourseTitles: []string{"Course A", "Course B"},
	}}
	router := newTestRouter(&fakeAnswerer{}, stats)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	var resp models.CourseStats
	if err := json.NewDecoder(rec.Body).Decode(&resp); err != nil {
		t.Fatalf("decode error = %v", err)
	}
	if resp.TotalCourses != 2 {
		t.Errorf("total_courses = %d, want 2", resp.TotalCourses)
	}
	if len(resp.CourseTitles) != 2 {
		t.Errorf("course_titles = %v", resp.CourseTitles)
	}
}

func TestCoursesEndpointEmptyCatalog(t *testing.T) {
	stats := &fakeStats{stats: &models.CourseStats{}}
	router := newTestRouter(&fakeAnswerer{}, stats)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses", nil))

	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), `"course_titles":[]`) {
		t.Errorf("body = %s, want course_titles as empty array", rec.Body.String())
	}
}

func TestCoursesEndpointError(t *testing.T) {
	stats := &fakeStats{err: fmt.Errorf("database locked")}
	router := newTestRouter(&fakeAnswerer{}, stats)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/api/courses", nil))

	if rec.Code != http.StatusInternalServerError {
		t.Errorf("status = %d, want 500", rec.Code)
	}
}
