// ABOUTME: SessionStore keeps bounded in-memory conversation history
// ABOUTME: FIFO eviction beyond 2×MaxHistory turns, per-session locking
package core

import (
	"sync"

	"github.com/google/uuid"
	"github.com/harper/courserag/internal/models"
)

// SessionStore holds per-session history for the lifetime of the process.
// Each exchange appends a (user, assistant) turn pair; once the retained
// turns exceed twice the history bound, the oldest are evicted first.
type SessionStore struct {
	mu         sync.Mutex
	sessions   map[string]*session
	maxHistory int
}

type session struct {
	mu    sync.Mutex
	turns []models.Turn
}

// NewSessionStore creates a SessionStore retaining maxHistory exchange pairs
func NewSessionStore(maxHistory int) *SessionStore {
	return &SessionStore{
		sessions:   make(map[string]*session),
		maxHistory: maxHistory,
	}
}

// NewSession allocates a fresh session id
func (s *SessionStore) NewSession() string {
	id := uuid.NewString()
	s.mu.Lock()
	s.sessions[id] = &session{}
	s.mu.Unlock()
	return id
}

// GetHistory returns a copy of the retained turns for a session, oldest
// first. Unknown sessions have empty history.
func (s *SessionStore) GetHistory(sessionID string) []models.Turn {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	s.mu.Unlock()
	if !ok {
		return nil
	}

	sess.mu.Lock()
	defer sess.mu.Unlock()
	turns := make([]models.Turn, len(sess.turns))
	copy(turns, sess.turns)
	return turns
}

// Append records one completed exchange. The session is created lazily if
// the id is unknown; the per-session lock serializes concurrent appends so
// interleaved requests cannot lose updates.
func (s *SessionStore) Append(sessionID, userText, assistantText string) {
	s.mu.Lock()
	sess, ok := s.sessions[sessionID]
	if !ok {
		sess = &session{}
		s.sessions[sessionID] = sess
	}
	s.mu.Unlock()

	sess.mu.Lock()
	defer sess.mu.Unlock()

	sess.turns = append(sess.turns,
		models.Turn{Role: models.RoleUser, Content: userText},
		models.Turn{Role: models.RoleAssistant, Content: assistantText},
	)

	limit := 2 * s.maxHistory
	if len(sess.turns) > limit {
		sess.turns = sess.turns[len(sess.turns)-limit:]
	}
}
