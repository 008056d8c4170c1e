package storage

import (
	"sync"
	"time"

	"github.com/aliskhannn/vocab-companion/internal/domain/entities"
)

// ReviewSession tracks the cards graded in one /review run of a chat.
type ReviewSession struct {
	StartedAt time.Time
	Reviewed  int
	ByGrade   map[entities.ReviewGrade]int
}

// SessionStorage provides in-memory storage for review sessions by chat ID.
type SessionStorage struct {
	mu       sync.RWMutex
	sessions map[int64]*ReviewSession
}

// NewSessionStorage creates a new SessionStorage.
func NewSessionStorage() *SessionStorage {
	return &SessionStorage{
		sessions: make(map[int64]*ReviewSession),
	}
}

// Start begins a new session for chatID, replacing any previous one.
func (s *SessionStorage) Start(chatID int64, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.sessions[chatID] = &ReviewSession{
		StartedAt: now,
		ByGrade:   make(map[entities.ReviewGrade]int),
	}
}

// Record counts a graded card. A session is started implicitly when a card
// is graded without one (e.g. from a reminder).
func (s *SessionStorage) Record(chatID int64, grade entities.ReviewGrade, now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		sess = &ReviewSession{StartedAt: now, ByGrade: make(map[entities.ReviewGrade]int)}
		s.sessions[chatID] = sess
	}
	sess.Reviewed++
	sess.ByGrade[grade]++
}

// Finish removes and returns the session of chatID.
func (s *SessionStorage) Finish(chatID int64) (ReviewSession, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	sess, ok := s.sessions[chatID]
	if !ok {
		return ReviewSession{}, false
	}
	delete(s.sessions, chatID)
	return *sess, true
}
