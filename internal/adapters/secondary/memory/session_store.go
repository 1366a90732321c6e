// Package memory keeps editor sessions in process memory.
package memory

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"

	"deck-thumbnail-service/internal/core/domain"
	"deck-thumbnail-service/internal/core/editor"
	ports "deck-thumbnail-service/internal/core/ports/output"
)

type sessionStore struct {
	mu       sync.Mutex
	sessions map[uuid.UUID]*editor.Session
	ttl      time.Duration
	now      func() time.Time
}

// NewSessionStore creates a session store. Sessions untouched for ttl are
// dropped lazily; a zero ttl keeps them forever.
func NewSessionStore(ttl time.Duration) ports.SessionStore {
	return newSessionStore(ttl, time.Now)
}

func newSessionStore(ttl time.Duration, now func() time.Time) *sessionStore {
	return &sessionStore{
		sessions: make(map[uuid.UUID]*editor.Session),
		ttl:      ttl,
		now:      now,
	}
}

func (s *sessionStore) Create(_ context.Context, sess *editor.Session) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.evictLocked()
	s.sessions[sess.ID] = sess.Clone()
	return nil
}

func (s *sessionStore) Get(_ context.Context, id uuid.UUID) (*editor.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}
	return sess.Clone(), nil
}

func (s *sessionStore) Update(_ context.Context, id uuid.UUID, fn func(*editor.Session) error) (*editor.Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	stored, err := s.getLocked(id)
	if err != nil {
		return nil, err
	}

	working := stored.Clone()
	if err := fn(working); err != nil {
		return nil, err
	}
	working.ID = id
	working.UpdatedAt = s.now()
	s.sessions[id] = working

	return working.Clone(), nil
}

func (s *sessionStore) Delete(_ context.Context, id uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.sessions[id]; !ok {
		return domain.ErrSessionNotFound
	}
	delete(s.sessions, id)
	return nil
}

func (s *sessionStore) getLocked(id uuid.UUID) (*editor.Session, error) {
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess) {
		delete(s.sessions, id)
		return nil, domain.ErrSessionNotFound
	}
	return sess, nil
}

func (s *sessionStore) expired(sess *editor.Session) bool {
	return s.ttl > 0 && s.now().Sub(sess.UpdatedAt) > s.ttl
}

func (s *sessionStore) evictLocked() {
	for id, sess := range s.sessions {
		if s.expired(sess) {
			delete(s.sessions, id)
		}
	}
}
