package service

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

const sweepInterval = time.Minute

// SessionStore keeps reviewer sessions in memory, keyed by an opaque id.
type SessionStore struct {
	mu        sync.Mutex
	sessions  map[string]*Session
	deps      SessionDeps
	ttl       time.Duration
	now       func() time.Time
	newID     func() string
	lastSweep time.Time
	logger    *zap.Logger
}

// NewSessionStore constructs a store; sessions idle for longer than ttl are evicted.
func NewSessionStore(deps SessionDeps, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 2 * time.Hour
	}
	logger := deps.Logger
	if logger == nil {
		logger = zap.NewNop()
	}
	return &SessionStore{
		sessions: make(map[string]*Session),
		deps:     deps,
		ttl:      ttl,
		now:      time.Now,
		newID:    uuid.NewString,
		logger:   logger,
	}
}

// Acquire returns the live session for id or starts a new one. A new session fetches its
// date bounds in the background so the first page never waits on the date-range call; until
// they land, date inputs are left unclamped. The boolean reports whether a session was created.
func (s *SessionStore) Acquire(ctx context.Context, id string) (*Session, bool) {
	now := s.now()

	s.mu.Lock()
	s.sweepLocked(now)
	if sess, ok := s.sessions[id]; ok && id != "" {
		if !s.expired(sess, now) {
			sess.touch(now)
			s.mu.Unlock()
			return sess, false
		}
		delete(s.sessions, id)
	}
	sess := NewSession(s.newID(), s.deps)
	sess.touch(now)
	s.sessions[sess.ID()] = sess
	s.mu.Unlock()

	s.logger.Info("session started", zap.String("session_id", sess.ID()))
	go sess.LoadDateBounds(context.WithoutCancel(ctx))
	return sess, true
}

// Get looks up a live session without creating one.
func (s *SessionStore) Get(id string) (*Session, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	sess, ok := s.sessions[id]
	if !ok || s.expired(sess, s.now()) {
		return nil, false
	}
	return sess, true
}

// Len reports how many sessions are held.
func (s *SessionStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.sessions)
}

func (s *SessionStore) sweepLocked(now time.Time) {
	if now.Sub(s.lastSweep) < sweepInterval {
		return
	}
	s.lastSweep = now
	for id, sess := range s.sessions {
		if s.expired(sess, now) {
			delete(s.sessions, id)
			s.logger.Debug("session expired", zap.String("session_id", id))
		}
	}
}

func (s *SessionStore) expired(sess *Session, now time.Time) bool {
	return now.Sub(sess.lastSeenAt()) > s.ttl
}
