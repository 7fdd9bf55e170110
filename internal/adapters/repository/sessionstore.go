package repository

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/okian/swiri/internal/domain/session"
	"github.com/okian/swiri/pkg/metrics"
)

// Store defaults.
const (
	DefaultTTL         = time.Hour
	DefaultMaxSessions = 1000
)

// SessionStore is a map-backed Store with idle expiry.
type SessionStore struct {
	mu          sync.RWMutex
	byID        map[string]*entry
	ttl         time.Duration
	maxSessions int
	now         func() time.Time
	newID       func() string
}

// entry tracks when a session was last touched by the store.
type entry struct {
	state    *session.State
	lastSeen time.Time
}

var _ Store = (*SessionStore)(nil)

// NewSessionStore constructs a session store with configuration options.
func NewSessionStore(opts ...Option) *SessionStore {
	s := &SessionStore{
		byID:        make(map[string]*entry),
		ttl:         DefaultTTL,
		maxSessions: DefaultMaxSessions,
		now:         time.Now,
		newID:       uuid.NewString,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Create implements Store.
func (s *SessionStore) Create(ctx context.Context, opts ...session.Option) (*session.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	id := s.newID()
	if id == "" {
		return nil, ErrInvalidID
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[id]; exists {
		return nil, fmt.Errorf("%w: duplicate id %q", ErrInvalidID, id)
	}
	if len(s.byID) >= s.maxSessions {
		s.evictOldestLocked()
	}
	st := session.New(id, opts...)
	s.byID[id] = &entry{state: st, lastSeen: s.now()}
	metrics.UpdateActiveSessions(len(s.byID))
	return st.Clone(), nil
}

// Get implements Store.
func (s *SessionStore) Get(ctx context.Context, id string) (*session.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.liveLocked(id)
	if err != nil {
		return nil, err
	}
	e.lastSeen = s.now()
	return e.state.Clone(), nil
}

// Update implements Store.
func (s *SessionStore) Update(ctx context.Context, id string, fn func(*session.State) error) (*session.State, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	e, err := s.liveLocked(id)
	if err != nil {
		return nil, err
	}
	e.lastSeen = s.now()
	if err := fn(e.state); err != nil {
		return e.state.Clone(), err
	}
	return e.state.Clone(), nil
}

// Delete implements Store.
func (s *SessionStore) Delete(ctx context.Context, id string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.byID[id]; !ok {
		return fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	delete(s.byID, id)
	metrics.UpdateActiveSessions(len(s.byID))
	return nil
}

// Count implements Store.
func (s *SessionStore) Count(_ context.Context) int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.byID)
}

// Sweep implements Store.
func (s *SessionStore) Sweep(_ context.Context) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	removed := 0
	for id, e := range s.byID {
		if s.expired(e, now) {
			delete(s.byID, id)
			removed++
		}
	}
	if removed > 0 {
		metrics.RecordSessionsExpired(removed)
	}
	metrics.UpdateActiveSessions(len(s.byID))
	return removed
}

// liveLocked returns the entry for id, dropping it if it has expired.
// Callers must hold the write lock.
func (s *SessionStore) liveLocked(id string) (*entry, error) {
	e, ok := s.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	if s.expired(e, s.now()) {
		delete(s.byID, id)
		metrics.RecordSessionsExpired(1)
		metrics.UpdateActiveSessions(len(s.byID))
		return nil, fmt.Errorf("%w: %s", ErrSessionNotFound, id)
	}
	return e, nil
}

func (s *SessionStore) expired(e *entry, now time.Time) bool {
	return now.Sub(e.lastSeen) > s.ttl
}

// evictOldestLocked removes the least recently seen session.
func (s *SessionStore) evictOldestLocked() {
	var (
		oldestID string
		oldestAt time.Time
	)
	for id, e := range s.byID {
		if oldestID == "" || e.lastSeen.Before(oldestAt) || (e.lastSeen.Equal(oldestAt) && id < oldestID) {
			oldestID, oldestAt = id, e.lastSeen
		}
	}
	if oldestID != "" {
		delete(s.byID, oldestID)
		metrics.RecordSessionsExpired(1)
	}
}
