// Package session keeps per-user conversational sessions. The store is
// safe for concurrent use and evicts idle sessions after a TTL, so the
// map cannot grow without bound across long process lifetimes.
package session

import (
	"context"
	"sync"
	"time"
)

// Chat is the conversational handle kept per user.
type Chat interface {
	Send(ctx context.Context, message string) (string, error)
}

// DefaultTTL is how long an idle session survives before eviction.
const DefaultTTL = 30 * time.Minute

type entry struct {
	chat     Chat
	lastSeen time.Time
}

// Store maps user ids to open chat sessions.
type Store struct {
	mu      sync.Mutex
	ttl     time.Duration
	entries map[int]*entry
	done    chan struct{}
	once    sync.Once
}

// NewStore creates a session store and starts its eviction janitor.
// A non-positive ttl falls back to DefaultTTL.
func NewStore(ttl time.Duration) *Store {
	if ttl <= 0 {
		ttl = DefaultTTL
	}
	s := &Store{
		ttl:     ttl,
		entries: make(map[int]*entry),
		done:    make(chan struct{}),
	}
	go s.janitor()
	return s
}

// Get returns the session for a user and refreshes its idle timer.
func (s *Store) Get(userID int) (Chat, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	e, ok := s.entries[userID]
	if !ok {
		return nil, false
	}
	e.lastSeen = time.Now()
	return e.chat, true
}

// Put stores the session for a user, replacing any existing one.
func (s *Store) Put(userID int, chat Chat) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries[userID] = &entry{chat: chat, lastSeen: time.Now()}
}

// Evict drops the session for a user.
func (s *Store) Evict(userID int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.entries, userID)
}

// Len returns the number of open sessions.
func (s *Store) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Close stops the eviction janitor. Safe to call more than once.
func (s *Store) Close() {
	s.once.Do(func() {
		close(s.done)
	})
}

func (s *Store) janitor() {
	ticker := time.NewTicker(s.ttl / 2)
	defer ticker.Stop()
	for {
		select {
		case <-s.done:
			return
		case <-ticker.C:
			s.sweep(time.Now())
		}
	}
}

func (s *Store) sweep(now time.Time) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for id, e := range s.entries {
		if now.Sub(e.lastSeen) > s.ttl {
			delete(s.entries, id)
		}
	}
}
