package session

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeChat struct {
	id int
}

func (f *fakeChat) Send(_ context.Context, _ string) (string, error) {
	return "", nil
}

func TestStorePutGet(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Close()

	_, ok := s.Get(1)
	assert.False(t, ok)

	chat := &fakeChat{id: 1}
	s.Put(1, chat)

	got, ok := s.Get(1)
	require.True(t, ok)
	assert.Same(t, chat, got)
	assert.Equal(t, 1, s.Len())

	// Replacing keeps one session per user.
	replacement := &fakeChat{id: 2}
	s.Put(1, replacement)
	got, ok = s.Get(1)
	require.True(t, ok)
	assert.Same(t, replacement, got)
	assert.Equal(t, 1, s.Len())
}

func TestStoreEvict(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Close()

	s.Put(7, &fakeChat{})
	s.Evict(7)
	_, ok := s.Get(7)
	assert.False(t, ok)

	// Evicting an absent session is a no-op.
	s.Evict(7)
}

func TestStoreSweep(t *testing.T) {
	s := NewStore(time.Minute)
	defer s.Close()

	s.Put(1, &fakeChat{})
	s.Put(2, &fakeChat{})

	// Touch user 1 so only user 2 goes stale.
	_, ok := s.Get(1)
	require.True(t, ok)

	s.mu.Lock()
	s.entries[2].lastSeen = time.Now().Add(-2 * time.Minute)
	s.mu.Unlock()

	s.sweep(time.Now())

	_, ok = s.Get(1)
	assert.True(t, ok)
	_, ok = s.Get(2)
	assert.False(t, ok)
}

func TestStoreDefaultTTL(t *testing.T) {
	s := NewStore(0)
	defer s.Close()
	assert.Equal(t, DefaultTTL, s.ttl)
}
