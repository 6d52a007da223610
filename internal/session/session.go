// Package session keeps one mounted view per browser session in memory.
package session

import (
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/garnizeh/careerguide/internal/view"
)

// Session is the state of one browser. All access to the mounted view goes
// through the session lock.
type Session struct {
	ID string

	mu       sync.Mutex
	current  view.Instance
	lastSeen time.Time
}

func newSession(now time.Time) *Session {
	return &Session{ID: uuid.NewString(), lastSeen: now}
}

// mount makes k the mounted view. A different view kind replaces the previous
// instance; the same kind keeps it. Callers hold s.mu.
func (s *Session) mount(k view.Kind) view.Instance {
	if s.current == nil || s.current.Kind() != k {
		s.current = view.New(k)
	}
	return s.current
}

func (s *Session) touch(now time.Time) {
	s.mu.Lock()
	s.lastSeen = now
	s.mu.Unlock()
}

func (s *Session) idleSince() time.Time {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.lastSeen
}

// With mounts k if needed and runs fn on the mounted view under the session
// lock. fn must not block on the network.
func With[T view.Instance](s *Session, k view.Kind, fn func(T)) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if v, ok := s.mount(k).(T); ok {
		fn(v)
	}
}

// Update runs fn on the view only while the instance with the given id is
// still mounted. It reports false when the instance is gone and fn was not
// called.
func Update[T view.Instance](s *Session, id string, fn func(T)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.current == nil || s.current.ID() != id {
		return false
	}
	v, ok := s.current.(T)
	if !ok {
		return false
	}
	fn(v)
	return true
}
