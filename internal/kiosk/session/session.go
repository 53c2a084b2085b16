// Package session holds the kiosk's ephemeral top-level state: the current
// interaction mode and, once someone is identified, the active user. One
// Session exists per process; it is owned by the view controller and passed
// by reference, never shared as a global.
package session

import (
	"sync"

	"github.com/google/uuid"
)

// Mode is the kiosk's top-level interaction mode.
type Mode string

const (
	ModeIdle       Mode = "idle"
	ModeEnrollment Mode = "enrollment"
	ModeAnalysis   Mode = "analysis"
)

// User is the identified kiosk user for the current interaction.
type User struct {
	ID         string
	Name       string
	Confidence float64
}

// Session is the ephemeral application state. Mutations notify subscribers;
// callbacks run outside the lock, so subscribers may read the session.
type Session struct {
	mu   sync.RWMutex
	id   string
	mode Mode
	user *User
	subs map[int]func()
	next int
}

func New() *Session {
	return &Session{
		id:   uuid.NewString(),
		mode: ModeIdle,
		subs: map[int]func(){},
	}
}

// ID is the process-lifetime session identifier, used for log correlation.
func (s *Session) ID() string { return s.id }

func (s *Session) Mode() Mode {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.mode
}

// User returns a copy of the active user, or nil if nobody is identified.
func (s *Session) User() *User {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.user == nil {
		return nil
	}
	u := *s.user
	return &u
}

func (s *Session) SetMode(m Mode) {
	s.mu.Lock()
	changed := s.mode != m
	s.mode = m
	if m == ModeIdle {
		// Idle never carries an identified user.
		s.user = nil
	}
	s.mu.Unlock()
	if changed {
		s.notify()
	}
}

func (s *Session) SetUser(u User) {
	s.mu.Lock()
	s.user = &u
	s.mu.Unlock()
	s.notify()
}

// Reset returns the session to idle with no active user.
func (s *Session) Reset() {
	s.SetMode(ModeIdle)
}

// Subscribe registers fn to run after every state change. The returned
// function removes the subscription.
func (s *Session) Subscribe(fn func()) func() {
	s.mu.Lock()
	id := s.next
	s.next++
	s.subs[id] = fn
	s.mu.Unlock()

	return func() {
		s.mu.Lock()
		delete(s.subs, id)
		s.mu.Unlock()
	}
}

func (s *Session) notify() {
	s.mu.RLock()
	fns := make([]func(), 0, len(s.subs))
	for _, fn := range s.subs {
		fns = append(fns, fn)
	}
	s.mu.RUnlock()

	for _, fn := range fns {
		fn()
	}
}
