// Package analysis holds the active user's wellness analysis result and its
// lifecycle: requested, ready, failed, dismissed. Scoring happens on the
// backend; this store renders what it is given and never recomputes weights.
package analysis

import (
	"context"
	"sync"
	"time"

	"github.com/clarityplus/kiosk/internal/kiosk/remote"
	"github.com/clarityplus/kiosk/internal/logging"
)

// State describes where the analysis for the active user stands.
type State string

const (
	// StateNone means no analysis has been requested this session.
	StateNone State = "none"
	// StatePending means the request is in flight.
	StatePending State = "pending"
	// StateReady means a result is available for display.
	StateReady State = "ready"
	// StateFailed means the request ended in an error.
	StateFailed State = "failed"
)

// View is an immutable snapshot of the store for rendering.
type View struct {
	UserID string
	State  State
	Result *remote.Analysis
	Err    error
}

// Store owns one user's analysis at a time. Fetch is idempotent per user;
// switching users or clearing discards any in-flight request's result.
type Store struct {
	client   remote.Client
	log      logging.Logger
	ttl      time.Duration
	onExpire func()

	mu     sync.Mutex
	gen    int
	userID string
	state  State
	result *remote.Analysis
	err    error
	timer  *time.Timer
}

// NewStore builds a store. A positive ttl arms an auto-dismiss timer each
// time a result lands; onExpire fires when it elapses. A zero ttl disables
// auto-dismiss and results stay until dismissed or the session ends.
func NewStore(client remote.Client, ttl time.Duration, onExpire func(), log logging.Logger) *Store {
	return &Store{
		client:   client,
		log:      log.With("component", "analysis"),
		ttl:      ttl,
		onExpire: onExpire,
		state:    StateNone,
	}
}

// OnExpire installs the auto-dismiss callback. The store and its consumer
// reference each other, so the callback is wired after construction.
func (s *Store) OnExpire(fn func()) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.onExpire = fn
}

// Fetch requests an analysis for userID and blocks until it resolves. A
// second call for the same user while one is pending or resolved is a
// no-op, so retriggering a session never duplicates backend work. A call
// for a different user starts over.
func (s *Store) Fetch(ctx context.Context, userID string) {
	s.mu.Lock()
	if s.userID == userID && s.state != StateNone && s.state != StateFailed {
		s.mu.Unlock()
		return
	}
	s.stopTimerLocked()
	s.gen++
	gen := s.gen
	s.userID = userID
	s.state = StatePending
	s.result = nil
	s.err = nil
	s.mu.Unlock()

	res, err := s.client.TriggerAnalysis(ctx, userID)

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.gen != gen {
		// The session moved on while the call was in flight.
		return
	}
	if err != nil {
		s.log.Warn(ctx, "analysis failed", "user_id", userID, "error", err)
		s.state = StateFailed
		s.err = err
		return
	}
	s.state = StateReady
	s.result = res
	s.log.Info(ctx, "analysis ready", "user_id", userID, "overall", res.OverallScore)
	if s.ttl > 0 {
		s.timer = time.AfterFunc(s.ttl, s.expire(gen))
	}
}

// Retry re-requests a failed analysis for the current user.
func (s *Store) Retry(ctx context.Context) {
	s.mu.Lock()
	userID := s.userID
	failed := s.state == StateFailed
	s.mu.Unlock()
	if !failed || userID == "" {
		return
	}
	s.Fetch(ctx, userID)
}

// Snapshot returns the current state for rendering.
func (s *Store) Snapshot() View {
	s.mu.Lock()
	defer s.mu.Unlock()
	return View{UserID: s.userID, State: s.state, Result: s.result, Err: s.err}
}

// Dismiss drops the current result and stops the auto-dismiss timer. The
// user stays active; a later Fetch for the same user starts fresh.
func (s *Store) Dismiss() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
}

// Clear resets the store completely, used when the session returns to idle.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.clearLocked()
	s.userID = ""
}

func (s *Store) clearLocked() {
	s.stopTimerLocked()
	s.gen++
	s.state = StateNone
	s.result = nil
	s.err = nil
}

func (s *Store) stopTimerLocked() {
	if s.timer != nil {
		s.timer.Stop()
		s.timer = nil
	}
}

// expire builds the timer callback bound to one result generation, so a
// stale timer can never dismiss a newer result.
func (s *Store) expire(gen int) func() {
	return func() {
		s.mu.Lock()
		if s.gen != gen {
			s.mu.Unlock()
			return
		}
		s.clearLocked()
		fn := s.onExpire
		s.mu.Unlock()
		if fn != nil {
			fn()
		}
	}
}
