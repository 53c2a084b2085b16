package session

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestNew_StartsIdleWithoutUser(t *testing.T) {
	s := New()
	require.Equal(t, ModeIdle, s.Mode())
	require.Nil(t, s.User())
	require.NotEmpty(t, s.ID())
}

func TestSetMode_IdleClearsUser(t *testing.T) {
	s := New()
	s.SetUser(User{ID: "u-1", Name: "Dana", Confidence: 0.8})
	s.SetMode(ModeAnalysis)
	require.NotNil(t, s.User())

	s.SetMode(ModeIdle)
	require.Nil(t, s.User(), "idle must never carry an identified user")
}

func TestUser_ReturnsCopy(t *testing.T) {
	s := New()
	s.SetUser(User{ID: "u-1", Name: "Dana"})

	u := s.User()
	u.Name = "mutated"
	require.Equal(t, "Dana", s.User().Name)
}

func TestSubscribe_NotifiesOnChanges(t *testing.T) {
	s := New()
	var calls int
	unsub := s.Subscribe(func() { calls++ })

	s.SetMode(ModeEnrollment)
	s.SetUser(User{ID: "u-1"})
	require.Equal(t, 2, calls)

	// Unchanged mode does not notify.
	s.SetMode(ModeEnrollment)
	require.Equal(t, 2, calls)

	unsub()
	s.SetMode(ModeIdle)
	require.Equal(t, 2, calls)
}

func TestSubscriberMayReadSession(t *testing.T) {
	s := New()
	var seen Mode
	s.Subscribe(func() { seen = s.Mode() })

	s.SetMode(ModeAnalysis)
	require.Equal(t, ModeAnalysis, seen)
}
