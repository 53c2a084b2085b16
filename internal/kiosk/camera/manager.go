package camera

import (
	"context"
	"fmt"
	"sync"

	"github.com/clarityplus/kiosk/internal/common"
	"github.com/clarityplus/kiosk/internal/logging"
)

// Manager arbitrates exclusive access to the capture device.
//
// Acquisition policy: when a workflow requests the camera while another
// holds it, the manager invokes the holder's preempt function (its workflow
// cancel) and waits for the holder's release to complete before opening the
// device for the new owner. Preemption is cooperative; the holder's
// cancellation path runs to completion, never a forced teardown mid-call.
type Manager struct {
	mu     sync.Mutex
	dev    Device
	log    logging.Logger
	holder *Capture
}

func NewManager(dev Device, log logging.Logger) *Manager {
	return &Manager{dev: dev, log: log.With("component", "camera")}
}

// Capture is a scoped acquisition of the camera. Release is idempotent and
// safe on every exit path; Snapshot fails once the capture is released.
type Capture struct {
	m        *Manager
	owner    string
	preempt  context.CancelFunc
	once     sync.Once
	released chan struct{}
}

// Acquire obtains exclusive camera access for owner. The preempt function
// is invoked when a later workflow needs the camera; pass the owning
// workflow's cancel so it can wind down. A nil preempt makes this
// acquisition non-preemptible and later callers fail with ErrCameraBusy.
func (m *Manager) Acquire(ctx context.Context, owner string, preempt context.CancelFunc, c Constraints) (*Capture, error) {
	for {
		m.mu.Lock()
		if m.holder == nil {
			cap, err := m.acquireLocked(owner, preempt, c)
			m.mu.Unlock()
			return cap, err
		}
		h := m.holder
		m.mu.Unlock()

		if h.preempt == nil {
			return nil, fmt.Errorf("camera held by %s: %w", h.owner, common.ErrCameraBusy)
		}

		m.log.Info(ctx, "preempting camera holder", "holder", h.owner, "requester", owner)
		h.preempt()

		select {
		case <-h.released:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
}

// TryAcquire is Acquire without the forced-release policy: it fails fast
// with ErrCameraBusy when any workflow holds the camera.
func (m *Manager) TryAcquire(owner string, preempt context.CancelFunc, c Constraints) (*Capture, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.holder != nil {
		return nil, fmt.Errorf("camera held by %s: %w", m.holder.owner, common.ErrCameraBusy)
	}
	return m.acquireLocked(owner, preempt, c)
}

// acquireLocked opens the device and installs the new holder. Caller holds m.mu.
func (m *Manager) acquireLocked(owner string, preempt context.CancelFunc, c Constraints) (*Capture, error) {
	if err := m.dev.Open(c); err != nil {
		return nil, fmt.Errorf("opening capture device: %w", err)
	}
	cap := &Capture{
		m:        m,
		owner:    owner,
		preempt:  preempt,
		released: make(chan struct{}),
	}
	m.holder = cap
	return cap, nil
}

// Holder reports the owner currently holding the camera, or "".
func (m *Manager) Holder() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.holder == nil {
		return ""
	}
	return m.holder.owner
}

func (c *Capture) Owner() string { return c.owner }

// Snapshot returns the device's latest frame. After Release it fails with
// ErrNoFrame.
func (c *Capture) Snapshot() (Frame, error) {
	select {
	case <-c.released:
		return Frame{}, common.ErrNoFrame
	default:
	}
	return c.m.dev.Frame()
}

// Release closes the device and hands the camera back. Safe to call any
// number of times; only the first call has an effect.
func (c *Capture) Release() {
	c.once.Do(func() {
		_ = c.m.dev.Close()

		c.m.mu.Lock()
		if c.m.holder == c {
			c.m.holder = nil
		}
		c.m.mu.Unlock()

		close(c.released)
	})
}
