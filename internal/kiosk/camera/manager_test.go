package camera

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/clarityplus/kiosk/internal/common"
	"github.com/clarityplus/kiosk/internal/logging"
)

// countingDevice tracks Open/Close pairing so tests can verify the scoped
// acquisition discipline.
type countingDevice struct {
	mu     sync.Mutex
	opens  int
	closes int
	frame  Frame
	err    error
}

func (d *countingDevice) Open(Constraints) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.opens++
	return d.err
}

func (d *countingDevice) Frame() (Frame, error) {
	return d.frame, nil
}

func (d *countingDevice) Close() error {
	d.mu.Lock()
	defer d.mu.Unlock()
	d.closes++
	return nil
}

func (d *countingDevice) counts() (int, int) {
	d.mu.Lock()
	defer d.mu.Unlock()
	return d.opens, d.closes
}

func TestAcquire_Release_Pairing(t *testing.T) {
	dev := &countingDevice{frame: Frame{Data: []byte{1}, CapturedAt: time.Now()}}
	m := NewManager(dev, logging.NewNop())

	cap1, err := m.Acquire(context.Background(), "recognition", nil, Constraints{})
	require.NoError(t, err)
	require.Equal(t, "recognition", m.Holder())

	f, err := cap1.Snapshot()
	require.NoError(t, err)
	require.Equal(t, []byte{1}, f.Data)

	cap1.Release()
	cap1.Release() // idempotent
	require.Equal(t, "", m.Holder())

	opens, closes := dev.counts()
	require.Equal(t, 1, opens)
	require.Equal(t, 1, closes)
}

func TestSnapshot_AfterRelease_FailsWithNoFrame(t *testing.T) {
	dev := &countingDevice{}
	m := NewManager(dev, logging.NewNop())

	cap1, err := m.Acquire(context.Background(), "recognition", nil, Constraints{})
	require.NoError(t, err)
	cap1.Release()

	_, err = cap1.Snapshot()
	require.ErrorIs(t, err, common.ErrNoFrame)
}

func TestTryAcquire_BusyFailsFast(t *testing.T) {
	dev := &countingDevice{}
	m := NewManager(dev, logging.NewNop())

	cap1, err := m.Acquire(context.Background(), "recognition", nil, Constraints{})
	require.NoError(t, err)
	defer cap1.Release()

	_, err = m.TryAcquire("enrollment", nil, Constraints{})
	require.ErrorIs(t, err, common.ErrCameraBusy)
}

func TestAcquire_PreemptsCancelableHolder(t *testing.T) {
	dev := &countingDevice{}
	m := NewManager(dev, logging.NewNop())

	holderCtx, holderCancel := context.WithCancel(context.Background())
	cap1, err := m.Acquire(context.Background(), "recognition", holderCancel, Constraints{})
	require.NoError(t, err)

	// Simulate the holder's workflow: release when its context is canceled.
	done := make(chan struct{})
	go func() {
		<-holderCtx.Done()
		cap1.Release()
		close(done)
	}()

	cap2, err := m.Acquire(context.Background(), "enrollment", nil, Constraints{})
	require.NoError(t, err)
	<-done
	require.Equal(t, "enrollment", m.Holder())
	cap2.Release()

	opens, closes := dev.counts()
	require.Equal(t, 2, opens)
	require.Equal(t, 2, closes)
}

func TestAcquire_NonPreemptibleHolderReportsBusy(t *testing.T) {
	dev := &countingDevice{}
	m := NewManager(dev, logging.NewNop())

	cap1, err := m.Acquire(context.Background(), "recognition", nil, Constraints{})
	require.NoError(t, err)
	defer cap1.Release()

	_, err = m.Acquire(context.Background(), "enrollment", nil, Constraints{})
	require.ErrorIs(t, err, common.ErrCameraBusy)
}

func TestAcquire_CanceledWhileWaitingForRelease(t *testing.T) {
	dev := &countingDevice{}
	m := NewManager(dev, logging.NewNop())

	_, holderCancel := context.WithCancel(context.Background())
	_, err := m.Acquire(context.Background(), "recognition", holderCancel, Constraints{})
	require.NoError(t, err)

	// The holder never releases; the requester gives up via its own context.
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Millisecond)
	defer cancel()

	_, err = m.Acquire(ctx, "enrollment", nil, Constraints{})
	require.ErrorIs(t, err, context.DeadlineExceeded)
}

func TestAcquire_DeviceOpenFailure(t *testing.T) {
	dev := &countingDevice{err: common.ErrCameraUnavailable}
	m := NewManager(dev, logging.NewNop())

	_, err := m.Acquire(context.Background(), "recognition", nil, Constraints{})
	require.ErrorIs(t, err, common.ErrCameraUnavailable)
	require.Equal(t, "", m.Holder())
}
