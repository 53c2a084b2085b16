package recognition

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/clarityplus/kiosk/internal/common"
	"github.com/clarityplus/kiosk/internal/kiosk/camera"
	"github.com/clarityplus/kiosk/internal/kiosk/remote"
	"github.com/clarityplus/kiosk/internal/logging"
)

type stubDevice struct {
	frameErr error
}

func (d *stubDevice) Open(camera.Constraints) error { return nil }
func (d *stubDevice) Close() error                  { return nil }
func (d *stubDevice) Frame() (camera.Frame, error) {
	if d.frameErr != nil {
		return camera.Frame{}, d.frameErr
	}
	return camera.Frame{Data: []byte("jpeg"), CapturedAt: time.Now()}, nil
}

type fakeClient struct {
	remote.Client
	detectCalls    int
	recognizeCalls int
	detect         func(call int) (*remote.Detection, error)
	recognize      func(call int) (*remote.Recognition, error)
}

func (f *fakeClient) DetectFace(ctx context.Context, image []byte) (*remote.Detection, error) {
	f.detectCalls++
	return f.detect(f.detectCalls)
}

func (f *fakeClient) RecognizeFace(ctx context.Context, image []byte) (*remote.Recognition, error) {
	f.recognizeCalls++
	return f.recognize(f.recognizeCalls)
}

func newOrchestrator(c remote.Client, dev camera.Device) (*Orchestrator, *camera.Manager) {
	m := camera.NewManager(dev, logging.NewNop())
	o := NewOrchestrator(c, m, Options{Attempts: 3, Backoff: time.Millisecond}, logging.NewNop())
	return o, m
}

func TestRun_MatchOnFirstProbe(t *testing.T) {
	fc := &fakeClient{
		detect: func(int) (*remote.Detection, error) {
			return &remote.Detection{FaceDetected: true}, nil
		},
		recognize: func(int) (*remote.Recognition, error) {
			return &remote.Recognition{Match: true, MatchType: "strong", UserID: "u-1", Name: "Ada", Confidence: 0.93}, nil
		},
	}
	o, m := newOrchestrator(fc, &stubDevice{})

	out, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, out.Kind)
	assert.Equal(t, "u-1", out.UserID)
	assert.Equal(t, "Ada", out.Name)
	assert.InDelta(t, 0.93, out.Confidence, 1e-9)
	assert.Equal(t, 1, fc.detectCalls)
	assert.Equal(t, 1, fc.recognizeCalls)
	assert.Equal(t, "", m.Holder(), "camera must be released after the run")
}

func TestRun_NoFaceExhaustsProbesWithoutRecognize(t *testing.T) {
	fc := &fakeClient{
		detect: func(int) (*remote.Detection, error) {
			return &remote.Detection{FaceDetected: false}, nil
		},
		recognize: func(int) (*remote.Recognition, error) {
			t.Fatal("recognize must not run when no face is detected")
			return nil, nil
		},
	}
	o, m := newOrchestrator(fc, &stubDevice{})

	out, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoFaceDetected, out.Kind)
	assert.Equal(t, 3, fc.detectCalls)
	assert.Equal(t, 0, fc.recognizeCalls)
	assert.Equal(t, "", m.Holder())
}

func TestRun_FaceAppearsOnLaterProbe(t *testing.T) {
	fc := &fakeClient{
		detect: func(call int) (*remote.Detection, error) {
			return &remote.Detection{FaceDetected: call == 3}, nil
		},
		recognize: func(int) (*remote.Recognition, error) {
			return &remote.Recognition{MatchType: "unknown", Confidence: 0.31}, nil
		},
	}
	o, _ := newOrchestrator(fc, &stubDevice{})

	out, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnmatchedStrong, out.Kind)
	assert.Equal(t, 3, fc.detectCalls)
	assert.Equal(t, 1, fc.recognizeCalls)
}

func TestRun_DetectorOutageFallsThroughToRecognize(t *testing.T) {
	fc := &fakeClient{
		detect: func(int) (*remote.Detection, error) {
			return nil, fmt.Errorf("post detect: %w", common.ErrServiceUnavailable)
		},
		recognize: func(int) (*remote.Recognition, error) {
			return &remote.Recognition{Match: true, MatchType: "strong", UserID: "u-2", Name: "Grace", Confidence: 0.88}, nil
		},
	}
	o, _ := newOrchestrator(fc, &stubDevice{})

	out, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeMatched, out.Kind)
	assert.Equal(t, "u-2", out.UserID)
	assert.Equal(t, 1, fc.recognizeCalls)
}

func TestRun_RecognizerUnavailableIsAnOutcome(t *testing.T) {
	fc := &fakeClient{
		detect: func(int) (*remote.Detection, error) {
			return &remote.Detection{FaceDetected: true}, nil
		},
		recognize: func(int) (*remote.Recognition, error) {
			return nil, fmt.Errorf("post recognize: %w", common.ErrServiceUnavailable)
		},
	}
	o, m := newOrchestrator(fc, &stubDevice{})

	out, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeServiceUnavailable, out.Kind)
	assert.Equal(t, "", m.Holder())
}

func TestRun_WeakMatchDoesNotIdentify(t *testing.T) {
	fc := &fakeClient{
		detect: func(int) (*remote.Detection, error) {
			return &remote.Detection{FaceDetected: true}, nil
		},
		recognize: func(int) (*remote.Recognition, error) {
			return &remote.Recognition{Match: true, MatchType: "weak", UserID: "u-3", Name: "Lin", Confidence: 0.52}, nil
		},
	}
	o, _ := newOrchestrator(fc, &stubDevice{})

	out, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeUnmatchedWeak, out.Kind)
	assert.Equal(t, "", out.UserID, "a weak match must not carry an identity")
}

func TestRun_NoEnrolledUsers(t *testing.T) {
	fc := &fakeClient{
		detect: func(int) (*remote.Detection, error) {
			return &remote.Detection{FaceDetected: true}, nil
		},
		recognize: func(int) (*remote.Recognition, error) {
			return &remote.Recognition{MatchType: "no_users"}, nil
		},
	}
	o, _ := newOrchestrator(fc, &stubDevice{})

	out, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoEnrolledUsers, out.Kind)
}

func TestRun_SnapshotFailureSpendsProbe(t *testing.T) {
	fc := &fakeClient{
		detect: func(int) (*remote.Detection, error) {
			t.Fatal("detect must not run without a frame")
			return nil, nil
		},
	}
	o, _ := newOrchestrator(fc, &stubDevice{frameErr: errors.New("sensor read")})

	out, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoFaceDetected, out.Kind)
	assert.Equal(t, 0, fc.detectCalls)
}

func TestRun_CancelReleasesCamera(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	fc := &fakeClient{
		detect: func(int) (*remote.Detection, error) {
			cancel()
			return &remote.Detection{FaceDetected: false}, nil
		},
	}
	o, m := newOrchestrator(fc, &stubDevice{})

	_, err := o.Run(ctx)
	require.ErrorIs(t, err, context.Canceled)
	assert.Equal(t, "", m.Holder(), "cancellation must still release the camera")
}

func TestRun_NonPositiveAttemptsStillBounded(t *testing.T) {
	fc := &fakeClient{
		detect: func(int) (*remote.Detection, error) {
			return &remote.Detection{FaceDetected: false}, nil
		},
	}
	m := camera.NewManager(&stubDevice{}, logging.NewNop())
	o := NewOrchestrator(fc, m, Options{Attempts: 0, Backoff: time.Millisecond}, logging.NewNop())

	out, err := o.Run(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeNoFaceDetected, out.Kind)
	assert.Equal(t, 1, fc.detectCalls, "a misconfigured attempt count must clamp to one probe")
}

func TestRun_CameraUnavailable(t *testing.T) {
	dir := t.TempDir()
	dev := camera.NewFileDevice(dir)
	m := camera.NewManager(dev, logging.NewNop())
	o := NewOrchestrator(&fakeClient{}, m, Options{Attempts: 3, Backoff: time.Millisecond}, logging.NewNop())

	_, err := o.Run(context.Background())
	require.ErrorIs(t, err, common.ErrCameraUnavailable)
}
