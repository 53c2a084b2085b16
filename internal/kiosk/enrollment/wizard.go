// Package enrollment implements the staged enrollment wizard: welcome,
// name entry, a fixed sequence of pose captures, processing, success.
// The wizard holds the camera from the first capture until the run ends
// and releases it on every exit path.
package enrollment

import (
	"context"
	"fmt"
	"strings"
	"sync"

	"github.com/clarityplus/kiosk/internal/common"
	"github.com/clarityplus/kiosk/internal/kiosk/camera"
	"github.com/clarityplus/kiosk/internal/kiosk/remote"
	"github.com/clarityplus/kiosk/internal/logging"
)

// Stage is the wizard's current step.
type Stage string

const (
	StageWelcome    Stage = "welcome"
	StageName       Stage = "name_entry"
	StageCapture    Stage = "capture"
	StageProcessing Stage = "processing"
	StageSuccess    Stage = "success"
)

// Result is a completed enrollment.
type Result struct {
	UserID       string
	Name         string
	QualityScore float64
}

// Options configure a wizard run.
type Options struct {
	// Poses is the number of samples captured before processing.
	Poses int
	// Constraints are the capture parameters requested from the camera.
	Constraints camera.Constraints
}

// Wizard drives one enrollment session. All methods are safe for
// concurrent use; the UI and the view controller share one instance.
type Wizard struct {
	client remote.Client
	cam    *camera.Manager
	opts   Options
	log    logging.Logger

	mu      sync.Mutex
	stage   Stage
	name    string
	samples [][]byte
	capture *camera.Capture
	lastErr error
	result  *Result
}

func NewWizard(client remote.Client, cam *camera.Manager, opts Options, log logging.Logger) *Wizard {
	return &Wizard{
		client: client,
		cam:    cam,
		opts:   opts,
		log:    log.With("component", "enrollment"),
		stage:  StageWelcome,
	}
}

func (w *Wizard) Stage() Stage {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.stage
}

func (w *Wizard) Name() string {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.name
}

// SampleCount reports how many poses have been accepted so far.
func (w *Wizard) SampleCount() int {
	w.mu.Lock()
	defer w.mu.Unlock()
	return len(w.samples)
}

func (w *Wizard) Poses() int { return w.opts.Poses }

// LastError returns the most recent capture or submission failure, cleared
// on the next successful step.
func (w *Wizard) LastError() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.lastErr
}

// Result returns the completed enrollment, or nil before StageSuccess.
func (w *Wizard) Result() *Result {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.result
}

// Begin moves the wizard from the welcome screen to name entry.
func (w *Wizard) Begin() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageWelcome {
		return fmt.Errorf("begin from stage %s", w.stage)
	}
	w.stage = StageName
	return nil
}

// SetName records the enrollee's display name. A blank name is rejected
// and the wizard stays on name entry.
func (w *Wizard) SetName(name string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageName {
		return fmt.Errorf("set name from stage %s", w.stage)
	}
	name = strings.TrimSpace(name)
	if name == "" {
		return common.ErrNameRequired
	}
	w.name = name
	return nil
}

// BeginCapture acquires the camera and enters the capture stage. The
// preempt function is handed to the camera manager so a competing workflow
// winds this run down through its own cancellation path.
func (w *Wizard) BeginCapture(ctx context.Context, preempt context.CancelFunc) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageName {
		return fmt.Errorf("begin capture from stage %s", w.stage)
	}
	if w.name == "" {
		return common.ErrNameRequired
	}

	cap, err := w.cam.Acquire(ctx, "enrollment", preempt, w.opts.Constraints)
	if err != nil {
		return err
	}
	w.capture = cap
	w.stage = StageCapture
	w.lastErr = nil
	return nil
}

// CaptureSample takes one probe for the current pose. A frame without a
// face is reported, not stored, and the pose index does not advance.
// Accepting the final pose moves the wizard to processing; the camera stays
// held so a failed submission can resume capturing without re-acquiring.
func (w *Wizard) CaptureSample(ctx context.Context) (bool, error) {
	w.mu.Lock()
	if w.stage != StageCapture {
		w.mu.Unlock()
		return false, fmt.Errorf("capture from stage %s", w.stage)
	}
	cap := w.capture
	w.mu.Unlock()

	frame, err := cap.Snapshot()
	if err != nil {
		w.setErr(err)
		return false, err
	}

	det, err := w.client.DetectFace(ctx, frame.Data)
	if err != nil {
		w.setErr(err)
		return false, err
	}
	if !det.FaceDetected {
		w.log.Debug(ctx, "pose rejected, no face", "pose", w.SampleCount()+1)
		return false, nil
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	if w.stage != StageCapture {
		return false, fmt.Errorf("capture from stage %s", w.stage)
	}
	w.samples = append(w.samples, frame.Data)
	w.lastErr = nil
	if len(w.samples) == w.opts.Poses {
		w.stage = StageProcessing
	}
	return true, nil
}

// Submit sends the collected samples for enrollment. On success the camera
// is released and the wizard finishes. On any failure the samples are
// discarded and the wizard returns to the first pose with the name kept, so
// the enrollee retries the captures rather than the whole flow.
func (w *Wizard) Submit(ctx context.Context) (*Result, error) {
	w.mu.Lock()
	if w.stage != StageProcessing {
		stage := w.stage
		w.mu.Unlock()
		if stage == StageCapture {
			return nil, common.ErrSamplesIncomplete
		}
		return nil, fmt.Errorf("submit from stage %s", stage)
	}
	name := w.name
	samples := w.samples
	w.mu.Unlock()

	enr, err := w.client.EnrollFace(ctx, name, samples)
	if err == nil && !enr.Success {
		err = fmt.Errorf("enrolling %s: %w", name, common.ErrEnrollmentRejected)
	}
	if err != nil {
		w.log.Warn(ctx, "enrollment failed", "name", name, "error", err)
		w.mu.Lock()
		// A concurrent Cancel may have reset the wizard while the call was
		// in flight; only a wizard still processing goes back to capture.
		if w.stage == StageProcessing {
			w.samples = nil
			w.stage = StageCapture
			w.lastErr = err
		}
		w.mu.Unlock()
		return nil, err
	}

	w.mu.Lock()
	if w.stage != StageProcessing {
		stage := w.stage
		w.mu.Unlock()
		return nil, fmt.Errorf("enrollment canceled during submit, wizard at stage %s", stage)
	}
	cap := w.capture
	w.capture = nil
	w.result = &Result{UserID: enr.UserID, Name: enr.Name, QualityScore: enr.QualityScore}
	w.stage = StageSuccess
	w.lastErr = nil
	res := w.result
	w.mu.Unlock()

	if cap != nil {
		cap.Release()
	}
	w.log.Info(ctx, "enrollment complete", "user_id", res.UserID, "faces", enr.FacesProcessed)
	return res, nil
}

// Back steps the wizard one stage backwards. During capture it drops the
// most recent sample first; with no samples it returns to name entry and
// gives the camera back. Processing cannot be backed out of.
func (w *Wizard) Back() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch w.stage {
	case StageName:
		w.stage = StageWelcome
		return nil
	case StageCapture:
		if len(w.samples) > 0 {
			w.samples = w.samples[:len(w.samples)-1]
			return nil
		}
		if w.capture != nil {
			cap := w.capture
			w.capture = nil
			w.mu.Unlock()
			cap.Release()
			w.mu.Lock()
		}
		w.stage = StageName
		return nil
	default:
		return fmt.Errorf("back from stage %s", w.stage)
	}
}

// Cancel abandons the run, releases the camera, and resets the wizard to
// the welcome stage. Safe to call from any stage, including after a
// preemption by another workflow.
func (w *Wizard) Cancel() {
	w.mu.Lock()
	cap := w.capture
	w.capture = nil
	w.name = ""
	w.samples = nil
	w.result = nil
	w.lastErr = nil
	w.stage = StageWelcome
	w.mu.Unlock()

	if cap != nil {
		cap.Release()
	}
}

func (w *Wizard) setErr(err error) {
	w.mu.Lock()
	w.lastErr = err
	w.mu.Unlock()
}
