// Package view is the kiosk's orchestration core. The Controller owns the
// top-level state machine: an idle scanning loop feeding recognition
// outcomes, the enrollment wizard, and the analysis result lifecycle. The
// UI renders snapshots of this state and calls back into the controller; it
// never talks to the backend or the camera directly.
package view

import (
	"context"
	"errors"
	"sync"
	"time"

	"github.com/clarityplus/kiosk/internal/common"
	"github.com/clarityplus/kiosk/internal/kiosk/analysis"
	"github.com/clarityplus/kiosk/internal/kiosk/enrollment"
	"github.com/clarityplus/kiosk/internal/kiosk/recognition"
	"github.com/clarityplus/kiosk/internal/kiosk/remote"
	"github.com/clarityplus/kiosk/internal/kiosk/session"
	"github.com/clarityplus/kiosk/internal/logging"
)

// WizardView is the render snapshot of the enrollment wizard.
type WizardView struct {
	Stage   enrollment.Stage
	Name    string
	Samples int
	Poses   int
	Err     string
	Result  *enrollment.Result
}

// State is one consistent snapshot of everything the UI renders.
type State struct {
	Mode     session.Mode
	User     *session.User
	Scanning bool
	LastScan recognition.OutcomeKind
	Notice   string
	Wizard   WizardView
	Analysis analysis.View
}

// Options configure the controller.
type Options struct {
	// IdleRescanDelay is the pause between recognition scans while idle.
	IdleRescanDelay time.Duration
}

// Controller wires the session, recognition loop, enrollment wizard, and
// analysis store together and exposes them as one state machine.
type Controller struct {
	sess  *session.Session
	rec   *recognition.Orchestrator
	wiz   *enrollment.Wizard
	store *analysis.Store
	opts  Options
	log   logging.Logger

	mu       sync.Mutex
	ctx      context.Context
	scanning bool
	lastScan recognition.OutcomeKind
	notice   string

	updates chan struct{}
	kick    chan struct{}
}

func NewController(sess *session.Session, rec *recognition.Orchestrator, wiz *enrollment.Wizard, store *analysis.Store, opts Options, log logging.Logger) *Controller {
	c := &Controller{
		sess:    sess,
		rec:     rec,
		wiz:     wiz,
		store:   store,
		opts:    opts,
		log:     log.With("component", "view"),
		ctx:     context.Background(),
		updates: make(chan struct{}, 1),
		kick:    make(chan struct{}, 1),
	}
	sess.Subscribe(c.publish)
	return c
}

// Updates signals after every state change. The channel is conflated: a
// slow reader sees at least one signal, never a backlog.
func (c *Controller) Updates() <-chan struct{} { return c.updates }

func (c *Controller) publish() {
	select {
	case c.updates <- struct{}{}:
	default:
	}
}

func (c *Controller) wake() {
	select {
	case c.kick <- struct{}{}:
	default:
	}
}

// Snapshot assembles the current render state.
func (c *Controller) Snapshot() State {
	c.mu.Lock()
	scanning, lastScan, notice := c.scanning, c.lastScan, c.notice
	c.mu.Unlock()

	return State{
		Mode:     c.sess.Mode(),
		User:     c.sess.User(),
		Scanning: scanning,
		LastScan: lastScan,
		Notice:   notice,
		Wizard: WizardView{
			Stage:   c.wiz.Stage(),
			Name:    c.wiz.Name(),
			Samples: c.wiz.SampleCount(),
			Poses:   c.wiz.Poses(),
			Err:     errText(c.wiz.LastError()),
			Result:  c.wiz.Result(),
		},
		Analysis: c.store.Snapshot(),
	}
}

// Run drives the idle scanning loop until ctx ends. While the session is
// idle it repeatedly runs one bounded recognition scan, pauses, and scans
// again; any other mode parks the loop until the session returns to idle.
func (c *Controller) Run(ctx context.Context) error {
	c.mu.Lock()
	c.ctx = ctx
	c.mu.Unlock()

	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		if c.sess.Mode() != session.ModeIdle {
			select {
			case <-c.kick:
			case <-ctx.Done():
				return ctx.Err()
			}
			continue
		}

		c.scanOnce(ctx)

		select {
		case <-time.After(c.opts.IdleRescanDelay):
		case <-c.kick:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
}

// scanOnce runs a single recognition scan and applies its outcome.
func (c *Controller) scanOnce(ctx context.Context) {
	c.mu.Lock()
	c.scanning = true
	c.notice = ""
	c.mu.Unlock()
	c.publish()

	out, err := c.rec.Run(ctx)

	c.mu.Lock()
	c.scanning = false
	c.mu.Unlock()

	if err != nil {
		// Losing the camera to enrollment or shutting down is routine.
		if !errors.Is(err, context.Canceled) && !errors.Is(err, common.ErrCameraBusy) {
			c.log.Error(ctx, "recognition scan failed", "error", err)
			var se *remote.ServiceError
			switch {
			case errors.As(err, &se):
				c.setNotice(se.Error())
			case errors.Is(err, common.ErrCameraUnavailable):
				c.setNotice("Camera unavailable.")
			default:
				c.setNotice(err.Error())
			}
		}
		c.publish()
		return
	}

	// A workflow may have started while the scan was in flight. The scan was
	// allowed to resolve; its outcome applies only if the session is still
	// idle, otherwise it is discarded.
	if c.sess.Mode() != session.ModeIdle {
		c.log.Info(ctx, "discarding stale scan outcome", "outcome", string(out.Kind))
		c.publish()
		return
	}

	c.mu.Lock()
	c.lastScan = out.Kind
	c.mu.Unlock()

	switch out.Kind {
	case recognition.OutcomeMatched:
		c.activateUser(session.User{ID: out.UserID, Name: out.Name, Confidence: out.Confidence})
	case recognition.OutcomeUnmatchedStrong, recognition.OutcomeUnmatchedWeak:
		c.setNotice("Face not recognized. Choose Enroll to register.")
	case recognition.OutcomeNoEnrolledUsers:
		c.setNotice("No one is enrolled yet. Choose Enroll to get started.")
	case recognition.OutcomeServiceUnavailable:
		c.setNotice("Wellness service is unreachable. Retrying.")
	case recognition.OutcomeNoFaceDetected:
		// Quiet outcome; the kiosk just keeps watching.
	}
	c.publish()
}

// activateUser promotes an identified user into an analysis session and
// requests their analysis in the background.
func (c *Controller) activateUser(u session.User) {
	c.sess.SetUser(u)
	c.sess.SetMode(session.ModeAnalysis)
	c.log.Info(c.runCtx(), "user identified", "user_id", u.ID, "confidence", u.Confidence)

	go func() {
		c.store.Fetch(c.runCtx(), u.ID)
		c.publish()
	}()
}

// RequestEnrollment leaves idle for the enrollment wizard. Any in-flight
// recognition scan loses the camera through the manager's preemption.
func (c *Controller) RequestEnrollment() error {
	if err := c.wiz.Begin(); err != nil {
		return err
	}
	c.sess.SetMode(session.ModeEnrollment)
	return nil
}

// EnterName records the enrollee's name and starts pose capture.
func (c *Controller) EnterName(name string) error {
	if err := c.wiz.SetName(name); err != nil {
		return err
	}
	// If another workflow ever claims the camera, abandon the wizard so the
	// manager's wait for the release always terminates.
	preempt := context.CancelFunc(func() { go c.CancelEnrollment() })
	if err := c.wiz.BeginCapture(c.runCtx(), preempt); err != nil {
		return err
	}
	c.publish()
	return nil
}

// CapturePose takes one enrollment sample. When the final pose lands the
// wizard submits automatically.
func (c *Controller) CapturePose() error {
	ctx := c.runCtx()
	ok, err := c.wiz.CaptureSample(ctx)
	c.publish()
	if err != nil || !ok {
		return err
	}

	if c.wiz.Stage() != enrollment.StageProcessing {
		return nil
	}

	res, err := c.wiz.Submit(ctx)
	if err != nil {
		c.publish()
		return err
	}
	c.activateUser(session.User{ID: res.UserID, Name: res.Name, Confidence: 1})
	c.publish()
	return nil
}

// WizardBack steps the wizard backwards; backing out of the welcome stage
// abandons enrollment entirely.
func (c *Controller) WizardBack() error {
	if c.wiz.Stage() == enrollment.StageWelcome {
		c.CancelEnrollment()
		return nil
	}
	err := c.wiz.Back()
	c.publish()
	return err
}

// CancelEnrollment abandons the wizard and returns to idle scanning.
func (c *Controller) CancelEnrollment() {
	c.wiz.Cancel()
	c.enterIdle()
}

// DismissAnalysis ends the analysis session and returns to idle scanning.
func (c *Controller) DismissAnalysis() {
	c.enterIdle()
}

// RetryAnalysis re-requests a failed analysis for the active user.
func (c *Controller) RetryAnalysis() {
	go func() {
		c.store.Retry(c.runCtx())
		c.publish()
	}()
}

// enterIdle clears per-user state and resumes scanning. Idle never carries
// an identified user or a lingering analysis result.
func (c *Controller) enterIdle() {
	c.store.Clear()
	c.mu.Lock()
	c.notice = ""
	c.lastScan = ""
	c.mu.Unlock()
	c.sess.Reset()
	c.wake()
	c.publish()
}

// OnAnalysisExpired is wired into the analysis store's auto-dismiss timer.
func (c *Controller) OnAnalysisExpired() {
	if c.sess.Mode() == session.ModeAnalysis {
		c.enterIdle()
	}
}

func (c *Controller) setNotice(text string) {
	c.mu.Lock()
	c.notice = text
	c.mu.Unlock()
}

func (c *Controller) runCtx() context.Context {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.ctx
}

func errText(err error) string {
	if err == nil {
		return ""
	}
	return err.Error()
}
