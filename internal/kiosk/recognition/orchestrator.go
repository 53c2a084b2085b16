// Package recognition runs the identification loop: capture a frame, gate
// it through face detection, and hand it to the recognizer. The loop is
// bounded so a user staring at an empty lobby camera resolves quickly.
package recognition

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/sethvargo/go-retry"

	"github.com/clarityplus/kiosk/internal/common"
	"github.com/clarityplus/kiosk/internal/kiosk/camera"
	"github.com/clarityplus/kiosk/internal/kiosk/remote"
	"github.com/clarityplus/kiosk/internal/logging"
)

// errNoFaceYet marks one probe that produced no usable face. It never
// escapes Run; exhausting all probes resolves to OutcomeNoFaceDetected.
var errNoFaceYet = errors.New("no face in frame")

// Options bound one recognition run.
type Options struct {
	// Attempts is the number of capture probes before giving up.
	Attempts int
	// Backoff is the pause between probes.
	Backoff time.Duration
	// Constraints are the capture parameters requested from the camera.
	Constraints camera.Constraints
}

// Orchestrator owns the recognition loop. One Run is one scan; the
// orchestrator itself is stateless between runs and safe to reuse.
type Orchestrator struct {
	client remote.Client
	cam    *camera.Manager
	opts   Options
	log    logging.Logger
}

func NewOrchestrator(client remote.Client, cam *camera.Manager, opts Options, log logging.Logger) *Orchestrator {
	// A non-positive attempt count would underflow the retry budget below;
	// the loop always gets at least one probe.
	if opts.Attempts < 1 {
		opts.Attempts = 1
	}
	return &Orchestrator{client: client, cam: cam, opts: opts, log: log}
}

// Run performs one bounded recognition scan and returns its outcome.
// The camera is held for the duration of the run and released on every
// path, including cancellation. Errors are reserved for the camera being
// taken or the context ending; service trouble maps to outcomes instead.
func (o *Orchestrator) Run(ctx context.Context) (Outcome, error) {
	log := o.log.With("run_id", uuid.NewString())

	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	cap, err := o.cam.Acquire(ctx, "recognition", cancel, o.opts.Constraints)
	if err != nil {
		return Outcome{}, err
	}
	defer cap.Release()

	var out Outcome
	attempt := 0
	b := retry.WithMaxRetries(uint64(o.opts.Attempts-1), retry.NewConstant(o.opts.Backoff))

	err = retry.Do(ctx, b, func(ctx context.Context) error {
		attempt++

		frame, err := cap.Snapshot()
		if err != nil {
			// Counts as one spent probe, same as an empty frame.
			log.Warn(ctx, "snapshot failed", "attempt", attempt, "error", err)
			return retry.RetryableError(errNoFaceYet)
		}

		det, derr := o.client.DetectFace(ctx, frame.Data)
		switch {
		case derr != nil:
			// A broken detector must not block the kiosk. Skip the gate
			// and let the recognizer judge the raw frame.
			log.Warn(ctx, "detector unavailable, forwarding frame", "attempt", attempt, "error", derr)
		case !det.FaceDetected:
			log.Debug(ctx, "no face detected", "attempt", attempt, "latency_ms", det.LatencyMS)
			return retry.RetryableError(errNoFaceYet)
		}

		rec, rerr := o.client.RecognizeFace(ctx, frame.Data)
		if rerr != nil {
			if errors.Is(rerr, common.ErrServiceUnavailable) {
				out = Outcome{Kind: OutcomeServiceUnavailable}
				return nil
			}
			return rerr
		}
		if rec.MatchType == "no_face" {
			// Reached on the detector-outage path; treat like a failed probe.
			return retry.RetryableError(errNoFaceYet)
		}

		out = classify(rec)
		log.Info(ctx, "recognition resolved", "outcome", string(out.Kind), "attempt", attempt)
		return nil
	})

	if err != nil {
		if errors.Is(err, errNoFaceYet) {
			log.Info(ctx, "recognition resolved", "outcome", string(OutcomeNoFaceDetected), "attempt", attempt)
			return Outcome{Kind: OutcomeNoFaceDetected}, nil
		}
		return Outcome{}, err
	}
	return out, nil
}
