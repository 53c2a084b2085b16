package recognition

import "github.com/clarityplus/kiosk/internal/kiosk/remote"

// OutcomeKind classifies how a recognition run resolved. Outcomes are
// first-class results that drive state transitions; they are never errors.
type OutcomeKind string

const (
	// OutcomeMatched identifies an enrolled user with strong confidence.
	OutcomeMatched OutcomeKind = "matched"
	// OutcomeUnmatchedStrong is a face that is definitely not enrolled.
	OutcomeUnmatchedStrong OutcomeKind = "unmatched_strong"
	// OutcomeUnmatchedWeak is a borderline similarity, below the
	// auto-identify bar. The kiosk does not log such a face in.
	OutcomeUnmatchedWeak OutcomeKind = "unmatched_weak"
	// OutcomeNoFaceDetected means no probe ever saw a face.
	OutcomeNoFaceDetected OutcomeKind = "no_face_detected"
	// OutcomeNoEnrolledUsers means the backend has nobody to match against.
	OutcomeNoEnrolledUsers OutcomeKind = "no_enrolled_users"
	// OutcomeServiceUnavailable means recognition could not be reached
	// within the call bound. Distinct from the absence of a face.
	OutcomeServiceUnavailable OutcomeKind = "service_unavailable"
)

// Outcome is the terminal result of one recognition run. UserID, Name, and
// Confidence are populated for OutcomeMatched.
type Outcome struct {
	Kind       OutcomeKind
	UserID     string
	Name       string
	Confidence float64
}

// classify maps the backend's recognition answer to an outcome. The
// "no_face" and error cases are handled by the run loop before this point.
func classify(r *remote.Recognition) Outcome {
	switch {
	case r.Match && r.MatchType == "weak":
		return Outcome{Kind: OutcomeUnmatchedWeak, Confidence: r.Confidence}
	case r.Match:
		return Outcome{Kind: OutcomeMatched, UserID: r.UserID, Name: r.Name, Confidence: r.Confidence}
	case r.MatchType == "no_users":
		return Outcome{Kind: OutcomeNoEnrolledUsers}
	default:
		return Outcome{Kind: OutcomeUnmatchedStrong, Confidence: r.Confidence}
	}
}
