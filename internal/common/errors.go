// Package common defines shared constants and sentinel errors used across
// the kiosk core. Callers should use errors.Is to match these values.
package common

import "errors"

var (
	// Camera resource errors. Local conditions, never retried automatically
	// beyond the forced-release policy of the camera manager.
	ErrCameraUnavailable = errors.New("camera unavailable")
	ErrCameraBusy        = errors.New("camera busy")
	ErrNoFrame           = errors.New("no frame available")

	// Transport errors. A network failure or an exceeded call deadline;
	// workflows classify this as the serviceUnavailable outcome.
	ErrServiceUnavailable = errors.New("service unavailable")

	// Enrollment errors. ErrSamplesIncomplete is a local validation
	// failure; ErrEnrollmentRejected is the backend declining a complete
	// submission.
	ErrNameRequired       = errors.New("name is required")
	ErrSamplesIncomplete  = errors.New("not all samples confirmed")
	ErrEnrollmentRejected = errors.New("enrollment rejected by service")
)
