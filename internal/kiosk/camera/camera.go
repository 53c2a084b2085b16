// Package camera owns the capture device lifecycle. The kiosk treats the
// camera as a singleton exclusive resource: exactly one workflow may hold
// an acquisition at a time, and every successful acquire is matched by
// exactly one release on every exit path.
package camera

import "time"

// Frame is one encoded still image. Frames are passed by value and never
// shared mutably across component boundaries; a frame is discarded after
// its probe unless promoted into an enrollment sample or analysis result.
type Frame struct {
	Data       []byte
	CapturedAt time.Time
}

// Constraints describe the capture the host environment should provide.
// They are a boundary contract with the device, not kiosk behavior.
type Constraints struct {
	Width       int
	Height      int
	FacingFront bool
}

// Device is a capture source. Implementations must tolerate Close being
// called more than once and Frame being called only between Open and Close.
type Device interface {
	Open(c Constraints) error
	Frame() (Frame, error)
	Close() error
}
