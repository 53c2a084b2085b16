// Package remote is the typed wrapper over the wellness backend: face
// detection, recognition, enrollment, analysis, and user endpoints. All
// calls are JSON-in/JSON-out over HTTP.
package remote

import "context"

// Client defines the remote capabilities the kiosk consumes.
//
// Error contract:
//   - network failures and exceeded deadlines wrap common.ErrServiceUnavailable;
//   - non-2xx responses surface as *ServiceError carrying the response body;
//   - domain results (no face, weak match, no enrolled users) are values,
//     never errors.
type Client interface {
	Close() error
	Health(ctx context.Context) (*Health, error)
	DetectFace(ctx context.Context, image []byte) (*Detection, error)
	RecognizeFace(ctx context.Context, image []byte) (*Recognition, error)
	EnrollFace(ctx context.Context, name string, images [][]byte) (*Enrollment, error)
	TriggerAnalysis(ctx context.Context, userID string) (*Analysis, error)
	GetUser(ctx context.Context, userID string) (*User, error)
	CreateUser(ctx context.Context, name string) (*User, error)
	AnalysisHistory(ctx context.Context, userID string, limit, offset int) (*HistoryPage, error)
}
