package remote

// Health reports backend status and per-service availability flags.
type Health struct {
	Status         string          `json:"status"`
	Services       map[string]bool `json:"services"`
	ThermalEnabled bool            `json:"thermal_enabled"`
}

// Detection is the result of one detection probe against one frame.
type Detection struct {
	FaceDetected bool      `json:"face_detected"`
	BBox         []float64 `json:"bbox,omitempty"`
	LatencyMS    float64   `json:"latency_ms"`
}

// Recognition is the classified result of comparing a probe frame against
// the enrolled population. MatchType is one of "strong", "weak", "unknown",
// "no_face", "no_users".
type Recognition struct {
	Match      bool    `json:"match"`
	UserID     string  `json:"user_id"`
	Name       string  `json:"name"`
	Confidence float64 `json:"confidence"`
	MatchType  string  `json:"match_type"`
	Message    string  `json:"message,omitempty"`
	LatencyMS  float64 `json:"latency_ms"`
}

// Enrollment is the backend's answer to a multi-sample enroll request.
type Enrollment struct {
	Success        bool    `json:"success"`
	UserID         string  `json:"user_id"`
	Name           string  `json:"name"`
	QualityScore   float64 `json:"quality_score"`
	FacesProcessed int     `json:"faces_processed"`
	LatencyMS      float64 `json:"latency_ms"`
}

// Scores holds the per-metric analysis scores. A nil pointer means the
// metric is disabled or unavailable, which is distinct from a zero score.
type Scores struct {
	Skin    *float64 `json:"skin"`
	Posture *float64 `json:"posture"`
	Eyes    *float64 `json:"eyes"`
	Thermal *float64 `json:"thermal"`
}

// Analysis is one completed wellness analysis. WeightsUsed is the scoring
// weight set the backend applied; the kiosk renders it verbatim and never
// recomputes weight math locally.
type Analysis struct {
	ID            int64              `json:"id"`
	UserID        string             `json:"user_id"`
	Timestamp     string             `json:"timestamp"`
	Scores        Scores             `json:"scores"`
	OverallScore  float64            `json:"overall_score"`
	WeightsUsed   map[string]float64 `json:"weights_used"`
	CapturedImage string             `json:"captured_image,omitempty"`
}

// User is an enrolled kiosk user. Streak and badge fields are opaque
// gamification data owned by the backend.
type User struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	CreatedAt     string `json:"created_at"`
	UpdatedAt     string `json:"updated_at,omitempty"`
	CurrentStreak int    `json:"current_streak,omitempty"`
	LongestStreak int    `json:"longest_streak,omitempty"`
}

// HistoryEntry is one prior analysis in a user's history.
type HistoryEntry struct {
	ID            int64    `json:"id"`
	UserID        string   `json:"user_id"`
	Timestamp     string   `json:"timestamp"`
	SkinScore     *float64 `json:"skin_score"`
	PostureScore  *float64 `json:"posture_score"`
	EyeScore      *float64 `json:"eye_score"`
	ThermalScore  *float64 `json:"thermal_score"`
	ComputedScore float64  `json:"computed_score"`
}

// HistoryPage is a paginated slice of analysis history.
type HistoryPage struct {
	Total    int            `json:"total"`
	Limit    int            `json:"limit"`
	Offset   int            `json:"offset"`
	Analyses []HistoryEntry `json:"analyses"`
}
