package config

import "time"

// Config holds runtime settings for the kiosk.
//
// Fields:
//   - ServiceBaseURL: base URL of the wellness backend (JSON over HTTP).
//   - RequestTimeout: bound applied to every remote call.
//   - DetectAttempts: max detection probes per recognition run.
//   - DetectBackoff: wait between failed detection probes.
//   - IdleRescanDelay: pause between recognition rounds while idle.
//   - PoseCount: number of enrollment pose captures.
//   - AutoDismiss: analysis screen lifetime; 0 disables the timer.
//   - CameraDir: directory the file-backed capture device reads frames from.
//   - CameraWidth / CameraHeight: target capture resolution.
//   - LogLevel: slog level name ("debug", "info", "warn", "error").
type Config struct {
	ServiceBaseURL  string
	RequestTimeout  time.Duration
	DetectAttempts  int
	DetectBackoff   time.Duration
	IdleRescanDelay time.Duration
	PoseCount       int
	AutoDismiss     time.Duration
	CameraDir       string
	CameraWidth     int
	CameraHeight    int
	LogLevel        string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServiceBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 10 * time.Second
	c.DetectAttempts = 3
	c.DetectBackoff = 650 * time.Millisecond
	c.IdleRescanDelay = 1500 * time.Millisecond
	c.PoseCount = 3
	c.AutoDismiss = 0
	c.CameraDir = "frames"
	c.CameraWidth = 1920
	c.CameraHeight = 1080
	c.LogLevel = "info"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
