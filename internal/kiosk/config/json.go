package config

import (
	"encoding/json"
	"os"
	"time"

	"github.com/clarityplus/kiosk/internal/flagx"
	"github.com/clarityplus/kiosk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. It relies on
// timex.Duration so JSON can specify intervals either as strings like "650ms"
// or as integer nanoseconds. After parsing, values are copied into the
// runtime Config. Absent fields keep their current (default) values.
type JsonConfig struct {
	ServiceBaseURL  *string         `json:"service_base_url"`
	RequestTimeout  *timex.Duration `json:"request_timeout"`
	DetectAttempts  *int            `json:"detect_attempts"`
	DetectBackoff   *timex.Duration `json:"detect_backoff"`
	IdleRescanDelay *timex.Duration `json:"idle_rescan_delay"`
	PoseCount       *int            `json:"pose_count"`
	AutoDismiss     *timex.Duration `json:"auto_dismiss"`
	CameraDir       *string         `json:"camera_dir"`
	CameraWidth     *int            `json:"camera_width"`
	CameraHeight    *int            `json:"camera_height"`
	LogLevel        *string         `json:"log_level"`
}

// parseJson overlays Config with values loaded from a JSON file.
//
// The file path comes from the -c or -config flags (flagx.JsonConfigFlags);
// when neither is given, nothing is loaded. Read or unmarshal errors panic,
// matching the behavior of the flags layer.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.JsonConfigFlags()
	if jsonConfigFile == "" {
		return
	}

	var jc JsonConfig

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	if jc.ServiceBaseURL != nil {
		cfg.ServiceBaseURL = *jc.ServiceBaseURL
	}
	if jc.RequestTimeout != nil {
		cfg.RequestTimeout = time.Duration(jc.RequestTimeout.Duration)
	}
	if jc.DetectAttempts != nil {
		cfg.DetectAttempts = *jc.DetectAttempts
	}
	if jc.DetectBackoff != nil {
		cfg.DetectBackoff = time.Duration(jc.DetectBackoff.Duration)
	}
	if jc.IdleRescanDelay != nil {
		cfg.IdleRescanDelay = time.Duration(jc.IdleRescanDelay.Duration)
	}
	if jc.PoseCount != nil {
		cfg.PoseCount = *jc.PoseCount
	}
	if jc.AutoDismiss != nil {
		cfg.AutoDismiss = time.Duration(jc.AutoDismiss.Duration)
	}
	if jc.CameraDir != nil {
		cfg.CameraDir = *jc.CameraDir
	}
	if jc.CameraWidth != nil {
		cfg.CameraWidth = *jc.CameraWidth
	}
	if jc.CameraHeight != nil {
		cfg.CameraHeight = *jc.CameraHeight
	}
	if jc.LogLevel != nil {
		cfg.LogLevel = *jc.LogLevel
	}
}
