// Package config loads runtime configuration for the kiosk.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  3. Command-line flags (see parseFlags), which override earlier values.
//
// # JSON schema
//
// The JSON loader uses timex.Duration for intervals, so values can be either
// strings like "650ms" or integer nanoseconds:
//
//	{
//	  "service_base_url": "http://192.168.1.20:8000",
//	  "request_timeout": "10s",
//	  "detect_attempts": 3,
//	  "detect_backoff": "650ms",
//	  "auto_dismiss": "30s",
//	  "camera_dir": "/var/lib/kiosk/frames"
//	}
//
// Primary API
//
//   - type Config                     — runtime settings for all components
//   - func LoadConfig() *Config       — builds Config by applying defaults, JSON, then flags
//   - func (*Config) LoadDefaults()   — sets sensible defaults
//
// Note: This package does not read environment variables directly; use the
// JSON file or flags to configure values.
package config
