package config

import (
	"flag"
	"os"
	"time"

	"github.com/clarityplus/kiosk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Supported flags (short forms):
//
//	-u string   base URL of the wellness backend
//	-t int      remote call timeout in seconds
//	-k int      max detection attempts per recognition run
//	-w int      detection backoff in milliseconds
//	-p int      enrollment pose count
//	-s int      analysis auto-dismiss in seconds (0 disables)
//	-f string   frames directory for the file-backed camera device
//	-l string   log level
//
// Note: The function filters os.Args to only include the flags it knows
// about, using flagx.FilterArgs, so cobra and this layer can share the
// command line.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-u", "-t", "-k", "-w", "-p", "-s", "-f", "-l"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)

	fs.StringVar(&cfg.ServiceBaseURL, "u", cfg.ServiceBaseURL, "base URL of the wellness backend")
	requestTimeout := fs.Int("t", int(cfg.RequestTimeout.Seconds()), "remote call timeout (in seconds)")
	fs.IntVar(&cfg.DetectAttempts, "k", cfg.DetectAttempts, "max detection attempts per recognition run")
	detectBackoff := fs.Int("w", int(cfg.DetectBackoff.Milliseconds()), "detection backoff (in milliseconds)")
	fs.IntVar(&cfg.PoseCount, "p", cfg.PoseCount, "enrollment pose count")
	autoDismiss := fs.Int("s", int(cfg.AutoDismiss.Seconds()), "analysis auto-dismiss (in seconds, 0 disables)")
	fs.StringVar(&cfg.CameraDir, "f", cfg.CameraDir, "frames directory for the file camera device")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}

	cfg.RequestTimeout = time.Duration(*requestTimeout) * time.Second
	cfg.DetectBackoff = time.Duration(*detectBackoff) * time.Millisecond
	cfg.AutoDismiss = time.Duration(*autoDismiss) * time.Second
}
