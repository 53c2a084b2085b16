// Package cli defines the kiosk's command-line surface. The bare command
// runs the kiosk screen; subcommands cover operator tasks such as health
// checks, user lookup, and history browsing.
//
// Configuration flags (-u, -t, -k, -w, -p, -s, -f, -l) are parsed by the
// config layer from the raw argument list, so every command whitelists
// unknown flags instead of registering them with cobra.
package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
)

var rootCmd = &cobra.Command{
	Use:   "kiosk",
	Short: "Clarity+ wellness kiosk",
	Long:  "Runs the wellness kiosk: face recognition at idle, enrollment, and analysis display.",
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	SilenceUsage: true,
	RunE:         runKiosk,
}

// Execute runs the CLI until completion or an interrupt.
func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		os.Exit(1)
	}
}
