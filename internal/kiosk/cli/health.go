package cli

import (
	"fmt"
	"sort"

	"github.com/spf13/cobra"

	"github.com/clarityplus/kiosk/internal/kiosk/config"
	"github.com/clarityplus/kiosk/internal/kiosk/remote"
	"github.com/clarityplus/kiosk/internal/logging"
)

var healthCmd = &cobra.Command{
	Use:   "health",
	Short: "Check backend health",
	FParseErrWhitelist: cobra.FParseErrWhitelist{
		UnknownFlags: true,
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		client, _ := newClient()
		defer func() { _ = client.Close() }()

		h, err := client.Health(cmd.Context())
		if err != nil {
			return err
		}

		fmt.Printf("status: %s\n", h.Status)
		fmt.Printf("thermal: %v\n", h.ThermalEnabled)
		names := make([]string, 0, len(h.Services))
		for name := range h.Services {
			names = append(names, name)
		}
		sort.Strings(names)
		for _, name := range names {
			fmt.Printf("  %-12s %v\n", name, h.Services[name])
		}
		return nil
	},
}

// newClient builds a backend client from the layered configuration. Shared
// by the operator subcommands; the kiosk screen does its own wiring.
func newClient() (remote.Client, *config.Config) {
	cfg := config.LoadConfig()
	return remote.NewHTTPClient(cfg.ServiceBaseURL, cfg.RequestTimeout, logging.New(cfg.LogLevel)), cfg
}

func init() {
	rootCmd.AddCommand(healthCmd)
}
