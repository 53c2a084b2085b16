package cli

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/clarityplus/kiosk/internal/kiosk/analysis"
	"github.com/clarityplus/kiosk/internal/kiosk/camera"
	"github.com/clarityplus/kiosk/internal/kiosk/config"
	"github.com/clarityplus/kiosk/internal/kiosk/enrollment"
	"github.com/clarityplus/kiosk/internal/kiosk/recognition"
	"github.com/clarityplus/kiosk/internal/kiosk/remote"
	"github.com/clarityplus/kiosk/internal/kiosk/session"
	"github.com/clarityplus/kiosk/internal/kiosk/ui"
	"github.com/clarityplus/kiosk/internal/kiosk/view"
	"github.com/clarityplus/kiosk/internal/logging"
)

// runKiosk wires the whole application together and runs the kiosk screen
// until the terminal exits or the process is interrupted.
func runKiosk(cmd *cobra.Command, args []string) error {
	cfg := config.LoadConfig()
	log := logging.New(cfg.LogLevel)
	ctx := cmd.Context()

	client := remote.NewHTTPClient(cfg.ServiceBaseURL, cfg.RequestTimeout, log)
	defer func() { _ = client.Close() }()

	constraints := camera.Constraints{
		Width:       cfg.CameraWidth,
		Height:      cfg.CameraHeight,
		FacingFront: true,
	}
	cam := camera.NewManager(camera.NewFileDevice(cfg.CameraDir), log)

	sess := session.New()
	rec := recognition.NewOrchestrator(client, cam, recognition.Options{
		Attempts:    cfg.DetectAttempts,
		Backoff:     cfg.DetectBackoff,
		Constraints: constraints,
	}, log)
	wiz := enrollment.NewWizard(client, cam, enrollment.Options{
		Poses:       cfg.PoseCount,
		Constraints: constraints,
	}, log)
	store := analysis.NewStore(client, cfg.AutoDismiss, nil, log)

	ctrl := view.NewController(sess, rec, wiz, store, view.Options{
		IdleRescanDelay: cfg.IdleRescanDelay,
	}, log)
	store.OnExpire(ctrl.OnAnalysisExpired)

	log.Info(ctx, "kiosk starting",
		"session_id", sess.ID(),
		"backend", cfg.ServiceBaseURL,
		"frames", cfg.CameraDir,
	)

	go func() { _ = ctrl.Run(ctx) }()

	p := tea.NewProgram(ui.NewModel(ctrl), tea.WithAltScreen(), tea.WithContext(ctx))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("running kiosk ui: %w", err)
	}
	return nil
}
