package cmd

import (
	"context"
	"errors"
	"fmt"
	"os/signal"

	"github.com/spf13/cobra"
	"golang.org/x/sys/unix"

	"github.com/bnema/sitestyle/internal/app/messaging"
	"github.com/bnema/sitestyle/internal/application/port"
	"github.com/bnema/sitestyle/internal/infrastructure/chrome"
	"github.com/bnema/sitestyle/internal/infrastructure/config"
	"github.com/bnema/sitestyle/internal/logging"
)

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Launch or attach to the browser and keep settings applied",
	Long: `Start the background listener.

The browser from browser.remote_url is used when set, otherwise a local
Chromium is launched. Every page that finishes loading gets the settings
stored for its domain. The DevTools endpoint is published so that other
sitestyle commands can reach the same browser.

Stop with Ctrl+C, SIGTERM or SIGHUP.`,
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(logging.WithComponent(a.Ctx(), "run"), unix.SIGINT, unix.SIGTERM, unix.SIGHUP)
	defer stop()
	log := logging.FromContext(ctx)

	session, err := a.LaunchBrowser(ctx)
	if err != nil {
		return fmt.Errorf("start browser: %w", err)
	}
	defer func() {
		if closeErr := session.Close(); closeErr != nil {
			log.Warn().Err(closeErr).Msg("browser shutdown")
		}
	}()

	endpoint, err := config.GetEndpointFile()
	if err != nil {
		return err
	}
	if err := chrome.WriteEndpoint(endpoint, session.Manager.ControlURL()); err != nil {
		return err
	}
	defer func() {
		if rmErr := chrome.RemoveEndpoint(endpoint); rmErr != nil {
			log.Warn().Err(rmErr).Msg("failed to remove endpoint file")
		}
	}()

	a.ConfigMgr.OnConfigChange(func(cfg *config.Config) {
		a.SetLogLevel(cfg.Logging.Level)
		log.Info().Str("level", cfg.Logging.Level).Msg("configuration reloaded")
	})
	if err := a.ConfigMgr.Watch(); err != nil {
		log.Warn().Err(err).Msg("config watch unavailable")
	}

	cmd.Printf("Listening on %s (Ctrl+C to stop)\n", session.Manager.ControlURL())
	log.Info().Str("endpoint", endpoint).Msg("listener started")

	watcher := chrome.NewNavigationWatcher(session.Manager)
	err = watcher.Watch(ctx, func(ev port.NavigationEvent) {
		msg := messaging.NavigationCompleted(string(ev.TabID), ev.URL)
		if sendErr := session.Send(ctx, msg); sendErr != nil && !errors.Is(sendErr, context.Canceled) {
			log.Debug().Err(sendErr).Str("tab_id", string(ev.TabID)).Msg("navigation signal dropped")
		}
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		return err
	}
	log.Info().Msg("listener stopped")
	return nil
}
