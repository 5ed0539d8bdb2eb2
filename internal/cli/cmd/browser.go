package cmd

import (
	"context"
	"errors"

	"github.com/spf13/cobra"

	"github.com/bnema/sitestyle/internal/cli"
	"github.com/bnema/sitestyle/internal/infrastructure/chrome"
	"github.com/bnema/sitestyle/internal/logging"
)

// withBrowser runs fn on a session connected to the running browser. It
// reports false when no browser is published or configured.
func withBrowser(ctx context.Context, a *cli.App, fn func(*cli.BrowserSession) error) (bool, error) {
	session, err := a.ConnectBrowser(ctx)
	if errors.Is(err, chrome.ErrNoEndpoint) {
		return false, nil
	}
	if err != nil {
		return false, err
	}

	fnErr := fn(session)
	if closeErr := session.Close(); closeErr != nil {
		logging.FromContext(ctx).Warn().Err(closeErr).Msg("browser disconnect")
	}
	return true, fnErr
}

// notifyBrowser runs fn when a browser is reachable and tells the user when
// the change was only stored.
func notifyBrowser(ctx context.Context, cmd *cobra.Command, a *cli.App, fn func(*cli.BrowserSession) error) error {
	applied, err := withBrowser(ctx, a, fn)
	switch {
	case err != nil:
		cmd.PrintErrln(a.Theme.WarningStyle.Render("Stored, but not applied: " + err.Error()))
	case !applied:
		cmd.Println(a.Theme.Subtle.Render("No browser running; applied on next page load."))
	}
	return nil
}
