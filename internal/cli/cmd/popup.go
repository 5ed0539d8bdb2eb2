package cmd

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/spf13/cobra"

	"github.com/bnema/sitestyle/internal/cli"
	"github.com/bnema/sitestyle/internal/cli/model"
	urlutil "github.com/bnema/sitestyle/internal/domain/url"
	"github.com/bnema/sitestyle/internal/logging"
)

var (
	popupDomain string
	popupTab    string
)

var popupCmd = &cobra.Command{
	Use:   "popup",
	Short: "Edit the settings of the active tab's site",
	Long: `Open an interactive editor for one domain.

The domain is taken from the active tab of the browser reached through
browser.remote_url or a running 'sitestyle run'. Use --domain to edit a
site without a browser; changes are then stored and applied on next load.

Keys:
  tab / shift+tab   move between font, size, scaling and saved settings
  up / down         choose a font or scale
  - / +             step the font-size delta
  /                 filter fonts
  enter             apply the focused setting to every tab of the site
  r                 reset the focused setting`,
	RunE: runPopup,
}

func init() {
	rootCmd.AddCommand(popupCmd)
	popupCmd.Flags().StringVarP(&popupDomain, "domain", "d", "", "domain to edit instead of the active tab's")
	popupCmd.Flags().StringVarP(&popupTab, "tab", "t", "", "target id of the tab to use as active tab")
}

func runPopup(_ *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := logging.WithComponent(a.Ctx(), "popup")
	log := logging.FromContext(ctx)

	cfg := model.PopupModelConfig{
		Domain:       popupDomain,
		ScaleFactors: a.Config.Popup.ScaleFactors,
	}

	session, err := a.ConnectBrowser(ctx)
	switch {
	case err == nil:
		defer func() {
			if closeErr := session.Close(); closeErr != nil {
				log.Warn().Err(closeErr).Msg("browser disconnect")
			}
		}()
		cfg.Signaler = session
		if err := resolveActiveTab(ctx, session, &cfg); err != nil {
			if cfg.Domain == "" {
				return err
			}
			log.Debug().Err(err).Msg("no active tab")
		}
	case popupDomain == "":
		return fmt.Errorf("connect to browser: %w (or pass --domain)", err)
	default:
		log.Info().Err(err).Msg("no browser reachable, settings are stored only")
	}

	fonts := a.FontsUC.Execute(ctx)
	cfg.Fonts = fonts.Fonts

	m := model.NewPopupModel(ctx, a.Theme, a.SettingsUC, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen())
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("popup: %w", err)
	}
	return nil
}

// resolveActiveTab fills the tab id, and the domain unless --domain was given.
func resolveActiveTab(ctx context.Context, session *cli.BrowserSession, cfg *model.PopupModelConfig) error {
	tab, err := session.ActiveTab(ctx, popupTab)
	if err != nil {
		return fmt.Errorf("find active tab: %w", err)
	}
	cfg.TabID = string(tab.ID())
	if cfg.Domain != "" {
		return nil
	}

	pageURL, err := tab.URL(ctx)
	if err != nil {
		return fmt.Errorf("read active tab url: %w", err)
	}
	host, err := urlutil.Hostname(pageURL)
	if err != nil {
		// Hostless page: only the tab reset works.
		logging.FromContext(ctx).Debug().Err(err).Str("url", pageURL).Msg("active tab has no host")
		return nil
	}
	cfg.Domain = host
	return nil
}
