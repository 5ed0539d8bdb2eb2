package cmd

import (
	"strings"

	"github.com/spf13/cobra"

	"github.com/bnema/sitestyle/internal/app/messaging"
	"github.com/bnema/sitestyle/internal/cli"
	urlutil "github.com/bnema/sitestyle/internal/domain/url"
	"github.com/bnema/sitestyle/internal/infrastructure/chrome"
	"github.com/bnema/sitestyle/internal/logging"
)

var sendCmd = &cobra.Command{
	Use:   "send <json>",
	Short: "Send a raw signal to the browser",
	Long: `Send one signal, encoded as the JSON message the listener understands.

Examples:
  sitestyle send '{"action":"applySettingsForDomain","domain":"news.example"}'
  sitestyle send '{"action":"resetFontOnTab","tabId":"8F2A..."}'
  sitestyle send '{"action":"navigationCompleted","tabId":"8F2A...","url":"https://news.example/"}'`,
	Args: cobra.ExactArgs(1),
	RunE: runSend,
}

var openCmd = &cobra.Command{
	Use:   "open <url>",
	Short: "Open a URL in a new tab of the browser",
	Args:  cobra.ExactArgs(1),
	RunE:  runOpen,
}

var tabsCmd = &cobra.Command{
	Use:   "tabs",
	Short: "List the open tabs of the browser",
	Args:  cobra.NoArgs,
	RunE:  runTabs,
}

func init() {
	rootCmd.AddCommand(sendCmd)
	rootCmd.AddCommand(openCmd)
	rootCmd.AddCommand(tabsCmd)
}

func runSend(_ *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	// Reject malformed input before touching the browser.
	if _, err := messaging.ParseMessage(args[0]); err != nil {
		return err
	}

	ctx := a.Ctx()
	ok, err := withBrowser(ctx, a, func(s *cli.BrowserSession) error {
		return s.SendRaw(ctx, args[0])
	})
	if err != nil {
		return err
	}
	if !ok {
		return chrome.ErrNoEndpoint
	}
	return nil
}

func runOpen(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	pageURL := urlutil.Normalize(args[0])
	ctx := logging.WithURL(a.Ctx(), pageURL)

	ok, err := withBrowser(ctx, a, func(s *cli.BrowserSession) error {
		tab, err := s.Manager.OpenTab(ctx, pageURL)
		if err != nil {
			return err
		}
		cmd.Println(tab.ID())
		// Style now; a running listener does it again on its own event.
		return s.Send(ctx, messaging.NavigationCompleted(string(tab.ID()), pageURL))
	})
	if err != nil {
		return err
	}
	if !ok {
		return chrome.ErrNoEndpoint
	}
	return nil
}

func runTabs(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	ctx := a.Ctx()

	ok, err := withBrowser(ctx, a, func(s *cli.BrowserSession) error {
		tabs, err := s.Tabs.Tabs(ctx)
		if err != nil {
			return err
		}
		for _, tab := range tabs {
			pageURL, err := tab.URL(ctx)
			if err != nil {
				continue
			}
			host, hostErr := urlutil.Hostname(pageURL)
			if hostErr != nil {
				host = "-"
			}
			cmd.Printf("%s  %s  %s\n", tab.ID(), a.Theme.DomainBadge(host), truncate(pageURL, 80))
		}
		return nil
	})
	if err != nil {
		return err
	}
	if !ok {
		return chrome.ErrNoEndpoint
	}
	return nil
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return strings.TrimSpace(s[:n-3]) + "..."
}
