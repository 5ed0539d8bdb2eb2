package cmd

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/bnema/sitestyle/internal/cli"
	"github.com/bnema/sitestyle/internal/cli/styles"
	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/logging"
)

var listJSON bool

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored settings",
	RunE:    runList,
}

var setCmd = &cobra.Command{
	Use:   "set <domain> <field> <value>",
	Short: "Store one setting for a domain and apply it",
	Long: `Store one setting for a domain, then apply the domain's settings to its
open tabs.

Fields:
  font             a font family name; an empty value resets
  fontSizeDelta    integer from -5 to 5 (clamped); 0 resets  (alias: size)
  scaleFactor      positive number; 1 resets                 (alias: scale)

Examples:
  sitestyle set news.example font "Noto Serif"
  sitestyle set news.example size +2
  sitestyle set news.example scale 1.25`,
	Args: cobra.ExactArgs(3),
	RunE: runSet,
}

var clearCmd = &cobra.Command{
	Use:   "clear <domain> [field]",
	Short: "Remove one setting, or all settings, of a domain",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runClear,
}

func init() {
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(clearCmd)
	listCmd.Flags().BoolVar(&listJSON, "json", false, "print JSON instead of a table")
}

// settingsEntry is the JSON shape of one stored domain.
type settingsEntry struct {
	Domain        string    `json:"domain"`
	Font          *string   `json:"font,omitempty"`
	FontSizeDelta *int      `json:"fontSizeDelta,omitempty"`
	ScaleFactor   *float64  `json:"scaleFactor,omitempty"`
	UpdatedAt     time.Time `json:"updatedAt"`
}

func runList(cmd *cobra.Command, _ []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	all, err := a.SettingsUC.ListAll(a.Ctx())
	if err != nil {
		return err
	}

	if listJSON {
		entries := make([]settingsEntry, 0, len(all))
		for _, cfg := range all {
			entries = append(entries, settingsEntry{
				Domain:        cfg.Domain,
				Font:          cfg.Font,
				FontSizeDelta: cfg.FontSizeDelta,
				ScaleFactor:   cfg.ScaleFactor,
				UpdatedAt:     cfg.UpdatedAt,
			})
		}
		enc := json.NewEncoder(cmd.OutOrStdout())
		enc.SetIndent("", "  ")
		return enc.Encode(entries)
	}

	cmd.Println(renderSettingsTable(a.Theme, all))
	return nil
}

func renderSettingsTable(theme *styles.Theme, all []*entity.DomainConfig) string {
	if len(all) == 0 {
		return theme.Subtle.Render("No settings stored.")
	}
	return styles.SettingsTable(theme, all).View()
}

func runSet(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	domain, raw := args[0], args[2]
	field, err := entity.ParseSettingField(args[1])
	if err != nil {
		return err
	}

	ctx := logging.WithDomain(a.Ctx(), domain)
	cfg, err := a.SettingsUC.SetField(ctx, domain, field, raw)
	if err != nil {
		return err
	}
	printConfig(cmd, a, cfg)

	return notifyBrowser(ctx, cmd, a, func(s *cli.BrowserSession) error {
		return s.ApplyDomain(ctx, cfg.Domain)
	})
}

func runClear(cmd *cobra.Command, args []string) error {
	a, err := requireApp()
	if err != nil {
		return err
	}
	domain := args[0]
	ctx := logging.WithDomain(a.Ctx(), domain)

	if len(args) == 1 {
		if err := a.SettingsUC.ClearDomain(ctx, domain); err != nil {
			return err
		}
		cmd.Println(a.Theme.SuccessStyle.Render(fmt.Sprintf("Cleared all settings of %s", domain)))
		return notifyBrowser(ctx, cmd, a, func(s *cli.BrowserSession) error {
			return s.ApplyDomain(ctx, domain)
		})
	}

	field, err := entity.ParseSettingField(args[1])
	if err != nil {
		return err
	}
	cfg, err := a.SettingsUC.ClearField(ctx, domain, field)
	if err != nil {
		return err
	}
	printConfig(cmd, a, cfg)

	return notifyBrowser(ctx, cmd, a, func(s *cli.BrowserSession) error {
		return s.ResetDomain(ctx, cfg.Domain, field)
	})
}

func printConfig(cmd *cobra.Command, a *cli.App, cfg *entity.DomainConfig) {
	if cfg.IsEmpty() {
		cmd.Println(a.Theme.DomainBadge(cfg.Domain) + " " + a.Theme.Subtle.Render("no settings"))
		return
	}
	font, delta, scale := styles.FieldValues(cfg)
	cmd.Printf("%s font=%s size=%s scale=%s\n", a.Theme.DomainBadge(cfg.Domain), font, delta, scale)
}
