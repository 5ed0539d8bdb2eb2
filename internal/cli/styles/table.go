package styles

import (
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sitestyle/internal/domain/entity"
)

const (
	minDomainWidth = 12
	maxDomainWidth = 40
)

func tableStyles(theme *Theme) table.Styles {
	s := table.DefaultStyles()
	s.Header = s.Header.
		BorderStyle(lipgloss.NormalBorder()).
		BorderForeground(theme.Border).
		BorderBottom(true).
		Foreground(theme.Accent).
		Bold(true)
	s.Selected = s.Selected.Foreground(theme.Text).Background(theme.SurfaceVariant).Bold(true)
	s.Cell = s.Cell.Foreground(theme.Text)
	return s
}

// SettingsTableColumns sizes the domain column to fit the widest domain.
func SettingsTableColumns(configs ...*entity.DomainConfig) []table.Column {
	domainWidth := minDomainWidth
	for _, cfg := range configs {
		domainWidth = max(domainWidth, lipgloss.Width(cfg.Domain))
	}
	return []table.Column{
		{Title: "Domain", Width: min(domainWidth, maxDomainWidth)},
		{Title: "Font", Width: 24},
		{Title: "Size", Width: 6},
		{Title: "Scale", Width: 6},
		{Title: "Updated", Width: 14},
	}
}

func SettingsRow(cfg *entity.DomainConfig) table.Row {
	font, delta, scale := FieldValues(cfg)
	return table.Row{cfg.Domain, font, delta, scale, RelativeTime(cfg.UpdatedAt)}
}

// SettingsTable renders every config as a non-interactive table, one row per domain.
func SettingsTable(theme *Theme, configs []*entity.DomainConfig) table.Model {
	columns := SettingsTableColumns(configs...)
	rows := make([]table.Row, 0, len(configs))
	for _, cfg := range configs {
		rows = append(rows, SettingsRow(cfg))
	}
	width := 0
	for _, c := range columns {
		width += c.Width + 2
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithRows(rows),
		table.WithHeight(len(rows)+1),
		table.WithWidth(width),
		table.WithStyles(tableStyles(theme)),
	)
	t.Blur()
	return t
}
