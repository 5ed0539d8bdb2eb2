package styles

import (
	"fmt"
	"time"

	"github.com/bnema/sitestyle/internal/domain/entity"
)

// DomainBadge renders a domain badge.
func (t *Theme) DomainBadge(domain string) string {
	return t.Badge.Render(domain)
}

// MutedBadge renders a badge with muted colors.
func (t *Theme) MutedBadge(text string) string {
	return t.BadgeMuted.Render(text)
}

// FieldValues renders the set fields of a config, "-" for unset ones.
func FieldValues(cfg *entity.DomainConfig) (font, delta, scale string) {
	font, delta, scale = "-", "-", "-"
	if cfg == nil {
		return font, delta, scale
	}
	if cfg.Font != nil {
		font = *cfg.Font
	}
	if cfg.FontSizeDelta != nil {
		delta = entity.FormatFontSizeDelta(*cfg.FontSizeDelta)
	}
	if cfg.ScaleFactor != nil {
		scale = entity.FormatScaleFactor(*cfg.ScaleFactor)
	}
	return font, delta, scale
}

// RelativeTime formats a time as a human-readable relative string.
func RelativeTime(tm time.Time) string {
	return relativeTime(time.Now(), tm)
}

func relativeTime(now, tm time.Time) string {
	if tm.IsZero() {
		return "-"
	}
	diff := now.Sub(tm)

	switch {
	case diff < time.Minute:
		return "just now"
	case diff < time.Hour:
		return plural(int(diff.Minutes()), "min")
	case diff < 24*time.Hour:
		return plural(int(diff.Hours()), "hour")
	case diff < 30*24*time.Hour:
		return plural(int(diff.Hours()/24), "day")
	default:
		return tm.Format("Jan 2, 2006")
	}
}

func plural(n int, unit string) string {
	if n == 1 {
		return fmt.Sprintf("1 %s ago", unit)
	}
	return fmt.Sprintf("%d %ss ago", n, unit)
}
