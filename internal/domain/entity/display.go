package entity

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// SettingField names one aspect of a DomainConfig.
type SettingField string

const (
	FieldFont          SettingField = "font"
	FieldFontSizeDelta SettingField = "fontSizeDelta"
	FieldScaleFactor   SettingField = "scaleFactor"
)

// AllSettingFields lists every field in display order.
var AllSettingFields = []SettingField{FieldFont, FieldFontSizeDelta, FieldScaleFactor}

// Font size delta and scale constants
const (
	FontSizeDeltaMin = -5
	FontSizeDeltaMax = 5

	ScaleDefault = 1.0
	ScaleMin     = 0.25 // 25%
	ScaleMax     = 5.0  // 500%
)

var (
	ErrInvalidDomain = errors.New("invalid domain")
	ErrUnknownField  = errors.New("unknown setting field")
	ErrInvalidScale  = errors.New("invalid scale factor")
)

// ParseSettingField accepts the canonical field names plus the short aliases
// used on the command line ("size", "scaling", ...).
func ParseSettingField(s string) (SettingField, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "font", "font-family", "fontfamily":
		return FieldFont, nil
	case "fontsizedelta", "fontsize", "font-size", "size", "delta":
		return FieldFontSizeDelta, nil
	case "scalefactor", "scale", "scaling", "zoom":
		return FieldScaleFactor, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownField, s)
}

// DomainConfig holds the display preferences persisted for one domain.
// A nil field is unset. Sentinel values (empty font, zero delta, unit scale)
// are never stored: setting them clears the field instead.
type DomainConfig struct {
	Domain        string
	Font          *string
	FontSizeDelta *int
	ScaleFactor   *float64
	UpdatedAt     time.Time
}

// NewDomainConfig creates an empty config for a domain.
func NewDomainConfig(domain string) *DomainConfig {
	return &DomainConfig{Domain: domain}
}

// IsEmpty reports whether no field is set.
func (c *DomainConfig) IsEmpty() bool {
	return c == nil || (c.Font == nil && c.FontSizeDelta == nil && c.ScaleFactor == nil)
}

// Clone returns a deep copy.
func (c *DomainConfig) Clone() *DomainConfig {
	if c == nil {
		return nil
	}
	out := &DomainConfig{Domain: c.Domain, UpdatedAt: c.UpdatedAt}
	if c.Font != nil {
		v := *c.Font
		out.Font = &v
	}
	if c.FontSizeDelta != nil {
		v := *c.FontSizeDelta
		out.FontSizeDelta = &v
	}
	if c.ScaleFactor != nil {
		v := *c.ScaleFactor
		out.ScaleFactor = &v
	}
	return out
}

// SetFont sets the font family. An empty name clears the field.
func (c *DomainConfig) SetFont(font string) {
	font = strings.TrimSpace(font)
	if FontAction(font) == StyleReset {
		c.Font = nil
	} else {
		c.Font = &font
	}
	c.UpdatedAt = time.Now()
}

// SetFontSizeDelta clamps the delta to the allowed range. Zero clears the field.
func (c *DomainConfig) SetFontSizeDelta(delta int) {
	delta = ClampFontSizeDelta(delta)
	if FontSizeDeltaAction(delta) == StyleReset {
		c.FontSizeDelta = nil
	} else {
		c.FontSizeDelta = &delta
	}
	c.UpdatedAt = time.Now()
}

// SetScaleFactor validates and clamps the factor. A factor of 1 clears the field.
func (c *DomainConfig) SetScaleFactor(factor float64) error {
	if math.IsNaN(factor) || math.IsInf(factor, 0) || factor <= 0 {
		return fmt.Errorf("%w: %v", ErrInvalidScale, factor)
	}
	factor = clampScale(factor)
	if ScaleAction(factor) == StyleReset {
		c.ScaleFactor = nil
	} else {
		c.ScaleFactor = &factor
	}
	c.UpdatedAt = time.Now()
	return nil
}

// Clear unsets one field.
func (c *DomainConfig) Clear(field SettingField) error {
	switch field {
	case FieldFont:
		c.Font = nil
	case FieldFontSizeDelta:
		c.FontSizeDelta = nil
	case FieldScaleFactor:
		c.ScaleFactor = nil
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	c.UpdatedAt = time.Now()
	return nil
}

// Has reports whether a field is set.
func (c *DomainConfig) Has(field SettingField) bool {
	if c == nil {
		return false
	}
	switch field {
	case FieldFont:
		return c.Font != nil
	case FieldFontSizeDelta:
		return c.FontSizeDelta != nil
	case FieldScaleFactor:
		return c.ScaleFactor != nil
	}
	return false
}

// SetRaw parses user input for a field and applies it.
// Font size input follows the popup rules: non-numeric becomes 0, then clamped.
func (c *DomainConfig) SetRaw(field SettingField, raw string) error {
	switch field {
	case FieldFont:
		c.SetFont(raw)
	case FieldFontSizeDelta:
		c.SetFontSizeDelta(ParseFontSizeDelta(raw))
	case FieldScaleFactor:
		factor, err := strconv.ParseFloat(strings.TrimSpace(raw), 64)
		if err != nil {
			return fmt.Errorf("%w: %q", ErrInvalidScale, raw)
		}
		return c.SetScaleFactor(factor)
	default:
		return fmt.Errorf("%w: %q", ErrUnknownField, field)
	}
	return nil
}

// SummaryLines renders the config the way the settings summary displays it.
func (c *DomainConfig) SummaryLines() []string {
	if c.IsEmpty() {
		return nil
	}
	lines := make([]string, 0, 3)
	if c.Font != nil {
		lines = append(lines, fmt.Sprintf("Domain: %s, Font: %s", c.Domain, *c.Font))
	}
	if c.FontSizeDelta != nil {
		lines = append(lines, fmt.Sprintf("Domain: %s, Font Size delta: %s", c.Domain, FormatFontSizeDelta(*c.FontSizeDelta)))
	}
	if c.ScaleFactor != nil {
		lines = append(lines, fmt.Sprintf("Domain: %s, Scaling Factor: %s", c.Domain, FormatScaleFactor(*c.ScaleFactor)))
	}
	return lines
}

// StyleAction is the outcome of the sentinel policy for one aspect.
type StyleAction int

const (
	// StyleReset removes the aspect from the page.
	StyleReset StyleAction = iota
	// StyleApply applies the aspect with the given value.
	StyleApply
)

// String returns a human-readable representation of the action.
func (a StyleAction) String() string {
	if a == StyleApply {
		return "apply"
	}
	return "reset"
}

// FontAction routes an empty font to reset.
func FontAction(font string) StyleAction {
	if strings.TrimSpace(font) == "" {
		return StyleReset
	}
	return StyleApply
}

// FontSizeDeltaAction routes a zero delta to reset.
func FontSizeDeltaAction(delta int) StyleAction {
	if delta == 0 {
		return StyleReset
	}
	return StyleApply
}

// ScaleAction routes a unit factor to reset.
func ScaleAction(factor float64) StyleAction {
	if factor == ScaleDefault {
		return StyleReset
	}
	return StyleApply
}

// ClampFontSizeDelta constrains a delta to [FontSizeDeltaMin, FontSizeDeltaMax].
func ClampFontSizeDelta(delta int) int {
	if delta < FontSizeDeltaMin {
		return FontSizeDeltaMin
	}
	if delta > FontSizeDeltaMax {
		return FontSizeDeltaMax
	}
	return delta
}

// ParseFontSizeDelta reads the leading integer of raw input ("3", "+2px", " -4.9")
// and clamps it. Input without a leading integer yields 0.
func ParseFontSizeDelta(raw string) int {
	s := strings.TrimSpace(raw)
	end := 0
	if end < len(s) && (s[end] == '+' || s[end] == '-') {
		end++
	}
	digits := end
	for end < len(s) && s[end] >= '0' && s[end] <= '9' {
		end++
	}
	if end == digits {
		return 0
	}
	n, err := strconv.Atoi(s[:end])
	if err != nil {
		// Only range errors remain at this point.
		if s[0] == '-' {
			return FontSizeDeltaMin
		}
		return FontSizeDeltaMax
	}
	return ClampFontSizeDelta(n)
}

// FormatFontSizeDelta renders a delta with an explicit sign, e.g. "+2px".
func FormatFontSizeDelta(delta int) string {
	if delta >= 0 {
		return fmt.Sprintf("+%dpx", delta)
	}
	return fmt.Sprintf("%dpx", delta)
}

// FormatScaleFactor renders a factor without trailing zeros, e.g. "1.25".
func FormatScaleFactor(factor float64) string {
	return strconv.FormatFloat(factor, 'f', -1, 64)
}

func clampScale(factor float64) float64 {
	if factor < ScaleMin {
		return ScaleMin
	}
	if factor > ScaleMax {
		return ScaleMax
	}
	return factor
}
