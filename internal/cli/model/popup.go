package model

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/bnema/sitestyle/internal/cli/styles"
	"github.com/bnema/sitestyle/internal/domain/entity"
)

// PopupSettings is the part of the settings use case the popup drives.
type PopupSettings interface {
	Get(ctx context.Context, domain string) (*entity.DomainConfig, error)
	SetFont(ctx context.Context, domain, font string) (*entity.DomainConfig, error)
	SetFontSizeDelta(ctx context.Context, domain string, delta int) (*entity.DomainConfig, error)
	SetScaleFactor(ctx context.Context, domain string, factor float64) (*entity.DomainConfig, error)
	ClearField(ctx context.Context, domain string, field entity.SettingField) (*entity.DomainConfig, error)
	Summary(ctx context.Context) ([]string, error)
}

// Signaler forwards styling signals to open pages.
type Signaler interface {
	ApplyDomain(ctx context.Context, domain string) error
	ResetTab(ctx context.Context, tabID string, field entity.SettingField) error
	ResetDomain(ctx context.Context, domain string, field entity.SettingField) error
}

type nopSignaler struct{}

func (nopSignaler) ApplyDomain(context.Context, string) error { return nil }
func (nopSignaler) ResetTab(context.Context, string, entity.SettingField) error {
	return nil
}
func (nopSignaler) ResetDomain(context.Context, string, entity.SettingField) error {
	return nil
}

type popupSection int

const (
	sectionFont popupSection = iota
	sectionDelta
	sectionScale
	sectionSummary
	sectionCount
)

func (s popupSection) field() (entity.SettingField, bool) {
	switch s {
	case sectionFont:
		return entity.FieldFont, true
	case sectionDelta:
		return entity.FieldFontSizeDelta, true
	case sectionScale:
		return entity.FieldScaleFactor, true
	default:
		return "", false
	}
}

// PopupModelConfig configures the popup.
type PopupModelConfig struct {
	// Domain is the hostname of the active tab. Empty when the tab has no
	// host: settings cannot be stored, only the tab itself is reset.
	Domain string
	TabID  string

	Fonts        []string
	ScaleFactors []float64

	// Signaler is nil when no browser is reachable; changes are stored only.
	Signaler Signaler
}

// PopupModel is the Bubble Tea model for the per-domain settings popup.
type PopupModel struct {
	settings PopupSettings
	signaler Signaler
	domain   string
	tabID    string

	fonts        []string
	filtered     []string
	filter       textinput.Model
	fontCursor   int
	delta        int
	scales       []float64
	scaleCursor  int
	summary      []string
	focus        popupSection
	listHeight   int
	width        int
	help         help.Model
	keys         styles.PopupKeyMap
	status       string
	err          error
	quitting     bool
	pendingFetch bool

	theme *styles.Theme
	ctx   context.Context
}

// NewPopupModel creates the popup for one domain.
func NewPopupModel(ctx context.Context, theme *styles.Theme, settings PopupSettings, cfg PopupModelConfig) PopupModel {
	signaler := cfg.Signaler
	if signaler == nil {
		signaler = nopSignaler{}
	}

	filter := textinput.New()
	filter.Placeholder = "filter fonts"
	filter.Prompt = "/ "
	filter.CharLimit = 64

	scales := slices.Clone(cfg.ScaleFactors)
	if !slices.Contains(scales, entity.ScaleDefault) {
		scales = append(scales, entity.ScaleDefault)
	}
	slices.Sort(scales)

	m := PopupModel{
		settings:     settings,
		signaler:     signaler,
		domain:       cfg.Domain,
		tabID:        cfg.TabID,
		fonts:        slices.Clone(cfg.Fonts),
		filter:       filter,
		scales:       scales,
		scaleCursor:  slices.Index(scales, entity.ScaleDefault),
		listHeight:   8,
		width:        72,
		help:         styles.NewHelp(theme),
		keys:         styles.DefaultPopupKeyMap(),
		theme:        theme,
		ctx:          ctx,
		pendingFetch: true,
	}
	m.filtered = m.fonts
	return m
}

type popupLoadedMsg struct {
	cfg     *entity.DomainConfig
	summary []string
	err     error
}

type popupSavedMsg struct {
	status  string
	reset   entity.SettingField
	summary []string
	err     error
}

// Init implements tea.Model.
func (m PopupModel) Init() tea.Cmd {
	return m.load
}

func (m PopupModel) load() tea.Msg {
	var cfg *entity.DomainConfig
	if m.domain != "" {
		var err error
		if cfg, err = m.settings.Get(m.ctx, m.domain); err != nil {
			return popupLoadedMsg{err: err}
		}
	}
	summary, err := m.settings.Summary(m.ctx)
	return popupLoadedMsg{cfg: cfg, summary: summary, err: err}
}

// Update implements tea.Model.
func (m PopupModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.help.Width = msg.Width
		m.listHeight = max(3, msg.Height-22)
		return m, nil

	case popupLoadedMsg:
		m.pendingFetch = false
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.summary = msg.summary
		m.syncFrom(msg.cfg)
		return m, nil

	case popupSavedMsg:
		if msg.err != nil {
			m.err = msg.err
			m.status = ""
			return m, nil
		}
		m.err = nil
		m.status = msg.status
		if msg.summary != nil {
			m.summary = msg.summary
		}
		switch msg.reset {
		case entity.FieldFontSizeDelta:
			m.delta = 0
		case entity.FieldScaleFactor:
			m.scaleCursor = slices.Index(m.scales, entity.ScaleDefault)
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// syncFrom moves the selectors to the stored values.
func (m *PopupModel) syncFrom(cfg *entity.DomainConfig) {
	if cfg == nil {
		return
	}
	if cfg.Font != nil {
		if i := slices.Index(m.filtered, *cfg.Font); i >= 0 {
			m.fontCursor = i
		}
	}
	if cfg.FontSizeDelta != nil {
		m.delta = *cfg.FontSizeDelta
	}
	if cfg.ScaleFactor != nil {
		if i := slices.Index(m.scales, *cfg.ScaleFactor); i >= 0 {
			m.scaleCursor = i
		} else {
			m.scales = append(m.scales, *cfg.ScaleFactor)
			slices.Sort(m.scales)
			m.scaleCursor = slices.Index(m.scales, *cfg.ScaleFactor)
		}
	}
}

func (m PopupModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	// While the font filter has focus every key but enter/esc/tab edits it.
	if m.filter.Focused() {
		switch msg.Type {
		case tea.KeyEnter, tea.KeyEsc, tea.KeyTab, tea.KeyShiftTab:
			m.filter.Blur()
			if msg.Type == tea.KeyEsc || msg.Type == tea.KeyEnter {
				return m, nil
			}
		default:
			var cmd tea.Cmd
			m.filter, cmd = m.filter.Update(msg)
			m.applyFilter()
			return m, cmd
		}
	}

	switch {
	case key.Matches(msg, m.keys.Quit):
		m.quitting = true
		return m, tea.Quit
	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
	case key.Matches(msg, m.keys.NextSection):
		m.focus = (m.focus + 1) % sectionCount
	case key.Matches(msg, m.keys.PrevSection):
		m.focus = (m.focus + sectionCount - 1) % sectionCount
	case msg.String() == "/" && m.focus == sectionFont:
		m.filter.Focus()
		return m, textinput.Blink
	case key.Matches(msg, m.keys.Up):
		m.move(-1)
	case key.Matches(msg, m.keys.Down):
		m.move(1)
	case key.Matches(msg, m.keys.Decrease):
		m.step(-1)
	case key.Matches(msg, m.keys.Increase):
		m.step(1)
	case key.Matches(msg, m.keys.Apply):
		return m, m.apply()
	case key.Matches(msg, m.keys.Reset):
		return m, m.reset()
	}
	return m, nil
}

func (m *PopupModel) applyFilter() {
	query := strings.ToLower(strings.TrimSpace(m.filter.Value()))
	if query == "" {
		m.filtered = m.fonts
	} else {
		m.filtered = m.filtered[:0:0]
		for _, font := range m.fonts {
			if strings.Contains(strings.ToLower(font), query) {
				m.filtered = append(m.filtered, font)
			}
		}
	}
	m.fontCursor = min(m.fontCursor, max(0, len(m.filtered)-1))
}

func (m *PopupModel) move(dir int) {
	switch m.focus {
	case sectionFont:
		if len(m.filtered) > 0 {
			m.fontCursor = clampIndex(m.fontCursor+dir, len(m.filtered))
		}
	case sectionDelta:
		m.step(-dir)
	case sectionScale:
		m.scaleCursor = clampIndex(m.scaleCursor+dir, len(m.scales))
	}
}

// step changes the pending delta or scale without storing it.
func (m *PopupModel) step(dir int) {
	switch m.focus {
	case sectionDelta:
		m.delta = entity.ClampFontSizeDelta(m.delta + dir)
	case sectionScale:
		m.scaleCursor = clampIndex(m.scaleCursor+dir, len(m.scales))
	}
}

func clampIndex(i, n int) int {
	return max(0, min(i, n-1))
}

func (m PopupModel) selectedFont() string {
	if m.fontCursor < 0 || m.fontCursor >= len(m.filtered) {
		return ""
	}
	return m.filtered[m.fontCursor]
}

func (m PopupModel) selectedScale() float64 {
	if m.scaleCursor < 0 || m.scaleCursor >= len(m.scales) {
		return entity.ScaleDefault
	}
	return m.scales[m.scaleCursor]
}

// apply stores the pending value of the focused section and restyles every
// tab of the domain.
func (m PopupModel) apply() tea.Cmd {
	if _, ok := m.focus.field(); !ok {
		return nil
	}
	if m.domain == "" {
		return savedErr(fmt.Errorf("active tab has no host: %w", entity.ErrInvalidDomain))
	}

	focus, font, delta, scale := m.focus, m.selectedFont(), m.delta, m.selectedScale()
	ctx, settings, signaler, domain := m.ctx, m.settings, m.signaler, m.domain
	return func() tea.Msg {
		var (
			err    error
			status string
		)
		switch focus {
		case sectionFont:
			if font == "" {
				return popupSavedMsg{err: fmt.Errorf("no font selected")}
			}
			_, err = settings.SetFont(ctx, domain, font)
			status = fmt.Sprintf("Font set to %s", font)
		case sectionDelta:
			_, err = settings.SetFontSizeDelta(ctx, domain, delta)
			status = fmt.Sprintf("Font size delta set to %s", entity.FormatFontSizeDelta(delta))
		case sectionScale:
			_, err = settings.SetScaleFactor(ctx, domain, scale)
			status = fmt.Sprintf("Scaling factor set to %s", entity.FormatScaleFactor(scale))
		}
		if err != nil {
			return popupSavedMsg{err: err}
		}
		if err := signaler.ApplyDomain(ctx, domain); err != nil {
			return popupSavedMsg{err: fmt.Errorf("saved, but failed to apply: %w", err)}
		}
		summary, err := settings.Summary(ctx)
		return popupSavedMsg{status: status, summary: summary, err: err}
	}
}

// reset clears the focused field and removes it from every tab of the
// domain, or from the active tab alone when it has no host.
func (m PopupModel) reset() tea.Cmd {
	field, ok := m.focus.field()
	if !ok {
		return nil
	}
	ctx, settings, signaler, domain, tabID := m.ctx, m.settings, m.signaler, m.domain, m.tabID
	return func() tea.Msg {
		status := fmt.Sprintf("%s reset", field)
		if domain == "" {
			if tabID == "" {
				return popupSavedMsg{err: fmt.Errorf("active tab has no host: %w", entity.ErrInvalidDomain)}
			}
			if err := signaler.ResetTab(ctx, tabID, field); err != nil {
				return popupSavedMsg{err: err}
			}
			return popupSavedMsg{status: status, reset: field}
		}

		if _, err := settings.ClearField(ctx, domain, field); err != nil {
			return popupSavedMsg{err: err}
		}
		if err := signaler.ResetDomain(ctx, domain, field); err != nil {
			return popupSavedMsg{err: fmt.Errorf("cleared, but failed to reset tabs: %w", err)}
		}
		summary, err := settings.Summary(ctx)
		return popupSavedMsg{status: status, reset: field, summary: summary, err: err}
	}
}

func savedErr(err error) tea.Cmd {
	return func() tea.Msg { return popupSavedMsg{err: err} }
}

// View implements tea.Model.
func (m PopupModel) View() string {
	if m.quitting {
		return ""
	}
	t := m.theme

	title := t.Title.Render("sitestyle")
	if m.domain != "" {
		title = lipgloss.JoinHorizontal(lipgloss.Center, title, " ", t.DomainBadge(m.domain))
	} else {
		title = lipgloss.JoinHorizontal(lipgloss.Center, title, " ", t.MutedBadge("no host"))
	}

	sections := []string{
		title,
		m.section(sectionFont, "Font", m.renderFonts()),
		m.section(sectionDelta, "Font size", m.renderDelta()),
		m.section(sectionScale, "Scaling", m.renderScale()),
		m.section(sectionSummary, "Saved settings", m.renderSummary()),
	}

	switch {
	case m.err != nil:
		sections = append(sections, t.ErrorStyle.Render("Error: "+m.err.Error()))
	case m.status != "":
		sections = append(sections, t.SuccessStyle.Render(m.status))
	case m.pendingFetch:
		sections = append(sections, t.Subtle.Render("Loading..."))
	}

	sections = append(sections, m.help.View(m.keys))
	return lipgloss.JoinVertical(lipgloss.Left, sections...)
}

func (m PopupModel) section(s popupSection, title, body string) string {
	style := m.theme.Section
	if m.focus == s {
		style = m.theme.SectionFocused
	}
	width := max(20, m.width-4)
	return style.Width(width).Render(m.theme.Subtitle.Render(title) + "\n" + body)
}

func (m PopupModel) renderFonts() string {
	t := m.theme
	var b strings.Builder
	if m.filter.Focused() || m.filter.Value() != "" {
		b.WriteString(m.filter.View())
		b.WriteString("\n")
	}
	if len(m.filtered) == 0 {
		b.WriteString(t.Subtle.Render("no fonts"))
		return b.String()
	}

	start := 0
	if m.fontCursor >= m.listHeight {
		start = m.fontCursor - m.listHeight + 1
	}
	end := min(len(m.filtered), start+m.listHeight)
	for i := start; i < end; i++ {
		line := "  " + m.filtered[i]
		if i == m.fontCursor {
			line = t.Highlight.Render("> " + m.filtered[i])
		}
		b.WriteString(line)
		if i < end-1 {
			b.WriteString("\n")
		}
	}
	return b.String()
}

func (m PopupModel) renderDelta() string {
	t := m.theme
	value := t.Highlight.Render(entity.FormatFontSizeDelta(m.delta))
	hint := t.Subtle.Render(fmt.Sprintf("  [%d..%d], 0 resets", entity.FontSizeDeltaMin, entity.FontSizeDeltaMax))
	return "-  " + value + "  +" + hint
}

func (m PopupModel) renderScale() string {
	t := m.theme
	parts := make([]string, len(m.scales))
	for i, factor := range m.scales {
		label := entity.FormatScaleFactor(factor)
		if i == m.scaleCursor {
			parts[i] = t.Highlight.Render("[" + label + "]")
		} else {
			parts[i] = t.Subtle.Render(label)
		}
	}
	return strings.Join(parts, " ")
}

func (m PopupModel) renderSummary() string {
	if len(m.summary) == 0 {
		return m.theme.Subtle.Render("nothing saved yet")
	}
	return strings.Join(m.summary, "\n")
}

// Err returns the last error shown by the popup.
func (m PopupModel) Err() error {
	return m.err
}

// Ensure interface compliance.
var _ tea.Model = (*PopupModel)(nil)
