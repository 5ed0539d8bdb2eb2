package model

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sitestyle/internal/application/usecase"
	"github.com/bnema/sitestyle/internal/cli/styles"
	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/infrastructure/persistence/memory"
)

type signal struct {
	action string
	target string
	field  entity.SettingField
}

type recordingSignaler struct {
	signals []signal
}

func (r *recordingSignaler) ApplyDomain(_ context.Context, domain string) error {
	r.signals = append(r.signals, signal{action: "apply", target: domain})
	return nil
}

func (r *recordingSignaler) ResetTab(_ context.Context, tabID string, field entity.SettingField) error {
	r.signals = append(r.signals, signal{action: "resetTab", target: tabID, field: field})
	return nil
}

func (r *recordingSignaler) ResetDomain(_ context.Context, domain string, field entity.SettingField) error {
	r.signals = append(r.signals, signal{action: "resetDomain", target: domain, field: field})
	return nil
}

func newTestPopup(t *testing.T, domain string) (PopupModel, *usecase.ManageDisplaySettingsUseCase, *recordingSignaler) {
	t.Helper()
	store := usecase.NewManageDisplaySettingsUseCase(memory.NewDisplaySettingsRepository())
	sig := &recordingSignaler{}
	m := NewPopupModel(context.Background(), styles.NewTheme(), store, PopupModelConfig{
		Domain:       domain,
		TabID:        "tab-1",
		Fonts:        []string{"Arial", "Georgia", "Noto Sans"},
		ScaleFactors: []float64{0.75, 1.25, 1.5},
		Signaler:     sig,
	})
	return m, store, sig
}

// run feeds msg to the model and resolves the command it returns, one level deep.
func run(t *testing.T, m PopupModel, msg tea.Msg) PopupModel {
	t.Helper()
	next, cmd := m.Update(msg)
	m = next.(PopupModel)
	if cmd == nil {
		return m
	}
	if out := cmd(); out != nil {
		if _, ok := out.(tea.QuitMsg); ok {
			return m
		}
		next, _ = m.Update(out)
		m = next.(PopupModel)
	}
	return m
}

// press feeds msg without running the returned command.
func press(m PopupModel, msg tea.Msg) PopupModel {
	next, _ := m.Update(msg)
	return next.(PopupModel)
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyTab   = tea.KeyMsg{Type: tea.KeyTab}
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
)

func TestPopup_LoadSyncsStoredValues(t *testing.T) {
	m, store, _ := newTestPopup(t, "shop.example")
	ctx := context.Background()
	_, err := store.SetFont(ctx, "shop.example", "Georgia")
	require.NoError(t, err)
	_, err = store.SetFontSizeDelta(ctx, "shop.example", -2)
	require.NoError(t, err)
	_, err = store.SetScaleFactor(ctx, "shop.example", 1.5)
	require.NoError(t, err)

	m = run(t, m, m.Init()())

	assert.Equal(t, "Georgia", m.selectedFont())
	assert.Equal(t, -2, m.delta)
	assert.Equal(t, 1.5, m.selectedScale())
	assert.Contains(t, m.View(), "Domain: shop.example, Font Size delta: -2px")
}

func TestPopup_ApplyFontStoresAndBroadcasts(t *testing.T) {
	m, store, sig := newTestPopup(t, "shop.example")
	m = run(t, m, m.Init()())

	m = run(t, m, keyDown)
	m = run(t, m, keyEnter)

	require.NoError(t, m.Err())
	cfg, err := store.Get(context.Background(), "shop.example")
	require.NoError(t, err)
	require.NotNil(t, cfg.Font)
	assert.Equal(t, "Georgia", *cfg.Font)
	assert.Equal(t, []signal{{action: "apply", target: "shop.example"}}, sig.signals)
	assert.Contains(t, m.View(), "Domain: shop.example, Font: Georgia")
}

func TestPopup_DeltaStepperClamps(t *testing.T) {
	m, store, _ := newTestPopup(t, "shop.example")
	m = run(t, m, keyTab)
	for range 8 {
		m = run(t, m, keyRunes("+"))
	}
	assert.Equal(t, entity.FontSizeDeltaMax, m.delta)

	m = run(t, m, keyEnter)
	cfg, err := store.Get(context.Background(), "shop.example")
	require.NoError(t, err)
	require.NotNil(t, cfg.FontSizeDelta)
	assert.Equal(t, 5, *cfg.FontSizeDelta)

	for range 12 {
		m = run(t, m, keyRunes("-"))
	}
	assert.Equal(t, entity.FontSizeDeltaMin, m.delta)
}

func TestPopup_ApplyZeroDeltaClearsField(t *testing.T) {
	m, store, sig := newTestPopup(t, "shop.example")
	_, err := store.SetFontSizeDelta(context.Background(), "shop.example", 3)
	require.NoError(t, err)
	m = run(t, m, m.Init()())

	m = run(t, m, keyTab)
	for range 3 {
		m = run(t, m, keyRunes("-"))
	}
	m = run(t, m, keyEnter)

	cfg, err := store.Get(context.Background(), "shop.example")
	require.NoError(t, err)
	assert.True(t, cfg.IsEmpty())
	assert.Equal(t, []signal{{action: "apply", target: "shop.example"}}, sig.signals)
}

func TestPopup_ResetScaleClearsAndSignalsDomain(t *testing.T) {
	m, store, sig := newTestPopup(t, "shop.example")
	ctx := context.Background()
	_, err := store.SetScaleFactor(ctx, "shop.example", 1.25)
	require.NoError(t, err)
	_, err = store.SetFont(ctx, "shop.example", "Arial")
	require.NoError(t, err)
	m = run(t, m, m.Init()())

	m = run(t, m, keyTab)
	m = run(t, m, keyTab)
	m = run(t, m, keyRunes("r"))

	cfg, err := store.Get(ctx, "shop.example")
	require.NoError(t, err)
	assert.Nil(t, cfg.ScaleFactor)
	require.NotNil(t, cfg.Font)
	assert.Equal(t, entity.ScaleDefault, m.selectedScale())
	assert.Equal(t, []signal{{action: "resetDomain", target: "shop.example", field: entity.FieldScaleFactor}}, sig.signals)
}

func TestPopup_NoHostOnlyResetsTab(t *testing.T) {
	m, _, sig := newTestPopup(t, "")
	m = run(t, m, m.Init()())

	m = run(t, m, keyRunes("r"))
	assert.Equal(t, []signal{{action: "resetTab", target: "tab-1", field: entity.FieldFont}}, sig.signals)

	m = run(t, m, keyEnter)
	require.Error(t, m.Err())
	assert.ErrorIs(t, m.Err(), entity.ErrInvalidDomain)
	assert.Len(t, sig.signals, 1)
}

func TestPopup_FontFilter(t *testing.T) {
	m, _, _ := newTestPopup(t, "shop.example")

	m = press(m, keyRunes("/"))
	require.True(t, m.filter.Focused())
	m = press(m, keyRunes("n"))
	m = press(m, keyRunes("o"))
	assert.Equal(t, []string{"Noto Sans"}, m.filtered)
	assert.Equal(t, "Noto Sans", m.selectedFont())

	// q edits the filter instead of quitting.
	m = press(m, keyRunes("q"))
	assert.False(t, m.quitting)
	assert.Empty(t, m.filtered)

	m = press(m, tea.KeyMsg{Type: tea.KeyEsc})
	assert.False(t, m.filter.Focused())
	assert.False(t, m.quitting)
}

func TestPopup_Quit(t *testing.T) {
	m, _, _ := newTestPopup(t, "shop.example")
	next, cmd := m.Update(keyRunes("q"))
	require.NotNil(t, cmd)
	assert.IsType(t, tea.QuitMsg{}, cmd())
	assert.Empty(t, next.View())
}
