package usecase_test

import (
	"context"
	"errors"
	"iter"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"github.com/bnema/sitestyle/internal/application/port"
	portmocks "github.com/bnema/sitestyle/internal/application/port/mocks"
	"github.com/bnema/sitestyle/internal/application/usecase"
	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/infrastructure/htmldoc"
)

type fakeTab struct {
	id  port.TabID
	url string
	doc port.Document
}

func newTab(ctrl *gomock.Controller, tab fakeTab) *portmocks.MockTab {
	m := portmocks.NewMockTab(ctrl)
	m.EXPECT().ID().Return(tab.id).AnyTimes()
	m.EXPECT().URL(gomock.Any()).Return(tab.url, nil).AnyTimes()
	m.EXPECT().Document().Return(tab.doc).AnyTimes()
	return m
}

func newRegistry(ctrl *gomock.Controller, tabs ...*portmocks.MockTab) *portmocks.MockTabRegistry {
	reg := portmocks.NewMockTabRegistry(ctrl)
	all := make([]port.Tab, 0, len(tabs))
	byID := make(map[port.TabID]port.Tab, len(tabs))
	for _, tab := range tabs {
		all = append(all, tab)
		byID[tab.ID()] = tab
	}
	reg.EXPECT().Tabs(gomock.Any()).Return(all, nil).AnyTimes()
	reg.EXPECT().Tab(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, id port.TabID) (port.Tab, error) {
			if tab, ok := byID[id]; ok {
				return tab, nil
			}
			return nil, port.ErrTabNotFound
		}).AnyTimes()
	return reg
}

func TestApplyDisplaySettings_BroadcastReachesEveryTabOfDomain(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	docA1 := parsePage(t, styledPage)
	docA2 := parsePage(t, styledPage)
	docB := parsePage(t, styledPage)
	reg := newRegistry(ctrl,
		newTab(ctrl, fakeTab{id: "1", url: "https://a.com/x", doc: docA1}),
		newTab(ctrl, fakeTab{id: "2", url: "https://a.com/y?q=1", doc: docA2}),
		newTab(ctrl, fakeTab{id: "3", url: "https://b.com/", doc: docB}),
		newTab(ctrl, fakeTab{id: "4", url: "chrome://newtab/", doc: parsePage(t, styledPage)}),
	)

	store := newStore()
	_, err := store.SetFont(ctx, "a.com", "Arial")
	require.NoError(t, err)

	uc := usecase.NewApplyDisplaySettingsUseCase(store, reg, nil, 2)
	result, err := uc.BroadcastDomain(ctx, "a.com")
	require.NoError(t, err)
	assert.Equal(t, usecase.BroadcastResult{Matched: 2, Styled: 2}, result)

	for _, doc := range []*htmldoc.Document{docA1, docA2} {
		css, ok := doc.StyleText(usecase.FontStyleID)
		require.True(t, ok)
		assert.Contains(t, css, `"Arial"`)
	}
	_, ok := docB.StyleText(usecase.FontStyleID)
	assert.False(t, ok, "other domains are untouched")
}

func TestApplyDisplaySettings_ScaleBroadcastLeavesFontRuleAlone(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	docs := []*htmldoc.Document{parsePage(t, styledPage), parsePage(t, styledPage)}
	reg := newRegistry(ctrl,
		newTab(ctrl, fakeTab{id: "1", url: "https://a.com/one", doc: docs[0]}),
		newTab(ctrl, fakeTab{id: "2", url: "https://a.com/two", doc: docs[1]}),
	)

	store := newStore()
	uc := usecase.NewApplyDisplaySettingsUseCase(store, reg, nil, 0)

	_, err := store.SetFont(ctx, "a.com", "Georgia")
	require.NoError(t, err)
	_, err = store.SetScaleFactor(ctx, "a.com", 1.5)
	require.NoError(t, err)
	_, err = uc.BroadcastDomain(ctx, "a.com")
	require.NoError(t, err)

	fontRules := make([]string, len(docs))
	for i, doc := range docs {
		css, ok := doc.StyleText(usecase.FontStyleID)
		require.True(t, ok)
		fontRules[i] = css
	}

	_, err = store.SetScaleFactor(ctx, "a.com", 2)
	require.NoError(t, err)
	result, err := uc.BroadcastDomain(ctx, "a.com")
	require.NoError(t, err)
	assert.Equal(t, usecase.BroadcastResult{Matched: 2, Styled: 2}, result)

	for i, doc := range docs {
		scale, ok := doc.StyleText(usecase.ScalingStyleID)
		require.True(t, ok)
		assert.Contains(t, scale, "scale(2)")
		assert.NotContains(t, scale, "scale(1.5)")

		font, ok := doc.StyleText(usecase.FontStyleID)
		require.True(t, ok)
		assert.Equal(t, fontRules[i], font, "font rule must not change on a scale update")

		markup := doc.String()
		assert.Equal(t, 1, strings.Count(markup, `id="`+usecase.FontStyleID+`"`))
		assert.Equal(t, 1, strings.Count(markup, `id="`+usecase.ScalingStyleID+`"`))
	}
}

func TestApplyDisplaySettings_BroadcastResetsClearedFields(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	doc := parsePage(t, styledPage)
	reg := newRegistry(ctrl, newTab(ctrl, fakeTab{id: "1", url: "https://a.com/", doc: doc}))

	store := newStore()
	uc := usecase.NewApplyDisplaySettingsUseCase(store, reg, nil, 0)

	_, err := store.SetScaleFactor(ctx, "a.com", 2)
	require.NoError(t, err)
	_, err = uc.BroadcastDomain(ctx, "a.com")
	require.NoError(t, err)
	_, ok := doc.StyleText(usecase.ScalingStyleID)
	require.True(t, ok)

	_, err = store.ClearField(ctx, "a.com", entity.FieldScaleFactor)
	require.NoError(t, err)
	_, err = uc.BroadcastDomain(ctx, "a.com")
	require.NoError(t, err)
	_, ok = doc.StyleText(usecase.ScalingStyleID)
	assert.False(t, ok)
}

// closedDocument fails every operation, like a tab closed mid-broadcast.
type closedDocument struct{}

var errClosed = errors.New("target closed")

func (closedDocument) UpsertStyle(context.Context, string, string) error { return errClosed }
func (closedDocument) RemoveStyle(context.Context, string) error         { return errClosed }
func (closedDocument) Elements(context.Context) iter.Seq2[port.Element, error] {
	return func(yield func(port.Element, error) bool) { yield(nil, errClosed) }
}
func (closedDocument) ElementsWithAttribute(context.Context, string) iter.Seq2[port.Element, error] {
	return func(yield func(port.Element, error) bool) { yield(nil, errClosed) }
}

func TestApplyDisplaySettings_FailingTabDoesNotStopOthers(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	good := parsePage(t, styledPage)
	reg := newRegistry(ctrl,
		newTab(ctrl, fakeTab{id: "1", url: "https://a.com/", doc: closedDocument{}}),
		newTab(ctrl, fakeTab{id: "2", url: "https://a.com/", doc: good}),
	)

	store := newStore()
	_, err := store.SetFontSizeDelta(ctx, "a.com", 2)
	require.NoError(t, err)

	result, err := usecase.NewApplyDisplaySettingsUseCase(store, reg, nil, 1).BroadcastDomain(ctx, "a.com")
	require.NoError(t, err)
	assert.Equal(t, usecase.BroadcastResult{Matched: 2, Styled: 1, Failed: 1}, result)
	assert.Equal(t, "18px", good.ElementByID("p").InlineStyle("font-size"))
}

func TestApplyDisplaySettings_TabListingErrorIsReturned(t *testing.T) {
	ctrl := gomock.NewController(t)
	reg := portmocks.NewMockTabRegistry(ctrl)
	reg.EXPECT().Tabs(gomock.Any()).Return(nil, errors.New("browser gone"))

	_, err := usecase.NewApplyDisplaySettingsUseCase(newStore(), reg, nil, 0).BroadcastDomain(testContext(), "a.com")
	assert.ErrorContains(t, err, "browser gone")
}

func TestApplyDisplaySettings_NavigationAppliesStoredSettings(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	doc := parsePage(t, styledPage)
	reg := newRegistry(ctrl, newTab(ctrl, fakeTab{id: "7", url: "https://shop.example/cart", doc: doc}))

	store := newStore()
	_, err := store.SetScaleFactor(ctx, "shop.example", 1.5)
	require.NoError(t, err)
	_, err = store.SetFontSizeDelta(ctx, "shop.example", 1)
	require.NoError(t, err)

	uc := usecase.NewApplyDisplaySettingsUseCase(store, reg, nil, 0)
	nav := port.NavigationEvent{TabID: "7", URL: "https://shop.example/cart"}
	require.NoError(t, uc.OnNavigationCompleted(ctx, nav))

	css, ok := doc.StyleText(usecase.ScalingStyleID)
	require.True(t, ok)
	assert.Contains(t, css, "scale(1.5)")
	assert.Equal(t, "17px", doc.ElementByID("p").InlineStyle("font-size"))
	_, ok = doc.StyleText(usecase.FontStyleID)
	assert.False(t, ok)

	// A same-document reload event fires again; baselines stay single.
	require.NoError(t, uc.OnNavigationCompleted(ctx, nav))
	assert.Equal(t, "17px", doc.ElementByID("p").InlineStyle("font-size"))
	assertSingleBaselines(t, doc)
}

// assertSingleBaselines checks that each body element carries the baseline
// marker and no element carries it twice.
func assertSingleBaselines(t *testing.T, doc *htmldoc.Document) {
	t.Helper()
	ctx := context.Background()

	marked := 0
	for el, err := range doc.Elements(ctx) {
		require.NoError(t, err)
		if _, ok, err := el.Attribute(ctx, usecase.OriginalFontSizeAttr); err == nil && ok {
			marked++
		}
	}
	for _, id := range []string{"p", "outer", "inner", "title"} {
		_, ok := marker(t, doc, id)
		assert.True(t, ok, id)
	}
	assert.Equal(t, marked, strings.Count(doc.String(), usecase.OriginalFontSizeAttr+"="))
}

func TestApplyDisplaySettings_NavigationWithoutSettingsTouchesNothing(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	// No tab lookup is expected: the registry mock fails on any call.
	reg := portmocks.NewMockTabRegistry(ctrl)
	uc := usecase.NewApplyDisplaySettingsUseCase(newStore(), reg, nil, 0)

	require.NoError(t, uc.OnNavigationCompleted(ctx, port.NavigationEvent{TabID: "1", URL: "https://plain.example/"}))
	require.NoError(t, uc.OnNavigationCompleted(ctx, port.NavigationEvent{TabID: "1", URL: "about:blank"}))
}

func TestApplyDisplaySettings_NavigationOnUnknownTab(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)
	reg := newRegistry(ctrl)

	store := newStore()
	_, err := store.SetFont(ctx, "a.com", "Arial")
	require.NoError(t, err)

	err = usecase.NewApplyDisplaySettingsUseCase(store, reg, nil, 0).
		OnNavigationCompleted(ctx, port.NavigationEvent{TabID: "99", URL: "https://a.com/"})
	assert.ErrorIs(t, err, port.ErrTabNotFound)
}

func TestApplyDisplaySettings_ResetOnTab(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	doc := parsePage(t, styledPage)
	reg := newRegistry(ctrl, newTab(ctrl, fakeTab{id: "1", url: "https://a.com/", doc: doc}))
	styler := usecase.NewStylePageUseCase()
	require.NoError(t, styler.ApplyFont(ctx, doc, "Arial"))
	require.NoError(t, styler.ApplyFontSizeDelta(ctx, doc, 2))

	uc := usecase.NewApplyDisplaySettingsUseCase(newStore(), reg, styler, 0)
	require.NoError(t, uc.ResetOnTab(ctx, "1", entity.FieldFont))

	_, ok := doc.StyleText(usecase.FontStyleID)
	assert.False(t, ok)
	assert.Equal(t, "18px", doc.ElementByID("p").InlineStyle("font-size"), "other aspects stay applied")

	assert.ErrorIs(t, uc.ResetOnTab(ctx, "1", entity.SettingField("color")), entity.ErrUnknownField)
	assert.ErrorIs(t, uc.ResetOnTab(ctx, "2", entity.FieldFont), port.ErrTabNotFound)
}

func TestApplyDisplaySettings_ResetOnDomain(t *testing.T) {
	ctx := testContext()
	ctrl := gomock.NewController(t)

	docA1 := parsePage(t, styledPage)
	docA2 := parsePage(t, styledPage)
	reg := newRegistry(ctrl,
		newTab(ctrl, fakeTab{id: "1", url: "https://a.com/", doc: docA1}),
		newTab(ctrl, fakeTab{id: "2", url: "http://a.com:8080/", doc: docA2}),
	)
	styler := usecase.NewStylePageUseCase()
	for _, doc := range []*htmldoc.Document{docA1, docA2} {
		require.NoError(t, styler.ApplyScaling(ctx, doc, 2))
	}

	uc := usecase.NewApplyDisplaySettingsUseCase(newStore(), reg, styler, 0)
	require.NoError(t, uc.ResetOnDomain(ctx, "a.com", entity.FieldScaleFactor))

	for _, doc := range []*htmldoc.Document{docA1, docA2} {
		_, ok := doc.StyleText(usecase.ScalingStyleID)
		assert.False(t, ok)
	}
}
