package usecase

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"golang.org/x/sync/errgroup"

	"github.com/bnema/sitestyle/internal/application/port"
	"github.com/bnema/sitestyle/internal/domain/entity"
	urlutil "github.com/bnema/sitestyle/internal/domain/url"
	"github.com/bnema/sitestyle/internal/logging"
)

// DefaultMaxConcurrentTabs bounds parallel injection during a broadcast.
const DefaultMaxConcurrentTabs = 4

// SettingsReader is the read side of the settings store.
type SettingsReader interface {
	Get(ctx context.Context, domain string) (*entity.DomainConfig, error)
}

// BroadcastResult counts the tabs touched by a broadcast.
type BroadcastResult struct {
	Matched int
	Styled  int
	Failed  int
}

// ApplyDisplaySettingsUseCase pushes stored settings into open pages: to every
// tab of a domain after a change, and to a single tab after it loads.
type ApplyDisplaySettingsUseCase struct {
	settings      SettingsReader
	tabs          port.TabRegistry
	styler        *StylePageUseCase
	maxConcurrent int
}

// NewApplyDisplaySettingsUseCase creates a new broadcaster. maxConcurrent <= 0
// falls back to DefaultMaxConcurrentTabs.
func NewApplyDisplaySettingsUseCase(
	settings SettingsReader,
	tabs port.TabRegistry,
	styler *StylePageUseCase,
	maxConcurrent int,
) *ApplyDisplaySettingsUseCase {
	if maxConcurrent <= 0 {
		maxConcurrent = DefaultMaxConcurrentTabs
	}
	if styler == nil {
		styler = NewStylePageUseCase()
	}
	return &ApplyDisplaySettingsUseCase{
		settings:      settings,
		tabs:          tabs,
		styler:        styler,
		maxConcurrent: maxConcurrent,
	}
}

// BroadcastDomain applies the domain's current config to every open tab whose
// hostname equals domain. Unset fields are reset on those tabs. A failure on
// one tab is logged and does not stop the others.
func (uc *ApplyDisplaySettingsUseCase) BroadcastDomain(ctx context.Context, domain string) (BroadcastResult, error) {
	ctx = logging.WithDomain(ctx, domain)
	log := logging.FromContext(ctx)

	cfg, err := uc.settings.Get(ctx, domain)
	if err != nil {
		return BroadcastResult{}, fmt.Errorf("failed to load display settings: %w", err)
	}

	matched, err := uc.TabsForDomain(ctx, domain)
	if err != nil {
		return BroadcastResult{}, err
	}

	result := BroadcastResult{Matched: len(matched)}
	failed := make([]bool, len(matched))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(uc.maxConcurrent)
	for i, tab := range matched {
		g.Go(func() error {
			tabCtx := logging.WithTabID(gctx, string(tab.ID()))
			if err := uc.styler.Apply(tabCtx, tab.Document(), cfg); err != nil {
				logging.FromContext(tabCtx).Warn().Err(err).Msg("failed to style tab")
				failed[i] = true
			}
			return nil
		})
	}
	_ = g.Wait()

	for _, f := range failed {
		if f {
			result.Failed++
		} else {
			result.Styled++
		}
	}

	log.Debug().
		Int("matched", result.Matched).
		Int("styled", result.Styled).
		Int("failed", result.Failed).
		Msg("display settings broadcast")
	return result, ctx.Err()
}

// OnNavigationCompleted applies stored settings to a tab that finished loading.
// Pages without a hostname and domains without settings are left untouched.
func (uc *ApplyDisplaySettingsUseCase) OnNavigationCompleted(ctx context.Context, ev port.NavigationEvent) error {
	ctx = logging.WithTabID(ctx, string(ev.TabID))
	log := logging.FromContext(ctx)

	domain, err := urlutil.Hostname(ev.URL)
	if err != nil {
		log.Debug().Str("url", ev.URL).Msg("navigation without host, skipping")
		return nil
	}
	ctx = logging.WithDomain(ctx, domain)

	cfg, err := uc.settings.Get(ctx, domain)
	if err != nil {
		return fmt.Errorf("failed to load display settings: %w", err)
	}
	if cfg.IsEmpty() {
		return nil
	}

	tab, err := uc.tabs.Tab(ctx, ev.TabID)
	if err != nil {
		return fmt.Errorf("failed to resolve tab %s: %w", ev.TabID, err)
	}

	if err := uc.styler.ApplyOnLoad(ctx, tab.Document(), cfg); err != nil {
		return fmt.Errorf("failed to style tab %s: %w", ev.TabID, err)
	}
	log.Debug().Strs("settings", cfg.SummaryLines()).Msg("display settings applied on load")
	return nil
}

// ResetOnTab removes one aspect from a single tab.
func (uc *ApplyDisplaySettingsUseCase) ResetOnTab(ctx context.Context, id port.TabID, field entity.SettingField) error {
	ctx = logging.WithTabID(ctx, string(id))

	tab, err := uc.tabs.Tab(ctx, id)
	if err != nil {
		return fmt.Errorf("failed to resolve tab %s: %w", id, err)
	}
	doc := tab.Document()

	switch field {
	case entity.FieldFont:
		return uc.styler.ResetFont(ctx, doc)
	case entity.FieldFontSizeDelta:
		return uc.styler.ResetFontSizeDelta(ctx, doc)
	case entity.FieldScaleFactor:
		return uc.styler.ResetScaling(ctx, doc)
	}
	return fmt.Errorf("%w: %q", entity.ErrUnknownField, field)
}

// ResetOnDomain removes one aspect from every open tab of a domain.
func (uc *ApplyDisplaySettingsUseCase) ResetOnDomain(ctx context.Context, domain string, field entity.SettingField) error {
	if !slices.Contains(entity.AllSettingFields, field) {
		return fmt.Errorf("%w: %q", entity.ErrUnknownField, field)
	}
	matched, err := uc.TabsForDomain(ctx, domain)
	if err != nil {
		return err
	}
	var errs []error
	for _, tab := range matched {
		if err := uc.ResetOnTab(ctx, tab.ID(), field); err != nil {
			logging.FromContext(ctx).Warn().Err(err).Str("tab_id", string(tab.ID())).Msg("failed to reset tab")
			errs = append(errs, err)
		}
	}
	if len(errs) == len(matched) && len(errs) > 0 {
		return errors.Join(errs...)
	}
	return nil
}

// TabsForDomain returns the open tabs whose URL host equals domain. Tabs
// without a readable URL are skipped.
func (uc *ApplyDisplaySettingsUseCase) TabsForDomain(ctx context.Context, domain string) ([]port.Tab, error) {
	tabs, err := uc.tabs.Tabs(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list tabs: %w", err)
	}

	log := logging.FromContext(ctx)
	var matched []port.Tab
	for _, tab := range tabs {
		pageURL, err := tab.URL(ctx)
		if err != nil {
			log.Debug().Err(err).Str("tab_id", string(tab.ID())).Msg("skipping tab without url")
			continue
		}
		if urlutil.SameHost(pageURL, domain) {
			matched = append(matched, tab)
		}
	}
	return matched, nil
}
