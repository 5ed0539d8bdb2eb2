package usecase

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/bnema/sitestyle/internal/application/port"
	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/logging"
)

// Markers left in styled pages. Each aspect owns exactly one of them.
const (
	FontStyleID          = "sitestyle-font"
	ScalingStyleID       = "sitestyle-scaling"
	OriginalFontSizeAttr = "data-sitestyle-original-font-size"
)

var genericFontFamilies = map[string]struct{}{
	"serif": {}, "sans-serif": {}, "monospace": {}, "cursive": {}, "fantasy": {},
	"system-ui": {}, "ui-serif": {}, "ui-sans-serif": {}, "ui-monospace": {},
	"ui-rounded": {}, "math": {}, "emoji": {}, "fangsong": {},
	"inherit": {}, "initial": {}, "unset": {},
}

// StylePageUseCase applies and reverses the three display aspects on a page
// document: font family, font-size delta and root scaling. The aspects are
// independent; each apply/reset pair only touches its own marker.
type StylePageUseCase struct{}

// NewStylePageUseCase creates a new page styling use case.
func NewStylePageUseCase() *StylePageUseCase {
	return &StylePageUseCase{}
}

// Apply routes every aspect of cfg through the sentinel policy: set fields are
// applied, unset fields are reset. Used when settings change under an open page.
func (uc *StylePageUseCase) Apply(ctx context.Context, doc port.Document, cfg *entity.DomainConfig) error {
	return uc.apply(ctx, doc, cfg, true)
}

// ApplyOnLoad applies only the set fields of cfg. A freshly loaded page has
// nothing to reset, so an empty config injects nothing.
func (uc *StylePageUseCase) ApplyOnLoad(ctx context.Context, doc port.Document, cfg *entity.DomainConfig) error {
	return uc.apply(ctx, doc, cfg, false)
}

func (uc *StylePageUseCase) apply(ctx context.Context, doc port.Document, cfg *entity.DomainConfig, resetUnset bool) error {
	if cfg == nil {
		cfg = &entity.DomainConfig{}
	}

	var errs []error
	switch {
	case cfg.Font != nil:
		errs = append(errs, uc.ApplyFont(ctx, doc, *cfg.Font))
	case resetUnset:
		errs = append(errs, uc.ResetFont(ctx, doc))
	}
	switch {
	case cfg.FontSizeDelta != nil:
		errs = append(errs, uc.ApplyFontSizeDelta(ctx, doc, *cfg.FontSizeDelta))
	case resetUnset:
		errs = append(errs, uc.ResetFontSizeDelta(ctx, doc))
	}
	switch {
	case cfg.ScaleFactor != nil:
		errs = append(errs, uc.ApplyScaling(ctx, doc, *cfg.ScaleFactor))
	case resetUnset:
		errs = append(errs, uc.ResetScaling(ctx, doc))
	}
	return errors.Join(errs...)
}

// ApplyFont forces font on every element. An empty font resets instead.
func (uc *StylePageUseCase) ApplyFont(ctx context.Context, doc port.Document, font string) error {
	if entity.FontAction(font) == entity.StyleReset {
		return uc.ResetFont(ctx, doc)
	}
	logging.FromContext(ctx).Debug().Str("font", font).Msg("applying font")

	if err := doc.UpsertStyle(ctx, FontStyleID, FontCSS(font)); err != nil {
		return fmt.Errorf("failed to apply font: %w", err)
	}
	return nil
}

// ResetFont removes the font rule if present.
func (uc *StylePageUseCase) ResetFont(ctx context.Context, doc port.Document) error {
	if err := doc.RemoveStyle(ctx, FontStyleID); err != nil {
		return fmt.Errorf("failed to reset font: %w", err)
	}
	return nil
}

// ApplyScaling scales the document root from its top-left corner.
// A factor of 1 resets instead.
func (uc *StylePageUseCase) ApplyScaling(ctx context.Context, doc port.Document, factor float64) error {
	if entity.ScaleAction(factor) == entity.StyleReset {
		return uc.ResetScaling(ctx, doc)
	}
	logging.FromContext(ctx).Debug().Float64("factor", factor).Msg("applying scaling")

	if err := doc.UpsertStyle(ctx, ScalingStyleID, ScalingCSS(factor)); err != nil {
		return fmt.Errorf("failed to apply scaling: %w", err)
	}
	return nil
}

// ResetScaling removes the scaling rule if present.
func (uc *StylePageUseCase) ResetScaling(ctx context.Context, doc port.Document) error {
	if err := doc.RemoveStyle(ctx, ScalingStyleID); err != nil {
		return fmt.Errorf("failed to reset scaling: %w", err)
	}
	return nil
}

// ApplyFontSizeDelta sets every element to its baseline size plus delta pixels.
//
// Baselines are recorded for the whole document before any size is changed,
// so nested elements never inherit an already shifted size. Elements that
// already carry a baseline keep it: applying +2 twice equals applying it once,
// and +2 followed by +4 yields baseline+4. A zero delta resets instead.
func (uc *StylePageUseCase) ApplyFontSizeDelta(ctx context.Context, doc port.Document, delta int) error {
	if entity.FontSizeDeltaAction(delta) == entity.StyleReset {
		return uc.ResetFontSizeDelta(ctx, doc)
	}
	log := logging.FromContext(ctx)

	if w, ok := doc.(port.FontSizeWalker); ok {
		walk, err := w.ApplyFontSizeDelta(ctx, OriginalFontSizeAttr, delta)
		if err != nil {
			return fmt.Errorf("failed to apply font size delta: %w", err)
		}
		log.Debug().
			Int("delta", delta).
			Int("marked", walk.Marked).
			Int("styled", walk.Styled).
			Int("skipped", walk.Skipped).
			Msg("font size delta applied")
		return nil
	}

	var marked, styled, skipped int
	for el, err := range doc.Elements(ctx) {
		if err != nil {
			return fmt.Errorf("failed to walk elements: %w", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		ok, err := recordBaseline(ctx, el)
		if err != nil {
			skipped++
			continue
		}
		if ok {
			marked++
		}
	}

	for el, err := range doc.ElementsWithAttribute(ctx, OriginalFontSizeAttr) {
		if err != nil {
			return fmt.Errorf("failed to walk marked elements: %w", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		if err := shiftFromBaseline(ctx, el, delta); err != nil {
			skipped++
			continue
		}
		styled++
	}

	log.Debug().
		Int("delta", delta).
		Int("marked", marked).
		Int("styled", styled).
		Int("skipped", skipped).
		Msg("font size delta applied")
	return nil
}

// ResetFontSizeDelta restores every marked element from its baseline and drops the marker.
func (uc *StylePageUseCase) ResetFontSizeDelta(ctx context.Context, doc port.Document) error {
	log := logging.FromContext(ctx)

	if w, ok := doc.(port.FontSizeWalker); ok {
		walk, err := w.ResetFontSizeDelta(ctx, OriginalFontSizeAttr)
		if err != nil {
			return fmt.Errorf("failed to reset font size delta: %w", err)
		}
		if walk.Styled > 0 || walk.Skipped > 0 {
			log.Debug().Int("restored", walk.Styled).Int("skipped", walk.Skipped).Msg("font size delta reset")
		}
		return nil
	}

	var restored, skipped int
	for el, err := range doc.ElementsWithAttribute(ctx, OriginalFontSizeAttr) {
		if err != nil {
			return fmt.Errorf("failed to walk marked elements: %w", err)
		}
		if ctx.Err() != nil {
			return ctx.Err()
		}
		baseline, ok, err := el.Attribute(ctx, OriginalFontSizeAttr)
		if err != nil || !ok {
			skipped++
			continue
		}
		if err := el.SetInlineFontSize(ctx, baseline); err != nil {
			skipped++
			continue
		}
		if err := el.RemoveAttribute(ctx, OriginalFontSizeAttr); err != nil {
			skipped++
			continue
		}
		restored++
	}

	if restored > 0 || skipped > 0 {
		log.Debug().Int("restored", restored).Int("skipped", skipped).Msg("font size delta reset")
	}
	return nil
}

// recordBaseline stores the element's computed size unless a baseline exists.
// It reports whether a new marker was written.
func recordBaseline(ctx context.Context, el port.Element) (bool, error) {
	if _, ok, err := el.Attribute(ctx, OriginalFontSizeAttr); err != nil || ok {
		return false, err
	}
	size, err := el.ComputedFontSize(ctx)
	if err != nil {
		return false, err
	}
	if err := el.SetAttribute(ctx, OriginalFontSizeAttr, size); err != nil {
		return false, err
	}
	return true, nil
}

func shiftFromBaseline(ctx context.Context, el port.Element, delta int) error {
	baseline, ok, err := el.Attribute(ctx, OriginalFontSizeAttr)
	if err != nil {
		return err
	}
	if !ok {
		return fmt.Errorf("element lost its baseline marker")
	}
	px, err := ParsePixels(baseline)
	if err != nil {
		return err
	}
	return el.SetInlineFontSize(ctx, FormatPixels(max(px+float64(delta), 0)))
}

// ParsePixels reads a computed size such as "16px" or "13.3333px".
func ParsePixels(size string) (float64, error) {
	s := strings.TrimSpace(size)
	if !strings.HasSuffix(s, "px") {
		return 0, fmt.Errorf("%w: %q", port.ErrUnresolvedFontSize, size)
	}
	v, err := strconv.ParseFloat(strings.TrimSuffix(s, "px"), 64)
	if err != nil {
		return 0, fmt.Errorf("%w: %q", port.ErrUnresolvedFontSize, size)
	}
	return v, nil
}

// FormatPixels renders a pixel size without trailing zeros, e.g. "19px".
func FormatPixels(px float64) string {
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}

// FontCSS returns the rule forcing font on every element.
func FontCSS(font string) string {
	return fmt.Sprintf("* { font-family: %s !important; }", cssFontFamily(font))
}

// ScalingCSS returns the rule scaling the document root.
func ScalingCSS(factor float64) string {
	return fmt.Sprintf(
		"html { transform: scale(%s) !important; transform-origin: 0 0 !important; }",
		entity.FormatScaleFactor(factor),
	)
}

// cssFontFamily quotes a family name unless it is a generic family or an
// already formed font list.
func cssFontFamily(font string) string {
	font = strings.TrimSpace(font)
	if _, ok := genericFontFamilies[strings.ToLower(font)]; ok {
		return font
	}
	if strings.ContainsAny(font, `,"'`) {
		return font
	}
	replacer := strings.NewReplacer(`\`, `\\`, "\n", " ", "<", `\3c `)
	return `"` + replacer.Replace(font) + `"`
}
