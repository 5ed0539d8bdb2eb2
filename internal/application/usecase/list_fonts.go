package usecase

import (
	"context"
	"slices"
	"strings"

	"github.com/bnema/sitestyle/internal/application/port"
	"github.com/bnema/sitestyle/internal/logging"
)

// ListFontsUseCase supplies the font choices of the popup.
type ListFontsUseCase struct {
	detector port.FontDetector
	fallback []string
}

// NewListFontsUseCase creates the use case. fallback is offered when the
// detector is missing, fails or finds nothing.
func NewListFontsUseCase(detector port.FontDetector, fallback []string) *ListFontsUseCase {
	return &ListFontsUseCase{detector: detector, fallback: slices.Clone(fallback)}
}

// FontList is the result of Execute.
type FontList struct {
	Fonts []string
	// Fallback is true when Fonts came from the configured fallback list.
	Fallback bool
}

// Execute returns installed fonts, or the fallback list.
func (uc *ListFontsUseCase) Execute(ctx context.Context) FontList {
	log := logging.FromContext(ctx)

	if uc.detector != nil && uc.detector.IsAvailable(ctx) {
		fonts, err := uc.detector.AvailableFonts(ctx)
		if err == nil && len(fonts) > 0 {
			return FontList{Fonts: fonts}
		}
		log.Debug().Err(err).Msg("font detection failed, using fallback fonts")
	}

	fonts := slices.Clone(uc.fallback)
	slices.SortFunc(fonts, func(a, b string) int {
		return strings.Compare(strings.ToLower(a), strings.ToLower(b))
	})
	return FontList{Fonts: slices.Compact(fonts), Fallback: true}
}
