// Package fonts lists installed font families through fontconfig.
package fonts

import (
	"bufio"
	"context"
	"os/exec"
	"slices"
	"strings"
	"sync"

	"github.com/bnema/sitestyle/internal/application/port"
	"github.com/bnema/sitestyle/internal/logging"
)

// Detector implements port.FontDetector using fontconfig's fc-list command.
type Detector struct {
	mu             sync.RWMutex
	cachedFonts    []string
	cachePopulated bool
	query          func(ctx context.Context) ([]byte, error)
}

var _ port.FontDetector = (*Detector)(nil)

// NewDetector creates a new font detector.
func NewDetector() *Detector {
	return &Detector{query: runFCList}
}

// IsAvailable implements port.FontDetector.
// Returns true if fc-list command is available on the system.
func (*Detector) IsAvailable(_ context.Context) bool {
	_, err := exec.LookPath("fc-list")
	return err == nil
}

// AvailableFonts implements port.FontDetector. The first successful result
// is cached for the lifetime of the detector.
func (d *Detector) AvailableFonts(ctx context.Context) ([]string, error) {
	log := logging.FromContext(ctx)

	d.mu.RLock()
	if d.cachePopulated {
		fonts := slices.Clone(d.cachedFonts)
		d.mu.RUnlock()
		return fonts, nil
	}
	d.mu.RUnlock()

	d.mu.Lock()
	defer d.mu.Unlock()

	// Double-check after acquiring write lock.
	if d.cachePopulated {
		return slices.Clone(d.cachedFonts), nil
	}

	output, err := d.query(ctx)
	if err != nil {
		log.Debug().Err(err).Msg("failed to query system fonts")
		return nil, err
	}

	d.cachedFonts = parseFamilies(string(output))
	d.cachePopulated = true
	log.Debug().Int("count", len(d.cachedFonts)).Msg("cached system fonts")

	return slices.Clone(d.cachedFonts), nil
}

func runFCList(ctx context.Context) ([]byte, error) {
	return exec.CommandContext(ctx, "fc-list", ":", "family").Output()
}

// parseFamilies turns fc-list output into a sorted, de-duplicated list.
// fc-list prints comma-separated aliases, e.g. "DejaVu Sans,DejaVu Sans Light".
func parseFamilies(output string) []string {
	seen := make(map[string]struct{})
	scanner := bufio.NewScanner(strings.NewReader(output))
	for scanner.Scan() {
		for family := range strings.SplitSeq(scanner.Text(), ",") {
			family = strings.TrimSpace(family)
			// Dot-prefixed families are fontconfig internals.
			if family == "" || strings.HasPrefix(family, ".") {
				continue
			}
			seen[family] = struct{}{}
		}
	}

	fonts := make([]string, 0, len(seen))
	for family := range seen {
		fonts = append(fonts, family)
	}
	slices.SortFunc(fonts, func(a, b string) int {
		if c := strings.Compare(strings.ToLower(a), strings.ToLower(b)); c != 0 {
			return c
		}
		return strings.Compare(a, b)
	})
	return fonts
}
