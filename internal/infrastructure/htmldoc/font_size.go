package htmldoc

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/bnema/sitestyle/internal/application/port"
)

// MediumFontSize is the user agent default size in pixels.
const MediumFontSize = 16.0

// Ratio between adjacent absolute-size keywords, used for smaller/larger.
const relativeSizeStep = 1.2

var absoluteSizes = map[string]float64{
	"xx-small":  9,
	"x-small":   10,
	"small":     13,
	"medium":    16,
	"large":     18,
	"x-large":   24,
	"xx-large":  32,
	"xxx-large": 48,
}

// User agent stylesheet font sizes, relative to the parent.
var tagDefaults = map[atom.Atom]float64{
	atom.H1:  2,
	atom.H2:  1.5,
	atom.H3:  1.17,
	atom.H4:  1,
	atom.H5:  0.83,
	atom.H6:  0.67,
	atom.Big: relativeSizeStep,
}

var smallerTags = map[atom.Atom]bool{
	atom.Small: true,
	atom.Sub:   true,
	atom.Sup:   true,
}

// Monospace text defaults to 13px at medium size.
var monospaceTags = map[atom.Atom]bool{
	atom.Code: true,
	atom.Pre:  true,
	atom.Kbd:  true,
	atom.Samp: true,
	atom.Tt:   true,
}

// computedFontSize resolves the rendered size of n in pixels from inline
// declarations, user agent defaults and inheritance. Stylesheets are not
// consulted.
func computedFontSize(n *html.Node) (float64, error) {
	if n == nil || n.Type != html.ElementNode {
		return MediumFontSize, nil
	}
	if !attached(n) {
		return 0, fmt.Errorf("%w: detached <%s>", port.ErrUnresolvedFontSize, n.Data)
	}

	parent := MediumFontSize
	if n.Parent != nil && n.Parent.Type == html.ElementNode {
		var err error
		if parent, err = computedFontSize(n.Parent); err != nil {
			return 0, err
		}
	}

	if d, ok := lookup(parseInlineStyle(attr(n, "style")), "font-size"); ok {
		return resolveFontSize(d.Value, parent, rootFontSize(n))
	}

	switch {
	case smallerTags[n.DataAtom]:
		return parent / relativeSizeStep, nil
	case monospaceTags[n.DataAtom]:
		if n.Parent != nil && n.Parent.Type == html.ElementNode && monospaceTags[n.Parent.DataAtom] {
			return parent, nil
		}
		return parent * 13 / MediumFontSize, nil
	}
	if ratio, ok := tagDefaults[n.DataAtom]; ok {
		return parent * ratio, nil
	}
	return parent, nil
}

func rootFontSize(n *html.Node) float64 {
	root := n
	for root.Parent != nil && root.Parent.Type == html.ElementNode {
		root = root.Parent
	}
	if root == n {
		return MediumFontSize
	}
	size, err := computedFontSize(root)
	if err != nil {
		return MediumFontSize
	}
	return size
}

// resolveFontSize converts a font-size value to pixels.
func resolveFontSize(value string, parent, root float64) (float64, error) {
	v := strings.ToLower(strings.TrimSpace(value))
	if size, ok := absoluteSizes[v]; ok {
		return size, nil
	}
	switch v {
	case "smaller":
		return parent / relativeSizeStep, nil
	case "larger":
		return parent * relativeSizeStep, nil
	case "inherit", "unset":
		return parent, nil
	case "initial":
		return MediumFontSize, nil
	}

	num, unit := splitDimension(v)
	f, err := strconv.ParseFloat(num, 64)
	if err != nil || f < 0 {
		return 0, fmt.Errorf("%w: %q", port.ErrUnresolvedFontSize, value)
	}
	switch unit {
	case "px":
		return f, nil
	case "em":
		return f * parent, nil
	case "%":
		return f / 100 * parent, nil
	case "rem":
		return f * root, nil
	case "pt":
		return f * 4 / 3, nil
	case "pc":
		return f * 16, nil
	case "in":
		return f * 96, nil
	case "cm":
		return f * 96 / 2.54, nil
	case "mm":
		return f * 96 / 25.4, nil
	case "":
		if f == 0 {
			return 0, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", port.ErrUnresolvedFontSize, value)
}

func splitDimension(s string) (string, string) {
	end := 0
	for i, r := range s {
		if (r >= '0' && r <= '9') || r == '.' || r == '-' || r == '+' {
			end = i + 1
		} else {
			break
		}
	}
	return s[:end], s[end:]
}

// formatPixels renders a size the way getComputedStyle does, e.g. "18.72px".
func formatPixels(px float64) string {
	px = math.Round(px*1e4) / 1e4
	return strconv.FormatFloat(px, 'f', -1, 64) + "px"
}

func attached(n *html.Node) bool {
	for p := n; p != nil; p = p.Parent {
		if p.Type == html.DocumentNode {
			return true
		}
	}
	return false
}
