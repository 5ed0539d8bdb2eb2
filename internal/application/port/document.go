package port

import (
	"context"
	"errors"
	"iter"
)

// ErrUnresolvedFontSize is returned by Element.ComputedFontSize when the
// element's size cannot be expressed in pixels (calc(), var(), detached nodes).
var ErrUnresolvedFontSize = errors.New("font size cannot be resolved")

// Element is one element of a page document, addressed at injection time.
// Any method may fail for exotic or detached nodes; callers skip such elements.
type Element interface {
	// Attribute returns the attribute value and whether it is present.
	Attribute(ctx context.Context, name string) (string, bool, error)
	SetAttribute(ctx context.Context, name, value string) error
	RemoveAttribute(ctx context.Context, name string) error

	// ComputedFontSize returns the rendered font size, e.g. "16px".
	ComputedFontSize(ctx context.Context) (string, error)

	// SetInlineFontSize sets the element's inline font-size declaration.
	// An empty value removes the declaration.
	SetInlineFontSize(ctx context.Context, value string) error
}

// Document abstracts the DOM of a page as seen by injected code.
// Injected style elements are keyed by id so that at most one exists per id.
type Document interface {
	// UpsertStyle inserts a <style id=id> element with the given CSS text,
	// replacing the text of an existing element with the same id.
	UpsertStyle(ctx context.Context, id, css string) error

	// RemoveStyle removes the element with the given id. Absent ids are a no-op.
	RemoveStyle(ctx context.Context, id string) error

	// Elements lazily yields every element in document order. An error in
	// the sequence means the document itself could not be traversed and is
	// the last value yielded; per-element failures surface from Element methods.
	Elements(ctx context.Context) iter.Seq2[Element, error]

	// ElementsWithAttribute yields the elements carrying the named attribute.
	ElementsWithAttribute(ctx context.Context, name string) iter.Seq2[Element, error]
}

// FontSizeWalk counts the outcome of a whole-document font-size pass.
type FontSizeWalk struct {
	Marked  int // elements that received a new baseline marker
	Styled  int // elements whose inline size was written
	Skipped int // elements that failed and were left alone
}

// FontSizeWalker is implemented by documents that can run the font-size
// passes in one step instead of one call per element. The marker attribute
// holds each element's baseline computed size.
type FontSizeWalker interface {
	// ApplyFontSizeDelta records a baseline on every unmarked element, then
	// sets each marked element's inline size to max(baseline+delta, 0)px.
	ApplyFontSizeDelta(ctx context.Context, marker string, delta int) (FontSizeWalk, error)

	// ResetFontSizeDelta restores each marked element's baseline and drops the marker.
	ResetFontSizeDelta(ctx context.Context, marker string) (FontSizeWalk, error)
}
