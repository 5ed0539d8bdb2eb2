package chrome

import (
	"context"
	"fmt"
	"iter"

	"github.com/go-rod/rod"

	"github.com/bnema/sitestyle/internal/application/port"
)

// Document runs injection scripts in a live page.
type Document struct {
	page *rod.Page
}

var (
	_ port.Document       = (*Document)(nil)
	_ port.FontSizeWalker = (*Document)(nil)
)

// UpsertStyle implements port.Document.
func (d *Document) UpsertStyle(ctx context.Context, id, css string) error {
	if _, err := d.page.Context(ctx).Eval(script(scriptUpsertStyle), id, css); err != nil {
		return fmt.Errorf("browser: upsert style %s: %w", id, err)
	}
	return nil
}

// RemoveStyle implements port.Document.
func (d *Document) RemoveStyle(ctx context.Context, id string) error {
	if _, err := d.page.Context(ctx).Eval(script(scriptRemoveStyle), id); err != nil {
		return fmt.Errorf("browser: remove style %s: %w", id, err)
	}
	return nil
}

// ApplyFontSizeDelta implements port.FontSizeWalker with a single page evaluation.
func (d *Document) ApplyFontSizeDelta(ctx context.Context, marker string, delta int) (port.FontSizeWalk, error) {
	return d.walk(ctx, scriptApplyFontSizeDelta, marker, delta)
}

// ResetFontSizeDelta implements port.FontSizeWalker with a single page evaluation.
func (d *Document) ResetFontSizeDelta(ctx context.Context, marker string) (port.FontSizeWalk, error) {
	return d.walk(ctx, scriptResetFontSizeDelta, marker)
}

func (d *Document) walk(ctx context.Context, name string, args ...interface{}) (port.FontSizeWalk, error) {
	res, err := d.page.Context(ctx).Eval(script(name), args...)
	if err != nil {
		return port.FontSizeWalk{}, fmt.Errorf("browser: %s: %w", name, err)
	}
	return port.FontSizeWalk{
		Marked:  res.Value.Get("marked").Int(),
		Styled:  res.Value.Get("styled").Int(),
		Skipped: res.Value.Get("skipped").Int(),
	}, nil
}

// Elements implements port.Document.
func (d *Document) Elements(ctx context.Context) iter.Seq2[port.Element, error] {
	return d.query(ctx, "*")
}

// ElementsWithAttribute implements port.Document.
func (d *Document) ElementsWithAttribute(ctx context.Context, name string) iter.Seq2[port.Element, error] {
	return d.query(ctx, fmt.Sprintf("[%s]", name))
}

func (d *Document) query(ctx context.Context, selector string) iter.Seq2[port.Element, error] {
	return func(yield func(port.Element, error) bool) {
		els, err := d.page.Context(ctx).Elements(selector)
		if err != nil {
			yield(nil, fmt.Errorf("browser: query %s: %w", selector, err))
			return
		}
		for _, el := range els {
			if !yield(&Element{el: el}, nil) {
				return
			}
		}
	}
}

// Element is a remote element handle.
type Element struct {
	el *rod.Element
}

var _ port.Element = (*Element)(nil)

// Attribute implements port.Element.
func (e *Element) Attribute(ctx context.Context, name string) (string, bool, error) {
	v, err := e.el.Context(ctx).Attribute(name)
	if err != nil {
		return "", false, err
	}
	if v == nil {
		return "", false, nil
	}
	return *v, true, nil
}

// SetAttribute implements port.Element.
func (e *Element) SetAttribute(ctx context.Context, name, value string) error {
	_, err := e.el.Context(ctx).Eval(script(scriptSetAttribute), name, value)
	return err
}

// RemoveAttribute implements port.Element.
func (e *Element) RemoveAttribute(ctx context.Context, name string) error {
	_, err := e.el.Context(ctx).Eval(script(scriptRemoveAttribute), name)
	return err
}

// ComputedFontSize implements port.Element.
func (e *Element) ComputedFontSize(ctx context.Context) (string, error) {
	res, err := e.el.Context(ctx).Eval(script(scriptComputedFontSize))
	if err != nil {
		return "", err
	}
	size := res.Value.Str()
	if size == "" {
		return "", port.ErrUnresolvedFontSize
	}
	return size, nil
}

// SetInlineFontSize implements port.Element.
func (e *Element) SetInlineFontSize(ctx context.Context, value string) error {
	_, err := e.el.Context(ctx).Eval(script(scriptSetFontSize), value)
	return err
}
