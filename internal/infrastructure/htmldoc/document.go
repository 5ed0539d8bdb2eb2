// Package htmldoc implements page documents over a parsed HTML tree, so that
// display settings can be applied to saved pages without a running browser.
package htmldoc

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"iter"
	"strings"
	"sync"

	"golang.org/x/net/html"
	"golang.org/x/net/html/atom"

	"github.com/bnema/sitestyle/internal/application/port"
)

// Document is a mutable HTML document.
type Document struct {
	mu   sync.Mutex
	root *html.Node
}

var _ port.Document = (*Document)(nil)

// Parse reads an HTML document. Fragments are wrapped in html/head/body.
func Parse(r io.Reader) (*Document, error) {
	root, err := html.Parse(r)
	if err != nil {
		return nil, fmt.Errorf("failed to parse html: %w", err)
	}
	return &Document{root: root}, nil
}

// ParseString is Parse for in-memory markup.
func ParseString(s string) (*Document, error) {
	return Parse(strings.NewReader(s))
}

// Render writes the document as HTML.
func (d *Document) Render(w io.Writer) error {
	d.mu.Lock()
	defer d.mu.Unlock()
	return html.Render(w, d.root)
}

// String renders the document, returning an empty string on failure.
func (d *Document) String() string {
	var buf bytes.Buffer
	if err := d.Render(&buf); err != nil {
		return ""
	}
	return buf.String()
}

// StyleText returns the text of the style element with the given id.
func (d *Document) StyleText(id string) (string, bool) {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := findByID(d.root, id)
	if n == nil || n.DataAtom != atom.Style {
		return "", false
	}
	return textContent(n), true
}

// ElementByID returns the element with the given id, or nil.
func (d *Document) ElementByID(id string) *Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	n := findByID(d.root, id)
	if n == nil {
		return nil
	}
	return &Element{doc: d, node: n}
}

// ElementsByTag returns every element with the given tag name in document order.
func (d *Document) ElementsByTag(tag string) []*Element {
	d.mu.Lock()
	defer d.mu.Unlock()

	var out []*Element
	for _, n := range elementNodes(d.root) {
		if n.Data == tag {
			out = append(out, &Element{doc: d, node: n})
		}
	}
	return out
}

// UpsertStyle implements port.Document.
func (d *Document) UpsertStyle(_ context.Context, id, css string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n := findByID(d.root, id); n != nil {
		if n.DataAtom != atom.Style {
			return fmt.Errorf("element #%s is a <%s>, not a style element", id, n.Data)
		}
		setText(n, css)
		return nil
	}

	head := findFirst(d.root, atom.Head)
	if head == nil {
		return fmt.Errorf("document has no head")
	}
	style := &html.Node{
		Type:     html.ElementNode,
		DataAtom: atom.Style,
		Data:     "style",
		Attr:     []html.Attribute{{Key: "id", Val: id}},
	}
	setText(style, css)
	head.AppendChild(style)
	return nil
}

// RemoveStyle implements port.Document.
func (d *Document) RemoveStyle(_ context.Context, id string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if n := findByID(d.root, id); n != nil && n.Parent != nil {
		n.Parent.RemoveChild(n)
	}
	return nil
}

// Elements implements port.Document. The element list is captured when
// iteration starts.
func (d *Document) Elements(ctx context.Context) iter.Seq2[port.Element, error] {
	return d.elements(ctx, func(*html.Node) bool { return true })
}

// ElementsWithAttribute implements port.Document.
func (d *Document) ElementsWithAttribute(ctx context.Context, name string) iter.Seq2[port.Element, error] {
	return d.elements(ctx, func(n *html.Node) bool {
		_, ok := lookupAttr(n, name)
		return ok
	})
}

func (d *Document) elements(ctx context.Context, keep func(*html.Node) bool) iter.Seq2[port.Element, error] {
	return func(yield func(port.Element, error) bool) {
		if err := ctx.Err(); err != nil {
			yield(nil, err)
			return
		}

		d.mu.Lock()
		var nodes []*html.Node
		for _, n := range elementNodes(d.root) {
			if keep(n) {
				nodes = append(nodes, n)
			}
		}
		d.mu.Unlock()

		for _, n := range nodes {
			if !yield(&Element{doc: d, node: n}, nil) {
				return
			}
		}
	}
}

// Element is one node of a Document.
type Element struct {
	doc  *Document
	node *html.Node
}

var _ port.Element = (*Element)(nil)

// Tag returns the element's tag name.
func (e *Element) Tag() string {
	return e.node.Data
}

// InlineStyle returns the inline value of a CSS property.
func (e *Element) InlineStyle(prop string) string {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	d, _ := lookup(parseInlineStyle(attr(e.node, "style")), strings.ToLower(prop))
	return d.Value
}

// Detach removes the element from its document.
func (e *Element) Detach() {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	if e.node.Parent != nil {
		e.node.Parent.RemoveChild(e.node)
	}
}

// Attribute implements port.Element.
func (e *Element) Attribute(_ context.Context, name string) (string, bool, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	v, ok := lookupAttr(e.node, name)
	return v, ok, nil
}

// SetAttribute implements port.Element.
func (e *Element) SetAttribute(_ context.Context, name, value string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	setAttr(e.node, name, value)
	return nil
}

// RemoveAttribute implements port.Element.
func (e *Element) RemoveAttribute(_ context.Context, name string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	removeAttr(e.node, name)
	return nil
}

// ComputedFontSize implements port.Element.
func (e *Element) ComputedFontSize(_ context.Context) (string, error) {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	px, err := computedFontSize(e.node)
	if err != nil {
		return "", err
	}
	return formatPixels(px), nil
}

// SetInlineFontSize implements port.Element.
func (e *Element) SetInlineFontSize(_ context.Context, value string) error {
	e.doc.mu.Lock()
	defer e.doc.mu.Unlock()

	decls := withProperty(parseInlineStyle(attr(e.node, "style")), "font-size", value)
	if len(decls) == 0 {
		removeAttr(e.node, "style")
		return nil
	}
	setAttr(e.node, "style", renderInlineStyle(decls))
	return nil
}

func elementNodes(root *html.Node) []*html.Node {
	var out []*html.Node
	var walk func(*html.Node)
	walk = func(n *html.Node) {
		if n.Type == html.ElementNode {
			out = append(out, n)
		}
		for c := n.FirstChild; c != nil; c = c.NextSibling {
			walk(c)
		}
	}
	walk(root)
	return out
}

func findByID(root *html.Node, id string) *html.Node {
	for _, n := range elementNodes(root) {
		if v, ok := lookupAttr(n, "id"); ok && v == id {
			return n
		}
	}
	return nil
}

func findFirst(root *html.Node, tag atom.Atom) *html.Node {
	for _, n := range elementNodes(root) {
		if n.DataAtom == tag {
			return n
		}
	}
	return nil
}

func textContent(n *html.Node) string {
	var b strings.Builder
	for c := n.FirstChild; c != nil; c = c.NextSibling {
		if c.Type == html.TextNode {
			b.WriteString(c.Data)
		}
	}
	return b.String()
}

func setText(n *html.Node, text string) {
	for c := n.FirstChild; c != nil; {
		next := c.NextSibling
		n.RemoveChild(c)
		c = next
	}
	n.AppendChild(&html.Node{Type: html.TextNode, Data: text})
}

func attr(n *html.Node, key string) string {
	v, _ := lookupAttr(n, key)
	return v
}

func lookupAttr(n *html.Node, key string) (string, bool) {
	for _, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			return a.Val, true
		}
	}
	return "", false
}

func setAttr(n *html.Node, key, val string) {
	for i, a := range n.Attr {
		if a.Namespace == "" && a.Key == key {
			n.Attr[i].Val = val
			return
		}
	}
	n.Attr = append(n.Attr, html.Attribute{Key: key, Val: val})
}

func removeAttr(n *html.Node, key string) {
	out := n.Attr[:0]
	for _, a := range n.Attr {
		if a.Namespace != "" || a.Key != key {
			out = append(out, a)
		}
	}
	n.Attr = out
}
