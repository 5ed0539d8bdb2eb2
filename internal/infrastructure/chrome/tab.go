package chrome

import (
	"context"
	"fmt"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/bnema/sitestyle/internal/application/port"
)

// Tab wraps a Rod page.
type Tab struct {
	page *rod.Page
}

var _ port.Tab = (*Tab)(nil)

func newTab(page *rod.Page) *Tab {
	return &Tab{page: page}
}

// ID returns the DevTools target id.
func (t *Tab) ID() port.TabID {
	return port.TabID(t.page.TargetID)
}

// URL returns the page's current URL.
func (t *Tab) URL(ctx context.Context) (string, error) {
	info, err := t.page.Context(ctx).Info()
	if err != nil {
		return "", fmt.Errorf("browser: target info: %w", err)
	}
	return info.URL, nil
}

// Document returns the live document of the page.
func (t *Tab) Document() port.Document {
	return &Document{page: t.page}
}

// Page exposes the underlying Rod page.
func (t *Tab) Page() *rod.Page {
	return t.page
}

// TabRegistry lists the page targets of the managed browser.
type TabRegistry struct {
	mgr *Manager
}

var _ port.TabRegistry = (*TabRegistry)(nil)

// NewTabRegistry creates a registry over the manager's browser.
func NewTabRegistry(mgr *Manager) *TabRegistry {
	return &TabRegistry{mgr: mgr}
}

// Tabs implements port.TabRegistry.
func (r *TabRegistry) Tabs(ctx context.Context) ([]port.Tab, error) {
	b := r.mgr.Browser()
	if b == nil {
		return nil, ErrNotStarted
	}
	pages, err := b.Context(ctx).Pages()
	if err != nil {
		return nil, fmt.Errorf("browser: list pages: %w", err)
	}
	tabs := make([]port.Tab, 0, len(pages))
	for _, p := range pages {
		tabs = append(tabs, newTab(p))
	}
	return tabs, nil
}

// Tab implements port.TabRegistry.
func (r *TabRegistry) Tab(ctx context.Context, id port.TabID) (port.Tab, error) {
	b := r.mgr.Browser()
	if b == nil {
		return nil, ErrNotStarted
	}
	pages, err := b.Context(ctx).Pages()
	if err != nil {
		return nil, fmt.Errorf("browser: list pages: %w", err)
	}
	for _, p := range pages {
		if port.TabID(p.TargetID) == id {
			return newTab(p), nil
		}
	}
	return nil, fmt.Errorf("%w: %s", port.ErrTabNotFound, id)
}

func protoBlankTarget() proto.TargetCreateTarget {
	return proto.TargetCreateTarget{URL: ""}
}
