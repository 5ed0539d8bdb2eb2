package port

import (
	"context"
	"errors"
)

//go:generate mockgen -source=tabs.go -destination=mocks/mock_tabs.go -package=mocks

// ErrTabNotFound is returned when a tab id does not match an open page.
var ErrTabNotFound = errors.New("tab not found")

// TabID uniquely identifies an open page.
type TabID string

// Tab is an open page whose document can be styled.
type Tab interface {
	ID() TabID
	// URL returns the page's current URL.
	URL(ctx context.Context) (string, error)
	// Document returns the page's live document.
	Document() Document
}

// TabRegistry lists the pages currently open in the browser.
type TabRegistry interface {
	// Tabs returns every open page. Internal pages are included; callers
	// filter them by hostname.
	Tabs(ctx context.Context) ([]Tab, error)

	// Tab returns a single page or ErrTabNotFound.
	Tab(ctx context.Context, id TabID) (Tab, error)
}

// NavigationEvent reports that a page finished loading.
type NavigationEvent struct {
	TabID TabID
	URL   string
}

// NavigationWatcher reports completed navigations until ctx is cancelled.
type NavigationWatcher interface {
	Watch(ctx context.Context, onCompleted func(NavigationEvent)) error
}
