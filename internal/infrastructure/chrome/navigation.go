package chrome

import (
	"context"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/proto"

	"github.com/bnema/sitestyle/internal/application/port"
	"github.com/bnema/sitestyle/internal/logging"
)

// NavigationWatcher reports load events of every page target, including
// pages opened after Watch starts.
type NavigationWatcher struct {
	mgr *Manager
}

var _ port.NavigationWatcher = (*NavigationWatcher)(nil)

// NewNavigationWatcher creates a watcher over the manager's browser.
func NewNavigationWatcher(mgr *Manager) *NavigationWatcher {
	return &NavigationWatcher{mgr: mgr}
}

// Watch blocks until ctx is cancelled, calling onCompleted from event
// goroutines whenever a page fires its load event.
func (w *NavigationWatcher) Watch(ctx context.Context, onCompleted func(port.NavigationEvent)) error {
	b := w.mgr.Browser()
	if b == nil {
		return ErrNotStarted
	}
	log := logging.FromContext(ctx)

	var (
		mu      sync.Mutex
		watched = make(map[proto.TargetTargetID]context.CancelFunc)
	)
	watch := func(page *rod.Page) {
		mu.Lock()
		defer mu.Unlock()
		if _, ok := watched[page.TargetID]; ok {
			return
		}
		pageCtx, cancel := context.WithCancel(ctx)
		watched[page.TargetID] = cancel
		go w.watchPage(pageCtx, page, onCompleted)
	}
	unwatch := func(id proto.TargetTargetID) {
		mu.Lock()
		defer mu.Unlock()
		if cancel, ok := watched[id]; ok {
			cancel()
			delete(watched, id)
		}
	}

	bctx := b.Context(ctx)
	if err := (proto.TargetSetDiscoverTargets{Discover: true}).Call(bctx); err != nil {
		return fmt.Errorf("browser: discover targets: %w", err)
	}
	wait := bctx.EachEvent(func(e *proto.TargetTargetCreated) {
		if e.TargetInfo.Type != proto.TargetTargetInfoTypePage {
			return
		}
		page, err := b.PageFromTarget(e.TargetInfo.TargetID)
		if err != nil {
			log.Debug().Err(err).Str("target", string(e.TargetInfo.TargetID)).Msg("cannot attach to new target")
			return
		}
		watch(page)
	}, func(e *proto.TargetTargetDestroyed) {
		unwatch(e.TargetID)
	})

	pages, err := bctx.Pages()
	if err != nil {
		return fmt.Errorf("browser: list pages: %w", err)
	}
	for _, page := range pages {
		watch(page)
	}
	log.Info().Int("tabs", len(pages)).Msg("watching navigations")

	wait()
	return ctx.Err()
}

func (w *NavigationWatcher) watchPage(ctx context.Context, page *rod.Page, onCompleted func(port.NavigationEvent)) {
	p := page.Context(ctx)
	log := logging.FromContext(logging.WithTabID(ctx, string(page.TargetID)))

	if err := (proto.PageEnable{}).Call(p); err != nil {
		log.Debug().Err(err).Msg("page events unavailable")
		return
	}

	p.EachEvent(func(*proto.PageLoadEventFired) {
		info, err := p.Info()
		if err != nil {
			log.Debug().Err(err).Msg("tab closed before load handling")
			return
		}
		onCompleted(port.NavigationEvent{TabID: port.TabID(page.TargetID), URL: info.URL})
	})()
}
