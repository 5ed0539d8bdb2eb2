package cli

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/bnema/sitestyle/internal/app/messaging"
	"github.com/bnema/sitestyle/internal/application/port"
	"github.com/bnema/sitestyle/internal/application/usecase"
	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/infrastructure/chrome"
	"github.com/bnema/sitestyle/internal/infrastructure/config"
	"github.com/bnema/sitestyle/internal/logging"
)

// ErrNoTab is returned when the browser has no page to act on.
var ErrNoTab = errors.New("no open tab")

// BrowserSession connects the styling pipeline to a browser: the tab
// registry, the apply use case and a signal bus drained by a listener.
type BrowserSession struct {
	Manager *chrome.Manager
	Tabs    *chrome.TabRegistry
	Styler  *usecase.ApplyDisplaySettingsUseCase

	bus  *messaging.Bus
	done chan error
}

// ConnectBrowser attaches to the browser configured in browser.remote_url or
// published by a running `sitestyle run`.
func (a *App) ConnectBrowser(ctx context.Context) (*BrowserSession, error) {
	endpoint, err := config.GetEndpointFile()
	if err != nil {
		return nil, err
	}
	remote, err := chrome.ResolveRemoteURL(a.Config.Browser.RemoteURL, endpoint)
	if err != nil {
		return nil, err
	}
	return a.startSession(ctx, chrome.Config{RemoteURL: remote})
}

// LaunchBrowser connects to browser.remote_url when set and launches a local
// browser otherwise.
func (a *App) LaunchBrowser(ctx context.Context) (*BrowserSession, error) {
	b := a.Config.Browser
	return a.startSession(ctx, chrome.Config{
		RemoteURL:   b.RemoteURL,
		Bin:         b.Bin,
		Headless:    b.Headless,
		UserDataDir: b.UserDataDir,
	})
}

func (a *App) startSession(ctx context.Context, cfg chrome.Config) (*BrowserSession, error) {
	mgr := chrome.NewManager(cfg)
	if _, err := mgr.Start(ctx); err != nil {
		return nil, err
	}

	tabs := chrome.NewTabRegistry(mgr)
	styler := usecase.NewApplyDisplaySettingsUseCase(a.SettingsUC, tabs, nil, a.Config.Browser.MaxConcurrentTabs)
	handler := messaging.NewHandler(styler, messaging.NewDeduplicator(messaging.DefaultDebounceWindow))

	s := &BrowserSession{
		Manager: mgr,
		Tabs:    tabs,
		Styler:  styler,
		bus:     messaging.NewBus(messaging.DefaultBufferSize),
		done:    make(chan error, 1),
	}
	listenCtx := logging.WithComponent(ctx, "listener")
	go func() { s.done <- s.bus.Listen(listenCtx, handler) }()
	return s, nil
}

// Send queues a signal for the listener.
func (s *BrowserSession) Send(ctx context.Context, msg messaging.Message) error {
	return s.bus.Send(ctx, msg)
}

// SendRaw queues a JSON signal for the listener.
func (s *BrowserSession) SendRaw(ctx context.Context, payload string) error {
	return s.bus.SendRaw(ctx, payload)
}

// ApplyDomain asks the listener to restyle every tab of domain.
func (s *BrowserSession) ApplyDomain(ctx context.Context, domain string) error {
	return s.Send(ctx, messaging.ApplySettingsForDomain(domain))
}

// ResetTab asks the listener to remove one aspect from a tab.
func (s *BrowserSession) ResetTab(ctx context.Context, tabID string, field entity.SettingField) error {
	msg, err := messaging.ResetOnTab(field, tabID)
	if err != nil {
		return err
	}
	return s.Send(ctx, msg)
}

// ResetDomain sends the reset signal of field to every tab of domain.
func (s *BrowserSession) ResetDomain(ctx context.Context, domain string, field entity.SettingField) error {
	tabs, err := s.Styler.TabsForDomain(ctx, domain)
	if err != nil {
		return err
	}
	for _, tab := range tabs {
		if err := s.ResetTab(ctx, string(tab.ID()), field); err != nil {
			return err
		}
	}
	return nil
}

// ActiveTab returns the tab with the given id, or the first page the browser
// reports when id is empty. DevTools pages are never picked.
func (s *BrowserSession) ActiveTab(ctx context.Context, id string) (port.Tab, error) {
	if id != "" {
		return s.Tabs.Tab(ctx, port.TabID(id))
	}
	tabs, err := s.Tabs.Tabs(ctx)
	if err != nil {
		return nil, err
	}
	for _, tab := range tabs {
		pageURL, err := tab.URL(ctx)
		if err != nil || strings.HasPrefix(pageURL, "devtools://") {
			continue
		}
		return tab, nil
	}
	return nil, ErrNoTab
}

// Close drains queued signals, then disconnects. A browser launched by the
// session is stopped.
func (s *BrowserSession) Close() error {
	s.bus.Close()
	listenErr := <-s.done
	if errors.Is(listenErr, context.Canceled) {
		listenErr = nil
	}
	if err := s.Manager.Close(); err != nil {
		return errors.Join(listenErr, fmt.Errorf("close browser: %w", err))
	}
	return listenErr
}
