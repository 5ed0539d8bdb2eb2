// Package chrome drives a Chromium browser over the DevTools protocol with
// Rod: it lists open tabs, injects styles into their documents and reports
// completed navigations.
package chrome

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/go-rod/rod"
	"github.com/go-rod/rod/lib/launcher"
	"github.com/go-rod/stealth"

	"github.com/bnema/sitestyle/internal/logging"
)

// ErrNotStarted is returned when the browser has not been started or was closed.
var ErrNotStarted = errors.New("browser not started")

// Config configures the browser manager.
type Config struct {
	// RemoteURL is the DevTools WebSocket URL of a running browser.
	// Empty launches a local browser.
	RemoteURL string

	// Bin overrides the browser binary for local launches.
	Bin string

	// Headless launches without a window. Ignored for remote browsers.
	Headless bool

	// UserDataDir keeps the browser profile between runs when set.
	UserDataDir string
}

// Manager owns the connection to the browser.
type Manager struct {
	cfg     Config
	mu      sync.RWMutex
	browser *rod.Browser
	lnch    *launcher.Launcher
	wsURL   string
	closed  bool
}

// NewManager creates a Manager. Call Start to connect.
func NewManager(cfg Config) *Manager {
	return &Manager{cfg: cfg}
}

// Start launches the browser, or connects to the remote one, and returns the handle.
func (m *Manager) Start(ctx context.Context) (*rod.Browser, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.closed {
		return nil, fmt.Errorf("browser: manager is closed")
	}
	if m.browser != nil {
		return m.browser, nil
	}

	log := logging.FromContext(ctx)
	wsURL := m.cfg.RemoteURL
	if wsURL != "" {
		log.Info().Str("url", wsURL).Msg("connecting to remote browser")
	} else {
		l := launcher.New().Headless(m.cfg.Headless)
		if m.cfg.Bin != "" {
			l = l.Bin(m.cfg.Bin)
		}
		if m.cfg.UserDataDir != "" {
			l = l.UserDataDir(m.cfg.UserDataDir)
		}
		u, err := l.Context(ctx).Launch()
		if err != nil {
			return nil, fmt.Errorf("browser: launch: %w", err)
		}
		wsURL = u
		m.lnch = l
		log.Info().Str("url", wsURL).Bool("headless", m.cfg.Headless).Msg("launched local browser")
	}

	b := rod.New().ControlURL(wsURL)
	if err := b.Connect(); err != nil {
		if m.lnch != nil {
			m.lnch.Cleanup()
			m.lnch = nil
		}
		return nil, fmt.Errorf("browser: connect: %w", err)
	}
	m.browser = b
	m.wsURL = wsURL
	return b, nil
}

// ControlURL returns the DevTools URL of the connected browser, or "" before Start.
func (m *Manager) ControlURL() string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.wsURL
}

// Browser returns the current browser handle, or nil before Start.
func (m *Manager) Browser() *rod.Browser {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return m.browser
}

// OpenTab opens a new tab on pageURL and waits for it to load.
func (m *Manager) OpenTab(ctx context.Context, pageURL string) (*Tab, error) {
	b := m.Browser()
	if b == nil {
		return nil, ErrNotStarted
	}

	var page *rod.Page
	var err error
	if m.cfg.Headless {
		page, err = stealth.Page(b)
	} else {
		page, err = b.Page(protoBlankTarget())
	}
	if err != nil {
		return nil, fmt.Errorf("browser: create tab: %w", err)
	}

	if err := page.Context(ctx).Navigate(pageURL); err != nil {
		_ = page.Close()
		return nil, fmt.Errorf("browser: navigate %s: %w", pageURL, err)
	}
	if err := page.Context(ctx).WaitLoad(); err != nil {
		logging.FromContext(ctx).Warn().Err(err).Str("url", pageURL).Msg("wait load failed")
	}
	return newTab(page), nil
}

// Close disconnects from the browser and stops it if it was launched locally.
// A remote browser keeps running.
func (m *Manager) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.closed = true
	var err error
	if m.lnch != nil {
		if m.browser != nil {
			err = m.browser.Close()
		}
		m.lnch.Cleanup()
		m.lnch = nil
	}
	m.browser = nil
	m.wsURL = ""
	return err
}
