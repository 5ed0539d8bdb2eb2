package config

import (
	"slices"
	"time"

	"github.com/fsnotify/fsnotify"

	"github.com/bnema/sitestyle/internal/logging"
)

// Editors often write a file in several steps; events closer together than
// this collapse into one reload.
const reloadDebounce = 200 * time.Millisecond

// Watch reloads the config file whenever it changes on disk and notifies
// the OnConfigChange callbacks. Calling it twice is a no-op.
func (m *Manager) Watch() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.watching {
		return nil
	}
	m.watching = true
	m.viper.OnConfigChange(func(fsnotify.Event) { m.scheduleReload() })
	m.viper.WatchConfig()
	return nil
}

// OnConfigChange registers fn to receive each successfully reloaded config.
func (m *Manager) OnConfigChange(fn func(*Config)) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.callbacks = append(m.callbacks, fn)
}

func (m *Manager) scheduleReload() {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.reloadTimer != nil {
		m.reloadTimer.Stop()
	}
	m.reloadTimer = time.AfterFunc(reloadDebounce, m.reloadAndNotify)
}

// reloadAndNotify re-reads the file. A file that fails to parse or validate
// leaves the current config in place and notifies nobody.
func (m *Manager) reloadAndNotify() {
	log := logging.NewFromEnv()

	m.mu.Lock()
	if err := m.viper.ReadInConfig(); err != nil {
		m.mu.Unlock()
		log.Warn().Err(err).Msg("config reload skipped: read failed")
		return
	}
	if err := m.apply(); err != nil {
		m.mu.Unlock()
		log.Warn().Err(err).Msg("config reload skipped: invalid config")
		return
	}
	callbacks := slices.Clone(m.callbacks)
	m.mu.Unlock()

	log.Debug().Str("file", m.GetConfigFile()).Msg("config reloaded")
	for _, fn := range callbacks {
		fn(m.Get())
	}
}
