package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/bnema/sitestyle/internal/logging"
)

// Manager loads config.toml, overlays SITESTYLE_* variables and reloads
// the file when it changes.
type Manager struct {
	mu          sync.RWMutex
	viper       *viper.Viper
	config      *Config
	callbacks   []func(*Config)
	watching    bool
	reloadTimer *time.Timer
}

// NewManager creates a new configuration manager.
func NewManager() (*Manager, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")

	configDir, err := GetConfigDir()
	if err != nil {
		return nil, fmt.Errorf("failed to determine config directory: %w\nCheck XDG_CONFIG_HOME environment variable or HOME directory", err)
	}
	v.AddConfigPath(configDir)

	// SITESTYLE_DATABASE_PATH, SITESTYLE_BROWSER_REMOTE_URL, ...
	v.SetEnvPrefix("SITESTYLE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.BindEnv("logging.level", "SITESTYLE_LOG_LEVEL"); err != nil {
		return nil, fmt.Errorf("failed to bind SITESTYLE_LOG_LEVEL: %w", err)
	}
	if err := v.BindEnv("logging.format", "SITESTYLE_LOG_FORMAT"); err != nil {
		return nil, fmt.Errorf("failed to bind SITESTYLE_LOG_FORMAT: %w", err)
	}

	return &Manager{viper: v}, nil
}

// Load loads the configuration from file and environment variables.
// A default config file is written on first run.
func (m *Manager) Load() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if err := EnsureDirectories(); err != nil {
		return fmt.Errorf("failed to ensure directories: %w", err)
	}

	m.setDefaults()

	if err := m.readConfigFile(); err != nil {
		return err
	}
	return m.apply()
}

func (m *Manager) readConfigFile() error {
	err := m.viper.ReadInConfig()
	if err == nil {
		return nil
	}

	var configFileNotFoundError viper.ConfigFileNotFoundError
	if !errors.As(err, &configFileNotFoundError) {
		configFile := m.viper.ConfigFileUsed()
		if configFile == "" {
			configFile, _ = GetConfigFile()
		}
		return fmt.Errorf("failed to read config file at %s: %w\nCheck the file format (must be valid TOML) and permissions", configFile, err)
	}

	if createErr := createDefaultConfig(); createErr != nil {
		configDir, _ := GetConfigDir()
		return fmt.Errorf(
			"failed to create default config at %s: %w\nTry creating the directory manually or check permissions",
			configDir,
			createErr,
		)
	}
	if rereadErr := m.viper.ReadInConfig(); rereadErr != nil {
		return fmt.Errorf("failed to read newly created config file: %w", rereadErr)
	}
	return nil
}

// apply unmarshals, completes and validates the viper state. Must be called
// with m.mu held for write.
func (m *Manager) apply() error {
	config := &Config{}
	if err := m.viper.Unmarshal(config); err != nil {
		return fmt.Errorf(
			"failed to parse config file at %s: %w\nCheck for syntax errors, invalid values, or type mismatches",
			m.viper.ConfigFileUsed(),
			err,
		)
	}
	if err := ensureDatabasePath(config); err != nil {
		return err
	}
	if err := ensureLogDir(config); err != nil {
		return err
	}
	normalizeConfig(config)

	if err := validateConfig(config); err != nil {
		return fmt.Errorf("configuration validation failed: %w", err)
	}

	m.config = config
	return nil
}

func ensureDatabasePath(config *Config) error {
	if config.Database.Path != "" {
		return nil
	}
	dbPath, err := GetDatabaseFile()
	if err != nil {
		return fmt.Errorf("failed to get database path: %w", err)
	}
	config.Database.Path = dbPath
	return nil
}

func ensureLogDir(config *Config) error {
	if config.Logging.LogDir != "" {
		return nil
	}
	logDir, err := GetLogDir()
	if err != nil {
		return fmt.Errorf("failed to get log directory: %w", err)
	}
	config.Logging.LogDir = logDir
	return nil
}

func normalizeConfig(config *Config) {
	config.Logging.Level = strings.ToLower(strings.TrimSpace(config.Logging.Level))
	if config.Logging.Level == "" {
		config.Logging.Level = "info"
	}

	switch LogFormat(strings.ToLower(string(config.Logging.Format))) {
	case LogFormatJSON:
		config.Logging.Format = LogFormatJSON
	default:
		config.Logging.Format = LogFormatConsole
	}

	config.Browser.RemoteURL = strings.TrimSpace(config.Browser.RemoteURL)
	config.Browser.Bin = strings.TrimSpace(config.Browser.Bin)

	fonts := config.Popup.FallbackFonts[:0]
	for _, font := range config.Popup.FallbackFonts {
		if font = strings.TrimSpace(font); font != "" {
			fonts = append(fonts, font)
		}
	}
	config.Popup.FallbackFonts = fonts
}

// Get returns the current configuration (thread-safe).
func (m *Manager) Get() *Config {
	m.mu.RLock()
	defer m.mu.RUnlock()

	configCopy := *m.config
	configCopy.Popup.ScaleFactors = append([]float64(nil), m.config.Popup.ScaleFactors...)
	configCopy.Popup.FallbackFonts = append([]string(nil), m.config.Popup.FallbackFonts...)
	return &configCopy
}

// GetConfigFile returns the path to the configuration file being used.
func (m *Manager) GetConfigFile() string {
	return m.viper.ConfigFileUsed()
}

// createDefaultConfig writes the default configuration file.
func createDefaultConfig() error {
	configFile, err := GetConfigFile()
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(configFile), dirPerm); err != nil {
		return err
	}
	if err := WriteConfigOrdered(DefaultConfig(), configFile); err != nil {
		return err
	}

	logger := logging.NewFromEnv()
	logger.Info().Str("path", configFile).Msg("created default configuration file")
	return nil
}

// setDefaults sets default configuration values in Viper.
func (m *Manager) setDefaults() {
	defaults := DefaultConfig()

	// Database.Path is resolved in apply.
	m.viper.SetDefault("database.cache_size", defaults.Database.CacheSize)
	m.viper.SetDefault("database.cache_ttl_seconds", defaults.Database.CacheTTLSeconds)
	m.viper.SetDefault("logging.level", defaults.Logging.Level)
	m.viper.SetDefault("logging.format", string(defaults.Logging.Format))
	m.viper.SetDefault("logging.log_dir", defaults.Logging.LogDir)
	m.viper.SetDefault("logging.max_size_mb", defaults.Logging.MaxSizeMB)
	m.viper.SetDefault("logging.max_backups", defaults.Logging.MaxBackups)

	m.viper.SetDefault("browser.remote_url", defaults.Browser.RemoteURL)
	m.viper.SetDefault("browser.headless", defaults.Browser.Headless)
	m.viper.SetDefault("browser.bin", defaults.Browser.Bin)
	m.viper.SetDefault("browser.user_data_dir", defaults.Browser.UserDataDir)
	m.viper.SetDefault("browser.max_concurrent_tabs", defaults.Browser.MaxConcurrentTabs)

	m.viper.SetDefault("popup.scale_factors", defaults.Popup.ScaleFactors)
	m.viper.SetDefault("popup.fallback_fonts", defaults.Popup.FallbackFonts)
}

// Logger builds a stderr logger from the logging section. A non-nil level
// overrides the configured one and can be changed later.
func (c LoggingConfig) Logger(level *logging.LevelVar) zerolog.Logger {
	return logging.New(c.loggerConfig(level))
}

// FileLogger builds a logger writing to the rotating log file, and to
// stderr when withStderr is set.
func (c LoggingConfig) FileLogger(withStderr bool, level *logging.LevelVar) (zerolog.Logger, func(), error) {
	cfg := c.loggerConfig(level)
	return logging.NewWithFile(cfg, logging.FileConfig{
		Enabled:       c.LogDir != "",
		Dir:           c.LogDir,
		MaxSizeMB:     c.MaxSizeMB,
		MaxBackups:    c.MaxBackups,
		WriteToStderr: withStderr,
	})
}

func (c LoggingConfig) loggerConfig(level *logging.LevelVar) logging.Config {
	cfg := logging.DefaultConfig()
	cfg.Level = logging.ParseLevel(c.Level)
	if c.Format == LogFormatJSON || c.Format == LogFormatConsole {
		cfg.Format = string(c.Format)
	}
	cfg.LevelVar = level
	return cfg
}
