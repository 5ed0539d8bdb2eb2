// Package config loads, validates and watches the sitestyle configuration.
package config

const (
	dirPerm  = 0755
	filePerm = 0644
)

// Config represents the complete configuration for sitestyle.
type Config struct {
	Database DatabaseConfig `mapstructure:"database" toml:"database" json:"database"`
	Logging  LoggingConfig  `mapstructure:"logging" toml:"logging" json:"logging"`
	// Browser selects the Chromium instance whose tabs are styled.
	Browser BrowserConfig `mapstructure:"browser" toml:"browser" json:"browser"`
	// Popup controls the choices offered by the interactive popup.
	Popup PopupConfig `mapstructure:"popup" toml:"popup" json:"popup"`
}

// DatabaseConfig holds the settings store location and its read cache.
type DatabaseConfig struct {
	// Path of the SQLite file. Empty means $XDG_DATA_HOME/sitestyle/sitestyle.db.
	Path string `mapstructure:"path" toml:"path" json:"path,omitempty" jsonschema:"description=SQLite database path"`
	// CacheSize is the number of domains kept in memory. 0 disables the cache.
	CacheSize int `mapstructure:"cache_size" toml:"cache_size" json:"cache_size" jsonschema:"minimum=0,default=256"`
	// CacheTTLSeconds bounds how long a cached domain is trusted, so changes
	// made by another sitestyle process are picked up.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" toml:"cache_ttl_seconds" json:"cache_ttl_seconds" jsonschema:"minimum=1,default=5"`
}

// LogFormat selects the log encoder.
type LogFormat string

const (
	LogFormatConsole LogFormat = "console"
	LogFormatJSON    LogFormat = "json"
)

// LoggingConfig controls log verbosity and encoding.
type LoggingConfig struct {
	Level  string    `mapstructure:"level" toml:"level" json:"level" jsonschema:"enum=trace,enum=debug,enum=info,enum=warn,enum=error,default=info"`
	Format LogFormat `mapstructure:"format" toml:"format" json:"format" jsonschema:"enum=console,enum=json,default=console"`
	// LogDir holds sitestyle.log. Empty means $XDG_STATE_HOME/sitestyle/logs.
	LogDir     string `mapstructure:"log_dir" toml:"log_dir" json:"log_dir,omitempty"`
	MaxSizeMB  int    `mapstructure:"max_size_mb" toml:"max_size_mb" json:"max_size_mb" jsonschema:"minimum=1,default=5"`
	MaxBackups int    `mapstructure:"max_backups" toml:"max_backups" json:"max_backups" jsonschema:"minimum=0,default=3"`
}

// BrowserConfig describes how to reach the browser.
type BrowserConfig struct {
	// RemoteURL is a DevTools websocket URL of an already running browser.
	// When empty, the endpoint published by `sitestyle run` is used.
	RemoteURL string `mapstructure:"remote_url" toml:"remote_url" json:"remote_url,omitempty"`
	// Headless launches the browser without a window when sitestyle starts it.
	Headless bool `mapstructure:"headless" toml:"headless" json:"headless"`
	// Bin overrides the browser executable.
	Bin string `mapstructure:"bin" toml:"bin" json:"bin,omitempty"`
	// UserDataDir is the profile directory of a launched browser.
	UserDataDir string `mapstructure:"user_data_dir" toml:"user_data_dir" json:"user_data_dir,omitempty"`
	// MaxConcurrentTabs bounds how many tabs are restyled at once.
	MaxConcurrentTabs int `mapstructure:"max_concurrent_tabs" toml:"max_concurrent_tabs" json:"max_concurrent_tabs" jsonschema:"minimum=1,default=4"`
}

// PopupConfig holds the popup choices.
type PopupConfig struct {
	// ScaleFactors offered by the scale selector. 1 resets scaling.
	ScaleFactors []float64 `mapstructure:"scale_factors" toml:"scale_factors" json:"scale_factors"`
	// FallbackFonts are listed when installed fonts cannot be detected.
	FallbackFonts []string `mapstructure:"fallback_fonts" toml:"fallback_fonts" json:"fallback_fonts"`
}
