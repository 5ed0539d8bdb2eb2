package config

import "github.com/bnema/sitestyle/internal/application/usecase"

// DefaultScaleFactors are the popup scale choices.
var DefaultScaleFactors = []float64{0.5, 0.75, 0.9, 1, 1.1, 1.25, 1.5, 1.75, 2}

// DefaultFallbackFonts are offered when fc-list is unavailable.
var DefaultFallbackFonts = []string{
	"Arial",
	"DejaVu Sans",
	"DejaVu Serif",
	"Georgia",
	"Helvetica",
	"Liberation Sans",
	"Liberation Serif",
	"Noto Sans",
	"Noto Serif",
	"Times New Roman",
	"Verdana",
	"monospace",
	"sans-serif",
	"serif",
}

// DefaultConfig returns the default configuration. Database.Path is left
// empty and resolved at load time.
func DefaultConfig() *Config {
	return &Config{
		Database: DatabaseConfig{
			CacheSize:       256,
			CacheTTLSeconds: 5,
		},
		Logging: LoggingConfig{
			Level:      "info",
			Format:     LogFormatConsole,
			MaxSizeMB:  5,
			MaxBackups: 3,
		},
		Browser: BrowserConfig{
			MaxConcurrentTabs: usecase.DefaultMaxConcurrentTabs,
		},
		Popup: PopupConfig{
			ScaleFactors:  append([]float64(nil), DefaultScaleFactors...),
			FallbackFonts: append([]string(nil), DefaultFallbackFonts...),
		},
	}
}
