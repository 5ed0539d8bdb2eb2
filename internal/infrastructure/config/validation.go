package config

import (
	"fmt"
	"strings"
)

// validateConfig performs validation of configuration values
func validateConfig(config *Config) error {
	var validationErrors []string

	validationErrors = append(validationErrors, validateDatabase(config)...)
	validationErrors = append(validationErrors, validateLogging(config)...)
	validationErrors = append(validationErrors, validateBrowser(config)...)
	validationErrors = append(validationErrors, validatePopup(config)...)

	if len(validationErrors) > 0 {
		return fmt.Errorf("config validation failed:\n  - %s", strings.Join(validationErrors, "\n  - "))
	}

	return nil
}

func validateDatabase(config *Config) []string {
	var validationErrors []string
	if config.Database.CacheSize < 0 {
		validationErrors = append(validationErrors, "database.cache_size must be non-negative")
	}
	if config.Database.CacheTTLSeconds < 1 {
		validationErrors = append(validationErrors, "database.cache_ttl_seconds must be at least 1")
	}
	return validationErrors
}

func validateLogging(config *Config) []string {
	var validationErrors []string
	switch strings.ToLower(config.Logging.Level) {
	case "", "trace", "debug", "info", "warn", "warning", "error", "disabled", "off":
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.level must be one of trace, debug, info, warn, error (got %q)", config.Logging.Level))
	}
	switch config.Logging.Format {
	case "", LogFormatConsole, LogFormatJSON:
	default:
		validationErrors = append(validationErrors,
			fmt.Sprintf("logging.format must be console or json (got %q)", config.Logging.Format))
	}
	if config.Logging.MaxSizeMB < 1 {
		validationErrors = append(validationErrors, "logging.max_size_mb must be at least 1")
	}
	if config.Logging.MaxBackups < 0 {
		validationErrors = append(validationErrors, "logging.max_backups must be non-negative")
	}
	return validationErrors
}

func validateBrowser(config *Config) []string {
	var validationErrors []string
	if config.Browser.MaxConcurrentTabs < 1 {
		validationErrors = append(validationErrors, "browser.max_concurrent_tabs must be at least 1")
	}
	if url := config.Browser.RemoteURL; url != "" &&
		!strings.HasPrefix(url, "ws://") && !strings.HasPrefix(url, "wss://") &&
		!strings.HasPrefix(url, "http://") && !strings.HasPrefix(url, "https://") {
		validationErrors = append(validationErrors, "browser.remote_url must be a ws:// or http:// URL")
	}
	return validationErrors
}

func validatePopup(config *Config) []string {
	var validationErrors []string
	if len(config.Popup.ScaleFactors) == 0 {
		validationErrors = append(validationErrors, "popup.scale_factors must not be empty")
	}
	for i, factor := range config.Popup.ScaleFactors {
		if factor <= 0 {
			validationErrors = append(validationErrors,
				fmt.Sprintf("popup.scale_factors[%d] must be positive (got %g)", i, factor))
		}
	}
	for i, font := range config.Popup.FallbackFonts {
		if strings.TrimSpace(font) == "" {
			validationErrors = append(validationErrors, fmt.Sprintf("popup.fallback_fonts[%d] must not be blank", i))
		}
	}
	return validationErrors
}
