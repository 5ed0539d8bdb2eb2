package logging

import (
	"io"
	"os"
	"strings"
	"time"

	"github.com/rs/zerolog"
)

// Config holds logging configuration
type Config struct {
	Level      zerolog.Level
	Format     string // "json" or "console"
	TimeFormat string
	Output     io.Writer
	NoColor    bool

	// LevelVar, when set, replaces Level so the level can change at runtime.
	LevelVar *LevelVar
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Level:      zerolog.InfoLevel,
		Format:     "console",
		TimeFormat: time.RFC3339,
	}
}

// New creates a new zerolog logger with the given configuration
func New(cfg Config) zerolog.Logger {
	out := cfg.Output
	if out == nil {
		out = os.Stderr
	}

	var output io.Writer = out
	if cfg.Format == "console" {
		output = zerolog.ConsoleWriter{
			Out:        out,
			TimeFormat: cfg.TimeFormat,
			NoColor:    cfg.NoColor,
		}
	}

	level := cfg.Level
	if cfg.LevelVar != nil {
		output = levelWriter{out: output, level: cfg.LevelVar}
		level = zerolog.TraceLevel
	}

	return zerolog.New(output).
		Level(level).
		With().
		Timestamp().
		Logger()
}

// ParseLevel maps a textual level to a zerolog level, defaulting to info.
func ParseLevel(level string) zerolog.Level {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "trace":
		return zerolog.TraceLevel
	case "debug":
		return zerolog.DebugLevel
	case "warn", "warning":
		return zerolog.WarnLevel
	case "error":
		return zerolog.ErrorLevel
	case "disabled", "off":
		return zerolog.Disabled
	default:
		return zerolog.InfoLevel
	}
}

// NewFromConfigValues builds a logger from raw config strings.
func NewFromConfigValues(level, format string) zerolog.Logger {
	cfg := DefaultConfig()
	cfg.Level = ParseLevel(level)
	if format == "json" || format == "console" {
		cfg.Format = format
	}
	return New(cfg)
}

// NewFromEnv creates a logger based on environment variables
// SITESTYLE_LOG_LEVEL: trace, debug, info, warn, error (default: info)
// SITESTYLE_LOG_FORMAT: json, console (default: console)
func NewFromEnv() zerolog.Logger {
	return NewFromConfigValues(os.Getenv("SITESTYLE_LOG_LEVEL"), os.Getenv("SITESTYLE_LOG_FORMAT"))
}

// FileConfig configures the rotating log file.
type FileConfig struct {
	Enabled       bool
	Dir           string
	MaxSizeMB     int
	MaxBackups    int
	WriteToStderr bool
}

// NewWithFile creates a logger that writes to a rotating file in fc.Dir and,
// when fc.WriteToStderr is set, to stderr as well. With the file disabled and
// stderr off the logger is silent. The returned cleanup closes the file.
func NewWithFile(cfg Config, fc FileConfig) (zerolog.Logger, func(), error) {
	var writers []io.Writer
	cleanup := func() {}

	if fc.Enabled {
		file, err := NewRotatingFile(fc.Dir, LogFileName, fc.MaxSizeMB, fc.MaxBackups)
		if err != nil {
			return zerolog.Nop(), cleanup, err
		}
		writers = append(writers, file)
		cleanup = func() { _ = file.Close() }
	}
	if fc.WriteToStderr {
		writers = append(writers, os.Stderr)
	}
	if len(writers) == 0 {
		return zerolog.Nop(), cleanup, nil
	}

	cfg.Output = io.MultiWriter(writers...)
	cfg.NoColor = cfg.NoColor || fc.Enabled
	return New(cfg), cleanup, nil
}

// LogFileName is the name of the active log file inside the log directory.
const LogFileName = "sitestyle.log"
