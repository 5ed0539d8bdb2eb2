// Package cli wires the sitestyle use cases for the command-line interface.
package cli

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/bnema/sitestyle/internal/application/usecase"
	"github.com/bnema/sitestyle/internal/cli/styles"
	"github.com/bnema/sitestyle/internal/domain/build"
	"github.com/bnema/sitestyle/internal/domain/repository"
	"github.com/bnema/sitestyle/internal/infrastructure/cache"
	"github.com/bnema/sitestyle/internal/infrastructure/config"
	"github.com/bnema/sitestyle/internal/infrastructure/fonts"
	"github.com/bnema/sitestyle/internal/infrastructure/persistence/sqlite"
	"github.com/bnema/sitestyle/internal/logging"
)

// Options tune how the app logs.
type Options struct {
	// LogToStderr mirrors log lines on stderr. Interactive commands leave
	// it off so the TUI is not garbled.
	LogToStderr bool
}

// App holds CLI dependencies.
type App struct {
	Config    *config.Config
	ConfigMgr *config.Manager
	Theme     *styles.Theme
	BuildInfo build.Info

	db       *sqlite.LazyDB
	Settings repository.DisplaySettingsRepository

	SettingsUC *usecase.ManageDisplaySettingsUseCase
	FontsUC    *usecase.ListFontsUseCase

	ctx        context.Context
	logger     zerolog.Logger
	logLevel   *logging.LevelVar
	logCleanup func()
}

// NewApp loads the configuration and builds the use cases. The database is
// opened on first use.
func NewApp(opts Options) (*App, error) {
	mgr, err := config.NewManager()
	if err != nil {
		return nil, err
	}
	if err := mgr.Load(); err != nil {
		return nil, err
	}
	cfg := mgr.Get()

	logLevel := logging.NewLevelVar(logging.ParseLevel(cfg.Logging.Level))
	logger, logCleanup, err := cfg.Logging.FileLogger(opts.LogToStderr, logLevel)
	if err != nil {
		// Fall back to stderr when the log dir is not writable.
		logger = cfg.Logging.Logger(logLevel)
		logCleanup = func() {}
		logger.Warn().Err(err).Msg("log file unavailable")
	}
	ctx := logging.WithContext(context.Background(), logger)

	db := sqlite.NewLazyDB(cfg.Database.Path)
	settings := cache.NewDisplaySettingsRepository(
		sqlite.NewLazyDisplaySettingsRepository(db),
		cfg.Database.CacheSize,
		time.Duration(cfg.Database.CacheTTLSeconds)*time.Second,
	)

	logger.Debug().Str("db_path", cfg.Database.Path).Str("config", mgr.GetConfigFile()).Msg("app initialized")

	return &App{
		Config:     cfg,
		ConfigMgr:  mgr,
		Theme:      styles.NewTheme(),
		db:         db,
		Settings:   settings,
		SettingsUC: usecase.NewManageDisplaySettingsUseCase(settings),
		FontsUC:    usecase.NewListFontsUseCase(fonts.NewDetector(), cfg.Popup.FallbackFonts),
		ctx:        ctx,
		logger:     logger,
		logLevel:   logLevel,
		logCleanup: logCleanup,
	}, nil
}

// Ctx returns the application context with logger.
func (a *App) Ctx() context.Context {
	return a.ctx
}

// Logger returns the application logger.
func (a *App) Logger() *zerolog.Logger {
	return &a.logger
}

// SetLogLevel changes the level of the application logger and of every
// logger derived from it, e.g. after a config reload. It is safe to call
// from the config watcher goroutine.
func (a *App) SetLogLevel(level string) {
	a.logLevel.Set(logging.ParseLevel(level))
}

// Close releases all resources.
func (a *App) Close() error {
	var errs []error
	if a.db != nil {
		if err := a.db.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close database: %w", err))
		}
	}
	if a.logCleanup != nil {
		a.logCleanup()
	}
	return errors.Join(errs...)
}
