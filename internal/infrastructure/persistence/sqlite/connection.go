package sqlite

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"

	_ "github.com/ncruces/go-sqlite3/driver"
	_ "github.com/ncruces/go-sqlite3/embed"

	"github.com/bnema/sitestyle/internal/logging"
)

const dbDirPerm = 0o750

// The popup and the run process share the file, so writers wait on the
// lock instead of failing with SQLITE_BUSY.
var connPragmas = []string{
	"busy_timeout(5000)",
	"journal_mode(wal)",
	"synchronous(normal)",
	"foreign_keys(on)",
}

// ErrEmptyPath is returned when no database path is configured.
var ErrEmptyPath = errors.New("database path is empty")

// dsn builds a file: URI carrying the connection pragmas, so every pooled
// connection is configured the same way.
func dsn(path string) string {
	q := url.Values{"_pragma": connPragmas, "_txlock": {"immediate"}}
	u := url.URL{Scheme: "file", OmitHost: true, Path: path, RawQuery: q.Encode()}
	return u.String()
}

// Open opens the settings database at path, creating its directory, and
// migrates it to the latest schema.
func Open(ctx context.Context, path string) (*sql.DB, error) {
	if path == "" {
		return nil, ErrEmptyPath
	}
	if err := os.MkdirAll(filepath.Dir(path), dbDirPerm); err != nil {
		return nil, fmt.Errorf("create database dir: %w", err)
	}

	db, err := sql.Open("sqlite3", dsn(path))
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}
	// One connection: sqlite has a single writer and the settings table is tiny.
	db.SetMaxOpenConns(1)
	db.SetConnMaxLifetime(0)

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("connect database %s: %w", path, err)
	}
	version, err := Migrate(ctx, db)
	if err != nil {
		_ = db.Close()
		return nil, err
	}

	logging.FromContext(ctx).Debug().Str("path", path).Int64("schema", version).Msg("database opened")
	return db, nil
}
