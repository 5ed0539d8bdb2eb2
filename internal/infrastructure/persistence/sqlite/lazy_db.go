package sqlite

import (
	"context"
	"database/sql"
	"sync"

	"github.com/bnema/sitestyle/internal/application/port"
	"github.com/bnema/sitestyle/internal/logging"
)

// LazyDB opens the database on first use. Commands that never read settings
// (fonts, config, logs) leave no database file behind. A failed open is
// retried on the next call.
type LazyDB struct {
	path string

	mu sync.Mutex
	db *sql.DB
}

var _ port.DatabaseProvider = (*LazyDB)(nil)

func NewLazyDB(path string) *LazyDB {
	return &LazyDB{path: path}
}

func (l *LazyDB) DB(ctx context.Context) (*sql.DB, error) {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db != nil {
		return l.db, nil
	}
	db, err := Open(ctx, l.path)
	if err != nil {
		logging.FromContext(ctx).Error().Err(err).Str("path", l.path).Msg("database unavailable")
		return nil, err
	}
	l.db = db
	return db, nil
}

func (l *LazyDB) Opened() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.db != nil
}

func (l *LazyDB) Close() error {
	l.mu.Lock()
	defer l.mu.Unlock()

	if l.db == nil {
		return nil
	}
	err := l.db.Close()
	l.db = nil
	return err
}
