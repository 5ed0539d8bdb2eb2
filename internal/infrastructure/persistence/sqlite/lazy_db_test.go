package sqlite_test

import (
	"database/sql"
	"os"
	"path/filepath"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sitestyle/internal/domain/entity"
	"github.com/bnema/sitestyle/internal/infrastructure/persistence/sqlite"
)

func TestLazyDB_NoFileUntilFirstUse(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "nested", "sitestyle.db")
	lazy := sqlite.NewLazyDB(dbPath)

	assert.False(t, lazy.Opened())
	_, err := os.Stat(dbPath)
	assert.ErrorIs(t, err, os.ErrNotExist)

	db, err := lazy.DB(testCtx())
	require.NoError(t, err)
	require.NotNil(t, db)
	assert.True(t, lazy.Opened())
	assert.FileExists(t, dbPath)

	require.NoError(t, lazy.Close())
	assert.False(t, lazy.Opened())
}

func TestLazyDB_ConcurrentCallersShareConnection(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "sitestyle.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	const callers = 10
	var wg sync.WaitGroup
	dbs := make([]*sql.DB, callers)
	errs := make([]error, callers)
	for i := range callers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			dbs[i], errs[i] = lazy.DB(ctx)
		}()
	}
	wg.Wait()

	for i := range callers {
		require.NoError(t, errs[i])
		assert.Same(t, dbs[0], dbs[i])
	}
}

func TestLazyDB_CloseBeforeOpen(t *testing.T) {
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "sitestyle.db"))
	assert.NoError(t, lazy.Close())
}

func TestLazyDB_EmptyPath(t *testing.T) {
	lazy := sqlite.NewLazyDB("")
	_, err := lazy.DB(testCtx())
	require.ErrorIs(t, err, sqlite.ErrEmptyPath)
	assert.False(t, lazy.Opened())
}

func TestLazyDisplaySettingsRepository_OpensOnFirstUse(t *testing.T) {
	ctx := testCtx()
	lazy := sqlite.NewLazyDB(filepath.Join(t.TempDir(), "sitestyle.db"))
	t.Cleanup(func() { _ = lazy.Close() })

	repo := sqlite.NewLazyDisplaySettingsRepository(lazy)
	assert.False(t, lazy.Opened())

	cfg := entity.NewDomainConfig("a.com")
	cfg.SetFont("Arial")
	require.NoError(t, repo.Save(ctx, cfg))
	assert.True(t, lazy.Opened())

	got, err := repo.Get(ctx, "a.com")
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, "Arial", *got.Font)
}
