package cmd

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bnema/sitestyle/internal/cli/styles"
	"github.com/bnema/sitestyle/internal/domain/build"
	"github.com/bnema/sitestyle/internal/domain/entity"
)

func TestLastLines(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitestyle.log")
	var b strings.Builder
	for i := range 10 {
		fmt.Fprintf(&b, "line %d\n", i)
	}
	require.NoError(t, os.WriteFile(path, []byte(b.String()), 0o644))

	lines, err := lastLines(path, 3)
	require.NoError(t, err)
	assert.Equal(t, []string{"line 7", "line 8", "line 9"}, lines)

	all, err := lastLines(path, 0)
	require.NoError(t, err)
	assert.Len(t, all, 10)

	_, err = lastLines(filepath.Join(t.TempDir(), "missing.log"), 3)
	assert.ErrorIs(t, err, os.ErrNotExist)
}

func TestColorizeLogLine_JSON(t *testing.T) {
	theme := styles.NewTheme()
	line := `{"level":"info","time":"2026-03-01T10:04:05Z","component":"listener","message":"settings applied"}`

	out := colorizeLogLine(line, theme)
	assert.Contains(t, out, "10:04:05")
	assert.Contains(t, out, "INF")
	assert.Contains(t, out, "[listener]")
	assert.Contains(t, out, "settings applied")
}

func TestColorizeLogLine_ConsoleFallback(t *testing.T) {
	theme := styles.NewTheme()
	line := "10:04:05 WRN signal failed action=resetFontOnTab"
	assert.Contains(t, colorizeLogLine(line, theme), "signal failed")
}

// syncBuffer guards a buffer written by tailLog and read by the test.
type syncBuffer struct {
	mu  sync.Mutex
	buf bytes.Buffer
}

func (s *syncBuffer) Write(p []byte) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.Write(p)
}

func (s *syncBuffer) String() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.buf.String()
}

func TestTailLog_FollowsAppendsAndRotation(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sitestyle.log")
	require.NoError(t, os.WriteFile(path, []byte("old line\n"), 0o644))

	ctx, cancel := context.WithCancel(context.Background())
	out := &syncBuffer{}
	done := make(chan error, 1)
	go func() { done <- tailLog(ctx, path, out, styles.NewTheme()) }()

	// Let the tail seek to the end before appending.
	time.Sleep(150 * time.Millisecond)
	f, err := os.OpenFile(path, os.O_APPEND|os.O_WRONLY, 0o644)
	require.NoError(t, err)
	_, err = f.WriteString("first new line\n")
	require.NoError(t, err)
	require.NoError(t, f.Close())

	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "first new line")
	}, 2*time.Second, 20*time.Millisecond)

	// Rotation replaces the file with a shorter one.
	require.NoError(t, os.WriteFile(path, []byte("after\n"), 0o644))
	require.Eventually(t, func() bool {
		return strings.Contains(out.String(), "after")
	}, 2*time.Second, 20*time.Millisecond)

	cancel()
	require.NoError(t, <-done)
	assert.NotContains(t, out.String(), "old line")
}

func TestRenderSettingsTable(t *testing.T) {
	theme := styles.NewTheme()
	assert.Contains(t, renderSettingsTable(theme, nil), "No settings stored")

	cfg := entity.NewDomainConfig("news.example")
	cfg.SetFont("Georgia")
	cfg.SetFontSizeDelta(2)

	view := renderSettingsTable(theme, []*entity.DomainConfig{cfg})
	assert.Contains(t, view, "news.example")
	assert.Contains(t, view, "Georgia")
	assert.Contains(t, view, "+2px")
}

func TestVersionString(t *testing.T) {
	assert.Equal(t, "sitestyle dev", versionString(build.Info{}))
	assert.Equal(t, "sitestyle 1.2.0", versionString(build.Info{Version: "1.2.0"}))

	about := renderAbout(styles.NewTheme(), build.Info{Version: "1.2.0", Commit: "abc123"})
	assert.Contains(t, about, "abc123")
	assert.Contains(t, about, build.RepoURL())
}
