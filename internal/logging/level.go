package logging

import (
	"io"
	"sync/atomic"

	"github.com/rs/zerolog"
)

// LevelVar is a log level that can change while loggers built on it are in
// use. Every logger derived from such a root, including the ones stored in
// contexts, follows the change.
type LevelVar struct {
	level atomic.Int32
}

// NewLevelVar returns a LevelVar set to level.
func NewLevelVar(level zerolog.Level) *LevelVar {
	v := &LevelVar{}
	v.Set(level)
	return v
}

// Level returns the current level.
func (v *LevelVar) Level() zerolog.Level {
	return zerolog.Level(v.level.Load())
}

// Set changes the level. It is safe to call while other goroutines log.
func (v *LevelVar) Set(level zerolog.Level) {
	v.level.Store(int32(level))
}

// levelWriter drops events below the current level of a LevelVar.
type levelWriter struct {
	out   io.Writer
	level *LevelVar
}

var _ zerolog.LevelWriter = levelWriter{}

func (w levelWriter) Write(p []byte) (int, error) {
	return w.out.Write(p)
}

func (w levelWriter) WriteLevel(level zerolog.Level, p []byte) (int, error) {
	if level < w.level.Level() {
		return len(p), nil
	}
	return w.out.Write(p)
}
