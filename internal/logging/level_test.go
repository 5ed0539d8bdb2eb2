package logging

import (
	"bytes"
	"context"
	"io"
	"sync"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
)

func TestLevelVarAppliesToDerivedLoggers(t *testing.T) {
	var buf bytes.Buffer
	level := NewLevelVar(zerolog.DebugLevel)
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf
	cfg.LevelVar = level

	// A context logger derived before the change, as a long-running command holds.
	ctx := WithTabID(WithComponent(WithContext(context.Background(), New(cfg)), "run"), "7")
	log := FromContext(ctx)

	log.Debug().Msg("first debug")
	assert.Contains(t, buf.String(), "first debug")
	assert.Contains(t, buf.String(), `"component":"run"`)

	level.Set(zerolog.InfoLevel)
	log.Debug().Msg("second debug")
	log.Info().Msg("still info")
	assert.NotContains(t, buf.String(), "second debug")
	assert.Contains(t, buf.String(), "still info")

	level.Set(zerolog.DebugLevel)
	log.Debug().Msg("third debug")
	assert.Contains(t, buf.String(), "third debug")
}

func TestLevelVarIgnoresConfiguredLevel(t *testing.T) {
	var buf bytes.Buffer
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf
	cfg.Level = zerolog.ErrorLevel
	cfg.LevelVar = NewLevelVar(zerolog.DebugLevel)

	logger := New(cfg)
	logger.Debug().Msg("visible")
	assert.Contains(t, buf.String(), "visible")
}

func TestLevelVarDisabledSilencesEverything(t *testing.T) {
	var buf bytes.Buffer
	level := NewLevelVar(zerolog.Disabled)
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = &buf
	cfg.LevelVar = level

	logger := New(cfg)
	logger.Error().Msg("dropped")
	logger.Log().Msg("dropped too")
	assert.Empty(t, buf.String())
}

func TestLevelVarSetWhileLogging(t *testing.T) {
	level := NewLevelVar(zerolog.InfoLevel)
	cfg := DefaultConfig()
	cfg.Format = "json"
	cfg.Output = io.Discard
	cfg.LevelVar = level
	logger := New(cfg)

	var wg sync.WaitGroup
	for range 4 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for range 200 {
				logger.Debug().Msg("tick")
			}
		}()
	}
	for _, l := range []zerolog.Level{zerolog.DebugLevel, zerolog.WarnLevel, zerolog.InfoLevel} {
		level.Set(l)
	}
	wg.Wait()
	assert.Equal(t, zerolog.InfoLevel, level.Level())
}
