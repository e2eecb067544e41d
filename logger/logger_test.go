package logger

import (
	"testing"

	"github.com/gookit/slog"
	"github.com/stretchr/testify/assert"
)

func TestLevelsUpTo(t *testing.T) {
	warn := levelsUpTo("WARN")
	assert.Contains(t, warn, slog.ErrorLevel)
	assert.Contains(t, warn, slog.WarnLevel)
	assert.NotContains(t, warn, slog.InfoLevel)

	assert.Contains(t, levelsUpTo(""), slog.InfoLevel)
	assert.NotContains(t, levelsUpTo(""), slog.DebugLevel)
	assert.Contains(t, levelsUpTo(" debug "), slog.DebugLevel)
}

func TestInitFromLevel(t *testing.T) {
	prev := Log
	t.Cleanup(func() { Log = prev })

	InitFromLevel("debug")
	_, ok := Log.(*slog.Logger)
	assert.True(t, ok)
	assert.NotPanics(t, func() { InfoWithFields("hello", nil) })
}
