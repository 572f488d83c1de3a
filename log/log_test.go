package log

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jarchive.log")
	logger, closer, err := New(Config{Level: "debug", File: path, Stderr: true})
	require.NoError(t, err)

	logger.Debug("round not present")
	_ = logger.Sync()
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"level":"DEBUG"`)
	assert.Contains(t, string(data), `"time":`)
	assert.Contains(t, string(data), "round not present")
}

func TestNew_ConsoleFormat(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jarchive.log")
	logger, closer, err := New(Config{Level: "info", Format: "console", File: path, Stderr: true})
	require.NoError(t, err)

	logger.Debug("hidden")
	logger.Warn("unparseable clues skipped")
	_ = logger.Sync()
	require.NoError(t, closer.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "WARN\t")
	assert.Contains(t, string(data), "unparseable clues skipped")
	assert.NotContains(t, string(data), "hidden")
	assert.NotContains(t, string(data), `"level"`)
}

func TestNew_BadConfig(t *testing.T) {
	_, _, err := New(Config{Level: "loud"})
	assert.Error(t, err)

	_, _, err = New(Config{Format: "xml"})
	assert.Error(t, err)
}

func TestRotation(t *testing.T) {
	w := Rotation{}.writer("a.log")
	assert.Equal(t, DefaultRotation.MaxSize, w.MaxSize)
	assert.Equal(t, DefaultRotation.MaxBackups, w.MaxBackups)
	assert.Zero(t, w.MaxAge)

	w = Rotation{MaxSize: 10, MaxBackups: 2, MaxAge: 7}.writer("a.log")
	assert.Equal(t, "a.log", w.Filename)
	assert.Equal(t, 10, w.MaxSize)
	assert.Equal(t, 2, w.MaxBackups)
	assert.Equal(t, 7, w.MaxAge)
	assert.True(t, w.Compress)
}
