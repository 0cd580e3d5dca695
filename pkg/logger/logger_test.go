package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "app.log")

	log, err := New(path, "info")
	require.NoError(t, err)

	log.Info("booking created id=%s", "b-1")
	log.Debug("hidden %d", 1)
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "booking created id=b-1")
	assert.NotContains(t, string(data), "hidden 1")
}

func TestNew_InvalidLevel(t *testing.T) {
	_, err := New("", "loud")
	assert.Error(t, err)
}

func TestNewNop(t *testing.T) {
	log := NewNop()
	log.Warn("nothing %s", "here")
	assert.NoError(t, log.Close())
}

func TestNewStderr_WritesToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "wizard.log")

	log, err := NewStderr(path, "warn")
	require.NoError(t, err)

	log.Warn("poll timed out session=%s", "cs_1")
	log.Info("skipped")
	require.NoError(t, log.Close())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "poll timed out session=cs_1")
	assert.NotContains(t, string(data), "skipped")
}
