package logger

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestNew tests logger construction and the log line format
func TestNew(t *testing.T) {
	t.Run("writes bracketed lines to file", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "logs", "update.log")
		log, err := New(&Config{Level: "info", File: path, MaxSize: 1, MaxBackups: 1})
		require.NoError(t, err)

		log.Info("Starting VolaryDDNS update process")
		_ = log.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		line := string(data)
		assert.Regexp(t, `^\[\d{4}-\d{2}-\d{2} \d{2}:\d{2}:\d{2}\] \[INFO\] Starting VolaryDDNS update process`, line)
	})

	t.Run("level filters records", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "update.log")
		log, err := New(&Config{Level: "error", File: path, MaxSize: 1, MaxBackups: 1})
		require.NoError(t, err)

		log.Info("hidden")
		log.Error("visible")
		_ = log.Sync()

		data, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.NotContains(t, string(data), "hidden")
		assert.Contains(t, string(data), "visible")
	})

	t.Run("nil config uses defaults", func(t *testing.T) {
		log, err := New(nil)
		require.NoError(t, err)
		assert.NotNil(t, log)
	})

	t.Run("unwritable destination rejected", func(t *testing.T) {
		// The file path points at an existing directory, so the
		// append probe cannot open it
		_, err := New(&Config{Level: "info", File: t.TempDir(), MaxSize: 1, MaxBackups: 1})
		assert.Error(t, err)
	})

	t.Run("destination parent not a directory", func(t *testing.T) {
		parent := filepath.Join(t.TempDir(), "occupied")
		require.NoError(t, os.WriteFile(parent, []byte("x"), 0644))

		_, err := New(&Config{Level: "info", File: filepath.Join(parent, "update.log"), MaxSize: 1, MaxBackups: 1})
		assert.Error(t, err)
	})

	t.Run("invalid level rejected", func(t *testing.T) {
		_, err := New(&Config{Level: "loud", MaxSize: 1})
		assert.Error(t, err)
	})

	t.Run("invalid max size rejected", func(t *testing.T) {
		_, err := New(&Config{Level: "info", MaxSize: 0})
		assert.Error(t, err)
	})
}
