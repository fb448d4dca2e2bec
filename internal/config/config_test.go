package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Reads the file and fills in defaults", func(t *testing.T) {
		// Given: a config with only some keys set
		path := writeConfig(t, `
log-level: "debug"
http-port: "8080"
redis:
  host: "redis"
  session-ttl: "30m"
engine:
  scoring: "plain"
  full-search: true
`)

		// When: loading it
		conf, err := Load(path)

		// Then: file values win and missing keys fall back to defaults
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "7777", conf.SocketPort)
		assert.Equal(t, "redis:6379", conf.Redis.GetRedisAddr())
		assert.Equal(t, 30*time.Minute, conf.Redis.SessionTTL)
		assert.Equal(t, "plain", conf.Engine.Scoring)
		assert.True(t, conf.Engine.FullSearch)
	})

	t.Run("Environment overrides the file", func(t *testing.T) {
		// Given: a port in the file and another in the environment
		path := writeConfig(t, `http-port: "8080"`)
		t.Setenv("HTTP_PORT", "8181")
		t.Setenv("ENGINE_SCORING", "plain")

		// When: loading it
		conf, err := Load(path)

		// Then: the environment wins
		require.NoError(t, err)
		assert.Equal(t, "8181", conf.HTTPPort)
		assert.Equal(t, "plain", conf.Engine.Scoring)
		assert.Equal(t, 24*time.Hour, conf.Redis.SessionTTL)
		assert.False(t, conf.Engine.FullSearch)
	})

	t.Run("Missing file is an error", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "absent.yml"))

		require.Error(t, err)
	})

	t.Run("MustLoad panics on a missing file", func(t *testing.T) {
		assert.Panics(t, func() {
			MustLoad(filepath.Join(t.TempDir(), "absent.yml"))
		})
	})
}
