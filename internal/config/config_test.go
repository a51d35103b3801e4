package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	return path
}

func TestLoad(t *testing.T) {
	t.Run("Defaults are applied", func(t *testing.T) {
		// Given: a config file that only sets the log level
		path := writeConfig(t, "log-level: debug\n")

		// When: loading it
		conf, err := Load(path)

		// Then: every other field has its default
		require.NoError(t, err)
		assert.Equal(t, "debug", conf.LogLevel)
		assert.Equal(t, "9090", conf.HTTPPort)
		assert.Equal(t, "7777", conf.SocketPort)
		assert.Equal(t, "localhost:6379", conf.Redis.GetRedisAddr())
		assert.Zero(t, conf.Redis.DB)
		assert.Equal(t, 24*time.Hour, conf.MatchTTL)
		assert.Equal(t, []string{"http://localhost:5173", "http://127.0.0.1:5173"}, conf.AllowedOrigins)
	})

	t.Run("File values win", func(t *testing.T) {
		// Given: a config file overriding redis and ttl
		path := writeConfig(t, `
http-port: "8080"
redis:
  host: redis
  port: "6380"
  db: 2
match-ttl: 90m
allowed-origins:
  - https://play.example
`)

		// When: loading it
		conf, err := Load(path)

		// Then: the file values are used
		require.NoError(t, err)
		assert.Equal(t, "8080", conf.HTTPPort)
		assert.Equal(t, "redis:6380", conf.Redis.GetRedisAddr())
		assert.Equal(t, 2, conf.Redis.DB)
		assert.Equal(t, 90*time.Minute, conf.MatchTTL)
		assert.Equal(t, []string{"https://play.example"}, conf.AllowedOrigins)
	})

	t.Run("Missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))

		require.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yml")) })
	})
}
