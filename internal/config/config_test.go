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
	t.Run("defaults", func(t *testing.T) {
		t.Setenv("TMDB_TOKEN", "token-from-env")
		cfg, err := Load(writeConfig(t, "debug: true\n"))
		require.NoError(t, err)
		assert.True(t, cfg.Debug)
		assert.Equal(t, DriverSQLite, cfg.DB.Driver)
		assert.Equal(t, "top-movies-collection.db", cfg.DB.Dsn)
		assert.Equal(t, "token-from-env", cfg.TMDB.Token)
		assert.Equal(t, "https://api.themoviedb.org/3", cfg.TMDB.BaseURL)
		assert.Equal(t, "w500", cfg.TMDB.ImageSize)
		assert.False(t, cfg.TMDB.IncludeAdult, "adult results only when asked for")
		assert.Equal(t, 10*time.Second, cfg.TMDB.Timeout)
		assert.Equal(t, 24*time.Hour, cfg.Cache.TTL)
		assert.Empty(t, cfg.Cache.RedisAddr)
	})
	t.Run("yaml values", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, `
server:
  port: "9000"
db:
  driver: postgres
  dsn: postgres://localhost/movies
tmdb:
  token: yaml-token
  include_adult: false
  timeout: 3s
`))
		require.NoError(t, err)
		assert.Equal(t, "9000", cfg.Server.Port)
		assert.Equal(t, DriverPostgres, cfg.DB.Driver)
		assert.Equal(t, "yaml-token", cfg.TMDB.Token)
		assert.False(t, cfg.TMDB.IncludeAdult)
		assert.Equal(t, 3*time.Second, cfg.TMDB.Timeout)
	})
	t.Run("include adult", func(t *testing.T) {
		cfg, err := Load(writeConfig(t, "tmdb:\n  token: x\n  include_adult: true\n"))
		require.NoError(t, err)
		assert.True(t, cfg.TMDB.IncludeAdult)

		t.Setenv("TMDB_INCLUDE_ADULT", "false")
		cfg, err = Load(writeConfig(t, "tmdb:\n  token: x\n  include_adult: true\n"))
		require.NoError(t, err)
		assert.False(t, cfg.TMDB.IncludeAdult, "env overrides yaml")
	})
	t.Run("unknown driver", func(t *testing.T) {
		_, err := Load(writeConfig(t, "db:\n  driver: mongo\ntmdb:\n  token: x\n"))
		assert.Error(t, err)
	})
	t.Run("missing file", func(t *testing.T) {
		_, err := Load(filepath.Join(t.TempDir(), "nope.yml"))
		assert.Error(t, err)
		assert.Panics(t, func() { MustLoad(filepath.Join(t.TempDir(), "nope.yml")) })
	})
}
