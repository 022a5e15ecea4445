package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadEnvDefaults(t *testing.T) {
	t.Setenv("LEDGER_CONFIG", "")
	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.Equal(t, Default().SQLite, cfg.SQLite)
	assert.False(t, cfg.IsDevelopment())
}

func TestLoadEnvFileThenEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "ledger.yaml")
	require.NoError(t, os.WriteFile(path, []byte(`
app:
  env: development
sqlite:
  path: /data/from-file.db
  busy_timeout_ms: 250
import:
  default_type: sale
`), 0o644))

	t.Setenv("LEDGER_CONFIG", path)
	t.Setenv("SQLITE_PATH", "/data/from-env.db")
	t.Setenv("LOGGER_DISABLE_CALLER", "true")
	t.Setenv("SQLITE_MAX_OPEN_CONNS", "not-a-number")

	cfg, err := LoadEnv()
	require.NoError(t, err)
	assert.True(t, cfg.IsDevelopment())
	assert.Equal(t, "/data/from-env.db", cfg.SQLite.Path)
	assert.Equal(t, 250, cfg.SQLite.BusyTimeoutMS)
	assert.Equal(t, 1, cfg.SQLite.MaxOpenConns, "bad values keep the fallback")
	assert.True(t, cfg.Logger.DisableCaller)
	assert.Equal(t, "sale", cfg.Import.DefaultType)
	assert.Equal(t, "final", cfg.Import.DefaultState)
}

func TestLoadEnvBadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "broken.yaml")
	require.NoError(t, os.WriteFile(path, []byte("sqlite: [oops"), 0o644))
	t.Setenv("LEDGER_CONFIG", path)

	_, err := LoadEnv()
	assert.Error(t, err)

	t.Setenv("LEDGER_CONFIG", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err = LoadEnv()
	assert.Error(t, err)
}
