package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfigDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, defaultStorageBackend, cfg.Storage.Backend)
	assert.Equal(t, "data.db", filepath.Base(cfg.Storage.Path))
	assert.Equal(t, defaultMpvPath, cfg.Player.MpvPath)
	assert.Equal(t, defaultSocketPath, cfg.Player.SocketPath)
	assert.Equal(t, defaultPlayerConnectTimeout, cfg.Player.ConnectTimeout)
	assert.Equal(t, time.Duration(0), cfg.Player.LoadTimeout)
	assert.True(t, cfg.Player.Controls)
	assert.Equal(t, defaultLogLevel, cfg.Logging.Level)
	assert.False(t, cfg.Logging.Pretty)
	assert.Equal(t, defaultExportDir, cfg.Export.Dir)
}

func TestConfigEnvOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("VIDNOTES_STORAGE_BACKEND", "bolt")
	t.Setenv("VIDNOTES_LOGGING_LEVEL", "debug")
	t.Setenv("VIDNOTES_PLAYER_LOADTIMEOUT", "30s")

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, BackendBolt, cfg.Storage.Backend)
	assert.Equal(t, "notes.bolt", filepath.Base(cfg.Storage.Path))
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, 30*time.Second, cfg.Player.LoadTimeout)
}

func TestConfigFile(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HOME", t.TempDir())

	path := filepath.Join(t.TempDir(), "vidnotes.yaml")
	content := "storage:\n  backend: memory\nexport:\n  dir: /tmp/exports\n"
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, BackendMemory, cfg.Storage.Backend)
	assert.Empty(t, cfg.Storage.Path)
	assert.Equal(t, "/tmp/exports", cfg.Export.Dir)
}

func TestConfigFile_Missing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	valid := Config{
		Storage: StorageConfig{Backend: BackendSQLite, Path: "x.db"},
		Player:  PlayerConfig{MpvPath: "mpv", SocketPath: "/tmp/s", ConnectTimeout: time.Second},
		Logging: LoggingConfig{Level: "info"},
	}
	require.NoError(t, valid.Validate())

	tests := []struct {
		name   string
		mutate func(c *Config)
	}{
		{"backend", func(c *Config) { c.Storage.Backend = "postgres" }},
		{"mpv path", func(c *Config) { c.Player.MpvPath = "" }},
		{"socket", func(c *Config) { c.Player.SocketPath = "" }},
		{"connect timeout", func(c *Config) { c.Player.ConnectTimeout = 0 }},
		{"load timeout", func(c *Config) { c.Player.LoadTimeout = -time.Second }},
		{"log level", func(c *Config) { c.Logging.Level = "verbose" }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := valid
			tt.mutate(&c)
			assert.Error(t, c.Validate())
		})
	}
}

// chdir changes the working directory for the duration of the test and
// restores it on cleanup (equivalent of testing.T.Chdir, added in Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(dir))
	t.Cleanup(func() { _ = os.Chdir(old) })
}
