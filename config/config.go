// Package config provides configuration management using Viper.
// It loads configuration from environment variables, .env files, and config files.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	BackendSQLite = "sqlite"
	BackendBolt   = "bolt"
	BackendMemory = "memory"
)

const (
	defaultStorageBackend       = BackendSQLite
	defaultMpvPath              = "mpv"
	defaultSocketPath           = "/tmp/vidnotes-mpv.sock"
	defaultPlayerConnectTimeout = 5 * time.Second
	defaultPlayerLoadTimeout    = time.Duration(0)
	defaultPlayerControls       = true
	defaultLogLevel             = "info"
	defaultLogPretty            = false
	defaultExportDir            = "."
	envPrefix                   = "VIDNOTES"
	appDirName                  = "vidnotes"
)

// Config holds all application configuration
type Config struct {
	Storage StorageConfig
	Player  PlayerConfig
	Logging LoggingConfig
	Export  ExportConfig
}

// StorageConfig selects the note persistence backend.
type StorageConfig struct {
	Backend string
	// Path is the database file. Empty means the default location for the backend.
	Path string
}

// PlayerConfig configures the mpv player platform.
type PlayerConfig struct {
	MpvPath        string
	SocketPath     string
	ConnectTimeout time.Duration
	// LoadTimeout bounds how long open waits for the player; zero waits indefinitely.
	LoadTimeout time.Duration
	Controls    bool
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string
	Pretty bool
	File   string
}

// ExportConfig holds note export configuration
type ExportConfig struct {
	Dir string
}

// Load reads configuration from .env file, config files, environment variables, and defaults.
// If configFile is non-empty it is read instead of searching the default locations.
func Load(configFile string) (*Config, error) {
	_ = godotenv.Load() // nolint:errcheck // .env file is optional

	v := viper.New()

	setDefaults(v)

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", appDirName))
		}
		v.AddConfigPath("/etc/" + appDirName)
	}

	v.SetEnvPrefix(envPrefix)
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if configFile != "" || !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}

	if cfg.Storage.Path == "" && cfg.Storage.Backend != BackendMemory {
		path, err := DefaultStoragePath(cfg.Storage.Backend)
		if err != nil {
			return nil, fmt.Errorf("resolve storage path: %w", err)
		}
		cfg.Storage.Path = path
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults configures default values for all configuration options
func setDefaults(v *viper.Viper) {
	v.SetDefault("storage.backend", defaultStorageBackend)
	v.SetDefault("storage.path", "")

	v.SetDefault("player.mpvpath", defaultMpvPath)
	v.SetDefault("player.socketpath", defaultSocketPath)
	v.SetDefault("player.connecttimeout", defaultPlayerConnectTimeout)
	v.SetDefault("player.loadtimeout", defaultPlayerLoadTimeout)
	v.SetDefault("player.controls", defaultPlayerControls)

	v.SetDefault("logging.level", defaultLogLevel)
	v.SetDefault("logging.pretty", defaultLogPretty)
	v.SetDefault("logging.file", "")

	v.SetDefault("export.dir", defaultExportDir)
}

// DataDir returns ~/.local/share/vidnotes.
func DataDir() (string, error) {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(homeDir, ".local", "share", appDirName), nil
}

// DefaultStoragePath returns the database file used when storage.path is not set.
func DefaultStoragePath(backend string) (string, error) {
	dir, err := DataDir()
	if err != nil {
		return "", err
	}
	if backend == BackendBolt {
		return filepath.Join(dir, "notes.bolt"), nil
	}
	return filepath.Join(dir, "data.db"), nil
}

// Validate checks that configuration values are valid
func (c *Config) Validate() error {
	validBackends := []string{BackendSQLite, BackendBolt, BackendMemory}
	if !contains(validBackends, c.Storage.Backend) {
		return fmt.Errorf("invalid storage backend: %s (must be one of: %s)", c.Storage.Backend, strings.Join(validBackends, ", "))
	}

	if c.Player.MpvPath == "" {
		return errors.New("player mpv path must not be empty")
	}
	if c.Player.SocketPath == "" {
		return errors.New("player socket path must not be empty")
	}
	if c.Player.ConnectTimeout <= 0 {
		return fmt.Errorf("invalid player connect timeout: %v (must be > 0)", c.Player.ConnectTimeout)
	}
	if c.Player.LoadTimeout < 0 {
		return fmt.Errorf("invalid player load timeout: %v (must be >= 0)", c.Player.LoadTimeout)
	}

	validLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLevels, c.Logging.Level) {
		return fmt.Errorf("invalid log level: %s (must be one of: %s)", c.Logging.Level, strings.Join(validLevels, ", "))
	}

	return nil
}

// contains checks if a string slice contains a specific value
func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
