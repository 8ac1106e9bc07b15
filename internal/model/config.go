package model

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// StorageConfig holds settings for the durable key-value medium.
type StorageConfig struct {
	// Path is the SQLite database file location.
	Path string `mapstructure:"path" yaml:"path"`
}

// ImportConfig holds settings for the import pipeline.
type ImportConfig struct {
	// DefaultURL is used by the import command when no URL is given.
	DefaultURL string `mapstructure:"default_url" yaml:"default_url"`

	// TimeoutSec bounds a single fetch operation.
	TimeoutSec int `mapstructure:"timeout_sec" yaml:"timeout_sec"`
}

// NotifyConfig holds settings for the notification service.
type NotifyConfig struct {
	// ToastSeconds is how long an ephemeral toast stays visible.
	ToastSeconds int `mapstructure:"toast_seconds" yaml:"toast_seconds"`
}

// AppConfig is the top-level application configuration.
type AppConfig struct {
	Storage StorageConfig `mapstructure:"storage" yaml:"storage"`
	Import  ImportConfig  `mapstructure:"import" yaml:"import"`
	Notify  NotifyConfig  `mapstructure:"notify" yaml:"notify"`
}

// DefaultConfigPath returns the default path for the configuration
// file, located at ~/.config/techtrack/config.yaml.
func DefaultConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "config.yaml")
	}
	return filepath.Join(home, ".config", "techtrack", "config.yaml")
}

// defaultStoragePath places the database next to the config file.
func defaultStoragePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", "techtrack.db")
	}
	return filepath.Join(home, ".config", "techtrack", "techtrack.db")
}

// defaultAppConfig returns a sensible default configuration.
func defaultAppConfig() *AppConfig {
	return &AppConfig{
		Storage: StorageConfig{
			Path: defaultStoragePath(),
		},
		Import: ImportConfig{
			TimeoutSec: 30,
		},
		Notify: NotifyConfig{
			ToastSeconds: 3,
		},
	}
}

// LoadConfig reads configuration from the given YAML file path using
// Viper. If the file does not exist, it returns a default configuration.
func LoadConfig(path string) (*AppConfig, error) {
	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	// Set defaults so missing keys resolve to sensible values.
	v.SetDefault("storage.path", defaultStoragePath())
	v.SetDefault("import.timeout_sec", 30)
	v.SetDefault("notify.toast_seconds", 3)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(*os.PathError); ok {
			return defaultAppConfig(), nil
		}
		if _, ok := err.(viper.ConfigFileNotFoundError); ok {
			return defaultAppConfig(), nil
		}
		return nil, fmt.Errorf("reading config %s: %w", path, err)
	}

	cfg := defaultAppConfig()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("parsing config %s: %w", path, err)
	}

	return cfg, nil
}

// SaveConfig writes the given configuration to a YAML file at path,
// creating parent directories if needed.
func SaveConfig(path string, cfg *AppConfig) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("creating config directory %s: %w", dir, err)
	}

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	v.Set("storage", cfg.Storage)
	v.Set("import", cfg.Import)
	v.Set("notify", cfg.Notify)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}

	return nil
}
