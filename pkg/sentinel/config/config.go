package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"
)

// LoggingConfig configures application logging.
type LoggingConfig struct {
	Level      string `mapstructure:"level"`
	Path       string `mapstructure:"path"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// AppConfig is the ambient application configuration: CLI defaults
// resolved from a config file, SENTINEL_ environment variables, and
// finally overridden by explicit flags.
type AppConfig struct {
	WorkerOverride       int           `mapstructure:"worker_override"`
	ReportFormats        []string      `mapstructure:"report_formats"`
	ColorOutput          bool          `mapstructure:"color_output"`
	Advice               bool          `mapstructure:"advice"`
	ReportIndexRetention int           `mapstructure:"report_index_retention_days"`
	Logging              LoggingConfig `mapstructure:"logging"`
}

// Load reads the app config from $XDG_CONFIG_HOME/sentinel/config.yaml,
// falling back to built-in defaults when no file is present. Environment
// variables are prefixed SENTINEL_ (e.g. SENTINEL_WORKER_OVERRIDE).
func Load() (*AppConfig, error) {
	v := viper.New()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(filepath.Join(xdg.ConfigHome, "sentinel"))

	v.SetEnvPrefix("SENTINEL")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("worker_override", DefaultWorkerOverride)
	v.SetDefault("report_formats", []string{"cli", "html", "json", "csv"})
	v.SetDefault("color_output", true)
	v.SetDefault("advice", true)
	v.SetDefault("report_index_retention_days", DefaultReportIndexRetentionDays)
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.path", "")
	v.SetDefault("logging.max_size_mb", 10)
	v.SetDefault("logging.max_age_days", 30)
	v.SetDefault("logging.max_backups", 5)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read app config: %w", err)
		}
	}

	var cfg AppConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal app config: %w", err)
	}
	return &cfg, nil
}

// WriteDefault writes a default app config file if none exists.
func WriteDefault() error {
	dir := filepath.Join(xdg.ConfigHome, "sentinel")
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create config dir: %w", err)
	}

	path := filepath.Join(dir, "config.yaml")
	if _, err := os.Stat(path); err == nil {
		return nil
	} else if !os.IsNotExist(err) {
		return fmt.Errorf("stat config file: %w", err)
	}

	const body = `# Sentinel configuration

# 0 lets the tool size the hashing worker pool from detected CPU count.
worker_override: 0

# Formats generated after scan/update/status/verify/watch, unless
# overridden per invocation: cli, html, json, csv, all, none.
report_formats:
  - cli
  - html
  - json
  - csv

color_output: true
advice: true
report_index_retention_days: 30

logging:
  level: info
  path: ""
  max_size_mb: 10
  max_age_days: 30
  max_backups: 5
`
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		return fmt.Errorf("write default config: %w", err)
	}
	return nil
}
