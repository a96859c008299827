package config

import (
	"os"
	"path/filepath"
	"time"

	"github.com/spf13/viper"
)

// ThemeConfig holds TUI color and Markdown style overrides.
type ThemeConfig struct {
	Preset        string `mapstructure:"preset"`
	Primary       string `mapstructure:"primary"`
	Secondary     string `mapstructure:"secondary"`
	Accent        string `mapstructure:"accent"`
	Muted         string `mapstructure:"muted"`
	Danger        string `mapstructure:"danger"`
	Background    string `mapstructure:"background"`
	MarkdownStyle string `mapstructure:"markdown_style"`
}

// RemoteConfig holds the settings for the HTTP directory backend.
type RemoteConfig struct {
	BaseURL      string        `mapstructure:"base_url"`
	Timeout      time.Duration `mapstructure:"timeout"`
	TokenURL     string        `mapstructure:"token_url"`
	ClientID     string        `mapstructure:"client_id"`
	ClientSecret string        `mapstructure:"client_secret"`
}

// RecordTypeConfig selects the record type that qualifies picklist lookups.
// A non-empty ID skips the object-info lookup entirely.
type RecordTypeConfig struct {
	Object string `mapstructure:"object"`
	Name   string `mapstructure:"name"`
	ID     string `mapstructure:"id"`
}

// QueryConfig controls how filter queries are dispatched.
type QueryConfig struct {
	Ordering string        `mapstructure:"ordering"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// ServeConfig holds the HTTP API server settings.
type ServeConfig struct {
	Addr string `mapstructure:"addr"`
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level      string `mapstructure:"level"`
	File       string `mapstructure:"file"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
	MaxAgeDays int    `mapstructure:"max_age_days"`
	Compress   bool   `mapstructure:"compress"`
}

// Config holds the application configuration.
type Config struct {
	Backend         string           `mapstructure:"backend"`
	DataDir         string           `mapstructure:"data_dir"`
	Remote          RemoteConfig     `mapstructure:"remote"`
	RecordType      RecordTypeConfig `mapstructure:"record_type"`
	Query           QueryConfig      `mapstructure:"query"`
	Serve           ServeConfig      `mapstructure:"serve"`
	Log             LogConfig        `mapstructure:"log"`
	Theme           ThemeConfig      `mapstructure:"theme"`
	MaxWidth        int              `mapstructure:"max_width"`
	DetailCacheSize int              `mapstructure:"detail_cache_size"`
}

// DefaultDataDir returns the default data directory (~/.bizdirctl/).
func DefaultDataDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".", ".bizdirctl")
	}
	return filepath.Join(home, ".bizdirctl")
}

// Load reads configuration from file, environment variables, and defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Defaults
	v.SetDefault("backend", "markdown")
	v.SetDefault("data_dir", DefaultDataDir())
	v.SetDefault("remote.base_url", "http://localhost:8080")
	v.SetDefault("remote.timeout", "15s")
	v.SetDefault("remote.token_url", "")
	v.SetDefault("remote.client_id", "")
	v.SetDefault("remote.client_secret", "")
	v.SetDefault("record_type.object", "Account")
	v.SetDefault("record_type.name", "Business Registration")
	v.SetDefault("record_type.id", "")
	v.SetDefault("query.ordering", "sequenced")
	v.SetDefault("query.timeout", "30s")
	v.SetDefault("serve.addr", ":8080")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.file", "")
	v.SetDefault("log.max_size_mb", 20)
	v.SetDefault("log.max_backups", 3)
	v.SetDefault("log.max_age_days", 28)
	v.SetDefault("log.compress", true)
	v.SetDefault("theme.preset", "default-dark")
	v.SetDefault("theme.markdown_style", "")
	v.SetDefault("max_width", 120)
	v.SetDefault("detail_cache_size", 64)

	// Config file
	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		// XDG support
		if xdg := os.Getenv("XDG_CONFIG_HOME"); xdg != "" {
			v.AddConfigPath(filepath.Join(xdg, "bizdirctl"))
		}
		v.AddConfigPath(filepath.Join(DefaultDataDir()))
		v.SetConfigName("config")
		v.SetConfigType("toml")
	}

	// Environment variables: BIZDIRCTL_BACKEND, BIZDIRCTL_DATA_DIR, etc.
	v.SetEnvPrefix("BIZDIRCTL")
	v.AutomaticEnv()

	// Read config file (ignore not found)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			// Only return error if it's not a "file not found" error
			if configPath != "" {
				return nil, err
			}
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}
