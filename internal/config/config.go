package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// View names accepted by ui.default_view
const (
	ViewTrending = "trending"
	ViewPopular  = "popular"
	ViewSearch   = "search"
)

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds catalog API configuration
type TMDBConfig struct {
	APIKey       string        `mapstructure:"api_key"`
	BaseURL      string        `mapstructure:"base_url"`
	ImageBaseURL string        `mapstructure:"image_base_url"`
	PosterSize   string        `mapstructure:"poster_size"` // e.g. "w500"
	Timeout      time.Duration `mapstructure:"timeout"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	GridColumns int    `mapstructure:"grid_columns"` // 0 = fit to width
	DefaultView string `mapstructure:"default_view"` // "trending", "popular" or "search"
	Mouse       bool   `mapstructure:"mouse"`        // pointer hover tracking
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File       string `mapstructure:"file"` // path, or "stderr"
	Level      string `mapstructure:"level"`
	MaxSizeMB  int    `mapstructure:"max_size_mb"`
	MaxBackups int    `mapstructure:"max_backups"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      "https://api.themoviedb.org/3",
			ImageBaseURL: "https://image.tmdb.org/t/p",
			PosterSize:   "w500",
			Timeout:      30 * time.Second,
		},
		UI: UIConfig{
			GridColumns: 0,
			DefaultView: ViewTrending,
			Mouse:       true,
		},
		Logging: LoggingConfig{
			File:       defaultLogPath(),
			Level:      "INFO",
			MaxSizeMB:  10,
			MaxBackups: 3,
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flick", "flick.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "flick", "flick.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "flick")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "flick")
	}
}

// LoadConfig loads configuration from the default locations
func LoadConfig() (*Config, error) {
	return Load(viper.New(), defaultConfigPath(), ".")
}

// Load reads config.yaml from the given directories, then .env files, then
// the environment. A missing credential is not an error here; the catalog
// client reports it on first use.
func Load(v *viper.Viper, dirs ...string) (*Config, error) {
	cfg := DefaultConfig()

	// .env never overrides variables already set in the process
	for _, dir := range dirs {
		envFile := filepath.Join(dir, ".env")
		if err := godotenv.Load(envFile); err != nil && !errors.Is(err, os.ErrNotExist) {
			return nil, fmt.Errorf("error reading %s: %w", envFile, err)
		}
	}

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Environment variable overrides: FLICK_TMDB_API_KEY, FLICK_UI_GRID_COLUMNS, ...
	v.SetEnvPrefix("FLICK")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// The conventional variable name wins over nothing, but not over FLICK_
	if err := v.BindEnv("tmdb.api_key", "FLICK_TMDB_API_KEY", "TMDB_API_KEY"); err != nil {
		return nil, fmt.Errorf("error binding credential: %w", err)
	}

	setDefaults(v, cfg)

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	cfg.TMDB.APIKey = strings.TrimSpace(cfg.TMDB.APIKey)
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// setDefaults registers every key so AutomaticEnv can override it on Unmarshal
func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("tmdb.api_key", cfg.TMDB.APIKey)
	v.SetDefault("tmdb.base_url", cfg.TMDB.BaseURL)
	v.SetDefault("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	v.SetDefault("tmdb.poster_size", cfg.TMDB.PosterSize)
	v.SetDefault("tmdb.timeout", cfg.TMDB.Timeout)
	v.SetDefault("ui.grid_columns", cfg.UI.GridColumns)
	v.SetDefault("ui.default_view", cfg.UI.DefaultView)
	v.SetDefault("ui.mouse", cfg.UI.Mouse)
	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
	v.SetDefault("logging.max_size_mb", cfg.Logging.MaxSizeMB)
	v.SetDefault("logging.max_backups", cfg.Logging.MaxBackups)
}

// Validate checks values that would otherwise fail far from their source
func (c *Config) Validate() error {
	switch c.UI.DefaultView {
	case ViewTrending, ViewPopular, ViewSearch:
	default:
		return fmt.Errorf("invalid ui.default_view %q: want trending, popular or search", c.UI.DefaultView)
	}
	if c.UI.GridColumns < 0 {
		return fmt.Errorf("invalid ui.grid_columns %d", c.UI.GridColumns)
	}
	return nil
}

// HasCredential returns true if the catalog API key is set
func (c *Config) HasCredential() bool {
	return c.TMDB.APIKey != ""
}
