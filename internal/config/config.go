// Package config loads application settings from the environment and an
// optional .env file.
package config

import (
	"fmt"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Config holds the configuration for the application.
type Config struct {
	DataDir      string        `mapstructure:"data_dir"`
	DatabaseFile string        `mapstructure:"database_file"`
	LogLevel     string        `mapstructure:"log_level"`
	LogFormat    string        `mapstructure:"log_format"`
	RecipeAPI    RecipeAPI     `mapstructure:"recipe_api"`
	CacheTTL     time.Duration `mapstructure:"cache_ttl"`
}

// RecipeAPI configures the remote recipe source. With UseMock set (or no
// API key present) the bundled dataset is served instead.
type RecipeAPI struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	UseMock bool          `mapstructure:"use_mock"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// Load reads configuration from the environment, with PLANNER_ prefixed
// variables and a .env file both honored.
func Load() (*Config, error) {
	// A missing .env file is fine; explicit environment still applies.
	_ = godotenv.Load()

	v := viper.New()
	v.SetDefault("data_dir", "data")
	v.SetDefault("database_file", "planner.db")
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "console")
	v.SetDefault("recipe_api.base_url", "https://api.spoonacular.com")
	v.SetDefault("recipe_api.use_mock", false)
	v.SetDefault("recipe_api.timeout", 15*time.Second)
	v.SetDefault("cache_ttl", time.Hour)

	v.SetEnvPrefix("PLANNER")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicit bindings for the keys AutomaticEnv cannot discover through
	// Unmarshal.
	for _, key := range []string{
		"data_dir", "database_file", "log_level", "log_format",
		"recipe_api.base_url", "recipe_api.api_key", "recipe_api.use_mock", "recipe_api.timeout",
		"cache_ttl",
	} {
		if err := v.BindEnv(key); err != nil {
			return nil, fmt.Errorf("failed to bind %s: %w", key, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Without an API key the remote source cannot be used; fall back to
	// the bundled dataset rather than failing at startup.
	if cfg.RecipeAPI.APIKey == "" {
		cfg.RecipeAPI.UseMock = true
	}
	return &cfg, nil
}

// DatabasePath joins the data directory and database file name.
func (c *Config) DatabasePath() string {
	return filepath.Join(c.DataDir, c.DatabaseFile)
}
