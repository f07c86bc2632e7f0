package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

const (
	configName = "config"
	configType = "yaml"
	envPrefix  = "REEL"
)

// apiKeyEnvAliases are read, in order, when the config file has no API key
var apiKeyEnvAliases = []string{"REEL_TMDB_API_KEY", "TMDB_API_KEY", "REACT_APP_API_KEY"}

// Config holds all application configuration
type Config struct {
	TMDB    TMDBConfig    `mapstructure:"tmdb"`
	Viewer  ViewerConfig  `mapstructure:"viewer"`
	UI      UIConfig      `mapstructure:"ui"`
	Logging LoggingConfig `mapstructure:"logging"`
}

// TMDBConfig holds catalog API configuration
type TMDBConfig struct {
	APIKey            string        `mapstructure:"api_key"` // Opaque credential, passed through untouched
	BaseURL           string        `mapstructure:"base_url" validate:"required,url"`
	ImageBaseURL      string        `mapstructure:"image_base_url" validate:"required,url"`
	Timeout           time.Duration `mapstructure:"timeout" validate:"gt=0"`
	RequestsPerSecond float64       `mapstructure:"requests_per_second" validate:"gte=0"` // 0 disables pacing
	Burst             int           `mapstructure:"burst" validate:"gte=1"`
}

// ViewerConfig holds the external image viewer used to open posters
type ViewerConfig struct {
	Command string   `mapstructure:"command"` // empty = system default
	Args    []string `mapstructure:"args"`
}

// UIConfig holds UI configuration
type UIConfig struct {
	DefaultSort   string `mapstructure:"default_sort" validate:"omitempty,oneof=popularity.desc release_date.asc release_date.desc vote_average.asc vote_average.desc"`
	ShowInspector bool   `mapstructure:"show_inspector"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file" validate:"required"`
	Level string `mapstructure:"level" validate:"oneof=DEBUG INFO WARN WARNING ERROR debug info warn warning error"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:           "https://api.themoviedb.org/3",
			ImageBaseURL:      "https://image.tmdb.org/t/p/w500",
			Timeout:           15 * time.Second,
			RequestsPerSecond: 20,
			Burst:             5,
		},
		Viewer: ViewerConfig{
			Args: []string{},
		},
		UI: UIConfig{
			DefaultSort:   "popularity.desc",
			ShowInspector: true,
		},
		Logging: LoggingConfig{
			File:  defaultLogPath(),
			Level: "INFO",
		},
	}
}

// defaultLogPath returns the default log file path for the current OS
func defaultLogPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel", "reel.log")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".local", "share", "reel", "reel.log")
	}
}

// defaultConfigPath returns the default config directory for the current OS
func defaultConfigPath() string {
	switch runtime.GOOS {
	case "windows":
		return filepath.Join(os.Getenv("APPDATA"), "reel")
	default:
		home, _ := os.UserHomeDir()
		return filepath.Join(home, ".config", "reel")
	}
}

// LoadConfig loads configuration from the default locations, a .env file,
// and the environment
func LoadConfig() (*Config, error) {
	// A missing .env is fine; existing environment variables win
	_ = godotenv.Load()

	return Load(defaultConfigPath(), ".")
}

// Load reads config.yaml from the first of dirs that has one, applies
// REEL_* environment overrides, and validates the result
func Load(dirs ...string) (*Config, error) {
	cfg := DefaultConfig()
	v := newViper(cfg)

	for _, dir := range dirs {
		v.AddConfigPath(dir)
	}

	// Read config file if it exists
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("error parsing config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// newViper builds a viper instance seeded with every default, so that
// environment overrides apply to keys absent from the file
func newViper(cfg *Config) *viper.Viper {
	v := viper.New()
	v.SetConfigName(configName)
	v.SetConfigType(configType)

	v.SetEnvPrefix(envPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	_ = v.BindEnv(append([]string{"tmdb.api_key"}, apiKeyEnvAliases...)...)

	setValues(v.SetDefault, cfg)
	return v
}

// setValues writes every config field through set, using snake_case keys
func setValues(set func(key string, value any), cfg *Config) {
	set("tmdb.api_key", cfg.TMDB.APIKey)
	set("tmdb.base_url", cfg.TMDB.BaseURL)
	set("tmdb.image_base_url", cfg.TMDB.ImageBaseURL)
	set("tmdb.timeout", cfg.TMDB.Timeout.String())
	set("tmdb.requests_per_second", cfg.TMDB.RequestsPerSecond)
	set("tmdb.burst", cfg.TMDB.Burst)

	set("viewer.command", cfg.Viewer.Command)
	set("viewer.args", cfg.Viewer.Args)

	set("ui.default_sort", cfg.UI.DefaultSort)
	set("ui.show_inspector", cfg.UI.ShowInspector)

	set("logging.file", cfg.Logging.File)
	set("logging.level", cfg.Logging.Level)
}

// Validate checks every field except the API key, which is opaque
func (c *Config) Validate() error {
	if err := validator.New().Struct(c); err != nil {
		return fmt.Errorf("invalid config: %w", err)
	}
	return nil
}

// SaveConfig saves the configuration to the default config directory
func SaveConfig(cfg *Config) error {
	return Save(cfg, defaultConfigPath())
}

// Save writes cfg to dir/config.yaml
func Save(cfg *Config, dir string) error {
	// Ensure config directory exists
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	v := viper.New()
	v.SetConfigType(configType)
	setValues(v.Set, cfg)

	configFile := filepath.Join(dir, configName+"."+configType)
	if err := v.WriteConfigAs(configFile); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	// The file holds a credential
	if err := os.Chmod(configFile, 0600); err != nil {
		return fmt.Errorf("failed to restrict config file: %w", err)
	}

	return nil
}

// IsConfigured returns true if an API key is set
func (c *Config) IsConfigured() bool {
	return c.TMDB.APIKey != ""
}

// ConfigPath returns the default config directory
func ConfigPath() string {
	return defaultConfigPath()
}
