package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/spf13/viper"

	"github.com/mmcdole/walls/internal/domain"
)

const appName = "walls"

// Config holds all application configuration
type Config struct {
	Search    SearchConfig    `mapstructure:"search"`
	Catalog   CatalogConfig   `mapstructure:"catalog"`
	Display   DisplayConfig   `mapstructure:"display"`
	Wallpaper WallpaperConfig `mapstructure:"wallpaper"`
	History   HistoryConfig   `mapstructure:"history"`
	Logging   LoggingConfig   `mapstructure:"logging"`
}

// SearchConfig holds the query and exclusion policy
type SearchConfig struct {
	Query          string   `mapstructure:"query"`           // Free-text query, empty for none
	ExcludeTags    []string `mapstructure:"exclude_tags"`    // Case-insensitive substrings
	ResolutionMode string   `mapstructure:"resolution_mode"` // "exact" or "atleast"
}

// CatalogConfig holds wallhaven API settings
type CatalogConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// DisplayConfig overrides display detection when both values are set
type DisplayConfig struct {
	Width  int `mapstructure:"width"`
	Height int `mapstructure:"height"`
}

// WallpaperConfig holds download and install settings
type WallpaperConfig struct {
	Dir     string   `mapstructure:"dir"`     // Where downloaded images are written
	Persist bool     `mapstructure:"persist"` // Keep the wallpaper after logout
	Command string   `mapstructure:"command"` // Setter command, empty to auto-detect
	Args    []string `mapstructure:"args"`    // Args for Command; "{path}" is replaced by the image path
}

// HistoryConfig holds the applied-wallpaper history settings
type HistoryConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	File    string `mapstructure:"file"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	File  string `mapstructure:"file"`
	Level string `mapstructure:"level"`
}

// DefaultConfig returns the default configuration
func DefaultConfig() *Config {
	return &Config{
		Search: SearchConfig{
			ExcludeTags:    []string{},
			ResolutionMode: string(domain.ResolutionExact),
		},
		Catalog: CatalogConfig{
			BaseURL: "https://wallhaven.cc/api/v1",
			Timeout: 30 * time.Second,
		},
		Wallpaper: WallpaperConfig{
			Dir:     filepath.Join(os.TempDir(), "wallhaven"),
			Persist: true,
			Args:    []string{},
		},
		History: HistoryConfig{
			Enabled: true,
			File:    filepath.Join(xdg.DataHome, appName, "history.db"),
		},
		Logging: LoggingConfig{
			File:  filepath.Join(xdg.StateHome, appName, "walls.log"),
			Level: "INFO",
		},
	}
}

// DefaultConfigDir returns the directory searched for config.yaml
func DefaultConfigDir() string {
	return filepath.Join(xdg.ConfigHome, appName)
}

// LoadConfig loads configuration from file and environment.
// If path is empty, config.yaml is searched in the XDG config dir and ".";
// a missing file is not an error. An explicit path must exist.
func LoadConfig(path string) (*Config, error) {
	cfg := DefaultConfig()

	v := viper.New()
	setDefaults(v, cfg)

	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(DefaultConfigDir())
		v.AddConfigPath(".")
	}

	// Environment variable overrides, e.g. WALLS_SEARCH_QUERY
	v.SetEnvPrefix("WALLS")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("%w: error reading config file: %w", domain.ErrConfiguration, err)
		}
		// Config file not found is OK, use defaults
	}

	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("%w: error parsing config: %w", domain.ErrConfiguration, err)
	}

	applyLegacyKeys(v, cfg)

	return cfg, nil
}

func setDefaults(v *viper.Viper, cfg *Config) {
	v.SetDefault("search.query", cfg.Search.Query)
	v.SetDefault("search.exclude_tags", cfg.Search.ExcludeTags)
	v.SetDefault("search.resolution_mode", cfg.Search.ResolutionMode)

	v.SetDefault("catalog.base_url", cfg.Catalog.BaseURL)
	v.SetDefault("catalog.api_key", cfg.Catalog.APIKey)
	v.SetDefault("catalog.timeout", cfg.Catalog.Timeout)

	v.SetDefault("display.width", cfg.Display.Width)
	v.SetDefault("display.height", cfg.Display.Height)

	v.SetDefault("wallpaper.dir", cfg.Wallpaper.Dir)
	v.SetDefault("wallpaper.persist", cfg.Wallpaper.Persist)
	v.SetDefault("wallpaper.command", cfg.Wallpaper.Command)
	v.SetDefault("wallpaper.args", cfg.Wallpaper.Args)

	v.SetDefault("history.enabled", cfg.History.Enabled)
	v.SetDefault("history.file", cfg.History.File)

	v.SetDefault("logging.file", cfg.Logging.File)
	v.SetDefault("logging.level", cfg.Logging.Level)
}

// applyLegacyKeys accepts the flat wallhaven-plugin.json layout:
// {"q": "...", "excludeSimilarTags": [...]}
func applyLegacyKeys(v *viper.Viper, cfg *Config) {
	if cfg.Search.Query == "" && v.IsSet("q") {
		cfg.Search.Query = v.GetString("q")
	}
	if len(cfg.Search.ExcludeTags) == 0 && v.IsSet("excludeSimilarTags") {
		cfg.Search.ExcludeTags = v.GetStringSlice("excludeSimilarTags")
	}
}

// Validate checks values that cannot be defaulted
func (c *Config) Validate() error {
	if _, err := domain.ParseResolutionMode(c.Search.ResolutionMode); err != nil {
		return err
	}

	for i, tag := range c.Search.ExcludeTags {
		if strings.TrimSpace(tag) == "" {
			return fmt.Errorf("%w: search.exclude_tags[%d] is blank and would exclude every tagged wallpaper", domain.ErrConfiguration, i)
		}
	}

	u, err := url.Parse(c.Catalog.BaseURL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("%w: catalog.base_url must be an absolute URL, got %q", domain.ErrConfiguration, c.Catalog.BaseURL)
	}

	if c.Catalog.Timeout < 0 {
		return fmt.Errorf("%w: catalog.timeout must not be negative", domain.ErrConfiguration)
	}

	if c.Display.Width < 0 || c.Display.Height < 0 || (c.Display.Width == 0) != (c.Display.Height == 0) {
		return fmt.Errorf("%w: display.width and display.height must both be set and positive, or both be 0", domain.ErrConfiguration)
	}

	if c.Wallpaper.Dir == "" {
		return fmt.Errorf("%w: wallpaper.dir is required", domain.ErrConfiguration)
	}

	return nil
}

// Policy builds the search policy from the search section
func (c *Config) Policy() (domain.SearchPolicy, error) {
	mode, err := domain.ParseResolutionMode(c.Search.ResolutionMode)
	if err != nil {
		return domain.SearchPolicy{}, err
	}
	return domain.NewSearchPolicy(c.Search.Query, c.Search.ExcludeTags, mode), nil
}

// FixedResolution returns the configured display size, if any
func (c *Config) FixedResolution() (domain.Resolution, bool) {
	res := domain.Resolution{Width: c.Display.Width, Height: c.Display.Height}
	return res, res.Valid()
}
