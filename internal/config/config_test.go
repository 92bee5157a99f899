package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/adrg/xdg"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/walls/internal/config"
	"github.com/mmcdole/walls/internal/domain"
)

func writeConfig(t *testing.T, name, contents string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(contents), 0o644))
	return path
}

// isolateXDG points the XDG base dirs and working dir at temp dirs so a
// developer's real config.yaml is never picked up.
func isolateXDG(t *testing.T) {
	t.Helper()
	t.Cleanup(xdg.Reload)
	home := t.TempDir()
	t.Setenv("XDG_CONFIG_HOME", filepath.Join(home, "config"))
	t.Setenv("XDG_DATA_HOME", filepath.Join(home, "data"))
	t.Setenv("XDG_STATE_HOME", filepath.Join(home, "state"))
	xdg.Reload()
	t.Chdir(t.TempDir())
}

func TestLoadConfig_YAML(t *testing.T) {
	path := writeConfig(t, "config.yaml", `
search:
  query: cars
  exclude_tags: [Anime, neon]
  resolution_mode: atleast
catalog:
  api_key: abc
  timeout: 5s
display:
  width: 2560
  height: 1440
wallpaper:
  dir: /tmp/walls-test
  persist: false
  command: feh
  args: ["--bg-scale", "{path}"]
history:
  enabled: false
logging:
  level: debug
`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Equal(t, "cars", cfg.Search.Query)
	assert.Equal(t, []string{"Anime", "neon"}, cfg.Search.ExcludeTags)
	assert.Equal(t, "abc", cfg.Catalog.APIKey)
	assert.Equal(t, 5*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, "https://wallhaven.cc/api/v1", cfg.Catalog.BaseURL, "unset keys keep defaults")
	assert.False(t, cfg.Wallpaper.Persist)
	assert.Equal(t, []string{"--bg-scale", "{path}"}, cfg.Wallpaper.Args)
	assert.False(t, cfg.History.Enabled)
	assert.Equal(t, "debug", cfg.Logging.Level)

	res, ok := cfg.FixedResolution()
	require.True(t, ok)
	assert.Equal(t, domain.Resolution{Width: 2560, Height: 1440}, res)

	policy, err := cfg.Policy()
	require.NoError(t, err)
	assert.Equal(t, "cars", policy.Query)
	assert.Equal(t, []string{"anime", "neon"}, policy.ExcludeTags)
	assert.Equal(t, domain.ResolutionAtLeast, policy.ResolutionMode)
}

func TestLoadConfig_LegacyJSON(t *testing.T) {
	path := writeConfig(t, "wallhaven-plugin.json", `{"q": "mountains", "excludeSimilarTags": ["Car", "girl"]}`)

	cfg, err := config.LoadConfig(path)
	require.NoError(t, err)

	assert.Equal(t, "mountains", cfg.Search.Query)
	assert.Equal(t, []string{"Car", "girl"}, cfg.Search.ExcludeTags)
	assert.Equal(t, string(domain.ResolutionExact), cfg.Search.ResolutionMode)
}

func TestLoadConfig_Defaults(t *testing.T) {
	isolateXDG(t)

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)
	require.NoError(t, cfg.Validate())

	assert.Empty(t, cfg.Search.Query)
	assert.Empty(t, cfg.Search.ExcludeTags)
	assert.True(t, cfg.Wallpaper.Persist)
	assert.True(t, cfg.History.Enabled)
	assert.Equal(t, 30*time.Second, cfg.Catalog.Timeout)
	assert.Equal(t, filepath.Join(xdg.DataHome, "walls", "history.db"), cfg.History.File)

	_, ok := cfg.FixedResolution()
	assert.False(t, ok)
}

func TestLoadConfig_EnvOverrides(t *testing.T) {
	isolateXDG(t)
	t.Setenv("WALLS_SEARCH_QUERY", "forest")
	t.Setenv("WALLS_SEARCH_EXCLUDE_TAGS", "neon,anime")
	t.Setenv("WALLS_WALLPAPER_PERSIST", "false")

	cfg, err := config.LoadConfig("")
	require.NoError(t, err)

	assert.Equal(t, "forest", cfg.Search.Query)
	assert.Equal(t, []string{"neon", "anime"}, cfg.Search.ExcludeTags)
	assert.False(t, cfg.Wallpaper.Persist)
}

func TestLoadConfig_Errors(t *testing.T) {
	t.Run("explicit path must exist", func(t *testing.T) {
		_, err := config.LoadConfig(filepath.Join(t.TempDir(), "missing.yaml"))
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})

	t.Run("malformed file", func(t *testing.T) {
		path := writeConfig(t, "config.yaml", "search: [unterminated")
		_, err := config.LoadConfig(path)
		require.Error(t, err)
		assert.ErrorIs(t, err, domain.ErrConfiguration)
	})
}

func TestConfig_Validate(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		mutate func(*config.Config)
	}{
		{name: "unknown resolution mode", mutate: func(c *config.Config) { c.Search.ResolutionMode = "huge" }},
		{name: "relative base url", mutate: func(c *config.Config) { c.Catalog.BaseURL = "wallhaven.cc/api" }},
		{name: "negative timeout", mutate: func(c *config.Config) { c.Catalog.Timeout = -time.Second }},
		{name: "only width set", mutate: func(c *config.Config) { c.Display.Width = 1920 }},
		{name: "negative height", mutate: func(c *config.Config) { c.Display.Width, c.Display.Height = 1920, -1 }},
		{name: "empty wallpaper dir", mutate: func(c *config.Config) { c.Wallpaper.Dir = "" }},
		{name: "blank exclusion", mutate: func(c *config.Config) { c.Search.ExcludeTags = []string{"anime", "  "} }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			cfg := config.DefaultConfig()
			tt.mutate(cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrConfiguration)
		})
	}

	require.NoError(t, config.DefaultConfig().Validate())
}
