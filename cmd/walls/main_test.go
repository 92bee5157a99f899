package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/walls/internal/config"
	"github.com/mmcdole/walls/internal/domain"
)

// fakeWallhaven serves a two-wallpaper search page, tag details and images
func fakeWallhaven(t *testing.T, tags map[string][]string) *httptest.Server {
	t.Helper()

	var server *httptest.Server
	mux := http.NewServeMux()
	mux.HandleFunc("/api/v1/search", func(w http.ResponseWriter, _ *http.Request) {
		fmt.Fprintf(w, `{"data":[
			{"id":"aa0001","url":"https://wallhaven.cc/w/aa0001","path":"%[1]s/full/aa/wallhaven-aa0001.jpg"},
			{"id":"bb0002","url":"https://wallhaven.cc/w/bb0002","path":"%[1]s/full/bb/wallhaven-bb0002.jpg"}
		],"meta":{"current_page":1,"last_page":1,"per_page":24,"total":2}}`, server.URL)
	})
	mux.HandleFunc("/api/v1/w/", func(w http.ResponseWriter, r *http.Request) {
		id := strings.TrimPrefix(r.URL.Path, "/api/v1/w/")
		names := make([]map[string]string, 0, len(tags[id]))
		for _, name := range tags[id] {
			names = append(names, map[string]string{"name": name})
		}
		_ = json.NewEncoder(w).Encode(map[string]any{"data": map[string]any{"id": id, "tags": names}})
	})
	mux.HandleFunc("/full/", func(w http.ResponseWriter, _ *http.Request) {
		_, _ = w.Write([]byte("not really a jpeg"))
	})

	server = httptest.NewUnstartedServer(mux)
	server.Config.SetKeepAlivesEnabled(false)
	server.Start()
	t.Cleanup(server.Close)
	return server
}

// writeConfig points every path at a temp dir and installs with a no-op command
func writeConfig(t *testing.T, baseURL string) (cfgPath, dir string) {
	t.Helper()
	if runtime.GOOS == "windows" {
		t.Skip("uses the POSIX true command as wallpaper setter")
	}

	dir = t.TempDir()
	cfgPath = filepath.Join(dir, "config.yaml")
	content := fmt.Sprintf(`catalog:
  base_url: %s/api/v1
wallpaper:
  dir: %s
  command: "true"
history:
  file: %s
logging:
  file: %s
`, baseURL, filepath.Join(dir, "images"), filepath.Join(dir, "history.db"), filepath.Join(dir, "walls.log"))
	require.NoError(t, os.WriteFile(cfgPath, []byte(content), 0600))
	return cfgPath, dir
}

func execute(args ...string) (stdout, stderr string, err error) {
	var out, errOut bytes.Buffer
	cmd := newRootCmd(&out, &errOut)
	cmd.SetArgs(args)
	err = cmd.Execute()
	return out.String(), errOut.String(), err
}

func TestRoot_AppliesFirstAdmissibleWallpaper(t *testing.T) {
	server := fakeWallhaven(t, map[string][]string{
		"aa0001": {"Neon Lights", "city"},
		"bb0002": {"mountains"},
	})
	cfgPath, dir := writeConfig(t, server.URL)

	stdout, stderr, err := execute("--config", cfgPath, "--resolution", "1920x1080", "--exclude", "neon")
	require.NoError(t, err)

	assert.Contains(t, stdout, "Wallpaper set:")
	assert.Contains(t, stdout, "https://wallhaven.cc/w/bb0002")
	assert.Contains(t, stderr, "Searching wallhaven...")
	assert.Contains(t, stderr, "Checking tags 2/2")

	image, err := os.ReadFile(filepath.Join(dir, "images", "bb0002"))
	require.NoError(t, err)
	assert.Equal(t, "not really a jpeg", string(image))

	historyOut, _, err := execute("history", "--config", cfgPath, "--format", "json")
	require.NoError(t, err)

	var entries []domain.HistoryEntry
	require.NoError(t, json.Unmarshal([]byte(historyOut), &entries))
	require.Len(t, entries, 1)
	assert.Equal(t, "bb0002", entries[0].ID)
	assert.Equal(t, []string{"mountains"}, entries[0].Tags)
}

func TestRoot_QuietPrintsNothing(t *testing.T) {
	server := fakeWallhaven(t, map[string][]string{"aa0001": {"forest"}})
	cfgPath, _ := writeConfig(t, server.URL)

	stdout, stderr, err := execute("--config", cfgPath, "--resolution", "1920x1080", "--quiet")
	require.NoError(t, err)
	assert.Empty(t, stdout)
	assert.Empty(t, stderr)
}

func TestRoot_LeavesDefaultLoggerAlone(t *testing.T) {
	server := fakeWallhaven(t, map[string][]string{"aa0001": {"forest"}})
	cfgPath, _ := writeConfig(t, server.URL)

	before := slog.Default()
	_, _, err := execute("--config", cfgPath, "--resolution", "1920x1080", "--quiet")
	require.NoError(t, err)
	assert.Same(t, before, slog.Default())
}

func TestRoot_BlankExclusionRejected(t *testing.T) {
	server := fakeWallhaven(t, map[string][]string{"aa0001": {"forest"}})
	cfgPath, dir := writeConfig(t, server.URL)

	_, _, err := execute("--config", cfgPath, "--resolution", "1920x1080", "-x", "anime", "-x", " ")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)

	_, statErr := os.Stat(filepath.Join(dir, "images"))
	assert.True(t, os.IsNotExist(statErr), "nothing downloaded")
}

func TestRoot_NoMatchExitsWithWarning(t *testing.T) {
	server := fakeWallhaven(t, map[string][]string{
		"aa0001": {"anime"},
		"bb0002": {"anime girls"},
	})
	cfgPath, dir := writeConfig(t, server.URL)

	_, _, err := execute("--config", cfgPath, "--resolution", "1920x1080", "-x", "ANIME")
	require.ErrorIs(t, err, domain.ErrNoMatch)

	var stderr bytes.Buffer
	assert.Equal(t, exitNoMatch, exitCode(err, &stderr))
	assert.Contains(t, stderr.String(), "No matching wallpaper found")

	_, statErr := os.Stat(filepath.Join(dir, "images"))
	assert.True(t, os.IsNotExist(statErr), "nothing downloaded")
}

func TestRoot_InvalidResolutionFlag(t *testing.T) {
	server := fakeWallhaven(t, nil)
	cfgPath, _ := writeConfig(t, server.URL)

	_, _, err := execute("--config", cfgPath, "--resolution", "big")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestRoot_MissingConfigFile(t *testing.T) {
	_, _, err := execute("--config", filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrConfiguration)
}

func TestExitCode(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name       string
		err        error
		wantCode   int
		wantStderr string
	}{
		{name: "success", err: nil, wantCode: exitOK},
		{name: "no match", err: domain.ErrNoMatch, wantCode: exitNoMatch, wantStderr: "No matching wallpaper found"},
		{name: "wrapped no match", err: fmt.Errorf("run: %w", domain.ErrNoMatch), wantCode: exitNoMatch},
		{name: "transport", err: fmt.Errorf("%w: timeout", domain.ErrTransport), wantCode: exitError, wantStderr: "Error: transport error: timeout"},
		{name: "anything else", err: errors.New("boom"), wantCode: exitError, wantStderr: "Error: boom"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			var stderr bytes.Buffer
			assert.Equal(t, tt.wantCode, exitCode(tt.err, &stderr))
			assert.Contains(t, stderr.String(), tt.wantStderr)
		})
	}
}

func TestApplyFlags(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags([]string{
		"-q", "cars", "-x", "neon", "-x", "Girl", "--atleast", "--no-persist", "-r", "2560x1440",
	}))

	cfg := config.DefaultConfig()
	cfg.Search.Query = "from file"
	cfg.Search.ExcludeTags = []string{"file"}

	require.NoError(t, applyFlags(cmd.Flags(), cfg))

	assert.Equal(t, "cars", cfg.Search.Query)
	assert.Equal(t, []string{"neon", "Girl"}, cfg.Search.ExcludeTags)
	assert.Equal(t, string(domain.ResolutionAtLeast), cfg.Search.ResolutionMode)
	assert.False(t, cfg.Wallpaper.Persist)
	assert.Equal(t, 2560, cfg.Display.Width)
	assert.Equal(t, 1440, cfg.Display.Height)
}

func TestApplyFlags_KeepsFileValuesWhenUnset(t *testing.T) {
	t.Parallel()

	cmd := newRootCmd(&bytes.Buffer{}, &bytes.Buffer{})
	require.NoError(t, cmd.ParseFlags(nil))

	cfg := config.DefaultConfig()
	cfg.Search.Query = "from file"
	cfg.Search.ExcludeTags = []string{"file"}

	require.NoError(t, applyFlags(cmd.Flags(), cfg))

	assert.Equal(t, "from file", cfg.Search.Query)
	assert.Equal(t, []string{"file"}, cfg.Search.ExcludeTags)
	assert.True(t, cfg.Wallpaper.Persist)
	assert.Zero(t, cfg.Display.Width)
}

func TestVersion(t *testing.T) {
	t.Parallel()

	stdout, _, err := execute("version")
	require.NoError(t, err)
	assert.Equal(t, "walls dev\n", stdout)
}
