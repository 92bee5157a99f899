//go:build !windows

package desktop

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mmcdole/walls/internal/log"
)

func TestSetWallpaper_ConfiguredCommand(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	marker := filepath.Join(dir, "marker")
	image := filepath.Join(dir, "abc123")

	// sh -c script $0: the image path arrives as $0
	installer := NewInstaller("sh", []string{"-c", `printf '%s' "$0" > "` + marker + `"`, "{path}"}, log.NullLogger())
	require.NoError(t, installer.SetWallpaper(context.Background(), image, true))

	got, err := os.ReadFile(marker)
	require.NoError(t, err)
	assert.Equal(t, image, string(got))
}

func TestSetWallpaper_ConfiguredCommandFailure(t *testing.T) {
	t.Parallel()

	installer := NewInstaller("false", nil, log.NullLogger())
	err := installer.SetWallpaper(context.Background(), filepath.Join(t.TempDir(), "abc123"), true)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "wallpaper command false failed")
}
