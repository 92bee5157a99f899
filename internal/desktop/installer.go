package desktop

import (
	"context"
	"fmt"
	"log/slog"
	"net/url"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"strings"

	"github.com/mmcdole/walls/internal/domain"
)

// PathPlaceholder in configured args is replaced by the image path
const PathPlaceholder = "{path}"

// Installer sets the desktop background
type Installer struct {
	command string   // configured setter command, empty for auto-detection
	args    []string // arguments for the configured command
	logger  *slog.Logger
}

// setter describes one external program that can set the background
type setter struct {
	command string
	// available reports whether the setter applies to the running session
	available func() bool
	// invocations returns the argument lists to run, in order
	invocations func(path string, persist bool) [][]string
	// detach starts the command without waiting, for setters that stay
	// resident to keep drawing the background
	detach bool
}

// setters registry - tried in order per platform. Windows uses the native API.
var setters = map[string][]setter{
	"linux": {
		{
			command:   "gsettings",
			available: func() bool { return desktopIs("gnome", "unity", "cinnamon", "budgie", "pantheon") },
			invocations: func(path string, _ bool) [][]string {
				uri := (&url.URL{Scheme: "file", Path: path}).String()
				return [][]string{
					{"set", "org.gnome.desktop.background", "picture-uri", uri},
					{"set", "org.gnome.desktop.background", "picture-uri-dark", uri},
				}
			},
		},
		{
			command:   "plasma-apply-wallpaperimage",
			available: func() bool { return desktopIs("kde") },
			invocations: func(path string, _ bool) [][]string {
				return [][]string{{path}}
			},
		},
		{
			command:   "swaybg",
			available: func() bool { return os.Getenv("WAYLAND_DISPLAY") != "" },
			invocations: func(path string, _ bool) [][]string {
				return [][]string{{"-m", "fill", "-i", path}}
			},
			detach: true,
		},
		{
			command:   "feh",
			available: func() bool { return os.Getenv("DISPLAY") != "" },
			invocations: func(path string, persist bool) [][]string {
				args := []string{"--bg-fill"}
				if !persist {
					args = append(args, "--no-fehbg")
				}
				return [][]string{append(args, path)}
			},
		},
	},
	"darwin": {
		{
			command:   "osascript",
			available: func() bool { return true },
			invocations: func(path string, _ bool) [][]string {
				script := fmt.Sprintf(`tell application "System Events" to tell every desktop to set picture to %q`, path)
				return [][]string{{"-e", script}}
			},
		},
	},
}

// desktopIs reports whether XDG_CURRENT_DESKTOP names one of the given desktops
func desktopIs(names ...string) bool {
	current := strings.ToLower(os.Getenv("XDG_CURRENT_DESKTOP"))
	for _, part := range strings.Split(current, ":") {
		for _, name := range names {
			if part == name {
				return true
			}
		}
	}
	return false
}

// NewInstaller creates an installer. With an empty command the platform
// default is used.
func NewInstaller(command string, args []string, logger *slog.Logger) *Installer {
	if logger == nil {
		logger = slog.Default()
	}
	return &Installer{
		command: command,
		args:    args,
		logger:  logger,
	}
}

// SetWallpaper makes the image at path the desktop background.
// persist controls whether the choice survives a new session, where the
// platform distinguishes.
func (i *Installer) SetWallpaper(ctx context.Context, path string, persist bool) error {
	abs, err := filepath.Abs(path)
	if err != nil {
		return fmt.Errorf("%w: %w", domain.ErrPersistence, err)
	}

	// Tier 1: user configured a specific setter
	if i.command != "" {
		args := expandArgs(i.args, abs)
		i.logger.Info("using configured wallpaper command", "command", i.command, "args", args)
		if err := exec.CommandContext(ctx, i.command, args...).Run(); err != nil {
			return fmt.Errorf("wallpaper command %s failed: %w", i.command, err)
		}
		return nil
	}

	// Tier 2: native API or the platform's setter chain
	return i.setPlatform(ctx, abs, persist)
}

// expandArgs substitutes the image path into args, appending it when no
// placeholder is present
func expandArgs(args []string, path string) []string {
	out := make([]string, 0, len(args)+1)
	substituted := false
	for _, arg := range args {
		if strings.Contains(arg, PathPlaceholder) {
			arg = strings.ReplaceAll(arg, PathPlaceholder, path)
			substituted = true
		}
		out = append(out, arg)
	}
	if !substituted {
		out = append(out, path)
	}
	return out
}

// runSetters tries the registered setters for this platform in order
func (i *Installer) runSetters(ctx context.Context, path string, persist bool) error {
	candidates, ok := setters[runtime.GOOS]
	if !ok {
		return fmt.Errorf("%w: no wallpaper setter for %s, configure wallpaper.command", domain.ErrUnsupportedPlatform, runtime.GOOS)
	}

	for _, s := range candidates {
		if !s.available() {
			i.logger.Debug("wallpaper setter not applicable to this session", "command", s.command)
			continue
		}
		if _, err := exec.LookPath(s.command); err != nil {
			i.logger.Debug("wallpaper setter not installed", "command", s.command)
			continue
		}

		err := runInvocations(ctx, s, path, persist)
		if err == nil {
			i.logger.Info("wallpaper set", "setter", s.command, "path", path)
			return nil
		}
		i.logger.Warn("wallpaper setter failed", "command", s.command, "error", err)
	}

	return fmt.Errorf("%w: no working wallpaper setter found, configure wallpaper.command", domain.ErrUnsupportedPlatform)
}

func runInvocations(ctx context.Context, s setter, path string, persist bool) error {
	for _, args := range s.invocations(path, persist) {
		if s.detach {
			// Must outlive ctx, so no CommandContext
			cmd := exec.Command(s.command, args...)
			if err := cmd.Start(); err != nil {
				return err
			}
			go cmd.Wait() // reap when it exits
			continue
		}
		if out, err := exec.CommandContext(ctx, s.command, args...).CombinedOutput(); err != nil {
			return fmt.Errorf("%w: %s", err, strings.TrimSpace(string(out)))
		}
	}
	return nil
}
