//go:build !windows

package desktop

import (
	"context"
	"fmt"
	"os/exec"
	"runtime"

	"github.com/mmcdole/walls/internal/domain"
)

// DetectResolution returns the size of the primary display
func DetectResolution(ctx context.Context) (domain.Resolution, error) {
	switch runtime.GOOS {
	case "darwin":
		out, err := exec.CommandContext(ctx, "system_profiler", "SPDisplaysDataType").Output()
		if err != nil {
			return domain.Resolution{}, fmt.Errorf("%w: system_profiler: %w", domain.ErrUnsupportedPlatform, err)
		}
		return parseSystemProfiler(string(out))
	case "linux", "freebsd", "openbsd", "netbsd":
		out, err := exec.CommandContext(ctx, "xrandr", "--current").Output()
		if err != nil {
			return domain.Resolution{}, fmt.Errorf("%w: xrandr: %w (set display.width and display.height)", domain.ErrUnsupportedPlatform, err)
		}
		return parseXrandr(string(out))
	default:
		return domain.Resolution{}, fmt.Errorf("%w: cannot detect resolution on %s", domain.ErrUnsupportedPlatform, runtime.GOOS)
	}
}
