package desktop

import (
	"bufio"
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/mmcdole/walls/internal/domain"
)

var (
	// DP-1 connected primary 2560x1440+0+0 (normal left ...) 597mm x 336mm
	xrandrOutput = regexp.MustCompile(`^\S+ connected( primary)? (\d+)x(\d+)\+\d+\+\d+`)
	// Screen 0: minimum 8 x 8, current 3840 x 2160, maximum 32767 x 32767
	xrandrScreen = regexp.MustCompile(`current (\d+) x (\d+)`)
	// Resolution: 3840 x 2160 (2160p/4K UHD 1 - Ultra High Definition)
	profilerResolution = regexp.MustCompile(`^\s*Resolution:\s*(\d+)\s*x\s*(\d+)`)
)

// parseXrandr extracts the primary output's size from `xrandr --current`.
// Falls back to the first active output, then to the screen size.
func parseXrandr(out string) (domain.Resolution, error) {
	var first, screen domain.Resolution

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := scanner.Text()

		if m := xrandrOutput.FindStringSubmatch(line); m != nil {
			res := resolutionFrom(m[2], m[3])
			if m[1] != "" {
				return res, nil
			}
			if !first.Valid() {
				first = res
			}
			continue
		}

		if !screen.Valid() && strings.HasPrefix(line, "Screen ") {
			if m := xrandrScreen.FindStringSubmatch(line); m != nil {
				screen = resolutionFrom(m[1], m[2])
			}
		}
	}

	switch {
	case first.Valid():
		return first, nil
	case screen.Valid():
		return screen, nil
	default:
		return domain.Resolution{}, fmt.Errorf("%w: no active display in xrandr output", domain.ErrUnsupportedPlatform)
	}
}

// parseSystemProfiler extracts the main display's native size from
// `system_profiler SPDisplaysDataType`. Falls back to the first display.
func parseSystemProfiler(out string) (domain.Resolution, error) {
	var first, last domain.Resolution

	scanner := bufio.NewScanner(strings.NewReader(out))
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())

		if m := profilerResolution.FindStringSubmatch(line); m != nil {
			last = resolutionFrom(m[1], m[2])
			if !first.Valid() {
				first = last
			}
			continue
		}

		// "Main Display: Yes" follows the Resolution line of its block
		if strings.EqualFold(line, "Main Display: Yes") && last.Valid() {
			return last, nil
		}
	}

	if first.Valid() {
		return first, nil
	}
	return domain.Resolution{}, fmt.Errorf("%w: no display in system_profiler output", domain.ErrUnsupportedPlatform)
}

func resolutionFrom(w, h string) domain.Resolution {
	width, _ := strconv.Atoi(w)
	height, _ := strconv.Atoi(h)
	return domain.Resolution{Width: width, Height: height}
}
