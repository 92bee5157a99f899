//go:build windows

package desktop

import (
	"context"
	"fmt"
	"sync"

	"github.com/mmcdole/walls/internal/domain"
)

const (
	smCxScreen = 0
	smCyScreen = 1

	// DPI_AWARENESS_CONTEXT_PER_MONITOR_AWARE_V2, ((DPI_AWARENESS_CONTEXT)-4)
	dpiAwarenessContextPerMonitorAwareV2 = ^uintptr(3)
)

var (
	procGetSystemMetrics              = user32.NewProc("GetSystemMetrics")
	procSetProcessDpiAwarenessContext = user32.NewProc("SetProcessDpiAwarenessContext")
	procSetProcessDPIAware            = user32.NewProc("SetProcessDPIAware")
	procIsProcessDPIAware             = user32.NewProc("IsProcessDPIAware")
)

var dpiAwareOnce sync.Once

// makeDPIAware opts the process out of DPI virtualization so screen metrics
// are physical pixels. Windows 10 1703+ gets per-monitor v2; older systems
// fall back to system awareness.
func makeDPIAware() {
	dpiAwareOnce.Do(func() {
		if procSetProcessDpiAwarenessContext.Find() == nil {
			if ret, _, _ := procSetProcessDpiAwarenessContext.Call(dpiAwarenessContextPerMonitorAwareV2); ret != 0 {
				return
			}
		}
		if procSetProcessDPIAware.Find() == nil {
			_, _, _ = procSetProcessDPIAware.Call()
		}
	})
}

func isDPIAware() bool {
	if procIsProcessDPIAware.Find() != nil {
		return false
	}
	ret, _, _ := procIsProcessDPIAware.Call()
	return ret != 0
}

// DetectResolution returns the physical size of the primary display
func DetectResolution(_ context.Context) (domain.Resolution, error) {
	makeDPIAware()

	w, _, _ := procGetSystemMetrics.Call(smCxScreen)
	h, _, _ := procGetSystemMetrics.Call(smCyScreen)

	res := domain.Resolution{Width: int(w), Height: int(h)}
	if !res.Valid() {
		return domain.Resolution{}, fmt.Errorf("%w: GetSystemMetrics returned %s", domain.ErrUnsupportedPlatform, res)
	}
	return res, nil
}
