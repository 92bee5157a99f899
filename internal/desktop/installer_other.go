//go:build !windows

package desktop

import "context"

func (i *Installer) setPlatform(ctx context.Context, path string, persist bool) error {
	return i.runSetters(ctx, path, persist)
}
