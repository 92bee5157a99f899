package tui

import (
	"fmt"
	"io"

	"github.com/mmcdole/walls/internal/domain"
)

// ChannelObserver adapts domain.ProgressObserver to a channel for Bubble Tea.
type ChannelObserver struct {
	ch chan<- domain.Progress
}

// NewChannelObserver creates a new channel-based observer.
func NewChannelObserver(ch chan<- domain.Progress) *ChannelObserver {
	return &ChannelObserver{ch: ch}
}

// OnProgress sends progress to the channel (non-blocking if full).
func (o *ChannelObserver) OnProgress(progress domain.Progress) {
	select {
	case o.ch <- progress:
	default: // Non-blocking if channel full
	}
}

// LineObserver prints one status line per step, for output that is not a terminal.
type LineObserver struct {
	w io.Writer
}

// NewLineObserver creates an observer writing to w.
func NewLineObserver(w io.Writer) *LineObserver {
	return &LineObserver{w: w}
}

func (o *LineObserver) OnProgress(progress domain.Progress) {
	if progress.Step == domain.StepDone {
		return
	}
	fmt.Fprintln(o.w, StatusLine(progress))
}

// StatusLine describes a progress update in one line of plain text
func StatusLine(p domain.Progress) string {
	switch p.Step {
	case domain.StepSearching:
		return "Searching wallhaven..."
	case domain.StepEvaluating:
		return fmt.Sprintf("Checking tags %d/%d %s", p.Index, p.Total, p.Candidate)
	case domain.StepDownloading:
		return "Downloading " + p.Candidate
	case domain.StepInstalling:
		return "Setting wallpaper..."
	case domain.StepDone:
		return "Done"
	default:
		return ""
	}
}
