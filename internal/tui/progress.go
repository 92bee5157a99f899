package tui

import (
	"context"
	"fmt"
	"io"

	"github.com/charmbracelet/bubbles/spinner"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/mmcdole/walls/internal/domain"
	"github.com/mmcdole/walls/internal/tui/styles"
)

// RunFunc performs one wallpaper run, reporting progress to observer
type RunFunc func(ctx context.Context, observer domain.ProgressObserver) (*domain.HistoryEntry, error)

// ProgressMsg carries a progress update from the run into the program
type ProgressMsg struct {
	Progress domain.Progress
}

// RunDoneMsg is sent once when the run returns
type RunDoneMsg struct {
	Entry *domain.HistoryEntry
	Err   error
}

// ProgressModel renders a spinner and the current step while a run executes
type ProgressModel struct {
	spinner    spinner.Model
	progress   domain.Progress
	progressCh <-chan domain.Progress
	run        func() tea.Msg

	entry *domain.HistoryEntry
	err   error
	done  bool
}

// NewProgressModel creates a model that starts run and listens on progressCh.
// run must close progressCh when it returns.
func NewProgressModel(progressCh <-chan domain.Progress, run func() tea.Msg) ProgressModel {
	s := spinner.New(
		spinner.WithSpinner(spinner.Dot),
		spinner.WithStyle(styles.SpinnerStyle),
	)
	return ProgressModel{
		spinner:    s,
		progressCh: progressCh,
		run:        run,
	}
}

func (m ProgressModel) Init() tea.Cmd {
	return tea.Batch(m.spinner.Tick, m.run, listenProgress(m.progressCh))
}

// listenProgress reads one update; it yields nothing once the channel closes
func listenProgress(ch <-chan domain.Progress) tea.Cmd {
	return func() tea.Msg {
		p, ok := <-ch
		if !ok {
			return nil
		}
		return ProgressMsg{Progress: p}
	}
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case ProgressMsg:
		m.progress = msg.Progress
		return m, listenProgress(m.progressCh)

	case RunDoneMsg:
		m.entry = msg.Entry
		m.err = msg.Err
		m.done = true
		return m, tea.Quit

	case spinner.TickMsg:
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m ProgressModel) View() string {
	if m.done {
		return ""
	}
	return m.spinner.View() + " " + styles.SubtitleStyle.Render(StatusLine(m.progress)) + "\n"
}

// Result returns the run's outcome after the program exits
func (m ProgressModel) Result() (*domain.HistoryEntry, error) {
	return m.entry, m.err
}

// RunWithSpinner executes fn while rendering progress to out.
// Cancellation comes from ctx only; the program installs no signal handler.
func RunWithSpinner(ctx context.Context, out io.Writer, fn RunFunc) (*domain.HistoryEntry, error) {
	progressCh := make(chan domain.Progress, 16)
	observer := NewChannelObserver(progressCh)

	run := func() tea.Msg {
		defer close(progressCh)
		entry, err := fn(ctx, observer)
		return RunDoneMsg{Entry: entry, Err: err}
	}

	p := tea.NewProgram(
		NewProgressModel(progressCh, run),
		tea.WithOutput(out),
		tea.WithInput(nil),
		tea.WithoutSignalHandler(),
	)

	final, err := p.Run()
	if err != nil {
		return nil, fmt.Errorf("progress display failed: %w", err)
	}

	model, ok := final.(ProgressModel)
	if !ok {
		return nil, fmt.Errorf("progress display returned %T", final)
	}
	return model.Result()
}
