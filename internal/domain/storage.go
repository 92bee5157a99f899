package domain

// HistoryStore persists installed wallpapers.
// It is never consulted during selection.
type HistoryStore interface {
	// Record appends an entry
	Record(entry HistoryEntry) error

	// List returns up to limit entries, newest first (limit <= 0 returns all)
	List(limit int) ([]HistoryEntry, error)

	Close() error
}

// Step identifies a phase of a wallpaper run
type Step int

const (
	StepSearching Step = iota
	StepEvaluating
	StepDownloading
	StepInstalling
	StepDone
)

// Progress reports what a run is currently doing.
type Progress struct {
	Step      Step
	Candidate string // Page URL of the candidate being handled, if any
	Index     int    // 1-based position within the result page
	Total     int    // Size of the result page
}

// ProgressObserver receives progress updates during a run.
type ProgressObserver interface {
	OnProgress(progress Progress)
}

// NoOpObserver discards progress updates (for testing/batch operations).
type NoOpObserver struct{}

func (NoOpObserver) OnProgress(Progress) {}
