package styles

import "github.com/charmbracelet/lipgloss"

// Color palette
var (
	WallhavenPurple = lipgloss.Color("#A78BFA")
	DimGray         = lipgloss.Color("#6B7280")
	LightGray       = lipgloss.Color("#9CA3AF")
	White           = lipgloss.Color("#F9FAFB")
	Green           = lipgloss.Color("#10B981")
	Amber           = lipgloss.Color("#F59E0B")
	Red             = lipgloss.Color("#EF4444")
)

// Text styles
var (
	TitleStyle = lipgloss.NewStyle().
			Foreground(White).
			Bold(true)

	SubtitleStyle = lipgloss.NewStyle().
			Foreground(LightGray)

	DimStyle = lipgloss.NewStyle().
			Foreground(DimGray)

	AccentStyle = lipgloss.NewStyle().
			Foreground(WallhavenPurple)

	ErrorStyle = lipgloss.NewStyle().
			Foreground(Red)

	WarningStyle = lipgloss.NewStyle().
			Foreground(Amber)

	SuccessStyle = lipgloss.NewStyle().
			Foreground(Green)
)

// Spinner style
var SpinnerStyle = lipgloss.NewStyle().
	Foreground(WallhavenPurple)

// Status symbols
const (
	CheckMark = "✓"
	CrossMark = "✗"
	WarnMark  = "!"
)

// Truncate truncates a string to the given display width with ellipsis
func Truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 3 {
		return string(runes[:width])
	}
	return string(runes[:width-3]) + "..."
}
