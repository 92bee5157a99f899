package tui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/mmcdole/walls/internal/domain"
	"github.com/mmcdole/walls/internal/tui/styles"
)

const (
	historyTimeFormat = "2006-01-02 15:04"
	defaultWidth      = 100
)

// RenderHistory formats history entries as a table, one wallpaper per line
func RenderHistory(entries []domain.HistoryEntry, width int) string {
	if len(entries) == 0 {
		return styles.DimStyle.Render("No wallpapers applied yet.") + "\n"
	}
	if width <= 0 {
		width = defaultWidth
	}

	var b strings.Builder

	header := fmt.Sprintf("%-16s  %-8s  %s", "APPLIED", "ID", "URL / TAGS")
	b.WriteString(styles.TitleStyle.Render(header))
	b.WriteString("\n")

	// Tags get whatever is left after the fixed columns
	tagWidth := width - 16 - 2 - 8 - 2
	for _, e := range entries {
		applied := styles.DimStyle.Render(fmt.Sprintf("%-16s", e.AppliedAt.Local().Format(historyTimeFormat)))
		id := styles.AccentStyle.Render(fmt.Sprintf("%-8s", e.ID))
		b.WriteString(lipgloss.JoinHorizontal(lipgloss.Top, applied, "  ", id, "  ", e.PageURL))
		b.WriteString("\n")

		if len(e.Tags) > 0 {
			tags := styles.Truncate(strings.Join(e.Tags, ", "), tagWidth)
			b.WriteString(strings.Repeat(" ", 16+2+8+2))
			b.WriteString(styles.SubtitleStyle.Render(tags))
			b.WriteString("\n")
		}
	}

	return b.String()
}

// RenderApplied is the one-line summary printed after a successful run
func RenderApplied(entry *domain.HistoryEntry) string {
	return fmt.Sprintf("%s %s %s\n",
		styles.SuccessStyle.Render(styles.CheckMark),
		styles.TitleStyle.Render("Wallpaper set:"),
		styles.AccentStyle.Render(entry.PageURL),
	)
}

// RenderNoMatch is printed when the search page held no admissible wallpaper
func RenderNoMatch() string {
	return fmt.Sprintf("%s %s\n",
		styles.WarningStyle.Render(styles.WarnMark),
		styles.WarningStyle.Render("No matching wallpaper found"),
	)
}
