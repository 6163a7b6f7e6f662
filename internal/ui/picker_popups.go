package ui

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

// renderQueriesPopup lists the predefined queries
func (m Model) renderQueriesPopup(main string) string {
	var b strings.Builder

	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(AccentColor()).Render("Predefined Queries"))
	b.WriteString("\n\n")

	selectedID := m.store.Snapshot().SelectedQueryID
	for i, q := range m.store.Catalog().All() {
		prefix := "  "
		nameStyle := lipgloss.NewStyle().Foreground(TextPrimary())
		if i == m.queryCursor {
			prefix = "▸ "
			nameStyle = SelectedStyle
		}
		name := q.Name
		if q.ID == selectedID {
			name += " •"
		}
		b.WriteString(prefix + nameStyle.Render(name) + "\n")
		if q.Description != "" {
			b.WriteString("  " + MetaStyle.Render(q.Description) + "\n")
		}
		b.WriteString("  " + m.highlight(q.SQL) + "\n\n")
	}

	b.WriteString(lipgloss.NewStyle().Faint(true).Render("↑/↓ select • enter load • esc close"))

	box := PopupStyle.
		Width(min(m.width-4, 70)).
		MaxHeight(max(m.height-2, 5)).
		Render(b.String())
	return overlay.Composite(box, main, overlay.Center, overlay.Center, 0, 0)
}

// renderHistoryPopup shows the executed queries, most recent first
func (m Model) renderHistoryPopup(main string) string {
	var b strings.Builder

	title := "Query History"
	if n := m.historyList.Len(); n > 0 {
		title += lipgloss.NewStyle().Foreground(TextFaint()).Render(" (" + strconv.Itoa(n) + ")")
	}
	b.WriteString(lipgloss.NewStyle().Bold(true).Foreground(AccentColor()).Render(title))
	b.WriteString("\n\n")
	b.WriteString(m.historyList.View())
	b.WriteString("\n\n")
	b.WriteString(lipgloss.NewStyle().Faint(true).Render("↑/↓ select • space expand • enter load • d delete • D clear • esc close"))

	box := PopupStyle.
		Width(min(m.width-4, 104)).
		Render(b.String())
	return overlay.Composite(box, main, overlay.Center, overlay.Center, 0, 0)
}
