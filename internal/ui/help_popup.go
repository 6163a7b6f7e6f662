package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	overlay "github.com/rmhubbert/bubbletea-overlay"
)

type binding struct{ key, desc string }

func (m Model) renderHelpPopup(main string) string {
	var content strings.Builder

	title := lipgloss.NewStyle().Bold(true).Foreground(AccentColor()).Render("Keyboard Shortcuts")
	content.WriteString(title)
	content.WriteString("\n\n")

	keys := m.cfg.Keys

	section := func(name string, bindings []binding) {
		header := lipgloss.NewStyle().Bold(true).Foreground(HighlightColor()).Render(name)
		content.WriteString(header + "\n")
		for _, b := range bindings {
			keyStyle := lipgloss.NewStyle().Foreground(SuccessColor()).Width(18)
			descStyle := lipgloss.NewStyle().Foreground(TextSecondary())
			content.WriteString(fmt.Sprintf("  %s %s\n", keyStyle.Render(b.key), descStyle.Render(b.desc)))
		}
		content.WriteString("\n")
	}

	section("Query", []binding{
		{strings.Join(keys.Run, "/"), "Run query"},
		{strings.Join(keys.Queries, "/"), "Predefined queries"},
		{strings.Join(keys.History, "/"), "Query history"},
		{strings.Join(keys.Copy, "/"), "Copy query"},
		{strings.Join(keys.Focus, "/"), "Switch editor / results"},
	})

	section("Results", []binding{
		{strings.Join(keys.Search, "/"), "Search"},
		{"h/l", "Move column cursor"},
		{strings.Join(keys.Sort, "/"), "Sort by column"},
		{strings.Join(keys.NextPage, "/"), "Next page"},
		{strings.Join(keys.PrevPage, "/"), "Previous page"},
		{strings.Join(keys.PageSize, "/"), "Cycle page size"},
		{"j/k g/G", "Scroll"},
		{strings.Join(keys.ToggleView, "/"), "Paginated / virtual"},
		{strings.Join(keys.ClearResults, "/"), "Clear results"},
	})

	section("Output", []binding{
		{strings.Join(keys.ExportCSV, "/"), "Export CSV"},
		{strings.Join(keys.ExportJSON, "/"), "Export JSON"},
		{strings.Join(keys.Pager, "/"), "Open in pager"},
	})

	section("Other", []binding{
		{strings.Join(keys.ToggleTheme, "/"), "Toggle theme"},
		{strings.Join(keys.Help, "/"), "Show this help"},
		{strings.Join(keys.Exit, "/"), "Quit"},
	})

	content.WriteString(lipgloss.NewStyle().Faint(true).Render("Press Esc or q to close"))

	popupBox := PopupStyle.
		Width(56).
		MaxHeight(max(m.height-2, 5)).
		Render(content.String())

	return overlay.Composite(popupBox, main, overlay.Center, overlay.Center, 0, 0)
}
