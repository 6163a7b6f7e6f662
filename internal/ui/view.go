package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"
	"github.com/mattn/go-runewidth"

	"github.com/nhath/ezquery/internal/logger"
	"github.com/nhath/ezquery/internal/results"
	"github.com/nhath/ezquery/internal/store"
	"github.com/nhath/ezquery/internal/ui/components/table"
	"github.com/nhath/ezquery/internal/virtual"
)

// recentWarnings feeds the warning counter in the status bar
var recentWarnings = logger.Recent

// virtualColumnWidth caps a column in the line-based virtual grid
const virtualColumnWidth = 24

// View renders the UI
func (m Model) View() string {
	if m.width == 0 {
		return "Loading..."
	}

	snap := m.store.Snapshot()

	m.editor.SetHeight(m.editorHeight())
	editorView := m.editor.View()
	if m.focus != FocusEditor && m.editor.Value() != "" {
		editorView = m.renderBlurredEditor()
	}
	inputView := InputStyle.Width(m.width).Render(editorView)

	gh := m.gridHeight()
	body, footer := m.renderResults(snap, gh)

	main := lipgloss.JoinVertical(lipgloss.Left,
		inputView,
		m.renderSearchLine(snap),
		lipgloss.NewStyle().Height(gh).MaxHeight(gh).Render(body),
		footer,
		m.renderStatusBar(snap),
	)

	if m.showQueries {
		main = m.renderQueriesPopup(main)
	}
	if m.showHistory {
		main = m.renderHistoryPopup(main)
	}
	// Help renders last to be on top
	if m.showHelp {
		main = m.renderHelpPopup(main)
	}
	return main
}

// renderBlurredEditor shows the query highlighted, padded to the editor height
func (m Model) renderBlurredEditor() string {
	lines := strings.Split(m.highlight(m.editor.Value()), "\n")
	h := m.editorHeight()
	if len(lines) > h {
		lines = lines[:h]
	}
	for len(lines) < h {
		lines = append(lines, "")
	}
	return strings.Join(lines, "\n")
}

func (m Model) renderSearchLine(snap store.Snapshot) string {
	if m.searching {
		return m.search.View()
	}
	if term := snap.View.SearchTerm; term != "" {
		return MetaStyle.Render(fmt.Sprintf("/ %s  (esc in search to clear)", term))
	}
	return ""
}

// renderResults returns the grid body and its footer line
func (m Model) renderResults(snap store.Snapshot, height int) (string, string) {
	if snap.Result == nil {
		return m.renderEmpty(snap, height), ""
	}

	switch snap.View.ViewMode {
	case results.Virtual:
		rows := snap.Visible()
		if len(rows) == 0 {
			return m.noMatches(snap, height), ""
		}
		w := virtual.Compute(m.virtualParams(len(rows), snap.View.ScrollOffset))
		body := RenderVirtual(snap.Result.Columns, rows, w, snap.View.ScrollOffset, height-1, m.rowHeight(), m.width)
		return body, m.virtualFooter(w, len(rows), snap)

	default:
		page := snap.Page()
		if page.TotalFiltered == 0 {
			return m.noMatches(snap, height), ""
		}
		grid := table.FromRows(snap.Result.Columns, page.Rows, table.Options{
			SortColumn:    snap.View.SortColumn,
			SortDirection: snap.View.SortDirection,
			CursorColumn:  m.cursorColumn(),
			MaxWidth:      m.width,
			Styles:        gridStyles(),
		})
		for i := 0; i < m.colOffset; i++ {
			grid = grid.ScrollRight()
		}
		vp := viewport.New(m.width, height)
		vp.SetContent(grid.View())
		vp.SetYOffset(m.gridOffset)
		return vp.View(), m.pageFooter(page, snap)
	}
}

func (m Model) cursorColumn() int {
	if m.focus != FocusResults {
		return -1
	}
	return m.sortCursor
}

func (m Model) renderEmpty(snap store.Snapshot, height int) string {
	var msg string
	switch snap.Status.Kind {
	case store.StatusLoading:
		msg = m.spinner.View() + " Running query..."
	case store.StatusError:
		msg = ErrorStyle.Render(snap.Status.Message)
	default:
		msg = MetaStyle.Render(fmt.Sprintf("Press %s to run the query, %s for help",
			firstKey(m.cfg.Keys.Run), firstKey(m.cfg.Keys.Help)))
	}
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
}

func (m Model) noMatches(snap store.Snapshot, height int) string {
	msg := MetaStyle.Render(fmt.Sprintf("No rows match %q", snap.View.SearchTerm))
	return lipgloss.Place(m.width, height, lipgloss.Center, lipgloss.Center, msg)
}

func (m Model) pageFooter(p results.Page, snap store.Snapshot) string {
	size := snap.View.PageSize
	text := fmt.Sprintf("Showing %s to %s of %s results | Page %d of %d | %d per page",
		humanize.Comma(int64(p.StartRow(size))),
		humanize.Comma(int64(p.EndRow(size))),
		humanize.Comma(int64(p.TotalFiltered)),
		p.Page, p.TotalPages, size)
	return MetaStyle.Render(text)
}

func (m Model) virtualFooter(w virtual.Window, total int, snap store.Snapshot) string {
	rh := m.rowHeight()
	first := snap.View.ScrollOffset/rh + 1
	last := min((snap.View.ScrollOffset+m.gridHeight()-1)/rh, total)
	text := fmt.Sprintf("Rows %s to %s of %s | %d rendered | virtual",
		humanize.Comma(int64(first)),
		humanize.Comma(int64(max(last, first))),
		humanize.Comma(int64(total)),
		w.Len())
	return MetaStyle.Render(text)
}

// RenderVirtual draws the header and the visible slice of a virtual window.
// Each row occupies rowHeight lines; only rows in w are formatted.
func RenderVirtual(columns []string, rows []results.Record, w virtual.Window, scroll, height, rowHeight, width int) string {
	if w.Len() <= 0 || height <= 0 {
		return ""
	}

	widths := make([]int, len(columns))
	for i, c := range columns {
		widths[i] = runewidth.StringWidth(c)
	}
	for _, it := range w.Items {
		for i, c := range columns {
			widths[i] = max(widths[i], runewidth.StringWidth(table.CellText(rows[it.Index].Get(c))))
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], virtualColumnWidth)
	}

	format := func(cells []string) string {
		parts := make([]string, len(cells))
		for i, s := range cells {
			parts[i] = runewidth.FillRight(runewidth.Truncate(s, widths[i], "…"), widths[i])
		}
		return runewidth.Truncate(strings.Join(parts, " │ "), width, "…")
	}

	var lines []string
	for _, it := range w.Items {
		cells := make([]string, len(columns))
		for i, c := range columns {
			cells[i] = table.CellText(rows[it.Index].Get(c))
		}
		lines = append(lines, format(cells))
		for j := 1; j < rowHeight; j++ {
			lines = append(lines, "")
		}
	}

	// Cut the materialized lines down to the viewport
	from := min(max(scroll-w.Items[0].Offset, 0), len(lines))
	to := min(from+height, len(lines))

	header := GridHeaderStyle.Render(format(columns))
	return lipgloss.JoinVertical(lipgloss.Left, append([]string{header}, lines[from:to]...)...)
}

func (m Model) renderStatusBar(snap store.Snapshot) string {
	var parts []string

	// 1. View mode and focus
	parts = append(parts, ModeStyle.Render(strings.ToUpper(string(snap.View.ViewMode))))
	focus := "EDITOR"
	if m.focus == FocusResults {
		focus = "RESULTS"
	}
	parts = append(parts, FocusStyle.Render(focus))

	// 2. Execution status
	switch snap.Status.Kind {
	case store.StatusLoading:
		parts = append(parts, InfoStyle.Render(m.spinner.View()+" Running..."))
	case store.StatusError:
		truncated := snap.Status.Message
		if runewidth.StringWidth(truncated) > 60 {
			truncated = runewidth.Truncate(truncated, 60, "...")
		}
		parts = append(parts, ErrorBadgeStyle.Render("⚠ "+truncated))
	}
	if snap.Result != nil {
		info := fmt.Sprintf("%s rows | %dms", humanize.Comma(int64(snap.Result.RowCount)), snap.Result.ExecutionTimeMs)
		parts = append(parts, InfoStyle.Render(info))
	}

	// 3. Transient message
	if m.statusMsg != "" {
		if m.statusErr {
			parts = append(parts, ErrorBadgeStyle.Render("⚠ "+m.statusMsg))
		} else {
			parts = append(parts, SuccessStyle.Render("✓ "+m.statusMsg))
		}
	}

	// 4. Logged warnings
	if n := len(recentWarnings()); n > 0 {
		parts = append(parts, WarningStyle.Render(fmt.Sprintf("%d warnings", n)))
	}

	content := lipgloss.JoinHorizontal(lipgloss.Left, parts...)
	return StatusBarStyle.Width(m.width).MaxWidth(m.width).Render(content)
}

func firstKey(keys []string) string {
	if len(keys) == 0 {
		return ""
	}
	return keys[0]
}
