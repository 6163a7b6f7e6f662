package ui

import (
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezquery/internal/config"
	"github.com/nhath/ezquery/internal/export"
	"github.com/nhath/ezquery/internal/results"
	"github.com/nhath/ezquery/internal/store"
	"github.com/nhath/ezquery/internal/virtual"
)

// matchKey checks if a key message matches any of the configured bindings
func matchKey(msg tea.KeyMsg, keys []string) bool {
	keyStr := msg.String()
	for _, k := range keys {
		if k == keyStr {
			return true
		}
	}
	return false
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.editor.SetWidth(msg.Width - 2)
		m.historyList = m.historyList.SetSize(min(msg.Width-10, 100), max(msg.Height-12, 4))
		return m, nil

	case StoreChangedMsg:
		snap := m.store.Snapshot()
		if snap.CurrentSQL != m.editor.Value() {
			m.editor.SetValue(snap.CurrentSQL)
		}
		if snap.Result != nil && m.sortCursor >= len(snap.Result.Columns) {
			m.sortCursor = 0
		}
		m = m.syncHistory()
		return m, waitForStore(m.sub)

	case QueryFinishedMsg:
		if msg.Err == nil {
			m.colOffset = 0
			m.gridOffset = 0
		}
		return m, nil

	case spinner.TickMsg:
		if !m.store.Snapshot().Status.IsLoading() {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd

	case DebounceMsg:
		if msg.ID == m.debounceID {
			m.store.SetSearch(m.search.Value())
			m.gridOffset = 0
		}
		return m, nil

	case ExportCompleteMsg:
		if msg.Err != nil {
			m.logger.Warn("export failed", "error", msg.Err)
			return m.setStatus("Export failed: "+msg.Err.Error(), true)
		}
		m.logger.Info("exported results", "path", msg.Path)
		return m.setStatus("Exported to "+msg.Path, false)

	case ClipboardCopiedMsg:
		if msg.Err != nil {
			m.logger.Warn("clipboard copy failed", "error", msg.Err)
			return m.setStatus("Copy failed: "+msg.Err.Error(), true)
		}
		return m.setStatus("Query copied to clipboard", false)

	case PagerFinishedMsg:
		if msg.Err != nil {
			m.logger.Warn("pager failed", "error", msg.Err)
			return m.setStatus("Pager failed: "+msg.Err.Error(), true)
		}
		return m, nil

	case HistoryClearedMsg:
		if msg.Err != nil {
			m.logger.Warn("clear persisted history", "error", msg.Err)
			return m.setStatus("Could not clear saved history", true)
		}
		return m.setStatus("History cleared", false)

	case HistoryDeletedMsg:
		if msg.Err != nil {
			m.logger.Warn("delete persisted history entry", "error", msg.Err)
			return m.setStatus("Could not delete saved entry", true)
		}
		return m, nil

	case clearStatusMsg:
		if msg.ID == m.statusID {
			m.statusMsg = ""
			m.statusErr = false
		}
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)
	}

	var cmd tea.Cmd
	if m.searching {
		m.search, cmd = m.search.Update(msg)
	} else if m.focus == FocusEditor {
		m.editor, cmd = m.editor.Update(msg)
	}
	return m, cmd
}

func (m Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keys

	if matchKey(msg, keys.Exit) {
		return m, tea.Quit
	}

	if !m.popups.IsEmpty() {
		return m.handlePopupKey(msg)
	}

	if m.searching {
		return m.handleSearchKey(msg)
	}

	// Plain characters belong to the editor while it has focus
	if m.focus == FocusEditor && msg.Type == tea.KeyRunes {
		return m.updateEditor(msg)
	}

	switch {
	case matchKey(msg, keys.Run):
		return m.runQuery()
	case matchKey(msg, keys.ExportCSV):
		return m, m.exportCmd(export.CSV)
	case matchKey(msg, keys.ExportJSON):
		return m, m.exportCmd(export.JSON)
	case matchKey(msg, keys.ClearResults):
		m.store.ClearResults()
		m.colOffset = 0
		m.gridOffset = 0
		return m, nil
	case matchKey(msg, keys.Help):
		return m.openPopup(popupHelp)
	case matchKey(msg, keys.Queries):
		return m.openPopup(popupQueries)
	case matchKey(msg, keys.History):
		return m.openPopup(popupHistory)
	case matchKey(msg, keys.ToggleView):
		mode := results.Virtual
		if m.store.Snapshot().View.ViewMode == results.Virtual {
			mode = results.Paginated
		}
		m.store.SetViewMode(mode)
		m.gridOffset = 0
		return m, nil
	case matchKey(msg, keys.ToggleTheme):
		return m.toggleTheme(), nil
	case matchKey(msg, keys.Copy):
		return m, m.copyToClipboardCmd(m.editor.Value())
	case matchKey(msg, keys.Pager):
		return m, m.openPager()
	case matchKey(msg, keys.Focus):
		return m.toggleFocus()
	}

	if m.focus == FocusEditor {
		return m.updateEditor(msg)
	}
	return m.handleResultsKey(msg)
}

func (m Model) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.editor.SetHeight(m.editorHeight())
	m.store.SetSQL(m.editor.Value())
	return m, cmd
}

// runQuery enters Loading synchronously so the spinner shows at once, then
// resolves the execution in a command.
func (m Model) runQuery() (tea.Model, tea.Cmd) {
	sql := m.editor.Value()
	m.store.SetSQL(sql)
	gen := m.store.Begin()
	m.logger.Debug("run query", "generation", gen, "sql", sql)
	return m, tea.Batch(m.queryCmd(gen, sql), m.spinner.Tick)
}

func (m Model) toggleFocus() (tea.Model, tea.Cmd) {
	if m.focus == FocusEditor {
		m.focus = FocusResults
		m.editor.Blur()
		return m, nil
	}
	m.focus = FocusEditor
	return m, m.editor.Focus()
}

func (m Model) toggleTheme() Model {
	m.themeName = config.NextTheme(m.themeName)
	InitStyles(m.cfg.Palette(m.themeName))
	m.spinner.Style = m.spinner.Style.Foreground(AccentColor())
	m.historyList = m.historyList.
		SetStyles(historyStyles()).
		SetHighlightFunc(m.highlight)
	return m
}

func (m Model) handleSearchKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.searching = false
		m.search.Blur()
		m.search.SetValue("")
		m.store.SetSearch("")
		return m, nil
	case "enter":
		m.searching = false
		m.search.Blur()
		m.debounceID++
		m.store.SetSearch(m.search.Value())
		m.gridOffset = 0
		return m, nil
	}

	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	m.debounceID++
	return m, tea.Batch(cmd, debounceCmd(m.debounceID))
}

func (m Model) handleResultsKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keys
	snap := m.store.Snapshot()
	virtualMode := snap.View.ViewMode == results.Virtual

	switch {
	case matchKey(msg, keys.Search):
		m.searching = true
		m.search.SetValue(snap.View.SearchTerm)
		m.search.CursorEnd()
		return m, tea.Batch(m.search.Focus(), textinput.Blink)

	case matchKey(msg, keys.NextPage):
		if virtualMode {
			return m.scrollBy(m.gridHeight()), nil
		}
		if p := snap.Page(); p.Page < p.TotalPages {
			m.store.SetPage(p.Page + 1)
			m.gridOffset = 0
		}
		return m, nil

	case matchKey(msg, keys.PrevPage):
		if virtualMode {
			return m.scrollBy(-m.gridHeight()), nil
		}
		if p := snap.Page(); p.Page > 1 {
			m.store.SetPage(p.Page - 1)
			m.gridOffset = 0
		}
		return m, nil

	case matchKey(msg, keys.PageSize):
		m.store.SetPageSize(m.cfg.NextPageSize(snap.View.PageSize))
		m.gridOffset = 0
		return m, nil

	case matchKey(msg, keys.Sort):
		if snap.Result != nil && m.sortCursor < len(snap.Result.Columns) {
			m.store.ToggleSort(snap.Result.Columns[m.sortCursor])
		}
		return m, nil
	}

	switch msg.String() {
	case "left", "h":
		if m.sortCursor > 0 {
			m.sortCursor--
			if m.colOffset > 0 && m.sortCursor <= m.colOffset {
				m.colOffset--
			}
		}
	case "right", "l":
		if snap.Result != nil && m.sortCursor < len(snap.Result.Columns)-1 {
			m.sortCursor++
			if m.sortCursor > 1 && m.sortCursor > m.colOffset+1 {
				m.colOffset++
			}
		}
	case "up", "k":
		if virtualMode {
			return m.scrollBy(-m.rowHeight()), nil
		}
		m.gridOffset = max(m.gridOffset-1, 0)
	case "down", "j":
		if virtualMode {
			return m.scrollBy(m.rowHeight()), nil
		}
		m.gridOffset = min(m.gridOffset+1, m.maxGridOffset(snap))
	case "g", "home":
		if virtualMode {
			m.store.SetScroll(0)
		}
		m.gridOffset = 0
	case "G", "end":
		if virtualMode {
			m.store.SetScroll(virtual.MaxScroll(m.virtualParams(len(snap.Visible()), 0)))
			return m, nil
		}
		m.gridOffset = m.maxGridOffset(snap)
	case "esc":
		return m.toggleFocus()
	}
	return m, nil
}

func (m Model) rowHeight() int {
	return max(m.cfg.Virtual.RowHeight, 1)
}

func (m Model) virtualParams(count, scroll int) virtual.Params {
	return virtual.Params{
		Count:          count,
		RowHeight:      m.rowHeight(),
		ScrollOffset:   scroll,
		ViewportHeight: m.gridHeight() - 1,
		Overscan:       m.cfg.Virtual.Overscan,
	}
}

// maxGridOffset is the last useful line offset into the paginated grid.
// The rounded table adds four lines of borders and header.
func (m Model) maxGridOffset(snap store.Snapshot) int {
	return max(len(snap.Page().Rows)+4-m.gridHeight(), 0)
}

// scrollBy moves the virtual scroll offset, clamped to the list
func (m Model) scrollBy(delta int) Model {
	snap := m.store.Snapshot()
	p := m.virtualParams(len(snap.Visible()), snap.View.ScrollOffset)
	m.store.SetScroll(min(max(p.ScrollOffset+delta, 0), virtual.MaxScroll(p)))
	return m
}

// openPopup shows a popup and registers its closer
func (m Model) openPopup(name string) (tea.Model, tea.Cmd) {
	if m.popups.TopName() == name {
		return m, nil
	}
	switch name {
	case popupHelp:
		m.showHelp = true
		m.popups.Push(name, func(m *Model) bool {
			m.showHelp = false
			return true
		})
	case popupQueries:
		m.showQueries = true
		m.queryCursor = m.selectedQueryIndex()
		m.popups.Push(name, func(m *Model) bool {
			m.showQueries = false
			return true
		})
	case popupHistory:
		m.showHistory = true
		m = m.syncHistory()
		m.popups.Push(name, func(m *Model) bool {
			m.showHistory = false
			return true
		})
	}
	return m, nil
}

func (m Model) selectedQueryIndex() int {
	id := m.store.Snapshot().SelectedQueryID
	for i, q := range m.store.Catalog().All() {
		if q.ID == id {
			return i
		}
	}
	return 0
}

func (m Model) handlePopupKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	keys := m.cfg.Keys
	if msg.String() == "esc" || msg.String() == "q" || (matchKey(msg, keys.Help) && m.popups.TopName() == popupHelp) {
		m.popups.CloseTop(&m)
		return m, nil
	}

	switch m.popups.TopName() {
	case popupQueries:
		return m.handleQueriesKey(msg)
	case popupHistory:
		return m.handleHistoryKey(msg)
	}
	return m, nil
}

func (m Model) handleQueriesKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	queries := m.store.Catalog().All()
	switch msg.String() {
	case "up", "k":
		if m.queryCursor > 0 {
			m.queryCursor--
		}
	case "down", "j":
		if m.queryCursor < len(queries)-1 {
			m.queryCursor++
		}
	case "enter":
		if m.queryCursor < len(queries) {
			q := queries[m.queryCursor]
			m.store.SelectPredefined(q.ID)
			m.editor.SetValue(q.SQL)
			m.popups.CloseTop(&m)
		}
	}
	return m, nil
}

func (m Model) handleHistoryKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "up", "k":
		m.historyList = m.historyList.MoveUp()
	case "down", "j":
		m.historyList = m.historyList.MoveDown()
	case " ":
		m.historyList = m.historyList.ToggleExpanded()
	case "enter":
		if item := m.historyList.SelectedItem(); item != nil {
			if m.store.SelectHistory(item.ID()) {
				m.editor.SetValue(item.Query())
			}
			m.popups.CloseTop(&m)
			m.focus = FocusEditor
			return m, m.editor.Focus()
		}
	case "d":
		if item := m.historyList.SelectedItem(); item != nil {
			id := item.ID()
			if m.store.RemoveHistory(id) {
				m = m.syncHistory()
				return m, m.deleteHistoryCmd(id)
			}
		}
	case "D":
		m.store.ClearHistory()
		m = m.syncHistory()
		return m, m.clearHistoryCmd()
	}
	return m, nil
}
