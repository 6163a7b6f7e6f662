package ui

import (
	"context"
	"errors"
	"os"
	"os/exec"
	"strings"
	"time"

	"github.com/atotto/clipboard"
	tea "github.com/charmbracelet/bubbletea"

	"github.com/nhath/ezquery/internal/export"
)

const statusTTL = 4 * time.Second

// waitForStore blocks until the store publishes a change
func waitForStore(ch <-chan struct{}) tea.Cmd {
	return func() tea.Msg {
		if _, ok := <-ch; !ok {
			return nil
		}
		return StoreChangedMsg{}
	}
}

// queryCmd runs the execution for generation gen off the UI goroutine
func (m Model) queryCmd(gen uint64, sql string) tea.Cmd {
	ex := m.exec
	return func() tea.Msg {
		_, err := ex.Run(context.Background(), gen, sql)
		return QueryFinishedMsg{Gen: gen, Err: err}
	}
}

// exportCmd writes the visible rows to a timestamped file
func (m Model) exportCmd(f export.Format) tea.Cmd {
	snap := m.store.Snapshot()
	dir := m.cfg.ExportDir
	return func() tea.Msg {
		if snap.Result == nil {
			return ExportCompleteMsg{Err: errors.New("nothing to export")}
		}
		path, err := export.ToFile(dir, f, snap.Result.Columns, snap.Visible(), time.Now())
		return ExportCompleteMsg{Path: path, Err: err}
	}
}

// copyToClipboardCmd copies text to the system clipboard
func (m Model) copyToClipboardCmd(text string) tea.Cmd {
	return func() tea.Msg {
		return ClipboardCopiedMsg{Err: clipboard.WriteAll(text)}
	}
}

// clearHistoryCmd wipes the persisted history
func (m Model) clearHistoryCmd() tea.Cmd {
	hs := m.historyStore
	if hs == nil {
		return nil
	}
	return func() tea.Msg {
		return HistoryClearedMsg{Err: hs.Clear()}
	}
}

// deleteHistoryCmd removes one persisted entry
func (m Model) deleteHistoryCmd(id string) tea.Cmd {
	hs := m.historyStore
	if hs == nil {
		return nil
	}
	return func() tea.Msg {
		return HistoryDeletedMsg{Err: hs.Delete(id)}
	}
}

// debounceCmd fires a DebounceMsg for id after a short pause
func debounceCmd(id int) tea.Cmd {
	return tea.Tick(200*time.Millisecond, func(time.Time) tea.Msg {
		return DebounceMsg{ID: id}
	})
}

// pagerCommand resolves the configured pager, then $PAGER, then less
func (m Model) pagerCommand() []string {
	if p := strings.Fields(m.cfg.Pager); len(p) > 0 {
		return p
	}
	if p := strings.Fields(os.Getenv("PAGER")); len(p) > 0 {
		return p
	}
	return []string{"less", "-S"}
}

// openPager opens the visible rows as CSV in an external pager
func (m Model) openPager() tea.Cmd {
	snap := m.store.Snapshot()
	if snap.Result == nil || snap.Result.RowCount == 0 {
		return nil
	}

	f, err := os.CreateTemp("", "ezquery-*.csv")
	if err != nil {
		return func() tea.Msg { return PagerFinishedMsg{Err: err} }
	}
	defer f.Close()

	if err := export.WriteCSV(f, snap.Result.Columns, snap.Visible()); err != nil {
		os.Remove(f.Name())
		return func() tea.Msg { return PagerFinishedMsg{Err: err} }
	}

	parts := m.pagerCommand()
	args := append(parts[1:], f.Name())

	c := exec.Command(parts[0], args...)
	return tea.ExecProcess(c, func(err error) tea.Msg {
		os.Remove(f.Name())
		return PagerFinishedMsg{Err: err}
	})
}

// setStatus shows a transient message in the status bar
func (m Model) setStatus(msg string, isErr bool) (Model, tea.Cmd) {
	m.statusID++
	m.statusMsg = msg
	m.statusErr = isErr
	id := m.statusID
	return m, tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return clearStatusMsg{ID: id}
	})
}
