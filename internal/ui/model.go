package ui

import (
	"log/slog"
	"time"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textarea"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/dustin/go-humanize"

	"github.com/nhath/ezquery/internal/config"
	"github.com/nhath/ezquery/internal/executor"
	"github.com/nhath/ezquery/internal/history"
	"github.com/nhath/ezquery/internal/store"
	"github.com/nhath/ezquery/internal/ui/components/historylist"
	"github.com/nhath/ezquery/internal/ui/highlight"
)

// Focus is the pane receiving plain keys
type Focus int

const (
	FocusEditor Focus = iota
	FocusResults
)

// Popup names used on the popup stack
const (
	popupHelp    = "help"
	popupQueries = "queries"
	popupHistory = "history"
)

// Model is the Bubble Tea model for the query workbench. All session state
// lives in the store; the model only holds widget state.
type Model struct {
	cfg          *config.Config
	store        *store.Store
	exec         *executor.Executor
	historyStore *history.Store
	logger       *slog.Logger
	sub          <-chan struct{}
	now          func() time.Time

	editor    textarea.Model
	search    textinput.Model
	searching bool
	spinner   spinner.Model
	focus     Focus

	width  int
	height int

	popups      *PopupStack
	showHelp    bool
	showQueries bool
	showHistory bool
	queryCursor int
	historyList historylist.Model

	sortCursor int
	colOffset  int
	gridOffset int

	themeName  string
	statusMsg  string
	statusErr  bool
	statusID   int
	debounceID int
}

// NewModel wires the UI to a store and executor. historyStore may be nil
// when history is not persisted.
func NewModel(cfg *config.Config, st *store.Store, exec *executor.Executor, historyStore *history.Store, logger *slog.Logger) Model {
	if logger == nil {
		logger = slog.Default()
	}

	themeName := cfg.ThemeName
	if themeName == "" {
		themeName = "dark"
	}
	InitStyles(cfg.Palette(themeName))

	ed := textarea.New()
	ed.Placeholder = "SELECT * FROM customers LIMIT 10"
	ed.ShowLineNumbers = false
	ed.CharLimit = 5000
	ed.SetHeight(3)
	ed.SetWidth(80)
	ed.FocusedStyle.CursorLine = lipgloss.NewStyle()
	ed.BlurredStyle.CursorLine = lipgloss.NewStyle()
	ed.FocusedStyle.Placeholder = lipgloss.NewStyle().Foreground(TextFaint())
	ed.BlurredStyle.Placeholder = lipgloss.NewStyle().Foreground(TextFaint())
	ed.SetValue(st.Snapshot().CurrentSQL)
	ed.Focus()

	si := textinput.New()
	si.Prompt = "/ "
	si.Placeholder = "Search results..."
	si.CharLimit = 100
	si.Width = 40

	sp := spinner.New(spinner.WithSpinner(spinner.Dot))
	sp.Style = lipgloss.NewStyle().Foreground(AccentColor())

	m := Model{
		cfg:          cfg,
		store:        st,
		exec:         exec,
		historyStore: historyStore,
		logger:       logger,
		sub:          st.Subscribe(),
		now:          time.Now,
		editor:       ed,
		search:       si,
		spinner:      sp,
		popups:       NewPopupStack(),
		themeName:    themeName,
		historyList: historylist.New().
			SetStyles(historyStyles()),
	}
	m.historyList = m.historyList.SetHighlightFunc(m.highlight)
	return m
}

// Init starts the cursor blink and the store subscription
func (m Model) Init() tea.Cmd {
	return tea.Batch(textarea.Blink, waitForStore(m.sub))
}

// Close detaches the model from the store
func (m Model) Close() {
	m.store.Unsubscribe(m.sub)
}

func (m Model) highlight(sql string) string {
	return highlight.SQL(sql, highlight.StyleFor(m.themeName))
}

// historyItem adapts a history entry to the list component
type historyItem struct {
	entry history.Entry
	now   time.Time
}

func (h historyItem) ID() string                     { return h.entry.ID }
func (h historyItem) Query() string                  { return h.entry.SQL }
func (h historyItem) QueryPreview(maxLen int) string { return h.entry.Preview(maxLen) }
func (h historyItem) RowCount() string               { return humanize.Comma(int64(h.entry.RowCount)) }
func (h historyItem) ExecutedAtFormatted() string {
	return humanize.RelTime(h.entry.Timestamp, h.now, "ago", "from now")
}

// syncHistory refreshes the history list from the store
func (m Model) syncHistory() Model {
	entries := m.store.Snapshot().History.Entries()
	items := make([]historylist.Item, len(entries))
	now := m.now()
	for i, e := range entries {
		items[i] = historyItem{entry: e, now: now}
	}
	m.historyList = m.historyList.SetItems(items)
	return m
}

// editorHeight grows with the query up to a third of the screen
func (m Model) editorHeight() int {
	lines := m.editor.LineCount()
	return min(max(lines, 3), max(m.height/3, 3))
}

// gridHeight is the number of lines available to result rows
func (m Model) gridHeight() int {
	// editor + its border, search line, footer, status bar
	chrome := m.editorHeight() + 1 + 1 + 1 + 1
	return max(m.height-chrome, 3)
}
