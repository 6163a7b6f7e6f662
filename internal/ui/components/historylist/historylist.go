// Package historylist provides a scrollable, selectable list of executed
// queries for the history overlay.
package historylist

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Item represents a single list item
type Item interface {
	ID() string
	Query() string
	QueryPreview(maxLen int) string
	RowCount() string
	ExecutedAtFormatted() string
}

// Styles for the list
type Styles struct {
	Item     lipgloss.Style
	Selected lipgloss.Style
	Prompt   lipgloss.Style
	Meta     lipgloss.Style
	Empty    lipgloss.Style
}

// DefaultStyles returns default styling
func DefaultStyles() Styles {
	textFaint := lipgloss.Color("#4C566A")
	return Styles{
		Item:     lipgloss.NewStyle().PaddingLeft(1),
		Selected: lipgloss.NewStyle().PaddingLeft(1).Background(lipgloss.Color("#434C5E")),
		Prompt:   lipgloss.NewStyle().Foreground(lipgloss.Color("#A3BE8C")).Bold(true),
		Meta:     lipgloss.NewStyle().Foreground(textFaint),
		Empty:    lipgloss.NewStyle().Foreground(textFaint).Italic(true),
	}
}

// Model represents the list state
type Model struct {
	items    []Item
	selected int
	expanded map[string]bool
	width    int
	height   int
	viewport viewport.Model
	styles   Styles

	highlightFunc func(string) string
}

// New creates a new list model
func New() Model {
	return Model{
		expanded: make(map[string]bool),
		viewport: viewport.New(80, 10),
		styles:   DefaultStyles(),
	}
}

// SetItems replaces the items in the list, most recent first
func (m Model) SetItems(items []Item) Model {
	m.items = items
	if m.selected >= len(items) {
		m.selected = max(len(items)-1, 0)
	}
	m.updateViewport()
	return m
}

// SetSize sets the component dimensions
func (m Model) SetSize(width, height int) Model {
	m.width = width
	m.height = height
	m.viewport.Width = width
	m.viewport.Height = height
	m.updateViewport()
	return m
}

// SetStyles sets custom styles
func (m Model) SetStyles(s Styles) Model {
	m.styles = s
	m.updateViewport()
	return m
}

// SetHighlightFunc sets a syntax highlighting function for query text
func (m Model) SetHighlightFunc(fn func(string) string) Model {
	m.highlightFunc = fn
	m.updateViewport()
	return m
}

// Len returns the number of items
func (m Model) Len() int {
	return len(m.items)
}

// Selected returns the currently selected index
func (m Model) Selected() int {
	return m.selected
}

// SelectedItem returns the currently selected item
func (m Model) SelectedItem() Item {
	if m.selected >= 0 && m.selected < len(m.items) {
		return m.items[m.selected]
	}
	return nil
}

// IsExpanded returns whether an item shows its full query
func (m Model) IsExpanded(id string) bool {
	return m.expanded[id]
}

// ToggleExpanded toggles expansion for the selected item
func (m Model) ToggleExpanded() Model {
	if item := m.SelectedItem(); item != nil {
		m.expanded[item.ID()] = !m.expanded[item.ID()]
		m.updateViewport()
		m = m.ensureVisible()
	}
	return m
}

// MoveUp moves selection up
func (m Model) MoveUp() Model {
	if m.selected > 0 {
		m.selected--
		m.updateViewport()
		m = m.ensureVisible()
	}
	return m
}

// MoveDown moves selection down
func (m Model) MoveDown() Model {
	if m.selected < len(m.items)-1 {
		m.selected++
		m.updateViewport()
		m = m.ensureVisible()
	}
	return m
}

// Update handles messages
func (m Model) Update(msg tea.Msg) (Model, tea.Cmd) {
	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// View renders the list
func (m Model) View() string {
	return m.viewport.View()
}

func (m *Model) updateViewport() {
	if len(m.items) == 0 {
		m.viewport.SetContent(m.styles.Empty.Render("No queries executed yet"))
		return
	}
	sections := make([]string, 0, len(m.items))
	for i := range m.items {
		sections = append(sections, m.renderItem(i))
	}
	m.viewport.SetContent(lipgloss.JoinVertical(lipgloss.Left, sections...))
}

func (m *Model) renderItem(i int) string {
	if i < 0 || i >= len(m.items) {
		return ""
	}
	item := m.items[i]

	style := m.styles.Item
	if i == m.selected {
		style = m.styles.Selected
	}
	style = style.Width(max(m.width-2, 1))

	queryText := item.QueryPreview(max(m.width-6, 8))
	if m.expanded[item.ID()] {
		queryText = item.Query()
	}
	if m.highlightFunc != nil {
		queryText = m.highlightFunc(queryText)
	}

	var content strings.Builder
	content.WriteString(m.styles.Prompt.Render("> "))
	content.WriteString(queryText)
	content.WriteString("\n")
	content.WriteString(m.styles.Meta.Render(fmt.Sprintf("  %s rows | %s", item.RowCount(), item.ExecutedAtFormatted())))

	return style.Render(content.String())
}

// ensureVisible keeps the selected item in view
func (m Model) ensureVisible() Model {
	if len(m.items) == 0 {
		return m
	}

	top := 0
	for i := 0; i < m.selected; i++ {
		top += lipgloss.Height(m.renderItem(i))
	}
	bottom := top + lipgloss.Height(m.renderItem(m.selected))

	vTop := m.viewport.YOffset
	vBottom := vTop + m.viewport.Height

	if top < vTop {
		m.viewport.SetYOffset(top)
	} else if bottom > vBottom {
		m.viewport.SetYOffset(bottom - m.viewport.Height)
	}
	return m
}
