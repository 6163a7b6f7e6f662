// Package table builds bubble-table grids for result pages.
package table

import (
	"strconv"
	"strings"

	"github.com/charmbracelet/lipgloss"
	bbtable "github.com/evertras/bubble-table/table"
	"github.com/mattn/go-runewidth"

	"github.com/nhath/ezquery/internal/results"
)

// Nord colors
const (
	ColorForeground = "#D8DEE9"
	ColorComment    = "#4C566A"
	ColorCyan       = "#88C0D0"
	ColorGreen      = "#A3BE8C"
	ColorOrange     = "#D08770"
	ColorPurple     = "#B48EAD"
	ColorYellow     = "#EBCB8B"
	ColorTeal       = "#8FBCBB"
)

// MaxColumnWidth caps a single column
const MaxColumnWidth = 40

// NullText is shown for missing values
const NullText = "NULL"

// Styles for the grid
type Styles struct {
	Base      lipgloss.Style
	Header    lipgloss.Style
	Highlight lipgloss.Style
	Null      lipgloss.Style
	Number    lipgloss.Style
	Bool      lipgloss.Style
	Text      lipgloss.Style
}

// DefaultStyles returns the Nord palette
func DefaultStyles() Styles {
	return Styles{
		Base:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorForeground)),
		Header:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorTeal)).Bold(true),
		Highlight: lipgloss.NewStyle().Foreground(lipgloss.Color(ColorGreen)).Bold(true),
		Null:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorComment)).Italic(true),
		Number:    lipgloss.NewStyle().Foreground(lipgloss.Color(ColorPurple)),
		Bool:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorOrange)),
		Text:      lipgloss.NewStyle().Foreground(lipgloss.Color(ColorYellow)),
	}
}

// Options controls how a page is turned into a grid
type Options struct {
	SortColumn    string
	SortDirection results.SortDirection
	// CursorColumn is the column index the sort key acts on, -1 for none
	CursorColumn int
	MaxWidth     int
	Styles       Styles
}

// New creates a bubble-table with the given styles and no built-in paging
func New(cols []bbtable.Column, s Styles) bbtable.Model {
	return bbtable.New(cols).
		WithBaseStyle(s.Base).
		HeaderStyle(s.Header).
		HighlightStyle(s.Highlight).
		WithNoPagination().
		WithFooterVisibility(false).
		Focused(false).
		BorderRounded()
}

// FromRows builds a grid for one page of rows. Rows are shown in the order
// given; sorting and paging have already happened.
func FromRows(columns []string, rows []results.Record, o Options) bbtable.Model {
	if len(columns) == 0 {
		return bbtable.New(nil)
	}

	titles := make([]string, len(columns))
	for i, c := range columns {
		titles[i] = HeaderTitle(c, i == o.CursorColumn, c == o.SortColumn, o.SortDirection)
	}

	widths := ColumnWidths(titles, columns, rows)
	cols := make([]bbtable.Column, len(columns))
	for i, c := range columns {
		cols[i] = bbtable.NewColumn(c, titles[i], widths[i])
	}

	tableRows := make([]bbtable.Row, 0, len(rows))
	for _, r := range rows {
		data := bbtable.RowData{}
		for _, c := range columns {
			v := r.Get(c)
			data[c] = bbtable.NewStyledCell(CellText(v), ValueStyle(v, o.Styles))
		}
		tableRows = append(tableRows, bbtable.NewRow(data))
	}

	t := New(cols, o.Styles).WithRows(tableRows)
	if o.MaxWidth > 0 {
		t = t.WithMaxTotalWidth(o.MaxWidth).WithHorizontalFreezeColumnCount(1)
	}
	return t
}

// HeaderTitle decorates a column name with its sort arrow and cursor marker
func HeaderTitle(col string, cursor, sorted bool, dir results.SortDirection) string {
	title := col
	if sorted {
		if dir == results.Desc {
			title += " ▼"
		} else {
			title += " ▲"
		}
	}
	if cursor {
		title = "[" + title + "]"
	}
	return title
}

// CellText is the display form of v
func CellText(v results.Value) string {
	if v.IsNull() {
		return NullText
	}
	return v.String()
}

// ColumnWidths sizes each column to its widest cell or title, capped at
// MaxColumnWidth, plus padding.
func ColumnWidths(titles, columns []string, rows []results.Record) []int {
	widths := make([]int, len(columns))
	for i, t := range titles {
		widths[i] = runewidth.StringWidth(t)
	}
	for _, r := range rows {
		for i, c := range columns {
			if w := runewidth.StringWidth(CellText(r.Get(c))); w > widths[i] {
				widths[i] = w
			}
		}
	}
	for i := range widths {
		widths[i] = min(widths[i], MaxColumnWidth) + 2
	}
	return widths
}

// ValueStyle picks a style from the value's kind, or from its content when
// the value is an untyped string.
func ValueStyle(v results.Value, s Styles) lipgloss.Style {
	switch v.Kind() {
	case results.KindNull:
		return s.Null
	case results.KindNumber:
		return s.Number
	case results.KindBool:
		return s.Bool
	}

	str := v.String()
	if _, err := strconv.ParseFloat(str, 64); err == nil {
		return s.Number
	}
	if lower := strings.ToLower(str); lower == "true" || lower == "false" {
		return s.Bool
	}
	return s.Text
}
