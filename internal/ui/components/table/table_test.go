package table

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/nhath/ezquery/internal/results"
)

func TestHeaderTitle(t *testing.T) {
	assert.Equal(t, "name", HeaderTitle("name", false, false, results.Asc))
	assert.Equal(t, "name ▲", HeaderTitle("name", false, true, results.Asc))
	assert.Equal(t, "name ▼", HeaderTitle("name", false, true, results.Desc))
	assert.Equal(t, "[name ▼]", HeaderTitle("name", true, true, results.Desc))
	assert.Equal(t, "[city]", HeaderTitle("city", true, false, results.Asc))
}

func TestColumnWidths(t *testing.T) {
	rows := []results.Record{
		{"id": results.String("1"), "name": results.String("Alfreds Futterkiste")},
		{"id": results.String("22"), "name": results.Null()},
		{"id": results.String(strings.Repeat("x", 80))},
	}
	cols := []string{"name", "id"}
	got := ColumnWidths(cols, cols, rows)
	assert.Equal(t, []int{len("Alfreds Futterkiste") + 2, MaxColumnWidth + 2}, got)
}

func TestColumnWidths_WideRunes(t *testing.T) {
	rows := []results.Record{{"city": results.String("東京")}}
	got := ColumnWidths([]string{"c"}, []string{"city"}, rows)
	assert.Equal(t, []int{4 + 2}, got)
}

func TestValueStyle(t *testing.T) {
	s := DefaultStyles()
	assert.Equal(t, s.Null, ValueStyle(results.Null(), s))
	assert.Equal(t, s.Number, ValueStyle(results.String("12.5"), s))
	assert.Equal(t, s.Number, ValueStyle(results.Number(3), s))
	assert.Equal(t, s.Bool, ValueStyle(results.String("TRUE"), s))
	assert.Equal(t, s.Text, ValueStyle(results.String("Berlin"), s))
}

func TestCellText(t *testing.T) {
	assert.Equal(t, NullText, CellText(results.Null()))
	assert.Equal(t, "Berlin", CellText(results.String("Berlin")))
}

func TestFromRows_RendersCells(t *testing.T) {
	rows := []results.Record{
		{"id": results.String("1"), "city": results.String("Berlin")},
		{"id": results.String("2"), "city": results.String("Madrid")},
	}
	view := FromRows([]string{"id", "city"}, rows, Options{
		SortColumn:    "city",
		SortDirection: results.Asc,
		CursorColumn:  1,
		Styles:        DefaultStyles(),
	}).View()

	assert.Contains(t, view, "Berlin")
	assert.Contains(t, view, "Madrid")
	assert.Contains(t, view, "[city ▲]")
}
