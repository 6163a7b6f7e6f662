package main

import (
	"bytes"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/ezquery/internal/history"
	"github.com/nhath/ezquery/internal/results"
	"github.com/nhath/ezquery/internal/source"
)

func sampleRows() ([]string, []results.Record) {
	cols := []string{"id", "city"}
	rows := []results.Record{
		{"id": results.String("1"), "city": results.String("Berlin")},
		{"id": results.String("2"), "city": results.Null()},
	}
	return cols, rows
}

func TestRenderResults_Table(t *testing.T) {
	cols, rows := sampleRows()
	var buf bytes.Buffer
	require.NoError(t, renderResults(&buf, "table", cols, rows))

	out := buf.String()
	assert.Contains(t, out, "Berlin")
	assert.Contains(t, out, "NULL")
	assert.Contains(t, out, "(2 rows)")
	assert.Less(t, strings.Index(out, "id"), strings.Index(out, "Berlin"))
}

func TestRenderResults_Markdown(t *testing.T) {
	cols, rows := sampleRows()
	var buf bytes.Buffer
	require.NoError(t, renderResults(&buf, "md", cols, rows))
	assert.Contains(t, buf.String(), "| Berlin |")
}

func TestRenderResults_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, renderResults(&buf, "table", []string{"id"}, nil))
	assert.Equal(t, "(0 rows)\n", buf.String())
}

func TestRenderResults_CSV(t *testing.T) {
	cols, rows := sampleRows()
	var buf bytes.Buffer
	require.NoError(t, renderResults(&buf, "csv", cols, rows))
	assert.Equal(t, "id,city\n1,Berlin\n2,\n", buf.String())
}

func TestRenderResults_JSON(t *testing.T) {
	cols, rows := sampleRows()
	var buf bytes.Buffer
	require.NoError(t, renderResults(&buf, "json", cols, rows))
	assert.Contains(t, buf.String(), `"city": "Berlin"`)
	assert.Contains(t, buf.String(), `"city": null`)
}

func TestRenderResults_UnknownFormat(t *testing.T) {
	var buf bytes.Buffer
	assert.Error(t, renderResults(&buf, "xml", []string{"id"}, nil))
}

func TestQueryOptionsView(t *testing.T) {
	v := queryOptions{search: "ber", sort: "city", desc: true, page: 3, pageSize: 25}.view()
	assert.Equal(t, "ber", v.SearchTerm)
	assert.Equal(t, "city", v.SortColumn)
	assert.Equal(t, results.Desc, v.SortDirection)
	assert.Equal(t, 3, v.CurrentPage)
	assert.Equal(t, 25, v.PageSize)

	all := queryOptions{page: 1}.view()
	assert.Equal(t, 0, all.PageSize)
	assert.Equal(t, results.Asc, all.SortDirection)
	assert.Empty(t, all.SortColumn)
}

func TestTokenValue(t *testing.T) {
	v, err := tokenValue(strings.NewReader(""), []string{"k", "secret"})
	require.NoError(t, err)
	assert.Equal(t, "secret", v)

	v, err = tokenValue(strings.NewReader("  piped\n"), []string{"k"})
	require.NoError(t, err)
	assert.Equal(t, "piped", v)

	_, err = tokenValue(strings.NewReader("\n"), []string{"k"})
	assert.Error(t, err)
}

func TestRenderSources(t *testing.T) {
	var buf bytes.Buffer
	renderSources(&buf, []source.Source{
		{Name: "staff", Location: "postgres://app:pw@db/hr#employees", TokenKey: "hr"},
		{Name: "orders", Location: "orders.csv"},
	})
	out := buf.String()
	assert.Contains(t, out, "postgres://***@db/hr#employees")
	assert.NotContains(t, out, "pw")
	assert.Contains(t, out, "file")
}

func TestRenderHistory(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	var buf bytes.Buffer
	renderHistory(&buf, []history.Entry{
		history.NewEntry("SELECT *\n  FROM orders", 1234, now.Add(-3*time.Minute)),
	}, 7, now)
	out := buf.String()
	assert.Contains(t, out, "3 minutes ago")
	assert.Contains(t, out, "1,234")
	assert.Contains(t, out, "SELECT * FROM orders")
	assert.Contains(t, out, "(1 of 7 entries)")

	buf.Reset()
	renderHistory(&buf, nil, 0, now)
	assert.Equal(t, "No queries executed yet\n", buf.String())
}
