package main

import (
	"fmt"
	"io"

	"github.com/jedib0t/go-pretty/v6/table"

	"github.com/nhath/ezquery/internal/export"
	"github.com/nhath/ezquery/internal/results"
)

const nullText = "NULL"

// renderResults writes rows in the requested output format. "table" and
// "md" are terminal renderings; csv and json share the export encoders.
func renderResults(w io.Writer, format string, columns []string, rows []results.Record) error {
	switch format {
	case "", "table":
		return renderTable(w, columns, rows, false)
	case "md", "markdown":
		return renderTable(w, columns, rows, true)
	}

	f, err := export.ParseFormat(format)
	if err != nil {
		return err
	}
	return export.Write(w, f, columns, rows)
}

func renderTable(w io.Writer, columns []string, rows []results.Record, markdown bool) error {
	if len(rows) == 0 {
		_, _ = fmt.Fprintln(w, "(0 rows)")
		return nil
	}

	t := table.NewWriter()
	t.SetOutputMirror(w)
	t.SetStyle(table.StyleLight)

	header := make(table.Row, len(columns))
	for i, col := range columns {
		header[i] = col
	}
	t.AppendHeader(header)

	for _, r := range rows {
		row := make(table.Row, len(columns))
		for i, v := range r.Ordered(columns) {
			if v.IsNull() {
				row[i] = nullText
				continue
			}
			row[i] = v.String()
		}
		t.AppendRow(row)
	}

	if markdown {
		t.RenderMarkdown()
	} else {
		t.Render()
	}
	_, _ = fmt.Fprintf(w, "(%d rows)\n", len(rows))
	return nil
}
