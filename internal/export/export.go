// Package export writes result rows to CSV or JSON
package export

import (
	"bytes"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/nhath/ezquery/internal/results"
)

// Format is an export file format
type Format string

const (
	CSV  Format = "csv"
	JSON Format = "json"
)

// ParseFormat accepts "csv" or "json" in any case
func ParseFormat(s string) (Format, error) {
	switch Format(strings.ToLower(s)) {
	case CSV:
		return CSV, nil
	case JSON:
		return JSON, nil
	default:
		return "", fmt.Errorf("unknown export format %q", s)
	}
}

// Write encodes rows in format f. Columns fix the field order of every row.
func Write(w io.Writer, f Format, columns []string, rows []results.Record) error {
	switch f {
	case CSV:
		return WriteCSV(w, columns, rows)
	case JSON:
		return WriteJSON(w, columns, rows)
	default:
		return fmt.Errorf("unknown export format %q", f)
	}
}

// WriteCSV writes a header line and one record per row. Nulls are empty cells.
func WriteCSV(w io.Writer, columns []string, rows []results.Record) error {
	cw := csv.NewWriter(w)
	if err := cw.Write(columns); err != nil {
		return err
	}

	line := make([]string, len(columns))
	for _, row := range rows {
		for i, v := range row.Ordered(columns) {
			line[i] = v.String()
		}
		if err := cw.Write(line); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteJSON writes the rows as an indented array of objects whose keys
// follow column order. Nulls encode as null.
func WriteJSON(w io.Writer, columns []string, rows []results.Record) error {
	// keys are JSON-encoded once and reused for every row
	keys := make([][]byte, len(columns))
	for i, c := range columns {
		k, err := json.Marshal(c)
		if err != nil {
			return err
		}
		keys[i] = k
	}

	var compact bytes.Buffer
	compact.WriteByte('[')
	for r, row := range rows {
		if r > 0 {
			compact.WriteByte(',')
		}
		compact.WriteByte('{')
		for i, v := range row.Ordered(columns) {
			if i > 0 {
				compact.WriteByte(',')
			}
			val, err := json.Marshal(v.Raw())
			if err != nil {
				return err
			}
			compact.Write(keys[i])
			compact.WriteByte(':')
			compact.Write(val)
		}
		compact.WriteByte('}')
	}
	compact.WriteByte(']')

	var out bytes.Buffer
	if err := json.Indent(&out, compact.Bytes(), "", "  "); err != nil {
		return err
	}
	out.WriteByte('\n')
	_, err := out.WriteTo(w)
	return err
}

// Filename returns query-results-<unix-millis>.<ext>
func Filename(f Format, t time.Time) string {
	return fmt.Sprintf("query-results-%d.%s", t.UnixMilli(), f)
}

// ToFile writes rows into dir under a timestamped name and returns the path
func ToFile(dir string, f Format, columns []string, rows []results.Record, now time.Time) (string, error) {
	if dir == "" {
		cwd, err := os.Getwd()
		if err != nil {
			cwd = "."
		}
		dir = cwd
	}
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", err
	}

	path := filepath.Join(dir, Filename(f, now))
	file, err := os.Create(path)
	if err != nil {
		return "", err
	}

	if err := Write(file, f, columns, rows); err != nil {
		file.Close()
		return "", err
	}
	if err := file.Close(); err != nil {
		return "", err
	}
	return path, nil
}
