package source

import (
	"bufio"
	"encoding/csv"
	"errors"
	"io"
	"strconv"
	"strings"

	"github.com/nhath/ezquery/internal/results"
)

const bom = "\ufeff"

// DecodeCSV reads a header row followed by records. Values stay strings.
// Short rows leave trailing columns null and extra fields are dropped.
// A repeated header name gets a numeric suffix: id, id_2, id_3.
func DecodeCSV(r io.Reader) (*Dataset, error) {
	cr := csv.NewReader(bufio.NewReader(r))
	cr.FieldsPerRecord = -1
	cr.LazyQuotes = true
	cr.ReuseRecord = false

	header, err := cr.Read()
	if errors.Is(err, io.EOF) {
		return &Dataset{}, nil
	}
	if err != nil {
		return nil, err
	}
	if len(header) > 0 {
		header[0] = strings.TrimPrefix(header[0], bom)
	}

	header = uniqueColumns(header)

	ds := &Dataset{Columns: header}
	for {
		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, err
		}
		if blank(fields) {
			continue
		}

		rec := make(results.Record, len(header))
		for i, col := range header {
			if i < len(fields) {
				rec[col] = results.String(fields[i])
			} else {
				rec[col] = results.Null()
			}
		}
		ds.Records = append(ds.Records, rec)
	}
	return ds, nil
}

// uniqueColumns renames repeated names so every column has its own key.
// Generated names never take a name that appears in the header.
func uniqueColumns(header []string) []string {
	seen := make(map[string]bool, len(header))
	for _, col := range header {
		seen[col] = true
	}

	out := make([]string, len(header))
	used := make(map[string]bool, len(header))
	for i, col := range header {
		name := col
		if used[name] {
			for n := 2; ; n++ {
				name = col + "_" + strconv.Itoa(n)
				if !used[name] && !seen[name] {
					break
				}
			}
		}
		used[name] = true
		out[i] = name
	}
	return out
}

// encoding/csv already drops empty lines; a line of only whitespace is
// read as a single field and treated the same way.
func blank(fields []string) bool {
	return len(fields) == 1 && strings.TrimSpace(fields[0]) == ""
}
