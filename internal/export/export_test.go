package export

import (
	"bytes"
	"encoding/csv"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/nhath/ezquery/internal/results"
)

var (
	columns = []string{"id", "name", "note"}
	rows    = []results.Record{
		{"id": results.String("1"), "name": results.String("Alfreds, Futterkiste"), "note": results.Null()},
		{"id": results.String("2"), "name": results.String(`Say "hi"`), "note": results.String("line1\nline2")},
	}
)

func TestWriteCSV(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, columns, rows))

	records, err := csv.NewReader(&buf).ReadAll()
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, columns, records[0])
	assert.Equal(t, []string{"1", "Alfreds, Futterkiste", ""}, records[1])
	assert.Equal(t, []string{"2", `Say "hi"`, "line1\nline2"}, records[2])
}

func TestWriteCSV_HeaderOnly(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, columns, nil))
	assert.Equal(t, "id,name,note\n", buf.String())
}

func TestWriteJSON(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, columns, rows))

	want := `[
  {
    "id": "1",
    "name": "Alfreds, Futterkiste",
    "note": null
  },
  {
    "id": "2",
    "name": "Say \"hi\"",
    "note": "line1\nline2"
  }
]
`
	assert.Equal(t, want, buf.String())
}

func TestWriteJSON_Empty(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, WriteJSON(&buf, columns, nil))
	assert.Equal(t, "[]\n", buf.String())
}

func TestWriteJSON_Kinds(t *testing.T) {
	var buf bytes.Buffer
	rec := []results.Record{{"n": results.Number(2.5), "b": results.Bool(true)}}
	require.NoError(t, WriteJSON(&buf, []string{"n", "b"}, rec))
	assert.JSONEq(t, `[{"n": 2.5, "b": true}]`, buf.String())
}

func TestFilename(t *testing.T) {
	at := time.UnixMilli(1712345678901)
	assert.Equal(t, "query-results-1712345678901.csv", Filename(CSV, at))
	assert.Equal(t, "query-results-1712345678901.json", Filename(JSON, at))
}

func TestParseFormat(t *testing.T) {
	f, err := ParseFormat("JSON")
	require.NoError(t, err)
	assert.Equal(t, JSON, f)

	_, err = ParseFormat("xml")
	assert.Error(t, err)
}

func TestToFile(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	at := time.UnixMilli(1000)

	path, err := ToFile(dir, CSV, columns, rows, at)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(dir, "query-results-1000.csv"), path)

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), "Alfreds, Futterkiste")
}
