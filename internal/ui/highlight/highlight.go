// Package highlight renders SQL with terminal colours.
package highlight

import (
	"bytes"
	"strings"

	"github.com/alecthomas/chroma/v2/quick"
)

// StyleFor maps a UI theme name to a chroma style
func StyleFor(theme string) string {
	if theme == "light" {
		return "github"
	}
	return "nord"
}

// SQL returns sql coloured for a 256-colour terminal using the named chroma
// style. The input comes back unchanged if highlighting fails.
func SQL(sql, style string) string {
	if strings.TrimSpace(sql) == "" {
		return sql
	}
	var buf bytes.Buffer
	if err := quick.Highlight(&buf, sql, "sql", "terminal256", style); err != nil {
		return sql
	}
	out := buf.String()

	// the lexer may append a trailing newline the query never had
	if strings.Count(out, "\n") > strings.Count(sql, "\n") {
		i := strings.LastIndex(out, "\n")
		out = out[:i] + out[i+1:]
	}
	return out
}
