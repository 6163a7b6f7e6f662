package highlight

import (
	"regexp"
	"testing"

	"github.com/stretchr/testify/assert"
)

var ansi = regexp.MustCompile(`\x1b\[[0-9;]*m`)

func TestSQL(t *testing.T) {
	in := "SELECT * FROM customers LIMIT 10"
	out := SQL(in, StyleFor("dark"))

	assert.Contains(t, out, "\x1b[")
	assert.Equal(t, in, ansi.ReplaceAllString(out, ""))
}

func TestSQL_Multiline(t *testing.T) {
	in := "SELECT *\nFROM orders"
	out := SQL(in, StyleFor("light"))
	assert.Equal(t, in, ansi.ReplaceAllString(out, ""))
}

func TestSQL_Blank(t *testing.T) {
	assert.Equal(t, "", SQL("", "nord"))
	assert.Equal(t, "  ", SQL("  ", "nord"))
}

func TestStyleFor(t *testing.T) {
	assert.Equal(t, "nord", StyleFor("dark"))
	assert.Equal(t, "github", StyleFor("light"))
	assert.Equal(t, "nord", StyleFor(""))
}
