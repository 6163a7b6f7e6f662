// Package query extracts the two clauses ezquery understands from a
// free-form query string: the table after FROM and the row cap after LIMIT.
// Everything else in the text is ignored.
package query

import (
	"math"
	"regexp"
	"strconv"
	"strings"
)

var (
	fromRe  = regexp.MustCompile(`(?i)\bFROM\s+(\w+)`)
	limitRe = regexp.MustCompile(`(?i)\bLIMIT\s+(\d+)`)
)

// Parsed is the result of Parse. HasTable and HasLimit report whether the
// clause was present.
type Parsed struct {
	Table    string
	HasTable bool
	Limit    int
	HasLimit bool
}

// Parse never fails; a missing table is reported through HasTable so the
// caller decides how to surface it.
func Parse(sql string) Parsed {
	var p Parsed

	if m := fromRe.FindStringSubmatch(sql); m != nil {
		p.Table = strings.ToLower(m[1])
		p.HasTable = true
	}

	if m := limitRe.FindStringSubmatch(sql); m != nil {
		n, err := strconv.Atoi(m[1])
		if err != nil {
			// only digits matched, so the sole failure is overflow
			n = math.MaxInt
		}
		p.Limit = n
		p.HasLimit = true
	}

	return p
}

// Apply returns how many of n rows survive the LIMIT clause
func (p Parsed) Apply(n int) int {
	if !p.HasLimit {
		return n
	}
	return min(p.Limit, n)
}

// TableName returns the lower-cased table name or a *ParseError
func (p Parsed) TableName() (string, error) {
	if !p.HasTable {
		return "", &ParseError{}
	}
	return p.Table, nil
}
