package results

import "time"

// Record is one row keyed by column name. A missing key reads as null.
type Record map[string]Value

// Get returns the value of col, or null when the record has no such key
func (r Record) Get(col string) Value {
	if v, ok := r[col]; ok {
		return v
	}
	return Null()
}

// ResultSet is the complete output of one query execution. It is built
// once and replaced wholesale by the next execution, never patched.
type ResultSet struct {
	Columns         []string
	Rows            []Record
	RowCount        int
	ExecutionTimeMs int64
}

// NewResultSet builds a ResultSet. columns is the authoritative key order
// of every row; RowCount always equals len(rows).
func NewResultSet(columns []string, rows []Record, elapsed time.Duration) *ResultSet {
	return &ResultSet{
		Columns:         columns,
		Rows:            rows,
		RowCount:        len(rows),
		ExecutionTimeMs: elapsed.Milliseconds(),
	}
}

// HasColumn reports whether col is one of the result columns
func (rs *ResultSet) HasColumn(col string) bool {
	if rs == nil {
		return false
	}
	for _, c := range rs.Columns {
		if c == col {
			return true
		}
	}
	return false
}

// Ordered returns the values of r in the order of columns
func (r Record) Ordered(columns []string) []Value {
	out := make([]Value, len(columns))
	for i, c := range columns {
		out[i] = r.Get(c)
	}
	return out
}
