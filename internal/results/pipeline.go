package results

import (
	"slices"
	"strings"
)

// Page is the visible slice of a result set after filter, sort and paginate
type Page struct {
	Rows          []Record
	TotalFiltered int
	TotalPages    int
	Page          int // effective 1-based page, never past TotalPages
}

// StartRow returns the 1-based index of the first visible row, 0 when empty
func (p Page) StartRow(pageSize int) int {
	if len(p.Rows) == 0 {
		return 0
	}
	if pageSize <= 0 {
		return 1
	}
	return (p.Page-1)*pageSize + 1
}

// EndRow returns the 1-based index of the last visible row, 0 when empty
func (p Page) EndRow(pageSize int) int {
	if len(p.Rows) == 0 {
		return 0
	}
	return p.StartRow(pageSize) + len(p.Rows) - 1
}

// Transform runs filter, sort and paginate over rs for the view v.
// The input is never mutated.
func Transform(rs *ResultSet, v ViewState) Page {
	rows := Filtered(rs, v)
	total := TotalPages(len(rows), v.PageSize)

	page := v.CurrentPage
	if page > total {
		page = total
	}
	if page < 1 {
		page = 1
	}

	return Page{
		Rows:          Paginate(rows, page, v.PageSize),
		TotalFiltered: len(rows),
		TotalPages:    total,
		Page:          page,
	}
}

// Filtered returns the filtered and sorted rows without pagination
func Filtered(rs *ResultSet, v ViewState) []Record {
	if rs == nil {
		return nil
	}
	rows := Filter(rs, v.SearchTerm)
	if v.SortColumn != "" {
		rows = Sort(rows, v.SortColumn, v.SortDirection)
	}
	return rows
}

// Filter keeps the rows where at least one column's displayed value contains
// term, ignoring case. An empty term keeps every row.
func Filter(rs *ResultSet, term string) []Record {
	if rs == nil {
		return nil
	}
	if term == "" {
		return slices.Clone(rs.Rows)
	}

	needle := fold(term)
	out := make([]Record, 0, len(rs.Rows))
	for _, row := range rs.Rows {
		if matches(row, rs.Columns, needle) {
			out = append(out, row)
		}
	}
	return out
}

func matches(row Record, columns []string, needle string) bool {
	for _, col := range columns {
		v := row.Get(col)
		if v.IsNull() {
			continue
		}
		if strings.Contains(fold(v.String()), needle) {
			return true
		}
	}
	return false
}

// Sort returns a stably sorted copy of rows ordered by column. Nulls sort
// after every non-null value in both directions.
func Sort(rows []Record, column string, dir SortDirection) []Record {
	type keyed struct {
		key Value
		row Record
	}

	// fold string keys once instead of per comparison
	ks := make([]keyed, len(rows))
	for i, r := range rows {
		ks[i] = keyed{key: r.Get(column).folded(), row: r}
	}

	slices.SortStableFunc(ks, func(a, b keyed) int {
		an, bn := a.key.IsNull(), b.key.IsNull()
		switch {
		case an && bn:
			return 0
		case an:
			return 1
		case bn:
			return -1
		}
		c := compareValues(a.key, b.key)
		if dir == Desc {
			return -c
		}
		return c
	})

	out := make([]Record, len(ks))
	for i, k := range ks {
		out[i] = k.row
	}
	return out
}

// Paginate returns the rows of the 1-based page. A non-positive pageSize
// means everything is on one page.
func Paginate(rows []Record, page, pageSize int) []Record {
	if pageSize <= 0 {
		return rows
	}
	if page < 1 {
		page = 1
	}
	start := (page - 1) * pageSize
	if start >= len(rows) {
		return []Record{}
	}
	end := min(start+pageSize, len(rows))
	return rows[start:end]
}

// TotalPages returns ceil(n/pageSize), 0 for an empty sequence
func TotalPages(n, pageSize int) int {
	if n == 0 {
		return 0
	}
	if pageSize <= 0 {
		return 1
	}
	pages := n / pageSize
	if n%pageSize > 0 {
		pages++
	}
	return pages
}
