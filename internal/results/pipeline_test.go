package results

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func namesOf(rows []Record, col string) []string {
	out := make([]string, len(rows))
	for i, r := range rows {
		out[i] = r.Get(col).String()
	}
	return out
}

func sample() *ResultSet {
	rows := []Record{
		{"id": String("1"), "name": String("Alice"), "city": String("Berlin")},
		{"id": String("2"), "name": String("bob"), "city": String("London")},
		{"id": String("3"), "name": Null(), "city": String("berlin")},
		{"id": String("4"), "name": String("Carol"), "city": String("Paris")},
		{"id": String("5"), "name": String("alice"), "city": Null()},
	}
	return NewResultSet([]string{"id", "name", "city"}, rows, 0)
}

func TestFilter(t *testing.T) {
	rs := sample()

	tests := []struct {
		term string
		want []string
	}{
		{"", []string{"1", "2", "3", "4", "5"}},
		{"berlin", []string{"1", "3"}},
		{"ALICE", []string{"1", "5"}},
		{"zzz", []string{}},
		{"o", []string{"2", "4"}},
	}
	for _, tt := range tests {
		t.Run(tt.term, func(t *testing.T) {
			got := Filter(rs, tt.term)
			assert.Equal(t, tt.want, namesOf(got, "id"))
		})
	}
}

func TestFilter_DoesNotMutateInput(t *testing.T) {
	rs := sample()
	_ = Filter(rs, "berlin")
	assert.Len(t, rs.Rows, 5)
	assert.Equal(t, 5, rs.RowCount)
}

func TestSort_NullsLastBothDirections(t *testing.T) {
	rs := sample()

	asc := Sort(rs.Rows, "name", Asc)
	assert.Equal(t, []string{"1", "5", "2", "4", "3"}, namesOf(asc, "id"))

	desc := Sort(rs.Rows, "name", Desc)
	assert.Equal(t, []string{"4", "2", "1", "5", "3"}, namesOf(desc, "id"))
}

func TestSort_StableOnTies(t *testing.T) {
	rows := []Record{
		{"k": String("b"), "i": String("0")},
		{"k": String("a"), "i": String("1")},
		{"k": String("B"), "i": String("2")},
		{"k": String("a"), "i": String("3")},
	}
	got := Sort(rows, "k", Asc)
	assert.Equal(t, []string{"1", "3", "0", "2"}, namesOf(got, "i"))

	got = Sort(rows, "k", Desc)
	assert.Equal(t, []string{"0", "2", "1", "3"}, namesOf(got, "i"))
}

func TestSort_Kinds(t *testing.T) {
	rows := []Record{
		{"n": Number(10)},
		{"n": Number(2)},
		{"n": Null()},
		{"n": Number(-1)},
	}
	got := Sort(rows, "n", Asc)
	assert.Equal(t, []string{"-1", "2", "10", ""}, namesOf(got, "n"))

	bools := []Record{{"b": Bool(true)}, {"b": Bool(false)}}
	assert.Equal(t, []string{"false", "true"}, namesOf(Sort(bools, "b", Asc), "b"))
}

func TestSort_MissingColumnTreatedAsNull(t *testing.T) {
	rows := []Record{{"a": String("x")}, {"b": String("y")}}
	got := Sort(rows, "b", Asc)
	assert.Equal(t, "y", got[0].Get("b").String())
}

func TestTotalPages(t *testing.T) {
	assert.Equal(t, 0, TotalPages(0, 50))
	assert.Equal(t, 1, TotalPages(1, 50))
	assert.Equal(t, 1, TotalPages(50, 50))
	assert.Equal(t, 2, TotalPages(51, 50))
	assert.Equal(t, 1, TotalPages(7, 0))
}

func TestPaginate(t *testing.T) {
	rows := make([]Record, 120)
	for i := range rows {
		rows[i] = Record{"i": String(fmt.Sprint(i))}
	}

	p := Paginate(rows, 3, 50)
	require.Len(t, p, 20)
	assert.Equal(t, "100", p[0].Get("i").String())

	assert.Empty(t, Paginate(rows, 4, 50))
	assert.Len(t, Paginate(rows, 1, 0), 120)
}

func TestTransform(t *testing.T) {
	rows := make([]Record, 120)
	for i := range rows {
		rows[i] = Record{"i": Number(float64(i))}
	}
	rs := NewResultSet([]string{"i"}, rows, 0)

	v := NewViewState(50, Paginated).WithPage(3)
	page := Transform(rs, v)
	assert.Equal(t, 120, page.TotalFiltered)
	assert.Equal(t, 3, page.TotalPages)
	assert.Equal(t, 3, page.Page)
	assert.Len(t, page.Rows, 20)
	assert.Equal(t, 101, page.StartRow(50))
	assert.Equal(t, 120, page.EndRow(50))
}

func TestTransform_ClampsPastLastPage(t *testing.T) {
	rs := sample()
	v := NewViewState(2, Paginated).WithPage(3)
	v.SearchTerm = "berlin"

	page := Transform(rs, v)
	assert.Equal(t, 1, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Len(t, page.Rows, 2)
	assert.Equal(t, 3, v.CurrentPage)
}

func TestTransform_Empty(t *testing.T) {
	page := Transform(sample(), NewViewState(50, Paginated).WithSearch("nothing"))
	assert.Equal(t, 0, page.TotalFiltered)
	assert.Equal(t, 0, page.TotalPages)
	assert.Equal(t, 1, page.Page)
	assert.Empty(t, page.Rows)
	assert.Equal(t, 0, page.StartRow(50))

	assert.Empty(t, Transform(nil, NewViewState(50, Paginated)).Rows)
}

func TestTransform_SortDescending(t *testing.T) {
	v := NewViewState(50, Paginated).ToggleSort("id").ToggleSort("id")
	require.Equal(t, Desc, v.SortDirection)

	page := Transform(sample(), v)
	assert.Equal(t, []string{"5", "4", "3", "2", "1"}, namesOf(page.Rows, "id"))
}
