package results

// SortDirection is asc or desc
type SortDirection string

const (
	Asc  SortDirection = "asc"
	Desc SortDirection = "desc"
)

// Flip returns the opposite direction
func (d SortDirection) Flip() SortDirection {
	if d == Desc {
		return Asc
	}
	return Desc
}

// ViewMode selects between the paginated grid and the virtual-scroll grid
type ViewMode string

const (
	Paginated ViewMode = "paginated"
	Virtual   ViewMode = "virtual"
)

// ParseViewMode maps a config or flag value to a ViewMode, defaulting to Paginated
func ParseViewMode(s string) ViewMode {
	if ViewMode(s) == Virtual {
		return Virtual
	}
	return Paginated
}

// ViewState holds user-controlled display preferences. It is independent
// of the ResultSet it is applied to.
type ViewState struct {
	SortColumn    string // empty when unsorted
	SortDirection SortDirection
	SearchTerm    string
	CurrentPage   int
	PageSize      int
	ViewMode      ViewMode
	ScrollOffset  int // virtual view only, in row-height units
}

// NewViewState returns the initial view preferences
func NewViewState(pageSize int, mode ViewMode) ViewState {
	return ViewState{
		SortDirection: Asc,
		CurrentPage:   1,
		PageSize:      pageSize,
		ViewMode:      mode,
	}
}

// ToggleSort applies a header click: the active column flips direction,
// any other column becomes active ascending. The page is kept.
func (v ViewState) ToggleSort(col string) ViewState {
	if v.SortColumn == col {
		v.SortDirection = v.SortDirection.Flip()
		return v
	}
	v.SortColumn = col
	v.SortDirection = Asc
	return v
}

// WithSearch sets the search term and returns to the first page
func (v ViewState) WithSearch(term string) ViewState {
	v.SearchTerm = term
	v.CurrentPage = 1
	v.ScrollOffset = 0
	return v
}

// WithPageSize sets the page size and returns to the first page
func (v ViewState) WithPageSize(n int) ViewState {
	if n < 1 {
		n = 1
	}
	v.PageSize = n
	v.CurrentPage = 1
	return v
}

// WithPage moves to page n (1-based)
func (v ViewState) WithPage(n int) ViewState {
	if n < 1 {
		n = 1
	}
	v.CurrentPage = n
	return v
}

// WithScroll sets the virtual scroll offset
func (v ViewState) WithScroll(offset int) ViewState {
	if offset < 0 {
		offset = 0
	}
	v.ScrollOffset = offset
	return v
}

// WithMode switches the view mode
func (v ViewState) WithMode(mode ViewMode) ViewState {
	v.ViewMode = mode
	return v
}
