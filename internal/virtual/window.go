// Package virtual computes which rows of a long list must be materialized
// for a given scroll position, so only a bounded window is rendered.
package virtual

// Params describes the list and the viewport. All sizes share one unit;
// in the terminal that unit is a line.
type Params struct {
	Count          int
	RowHeight      int
	ScrollOffset   int
	ViewportHeight int
	Overscan       int
}

// Item is one materialized row and its offset from the top of the list
type Item struct {
	Index  int
	Offset int
}

// Window is the inclusive index range [Start, End] to render.
// An empty window has Start 0 and End -1.
type Window struct {
	TotalHeight int
	Start       int
	End         int
	Items       []Item
}

// Len returns the number of materialized rows
func (w Window) Len() int {
	return w.End - w.Start + 1
}

// Contains reports whether row i is materialized
func (w Window) Contains(i int) bool {
	return i >= w.Start && i <= w.End
}

// Compute returns the render window for p
func Compute(p Params) Window {
	if p.Count <= 0 || p.RowHeight <= 0 {
		return Window{Start: 0, End: -1}
	}

	h := p.RowHeight
	last := p.Count - 1
	scroll := max(p.ScrollOffset, 0)
	overscan := max(p.Overscan, 0)
	viewport := max(p.ViewportHeight, 0)

	start := clamp(scroll/h-overscan, 0, last)
	end := clamp(ceilDiv(scroll+viewport, h)+overscan, 0, last)

	items := make([]Item, 0, end-start+1)
	for i := start; i <= end; i++ {
		items = append(items, Item{Index: i, Offset: i * h})
	}

	return Window{
		TotalHeight: p.Count * h,
		Start:       start,
		End:         end,
		Items:       items,
	}
}

// MaxScroll returns the largest useful scroll offset for p
func MaxScroll(p Params) int {
	if p.RowHeight <= 0 {
		return 0
	}
	return max(0, p.Count*p.RowHeight-p.ViewportHeight)
}

func ceilDiv(a, b int) int {
	return (a + b - 1) / b
}

func clamp(v, lo, hi int) int {
	return min(max(v, lo), hi)
}
