package listing

// Result is one page of records plus the pagination metadata reported for
// the whole filtered set.
type Result[T any] struct {
	Items    []T
	Total    int
	Pages    int
	Page     int
	PageSize int
}

// PageCount returns ceil(total/size).
func PageCount(total, size int) int {
	if size <= 0 {
		return 0
	}
	return (total + size - 1) / size
}

// From is the 1-based index of the first row shown, 0 when empty.
func (r Result[T]) From() int {
	if len(r.Items) == 0 {
		return 0
	}
	return (r.Page-1)*r.PageSize + 1
}

// To is the index of the last row shown.
func (r Result[T]) To() int {
	return min(r.Page*r.PageSize, r.Total)
}

func (r Result[T]) HasPrev() bool {
	return r.Page > 1
}

func (r Result[T]) HasNext() bool {
	return r.Page < r.Pages
}

// DisplayPages is Pages with a floor of 1 for the "Page x of y" label.
func (r Result[T]) DisplayPages() int {
	return max(r.Pages, 1)
}

// Filtered returns the items for which match is true, preserving order.
// A nil match keeps everything.
func Filtered[T any](items []T, match func(T) bool) []T {
	if match == nil {
		return items
	}
	out := make([]T, 0, len(items))
	for _, it := range items {
		if match(it) {
			out = append(out, it)
		}
	}
	return out
}

// Slice cuts page out of items. Pages past the end yield no rows but still
// report the totals.
func Slice[T any](items []T, page, size int) Result[T] {
	if page < 1 {
		page = 1
	}
	res := Result[T]{
		Total:    len(items),
		Pages:    PageCount(len(items), size),
		Page:     page,
		PageSize: size,
	}
	start := (page - 1) * size
	if size <= 0 || start >= len(items) {
		res.Items = []T{}
		return res
	}
	end := min(start+size, len(items))
	res.Items = items[start:end]
	return res
}

// Paginate is the client-side strategy: filter the full set with match,
// then slice out the requested page.
func Paginate[F Filter, T any](all []T, q Query[F], match func(T) bool) Result[T] {
	return Slice(Filtered(all, match), q.Page, q.Limit)
}
