// Package listing implements the list-page pattern shared by the admin
// pages: filter state, query construction, paginated fetch and the
// client-side filter-then-slice strategy.
package listing

import (
	"errors"
	"net/url"
	"strconv"
)

// PageSizes are the selectable page sizes.
var PageSizes = []int{10, 20, 50, 100}

const DefaultPageSize = 10

var ErrInvalidPageSize = errors.New("listing: page size must be one of 10, 20, 50, 100")

// Filter is the constraint satisfied by the per-page filter structs.
// Filters are plain comparable values so a change can be detected with ==.
type Filter interface {
	comparable
	// Fields returns every filter field, empty ones included, keyed by the
	// name the list endpoint expects.
	Fields() map[string]any
	// Encode writes the non-empty fields into v.
	Encode(v url.Values)
	// IsZero reports whether no field constrains the list.
	IsZero() bool
}

// State holds the current filter and pagination selection of a list page.
type State[F Filter] struct {
	Filter   F
	Page     int
	PageSize int

	def F
}

// NewState returns a state on page 1 holding the default filter.
func NewState[F Filter](def F) *State[F] {
	return &State[F]{Filter: def, Page: 1, PageSize: DefaultPageSize, def: def}
}

// ParseState reads a state from URL query values. Missing or invalid page
// values fall back to page 1 and the default page size.
func ParseState[F Filter](v url.Values, def F, parse func(url.Values) F) *State[F] {
	s := NewState(def)
	s.Filter = parse(v)
	if n, err := strconv.Atoi(v.Get("limit")); err == nil && ValidPageSize(n) {
		s.PageSize = n
	}
	if n, err := strconv.Atoi(v.Get("page")); err == nil && n > 1 {
		s.Page = n
	}
	return s
}

func ValidPageSize(n int) bool {
	for _, size := range PageSizes {
		if size == n {
			return true
		}
	}
	return false
}

// SetPage moves to page n. Pages below 1 clamp to 1.
func (s *State[F]) SetPage(n int) {
	if n < 1 {
		n = 1
	}
	s.Page = n
}

// SetPageSize changes the page size and returns to page 1.
func (s *State[F]) SetPageSize(n int) error {
	if !ValidPageSize(n) {
		return ErrInvalidPageSize
	}
	s.PageSize = n
	s.Page = 1
	return nil
}

// SetFilter replaces the filter. A changed filter returns to page 1.
func (s *State[F]) SetFilter(f F) {
	if f == s.Filter {
		return
	}
	s.Filter = f
	s.Page = 1
}

// Clear restores the default filter and returns to page 1.
func (s *State[F]) Clear() {
	s.Filter = s.def
	s.Page = 1
}

// Next advances one page without passing totalPages.
func (s *State[F]) Next(totalPages int) {
	if s.Page < totalPages {
		s.Page++
	}
}

func (s *State[F]) Prev() {
	if s.Page > 1 {
		s.Page--
	}
}

// Query builds the request for the current state.
func (s *State[F]) Query() Query[F] {
	return Query[F]{Page: s.Page, Limit: s.PageSize, Filter: s.Filter}
}

// Values encodes the state for links back to the same list view.
func (s *State[F]) Values() url.Values {
	return s.PageValues(s.Page)
}

// PageValues encodes the state with the page replaced by page.
func (s *State[F]) PageValues(page int) url.Values {
	v := url.Values{}
	s.Filter.Encode(v)
	if s.PageSize != DefaultPageSize {
		v.Set("limit", strconv.Itoa(s.PageSize))
	}
	if page > 1 {
		v.Set("page", strconv.Itoa(page))
	}
	return v
}

// FilterValues encodes only the filter and page size, which is where a
// filter or page-size change lands.
func (s *State[F]) FilterValues() url.Values {
	return s.PageValues(1)
}

// Query is one list request: a page of a filtered list.
type Query[F Filter] struct {
	Page   int
	Limit  int
	Filter F
}

// Body merges page and limit into the filter fields, the request payload of
// the server-side filtered list endpoints.
func (q Query[F]) Body() map[string]any {
	body := q.Filter.Fields()
	body["page"] = q.Page
	body["limit"] = q.Limit
	return body
}

func (q Query[F]) Offset() int {
	return (q.Page - 1) * q.Limit
}
