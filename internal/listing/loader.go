package listing

import (
	"context"
	"errors"
	"sync"
)

// ErrStale is returned by Load when a newer Load was issued while this one
// was in flight. The stale response is discarded.
var ErrStale = errors.New("listing: response superseded by a newer request")

// FetchFunc issues the single network call for one list query.
type FetchFunc[F Filter, T any] func(ctx context.Context, q Query[F]) (Result[T], error)

// Loader runs list fetches and keeps the most recent result. Every Load is
// tagged with a generation; only the latest issued generation may replace
// the result, so a slow earlier response never overwrites a later one.
type Loader[F Filter, T any] struct {
	fetch FetchFunc[F, T]

	mu     sync.Mutex
	issued uint64
	result Result[T]
	loaded bool
}

func NewLoader[F Filter, T any](fetch FetchFunc[F, T]) *Loader[F, T] {
	return &Loader[F, T]{fetch: fetch}
}

// Load fetches the page described by s. On failure the previous result is
// kept and returned alongside the error.
func (l *Loader[F, T]) Load(ctx context.Context, s *State[F]) (Result[T], error) {
	q := s.Query()

	l.mu.Lock()
	l.issued++
	gen := l.issued
	l.mu.Unlock()

	res, err := l.fetch(ctx, q)

	l.mu.Lock()
	defer l.mu.Unlock()
	if gen != l.issued {
		return l.result, ErrStale
	}
	if err != nil {
		return l.result, err
	}
	res.Page = q.Page
	res.PageSize = q.Limit
	if res.Items == nil {
		res.Items = []T{}
	}
	l.result = res
	l.loaded = true
	return res, nil
}

// Result returns the last applied result and whether any load succeeded.
func (l *Loader[F, T]) Result() (Result[T], bool) {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.result, l.loaded
}

// Patch applies fn to every loaded item for which match is true. It is the
// local shortcut for single-field updates that skip a refetch.
func (l *Loader[F, T]) Patch(match func(T) bool, fn func(*T)) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	n := 0
	items := make([]T, len(l.result.Items))
	copy(items, l.result.Items)
	for i := range items {
		if match(items[i]) {
			fn(&items[i])
			n++
		}
	}
	l.result.Items = items
	return n
}
