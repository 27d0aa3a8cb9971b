package listing

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/alextreichler/pharmadmin/internal/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoaderReplacesResults(t *testing.T) {
	fetch := func(ctx context.Context, q Query[OrderFilter]) (Result[models.Order], error) {
		return Result[models.Order]{
			Items: []models.Order{{ID: "o1"}},
			Total: 21,
			Pages: PageCount(21, q.Limit),
		}, nil
	}
	l := NewLoader(fetch)
	s := NewState(OrderFilter{})
	s.SetPage(2)

	res, err := l.Load(context.Background(), s)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Page)
	assert.Equal(t, 10, res.PageSize)
	assert.Equal(t, 3, res.Pages)

	cur, ok := l.Result()
	assert.True(t, ok)
	assert.Equal(t, res, cur)
}

func TestLoaderKeepsPriorResultsOnFailure(t *testing.T) {
	fail := false
	fetch := func(ctx context.Context, q Query[OrderFilter]) (Result[models.Order], error) {
		if fail {
			return Result[models.Order]{}, errors.New("backend down")
		}
		return Result[models.Order]{Items: []models.Order{{ID: "o1"}}, Total: 1, Pages: 1}, nil
	}
	l := NewLoader(fetch)
	s := NewState(OrderFilter{})

	_, err := l.Load(context.Background(), s)
	require.NoError(t, err)

	fail = true
	res, err := l.Load(context.Background(), s)
	assert.EqualError(t, err, "backend down")
	require.Len(t, res.Items, 1)
	assert.Equal(t, "o1", res.Items[0].ID)
}

func TestLoaderDropsStaleResponse(t *testing.T) {
	release := make(chan struct{})
	started := make(chan struct{})
	fetch := func(ctx context.Context, q Query[OrderFilter]) (Result[models.Order], error) {
		if q.Page == 1 {
			close(started)
			<-release
		}
		return Result[models.Order]{Items: []models.Order{{ID: q.Filter.Status}}, Total: 1, Pages: 1}, nil
	}
	l := NewLoader(fetch)

	slow := NewState(OrderFilter{Status: "slow"})
	fast := NewState(OrderFilter{Status: "fast"})
	fast.SetPage(2)

	var wg sync.WaitGroup
	var slowErr error
	wg.Add(1)
	go func() {
		defer wg.Done()
		_, slowErr = l.Load(context.Background(), slow)
	}()
	<-started

	res, err := l.Load(context.Background(), fast)
	require.NoError(t, err)
	assert.Equal(t, "fast", res.Items[0].ID)

	close(release)
	wg.Wait()
	assert.ErrorIs(t, slowErr, ErrStale)

	cur, _ := l.Result()
	assert.Equal(t, "fast", cur.Items[0].ID, "slow response must not overwrite the newer one")
}

func TestLoaderPatch(t *testing.T) {
	fetch := func(ctx context.Context, q Query[ContactFilter]) (Result[models.Contact], error) {
		return Result[models.Contact]{Items: []models.Contact{
			{ID: "c1", Status: models.ContactUnread},
			{ID: "c2", Status: models.ContactUnread},
		}, Total: 2, Pages: 1}, nil
	}
	l := NewLoader(fetch)
	_, err := l.Load(context.Background(), NewState(ContactFilter{}))
	require.NoError(t, err)

	n := l.Patch(func(c models.Contact) bool { return c.ID == "c2" }, func(c *models.Contact) { c.Status = models.ContactRead })
	assert.Equal(t, 1, n)

	cur, _ := l.Result()
	assert.Equal(t, models.ContactUnread, cur.Items[0].Status)
	assert.Equal(t, models.ContactRead, cur.Items[1].Status)
}
