package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/timemedia/adlibrary/internal/model"
	"github.com/timemedia/adlibrary/internal/query"
)

// gatedSource blocks each Query call until the test releases its gate, so
// completion order can be forced independently of issue order. Gates are
// keyed by the state's page: cycle goroutines race to enter Query, so an
// arrival-order index would not identify the cycle deterministically.
type gatedSource struct {
	gates map[int]chan *query.Result
	errs  map[int]error
}

func newGatedSource(pages ...int) *gatedSource {
	s := &gatedSource{
		gates: make(map[int]chan *query.Result, len(pages)),
		errs:  make(map[int]error, len(pages)),
	}
	for _, p := range pages {
		s.gates[p] = make(chan *query.Result, 1)
	}
	return s
}

func (s *gatedSource) Query(ctx context.Context, st query.State) (*query.Result, error) {
	page := st.Pagination.Page
	res := <-s.gates[page]
	return res, s.errs[page]
}

func pageResult(total int) *query.Result {
	return &query.Result{Data: []model.Ad{}, Total: total, Page: 1, PageSize: query.DefaultPageSize}
}

func TestLoaderAppliesResult(t *testing.T) {
	src := newGatedSource(1)
	l := NewLoader(src, nil)

	done := l.Apply(context.Background(), query.DefaultState())
	assert.True(t, l.State().Loading)

	src.gates[1] <- pageResult(7)
	<-done

	snap := l.State()
	assert.False(t, snap.Loading)
	require.NotNil(t, snap.Data)
	assert.Equal(t, 7, snap.Data.Total)
	assert.NoError(t, snap.Err)
}

func TestLoaderDiscardsStaleCycle(t *testing.T) {
	src := newGatedSource(1, 2)
	l := NewLoader(src, nil)
	ctx := context.Background()

	// cycle for page 1 is slow; the page 2 cycle starts later but resolves first
	slow := l.Apply(ctx, query.DefaultState().WithPage(1))
	fast := l.Apply(ctx, query.DefaultState().WithPage(2))

	src.gates[2] <- pageResult(2)
	<-fast
	src.gates[1] <- pageResult(1)
	<-slow

	snap := l.State()
	require.NotNil(t, snap.Data)
	assert.Equal(t, 2, snap.Data.Total, "stale cycle must not overwrite the newer result")
	assert.False(t, snap.Loading)
}

func TestLoaderStaleErrorIsDiscarded(t *testing.T) {
	src := newGatedSource(1, 2)
	src.errs[1] = errors.New("boom")
	l := NewLoader(src, nil)
	ctx := context.Background()

	slow := l.Apply(ctx, query.DefaultState().WithPage(1))
	fast := l.Apply(ctx, query.DefaultState().WithPage(2))

	src.gates[2] <- pageResult(2)
	<-fast
	src.gates[1] <- nil
	<-slow

	snap := l.State()
	assert.NoError(t, snap.Err)
	require.NotNil(t, snap.Data)
	assert.Equal(t, 2, snap.Data.Total)
}

func TestLoaderKeepsDataOnError(t *testing.T) {
	src := newGatedSource(1, 2)
	src.errs[2] = errors.New("network down")
	l := NewLoader(src, nil)
	ctx := context.Background()

	done := l.Apply(ctx, query.DefaultState())
	src.gates[1] <- pageResult(5)
	<-done

	done = l.Apply(ctx, query.DefaultState().WithPage(2))
	src.gates[2] <- nil
	<-done

	snap := l.State()
	require.Error(t, snap.Err)
	require.NotNil(t, snap.Data, "previous data survives a failed cycle")
	assert.Equal(t, 5, snap.Data.Total)
	assert.False(t, snap.Loading)
}

func TestLoaderLoadingWhileSupersededCycleInFlight(t *testing.T) {
	src := newGatedSource(1, 2)
	l := NewLoader(src, nil)
	ctx := context.Background()

	slow := l.Apply(ctx, query.DefaultState().WithPage(1))
	fast := l.Apply(ctx, query.DefaultState().WithPage(2))

	src.gates[1] <- pageResult(1)
	<-slow

	// the newer cycle is still in flight, so the loader stays loading
	snap := l.State()
	assert.True(t, snap.Loading)
	assert.Nil(t, snap.Data)

	src.gates[2] <- pageResult(2)
	<-fast
	assert.False(t, l.State().Loading)
}

func TestLoaderTimeoutSurfacesError(t *testing.T) {
	src := &slowSource{delay: 50 * time.Millisecond}
	l := NewLoader(src, nil)
	l.timeout = 10 * time.Millisecond

	done := l.Apply(context.Background(), query.DefaultState())
	<-done

	assert.Error(t, l.State().Err)
}

// slowSource honors context cancellation after a fixed delay.
type slowSource struct {
	delay time.Duration
}

func (s *slowSource) Query(ctx context.Context, st query.State) (*query.Result, error) {
	select {
	case <-time.After(s.delay):
		return pageResult(1), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
