package repository

import (
	"context"
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeRows serves windows of a fixed row set and records how often each query ran.
type fakeRows struct {
	rows    []int
	fetches int
	counts  int
}

func newFakeRows(n int) *fakeRows {
	rows := make([]int, n)
	for i := range rows {
		rows[i] = i
	}
	return &fakeRows{rows: rows}
}

func (f *fakeRows) fetch(_ context.Context, p Pagination) ([]*int, error) {
	f.fetches++
	var out []*int
	for i := p.Offset; i < len(f.rows) && i < p.Offset+p.Limit; i++ {
		out = append(out, &f.rows[i])
	}
	return out, nil
}

func (f *fakeRows) count(_ context.Context) (int, error) {
	f.counts++
	return len(f.rows), nil
}

func TestPageRequest_Validate(t *testing.T) {
	assert.NoError(t, PageRequest{Number: 0, Size: 1}.Validate())
	assert.ErrorIs(t, PageRequest{Number: -1, Size: 10}.Validate(), ErrInvalidPage)
	assert.ErrorIs(t, PageRequest{Number: 0, Size: 0}.Validate(), ErrInvalidPage)
	assert.ErrorIs(t, PageRequest{Number: 2, Size: -5}.Validate(), ErrInvalidPage)
}

func TestPageRequest_ValidateOffsetOverflow(t *testing.T) {
	tests := []struct {
		name    string
		page    PageRequest
		wantErr bool
	}{
		{name: "largest page that fits", page: PageRequest{Number: math.MaxInt / 100, Size: 100}},
		{name: "one page past the limit", page: PageRequest{Number: math.MaxInt/100 + 1, Size: 100}, wantErr: true},
		{name: "max number with size one", page: PageRequest{Number: math.MaxInt, Size: 1}},
		{name: "max number with size two", page: PageRequest{Number: math.MaxInt, Size: 2}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.page.Validate()
			if tt.wantErr {
				assert.ErrorIs(t, err, ErrInvalidPage)
				return
			}
			require.NoError(t, err)
			assert.GreaterOrEqual(t, tt.page.Pagination().Offset, 0)
		})
	}
}

func TestPaginate_OverflowingPageIssuesNoQuery(t *testing.T) {
	rows := newFakeRows(4)

	_, err := Paginate(context.Background(), DeferredCount, PageRequest{Number: math.MaxInt/3 + 1, Size: 3}, rows.fetch, rows.count)
	assert.ErrorIs(t, err, ErrInvalidPage)
	assert.Zero(t, rows.fetches)
	assert.Zero(t, rows.counts)
}

func TestPageRequest_Pagination(t *testing.T) {
	assert.Equal(t, Pagination{Limit: 3, Offset: 0}, PageRequest{Number: 0, Size: 3}.Pagination())
	assert.Equal(t, Pagination{Limit: 3, Offset: 6}, PageRequest{Number: 2, Size: 3}.Pagination())
}

func TestPaginate_InvalidPageIssuesNoQuery(t *testing.T) {
	for _, strategy := range []CountStrategy{AlwaysCount, DeferredCount} {
		rows := newFakeRows(4)

		_, err := Paginate(context.Background(), strategy, PageRequest{Number: -1, Size: 3}, rows.fetch, rows.count)
		assert.ErrorIs(t, err, ErrInvalidPage)
		assert.Zero(t, rows.fetches)
		assert.Zero(t, rows.counts)
	}
}

func TestPaginate_AlwaysCount(t *testing.T) {
	rows := newFakeRows(4)

	result, err := Paginate(context.Background(), AlwaysCount, PageRequest{Number: 1, Size: 3}, rows.fetch, rows.count)
	require.NoError(t, err)
	assert.Len(t, result.Results, 1)
	assert.Equal(t, 4, result.TotalCount)
	assert.Equal(t, 1, rows.fetches)
	assert.Equal(t, 1, rows.counts)
}

func TestPaginate_DeferredCount(t *testing.T) {
	tests := []struct {
		name       string
		rows       int
		page       PageRequest
		wantLen    int
		wantTotal  int
		wantCounts int
	}{
		{name: "first page full", rows: 4, page: PageRequest{Number: 0, Size: 3}, wantLen: 3, wantTotal: 4, wantCounts: 1},
		{name: "first page short", rows: 2, page: PageRequest{Number: 0, Size: 3}, wantLen: 2, wantTotal: 2, wantCounts: 0},
		{name: "first page empty", rows: 0, page: PageRequest{Number: 0, Size: 3}, wantLen: 0, wantTotal: 0, wantCounts: 0},
		{name: "last page short", rows: 4, page: PageRequest{Number: 1, Size: 3}, wantLen: 1, wantTotal: 4, wantCounts: 0},
		{name: "middle page full", rows: 7, page: PageRequest{Number: 1, Size: 3}, wantLen: 3, wantTotal: 7, wantCounts: 1},
		{name: "last page exactly full", rows: 6, page: PageRequest{Number: 1, Size: 3}, wantLen: 3, wantTotal: 6, wantCounts: 1},
		{name: "past the end", rows: 4, page: PageRequest{Number: 5, Size: 3}, wantLen: 0, wantTotal: 4, wantCounts: 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rows := newFakeRows(tt.rows)

			result, err := Paginate(context.Background(), DeferredCount, tt.page, rows.fetch, rows.count)
			require.NoError(t, err)
			assert.Len(t, result.Results, tt.wantLen)
			assert.Equal(t, tt.wantTotal, result.TotalCount)
			assert.Equal(t, tt.wantCounts, rows.counts)
			assert.Equal(t, 1, rows.fetches)
		})
	}
}

func TestPaginate_StrategiesAgree(t *testing.T) {
	for n := 0; n <= 7; n++ {
		for size := 1; size <= 4; size++ {
			for number := 0; number <= 4; number++ {
				page := PageRequest{Number: number, Size: size}
				a := newFakeRows(n)
				b := newFakeRows(n)

				always, err := Paginate(context.Background(), AlwaysCount, page, a.fetch, a.count)
				require.NoError(t, err)
				deferred, err := Paginate(context.Background(), DeferredCount, page, b.fetch, b.count)
				require.NoError(t, err)

				assert.Equal(t, always.Results, deferred.Results, "rows=%d page=%+v", n, page)
				assert.Equal(t, always.TotalCount, deferred.TotalCount, "rows=%d page=%+v", n, page)
			}
		}
	}
}

func TestPaginate_PropagatesErrors(t *testing.T) {
	boom := errors.New("connection reset")
	failFetch := func(context.Context, Pagination) ([]*int, error) { return nil, boom }
	failCount := func(context.Context) (int, error) { return 0, boom }
	rows := newFakeRows(4)

	_, err := Paginate(context.Background(), AlwaysCount, PageRequest{Size: 2}, failFetch, rows.count)
	assert.Same(t, boom, err)

	_, err = Paginate(context.Background(), AlwaysCount, PageRequest{Size: 2}, rows.fetch, failCount)
	assert.Same(t, boom, err)

	_, err = Paginate(context.Background(), DeferredCount, PageRequest{Size: 2}, rows.fetch, failCount)
	assert.Same(t, boom, err)
}

func TestPaginate_EmptyResultsNotNil(t *testing.T) {
	rows := newFakeRows(0)

	result, err := Paginate(context.Background(), AlwaysCount, PageRequest{Size: 2}, rows.fetch, rows.count)
	require.NoError(t, err)
	assert.NotNil(t, result.Results)
	assert.Empty(t, result.Results)
}

func TestPaginatedResult_TotalPages(t *testing.T) {
	r := &PaginatedResult[int]{Pagination: Pagination{Limit: 3}, TotalCount: 4}
	assert.Equal(t, 2, r.TotalPages())

	r = &PaginatedResult[int]{Pagination: Pagination{Limit: 3}, TotalCount: 0}
	assert.Equal(t, 0, r.TotalPages())
}
