package repository

import (
	"context"
	"errors"
	"fmt"
	"math"
)

// ErrInvalidPage is returned for a page request with a negative number or a non-positive size.
var ErrInvalidPage = errors.New("invalid page request")

// PageRequest selects page Number (zero based) of Size rows.
type PageRequest struct {
	Number int `json:"page"`
	Size   int `json:"size"`
}

func (p PageRequest) Validate() error {
	if p.Number < 0 {
		return fmt.Errorf("%w: page number %d is negative", ErrInvalidPage, p.Number)
	}
	if p.Size <= 0 {
		return fmt.Errorf("%w: page size %d must be positive", ErrInvalidPage, p.Size)
	}
	if p.Number > math.MaxInt/p.Size {
		return fmt.Errorf("%w: page %d of size %d is out of range", ErrInvalidPage, p.Number, p.Size)
	}
	return nil
}

// Pagination converts p to a limit and offset. Only call it on a request that passed Validate.
func (p PageRequest) Pagination() Pagination {
	return Pagination{Limit: p.Size, Offset: p.Number * p.Size}
}

// CountStrategy decides when Paginate runs the count query.
type CountStrategy int

const (
	// AlwaysCount runs the content and the count query on every call.
	AlwaysCount CountStrategy = iota
	// DeferredCount skips the count query whenever the content page alone determines the total.
	DeferredCount
)

func (s CountStrategy) String() string {
	switch s {
	case AlwaysCount:
		return "always-count"
	case DeferredCount:
		return "deferred-count"
	default:
		return fmt.Sprintf("CountStrategy(%d)", int(s))
	}
}

// FetchFunc loads one window of rows.
type FetchFunc[E any] func(ctx context.Context, p Pagination) ([]*E, error)

// CountFunc counts every row matching the same filter as the FetchFunc.
type CountFunc func(ctx context.Context) (int, error)

// Paginate loads the requested page with fetch and fills in the total with count according to strategy.
// The page request is validated before any query is issued. Errors from fetch and count are returned as is.
func Paginate[E any](ctx context.Context, strategy CountStrategy, page PageRequest, fetch FetchFunc[E], count CountFunc) (*PaginatedResult[E], error) {
	if err := page.Validate(); err != nil {
		return nil, err
	}

	pagination := page.Pagination()
	results, err := fetch(ctx, pagination)
	if err != nil {
		return nil, err
	}
	if results == nil {
		results = []*E{}
	}

	var total int
	switch strategy {
	case AlwaysCount:
		total, err = count(ctx)
	case DeferredCount:
		total, err = deferredTotal(ctx, pagination, len(results), count)
	default:
		return nil, fmt.Errorf("unknown count strategy %s", strategy)
	}
	if err != nil {
		return nil, err
	}

	return &PaginatedResult[E]{
		Pagination: pagination,
		TotalCount: total,
		Results:    results,
	}, nil
}

// deferredTotal infers the total from a short page. An empty page past the first one says nothing
// about the total, so it still counts.
func deferredTotal(ctx context.Context, p Pagination, size int, count CountFunc) (int, error) {
	if p.Offset == 0 {
		if size < p.Limit {
			return size, nil
		}
		return count(ctx)
	}
	if size != 0 && size < p.Limit {
		return p.Offset + size, nil
	}
	return count(ctx)
}
