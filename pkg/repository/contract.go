package repository

import (
	"context"
	"errors"
)

// ErrNotFound is returned when no row matches the requested id.
var ErrNotFound = errors.New("entity not found")

type Entity[ID comparable] interface {
	GetID() ID
	GetTableName() string
	GetIDColumn() string
}

type Repository[E Entity[ID], ID comparable] interface {
	FindAll(ctx context.Context) ([]*E, error)
	FindAllByID(ctx context.Context, ids []ID) ([]*E, error)
	FindByID(ctx context.Context, id ID) (*E, error)
	Save(ctx context.Context, entity *E) error
	SaveAll(ctx context.Context, entities []*E) error
	DeleteByID(ctx context.Context, id ID) error
	DeleteByIDs(ctx context.Context, ids []ID) error
	DeleteAll(ctx context.Context) error
	DeleteEntities(ctx context.Context, entities []*E) error
	DeleteEntity(ctx context.Context, entity *E) error
	ExistsByID(ctx context.Context, id ID) error
	FindAllPaginated(ctx context.Context, page PageRequest) (*PaginatedResult[E], error)
}

type Pagination struct {
	Limit  int `json:"limit"`
	Offset int `json:"offset"`
}

type PaginatedResult[E any] struct {
	Pagination Pagination `json:"pagination"`
	TotalCount int        `json:"total_count"`
	Results    []*E       `json:"results"`
}

// TotalPages reports how many pages of Pagination.Limit rows TotalCount spans.
func (r *PaginatedResult[E]) TotalPages() int {
	if r.Pagination.Limit <= 0 {
		return 0
	}
	return (r.TotalCount + r.Pagination.Limit - 1) / r.Pagination.Limit
}

func (r *PaginatedResult[E]) HasNext() bool {
	return r.Pagination.Offset+len(r.Results) < r.TotalCount
}
