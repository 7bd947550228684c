package repository

import (
	"context"
	"fmt"
	"reflect"
	"slices"
	"strings"

	"github.com/jmoiron/sqlx"
)

// NewEntityRepository returns a Repository for E backed by db. db may be a *sqlx.DB or a *sqlx.Tx.
func NewEntityRepository[E Entity[ID], ID comparable](db sqlx.ExtContext) Repository[E, ID] {
	return &entityRepository[E, ID]{
		DB: db,
	}
}

type entityRepository[E Entity[ID], ID comparable] struct {
	DB sqlx.ExtContext
}

func (r *entityRepository[E, ID]) meta() (table, idColumn string) {
	var emptyEntity E
	return emptyEntity.GetTableName(), emptyEntity.GetIDColumn()
}

func (r *entityRepository[E, ID]) FindAll(ctx context.Context) ([]*E, error) {
	tableName, idColumn := r.meta()

	var entities []*E
	query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s", tableName, idColumn)
	err := sqlx.SelectContext(ctx, r.DB, &entities, query)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *entityRepository[E, ID]) FindByID(ctx context.Context, id ID) (*E, error) {
	entities, err := r.FindAllByID(ctx, []ID{id})
	if err != nil {
		return nil, err
	}

	if len(entities) == 0 {
		return nil, ErrNotFound
	}

	return entities[0], nil
}

func (r *entityRepository[E, ID]) FindAllByID(ctx context.Context, ids []ID) ([]*E, error) {
	if len(ids) == 0 {
		return []*E{}, nil
	}
	tableName, idColumn := r.meta()

	query, args, err := sqlx.In(fmt.Sprintf("SELECT * FROM %s WHERE %s IN (?) ORDER BY %s", tableName, idColumn, idColumn), ids)
	if err != nil {
		return nil, err
	}

	var entities []*E
	err = sqlx.SelectContext(ctx, r.DB, &entities, r.DB.Rebind(query), args...)
	if err != nil {
		return nil, err
	}
	return entities, nil
}

func (r *entityRepository[E, ID]) Save(ctx context.Context, entity *E) error {
	return r.SaveAll(ctx, []*E{entity})
}

type column struct {
	name          string
	index         int
	autoincrement bool
}

// columnsOf reads the db tags of t. A tag of the form `db:"member_id,autoincrement"` marks the
// generated id column.
func columnsOf(t reflect.Type) []column {
	var columns []column
	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)
		dbTag := field.Tag.Get("db")
		if dbTag == "" || dbTag == "-" {
			continue
		}
		tagParts := strings.Split(dbTag, ",")
		for j, tagPart := range tagParts {
			tagParts[j] = strings.TrimSpace(tagPart)
		}
		columns = append(columns, column{
			name:          tagParts[0],
			index:         i,
			autoincrement: slices.Contains(tagParts[1:], "autoincrement"),
		})
	}
	return columns
}

func (r *entityRepository[E, ID]) SaveAll(ctx context.Context, entities []*E) error {
	if len(entities) == 0 {
		return nil
	}

	entityType := reflect.TypeOf(entities[0]).Elem()
	tableName, _ := r.meta()

	var names []string
	var placeholders []string
	var idColumn *column
	columns := columnsOf(entityType)
	for i := range columns {
		if columns[i].autoincrement {
			idColumn = &columns[i]
			continue
		}
		names = append(names, columns[i].name)
		placeholders = append(placeholders, "?")
	}

	row := fmt.Sprintf("(%s)", strings.Join(placeholders, ","))
	rows := make([]string, len(entities))
	values := make([]any, 0, len(entities)*len(names))
	for i, entity := range entities {
		entityValue := reflect.ValueOf(entity).Elem()
		for _, c := range columns {
			if c.autoincrement {
				continue
			}
			values = append(values, entityValue.Field(c.index).Interface())
		}
		rows[i] = row
	}

	query := fmt.Sprintf("INSERT INTO %s (%s) VALUES %s", tableName, strings.Join(names, ","), strings.Join(rows, ","))
	result, err := r.DB.ExecContext(ctx, r.DB.Rebind(query), values...)
	if err != nil {
		return err
	}

	if idColumn == nil {
		return nil
	}

	lastInsertID, err := result.LastInsertId()
	if err != nil {
		return err
	}

	// MySQL reports the id of the first row of a multi-row insert, SQLite the id of the last one.
	firstID := lastInsertID
	if r.DB.DriverName() == "sqlite3" {
		firstID = lastInsertID - int64(len(entities)-1)
	}
	for i, entity := range entities {
		entityValue := reflect.ValueOf(entity).Elem()
		entityValue.Field(idColumn.index).SetInt(firstID + int64(i))
	}

	return nil
}

func (r *entityRepository[E, ID]) DeleteByID(ctx context.Context, id ID) error {
	return r.DeleteByIDs(ctx, []ID{id})
}

func (r *entityRepository[E, ID]) DeleteByIDs(ctx context.Context, ids []ID) error {
	if len(ids) == 0 {
		return nil
	}
	tableName, idColumn := r.meta()

	query, args, err := sqlx.In(fmt.Sprintf("DELETE FROM %s WHERE %s IN (?)", tableName, idColumn), ids)
	if err != nil {
		return err
	}
	_, err = r.DB.ExecContext(ctx, r.DB.Rebind(query), args...)
	return err
}

func (r *entityRepository[E, ID]) DeleteAll(ctx context.Context) error {
	tableName, _ := r.meta()
	_, err := r.DB.ExecContext(ctx, fmt.Sprintf("DELETE FROM %s", tableName))
	return err
}

func (r *entityRepository[E, ID]) DeleteEntities(ctx context.Context, entities []*E) error {
	ids := make([]ID, 0, len(entities))
	for _, entity := range entities {
		ids = append(ids, (*entity).GetID())
	}
	return r.DeleteByIDs(ctx, ids)
}

func (r *entityRepository[E, ID]) DeleteEntity(ctx context.Context, entity *E) error {
	return r.DeleteEntities(ctx, []*E{entity})
}

func (r *entityRepository[E, ID]) ExistsByID(ctx context.Context, id ID) error {
	_, err := r.FindByID(ctx, id)
	return err
}

func (r *entityRepository[E, ID]) FindAllPaginated(ctx context.Context, page PageRequest) (*PaginatedResult[E], error) {
	tableName, idColumn := r.meta()

	fetch := func(ctx context.Context, p Pagination) ([]*E, error) {
		var entities []*E
		query := fmt.Sprintf("SELECT * FROM %s ORDER BY %s LIMIT ? OFFSET ?", tableName, idColumn)
		err := sqlx.SelectContext(ctx, r.DB, &entities, r.DB.Rebind(query), p.Limit, p.Offset)
		return entities, err
	}
	count := func(ctx context.Context) (int, error) {
		var totalCount int
		err := sqlx.GetContext(ctx, r.DB, &totalCount, fmt.Sprintf("SELECT COUNT(*) FROM %s", tableName))
		return totalCount, err
	}

	return Paginate(ctx, AlwaysCount, page, fetch, count)
}
