package repository

import (
	"testing"

	"github.com/jmoiron/sqlx"
	"github.com/stretchr/testify/require"
)

type SampleEntity struct {
	Id   int64  `db:"id,autoincrement"`
	Name string `db:"name"`
}

func (e SampleEntity) GetID() int64 {
	return e.Id
}

func (e SampleEntity) GetTableName() string {
	return "sample_entities"
}

func (e SampleEntity) GetIDColumn() string {
	return "id"
}

func InsertManyRecordsToSampleEntity(db *sqlx.DB, entities []SampleEntity) ([]int64, error) {
	var ids []int64
	for _, entity := range entities {
		id, err := InsertRecordsToSampleEntity(db, entity)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}

	return ids, nil
}

func InsertRecordsToSampleEntity(db *sqlx.DB, entity SampleEntity) (int64, error) {
	result, err := db.Exec("INSERT INTO sample_entities (name) VALUES (?)", entity.Name)
	if err != nil {
		return 0, err
	}
	return result.LastInsertId()
}

func CreateSampleEntityTable(t *testing.T, db *sqlx.DB) {
	t.Helper()

	_, err := db.Exec("DROP TABLE IF EXISTS sample_entities")
	require.NoError(t, err)

	ddl := `CREATE TABLE sample_entities (
		id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`
	if db.DriverName() == "sqlite3" {
		ddl = `CREATE TABLE sample_entities (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			name TEXT NOT NULL
		)`
	}
	_, err = db.Exec(ddl)
	require.NoError(t, err)
}

func SelectSampleEntityByID(db *sqlx.DB, id int64) (SampleEntity, error) {
	var entity SampleEntity
	err := db.Get(&entity, "SELECT * FROM sample_entities WHERE id = ?", id)
	return entity, err
}
