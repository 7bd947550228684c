// Package testdb opens throwaway databases for repository tests.
package testdb

import (
	"context"
	"testing"

	"github.com/docker/go-connections/nat"
	_ "github.com/go-sql-driver/mysql"
	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

const (
	mysqlImage    = "mysql:8.4"
	mysqlDatabase = "memberquery_test"
)

// SQLite opens a private in-memory database with foreign keys enforced. It is closed when the test ends.
func SQLite(t testing.TB) *sqlx.DB {
	t.Helper()

	db, err := sqlx.Open("sqlite3", ":memory:?_foreign_keys=on")
	require.NoError(t, err)
	// every connection to :memory: is a separate database
	db.SetMaxOpenConns(1)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping())
	return db
}

// MySQL starts (or reuses) a MySQL container and connects to its test database. The test is skipped
// in -short mode or when no container runtime is reachable.
func MySQL(t testing.TB) *sqlx.DB {
	t.Helper()
	if testing.Short() {
		t.Skip("skipping MySQL integration test in short mode")
	}

	ctx := context.Background()
	port, err := nat.NewPort("tcp", "3306")
	require.NoError(t, err)
	req := testcontainers.ContainerRequest{
		Name:         "memberquery_integration_test",
		Image:        mysqlImage,
		ExposedPorts: []string{"3306/tcp"},
		Env: map[string]string{
			"MYSQL_ROOT_PASSWORD": "password",
			"MYSQL_DATABASE":      mysqlDatabase,
		},
		WaitingFor: wait.ForSQL(port, "mysql", func(host string, port nat.Port) string {
			return "root:password@tcp(" + host + ":" + port.Port() + ")/"
		}),
	}

	container, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: req,
		Started:          true,
		Reuse:            true,
	})
	if err != nil {
		t.Skipf("skipping: cannot start MySQL container: %v", err)
	}

	mappedPort, err := container.MappedPort(ctx, port)
	require.NoError(t, err)
	host, err := container.Host(ctx)
	require.NoError(t, err)

	db, err := sqlx.Open("mysql", "root:password@tcp("+host+":"+mappedPort.Port()+")/"+mysqlDatabase)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	require.NoError(t, db.Ping())
	return db
}
