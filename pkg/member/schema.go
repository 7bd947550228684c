package member

import (
	"context"

	"github.com/jmoiron/sqlx"
)

var mysqlSchema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		team_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		name VARCHAR(255) NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		member_id BIGINT AUTO_INCREMENT PRIMARY KEY,
		username VARCHAR(255) NULL,
		age INT NOT NULL DEFAULT 0,
		team_id BIGINT NULL,
		CONSTRAINT fk_members_team FOREIGN KEY (team_id) REFERENCES teams (team_id)
	)`,
}

var sqliteSchema = []string{
	`CREATE TABLE IF NOT EXISTS teams (
		team_id INTEGER PRIMARY KEY AUTOINCREMENT,
		name TEXT NOT NULL
	)`,
	`CREATE TABLE IF NOT EXISTS members (
		member_id INTEGER PRIMARY KEY AUTOINCREMENT,
		username TEXT NULL,
		age INTEGER NOT NULL DEFAULT 0,
		team_id INTEGER NULL REFERENCES teams (team_id)
	)`,
}

// EnsureSchema creates the teams and members tables when they do not exist yet.
func EnsureSchema(ctx context.Context, db sqlx.ExtContext) error {
	statements := mysqlSchema
	if db.DriverName() == "sqlite3" {
		statements = sqliteSchema
	}
	for _, stmt := range statements {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}

// DropSchema removes both tables.
func DropSchema(ctx context.Context, db sqlx.ExecerContext) error {
	for _, stmt := range []string{"DROP TABLE IF EXISTS members", "DROP TABLE IF EXISTS teams"} {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
