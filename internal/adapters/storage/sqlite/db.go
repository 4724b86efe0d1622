package sqlite

import (
	"context"
	"database/sql"
	"time"

	_ "github.com/mattn/go-sqlite3"
)

// Open opens (or creates) the database file and bootstraps the schema. The
// desktop deployment owns its database, so there is no external migration
// step.
func Open(path string) (*sql.DB, error) {
	db, err := sql.Open("sqlite3", path)
	if err != nil {
		return nil, err
	}

	// Single writer; avoids SQLITE_BUSY under concurrent handlers.
	db.SetMaxOpenConns(1)

	ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
	defer cancel()

	if err := db.PingContext(ctx); err != nil {
		_ = db.Close()
		return nil, err
	}

	if err := initTables(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}

	return db, nil
}

func initTables(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS animals (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL,
			species TEXT NOT NULL,
			breed TEXT NOT NULL,
			sex TEXT NOT NULL,
			birth_month INTEGER NOT NULL DEFAULT 0,
			birth_year INTEGER NOT NULL DEFAULT 0,
			neutered BOOLEAN NOT NULL,
			admission_timestamp INTEGER NOT NULL,
			status TEXT NOT NULL,
			image_path TEXT NOT NULL DEFAULT '',
			appearance TEXT NOT NULL DEFAULT '',
			bio TEXT NOT NULL DEFAULT ''
		)`,
		`CREATE TABLE IF NOT EXISTS adoption_requests (
			id TEXT PRIMARY KEY,
			animal_id TEXT NOT NULL,
			username TEXT NOT NULL,
			name TEXT NOT NULL,
			email TEXT NOT NULL,
			tel_number TEXT NOT NULL DEFAULT '',
			address TEXT NOT NULL DEFAULT '',
			country TEXT NOT NULL DEFAULT '',
			occupation TEXT NOT NULL DEFAULT '',
			annual_income TEXT NOT NULL DEFAULT '',
			num_people INTEGER NOT NULL,
			num_children INTEGER NOT NULL,
			request_timestamp INTEGER NOT NULL,
			adoption_timestamp INTEGER NOT NULL DEFAULT 0,
			status TEXT NOT NULL,
			FOREIGN KEY (animal_id) REFERENCES animals (id)
		)`,
		`CREATE TABLE IF NOT EXISTS users (
			username TEXT PRIMARY KEY,
			password_hash TEXT NOT NULL,
			role TEXT NOT NULL
		)`,
	}

	for _, stmt := range stmts {
		if _, err := db.ExecContext(ctx, stmt); err != nil {
			return err
		}
	}
	return nil
}
