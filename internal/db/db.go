package db

import (
	"database/sql"
	"fmt"
	"log"
	"strings"

	_ "github.com/lib/pq"
)

// DB wraps the postgres connection.
type DB struct {
	*sql.DB
}

// New opens a postgres connection from the provided connection string and
// verifies it with a ping. When the initial ping fails and the string does
// not pin an sslmode, the connection is retried with SSL disabled (local
// postgres instances commonly reject SSL).
func New(connectionString string) (*DB, error) {
	if connectionString == "" {
		return nil, fmt.Errorf("database connection string is required")
	}

	sqlDB, err := sql.Open("postgres", connectionString)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if err := sqlDB.Ping(); err != nil {
		if !strings.Contains(strings.ToLower(connectionString), "sslmode") {
			log.Println("retrying database connection with SSL disabled")
			sqlDB.Close()
			retry := connectionString
			if strings.Contains(retry, "?") {
				retry += "&sslmode=disable"
			} else {
				retry += "?sslmode=disable"
			}
			sqlDB, err = sql.Open("postgres", retry)
			if err != nil {
				return nil, fmt.Errorf("failed to open database: %w", err)
			}
		}
		if err := sqlDB.Ping(); err != nil {
			return nil, fmt.Errorf("failed to ping database: %w", err)
		}
	}

	sqlDB.SetMaxOpenConns(25)
	sqlDB.SetMaxIdleConns(5)

	return &DB{DB: sqlDB}, nil
}

// EnsureSchema creates the repo_context table when it does not exist yet.
// The table holds a single row; saves upsert it.
func (db *DB) EnsureSchema() error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS repo_context (
			id INTEGER PRIMARY KEY,
			repo_name TEXT NOT NULL,
			repo_url TEXT NOT NULL,
			owner TEXT NOT NULL,
			created_at TEXT NOT NULL,
			full_name TEXT NOT NULL,
			updated_at TIMESTAMP DEFAULT NOW()
		)
	`)
	return err
}

// HealthCheck verifies the database connection is healthy.
func (db *DB) HealthCheck() error {
	return db.Ping()
}

// Close closes the database connection.
func (db *DB) Close() error {
	return db.DB.Close()
}
