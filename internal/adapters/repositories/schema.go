package repositories

import (
	"database/sql"
	"errors"
	"fmt"
)

type Dialect string

const (
	Postgres Dialect = "postgres"
	SQLite   Dialect = "sqlite"
)

// Initialize the quotes schema for the given dialect. Safe to run repeatedly.
func InitSchema(db *sql.DB, dialect Dialect) error {
	if db == nil {
		return errors.New("init schema: DB is nil")
	}

	var statements []string
	switch dialect {
	case Postgres:
		statements = []string{
			`
	CREATE TABLE IF NOT EXISTS quotes (
		id TEXT PRIMARY KEY,
		origin TEXT NOT NULL DEFAULT '',
		destination TEXT NOT NULL DEFAULT '',
		distance_km DOUBLE PRECISION NOT NULL,
		size TEXT NOT NULL,
		fragile BOOLEAN NOT NULL,
		load TEXT NOT NULL,
		base_cost NUMERIC(12,2) NOT NULL,
		size_cost NUMERIC(12,2) NOT NULL,
		fragile_cost NUMERIC(12,2) NOT NULL,
		subtotal NUMERIC(12,2) NOT NULL,
		multiplier NUMERIC(4,2) NOT NULL,
		total NUMERIC(12,2) NOT NULL,
		floor_applied BOOLEAN NOT NULL,
		created_at TIMESTAMPTZ NOT NULL
	);
	`,
			`CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes(created_at DESC);`,
		}
	case SQLite:
		statements = []string{
			`
	CREATE TABLE IF NOT EXISTS quotes (
		id TEXT PRIMARY KEY,
		origin TEXT NOT NULL DEFAULT '',
		destination TEXT NOT NULL DEFAULT '',
		distance_km REAL NOT NULL,
		size TEXT NOT NULL,
		fragile INTEGER NOT NULL,
		load TEXT NOT NULL,
		base_cost REAL NOT NULL,
		size_cost REAL NOT NULL,
		fragile_cost REAL NOT NULL,
		subtotal REAL NOT NULL,
		multiplier REAL NOT NULL,
		total REAL NOT NULL,
		floor_applied INTEGER NOT NULL,
		created_at_ms INTEGER NOT NULL
	);
	`,
			`CREATE INDEX IF NOT EXISTS idx_quotes_created_at ON quotes(created_at_ms DESC);`,
		}
	default:
		return fmt.Errorf("init schema: unknown dialect %q", dialect)
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("init schema: begin tx: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	for i, stmt := range statements {
		if _, err := tx.Exec(stmt); err != nil {
			return fmt.Errorf("init schema: exec statement #%d: %w", i+1, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("init schema: commit tx: %w", err)
	}

	return nil
}
