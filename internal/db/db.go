package db

import (
	"fmt"
	"strings"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

const driverName = "sqlite"

// timeFormatParam makes the driver write time.Time values in a layout that
// SQLite date functions understand.
const timeFormatParam = "_time_format=sqlite"

// Open opens a SQLite database, sets recommended pragmas, and validates connectivity.
// Use ":memory:" for a throwaway database; it is pinned to a single connection
// so every query sees the same schema.
func Open(dbPath string) (*sqlx.DB, error) {
	db, err := sqlx.Open(driverName, dsn(dbPath))
	if err != nil {
		return nil, fmt.Errorf("open sqlite database: %w", err)
	}
	if dbPath == ":memory:" {
		db.SetMaxOpenConns(1)
	}

	if _, err := db.Exec(`
		PRAGMA journal_mode = WAL;
		PRAGMA foreign_keys = ON;
		PRAGMA busy_timeout = 5000;
	`); err != nil {
		db.Close()
		return nil, fmt.Errorf("set sqlite pragmas: %w", err)
	}

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping sqlite database: %w", err)
	}

	return db, nil
}

func dsn(dbPath string) string {
	if strings.Contains(dbPath, "?") {
		return dbPath + "&" + timeFormatParam
	}
	return dbPath + "?" + timeFormatParam
}
