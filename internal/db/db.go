package db

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"
)

// OpenDB opens the SQLite database at path (":memory:" for an in-memory one),
// enables WAL mode, foreign keys and a busy timeout, and runs all migrations.
// The busy timeout matters for near-simultaneous aggregation runs: two
// clock-outs for the same user must serialize on the daily_records upsert
// instead of failing with SQLITE_BUSY.
func OpenDB(path string) (*sql.DB, error) {
	if path != ":memory:" {
		dir := filepath.Dir(path)
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating db directory: %w", err)
		}
	}

	// busy_timeout and foreign_keys are per-connection state; setting them
	// in the DSN applies them to every connection the pool opens, not just
	// the one an Exec happens to land on.
	dsn := path + "?_pragma=busy_timeout(5000)&_pragma=foreign_keys(1)"
	database, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	// Journal mode is persistent database state, one Exec suffices.
	if _, err := database.Exec("PRAGMA journal_mode = WAL"); err != nil {
		database.Close()
		return nil, fmt.Errorf("enabling WAL: %w", err)
	}

	if err := Migrate(database); err != nil {
		database.Close()
		return nil, fmt.Errorf("running migrations: %w", err)
	}

	return database, nil
}
