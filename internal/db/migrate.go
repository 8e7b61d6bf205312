package db

import (
	"database/sql"
	"fmt"
	"strings"
)

// Migrate runs all schema migrations. Statements are idempotent; ALTER TABLE
// additions tolerate re-runs via the duplicate-column check.
func Migrate(db *sql.DB) error {
	for i, stmt := range migrations {
		if _, err := db.Exec(stmt); err != nil {
			if strings.Contains(err.Error(), "duplicate column name") {
				continue
			}
			return fmt.Errorf("migration %d: %w", i, err)
		}
	}
	return nil
}

var migrations = []string{
	`CREATE TABLE IF NOT EXISTS time_log_entries (
		id              TEXT PRIMARY KEY,
		user_id         TEXT NOT NULL,
		contract_id     TEXT NOT NULL DEFAULT '',
		entry_type      TEXT NOT NULL
		                CHECK(entry_type IN ('start','pause','pause_end','stop')),
		logged_at       TEXT NOT NULL,
		comment         TEXT NOT NULL DEFAULT '',
		deleted_at      TEXT,
		deleted_by      TEXT NOT NULL DEFAULT '',
		deletion_reason TEXT NOT NULL DEFAULT '',
		settled         INTEGER NOT NULL DEFAULT 0,
		created_at      TEXT NOT NULL
	)`,

	`CREATE INDEX IF NOT EXISTS idx_entries_user_logged ON time_log_entries(user_id, logged_at)`,
	`CREATE INDEX IF NOT EXISTS idx_entries_deleted ON time_log_entries(deleted_at)`,

	// The UNIQUE constraint is what makes aggregation upserts atomic:
	// concurrent runs for the same (user, day, contract) resolve via
	// ON CONFLICT instead of racing a read-then-write.
	`CREATE TABLE IF NOT EXISTS daily_records (
		id                TEXT PRIMARY KEY,
		user_id           TEXT NOT NULL,
		day               TEXT NOT NULL,
		contract_id       TEXT NOT NULL DEFAULT '',
		total_work_hours  REAL NOT NULL DEFAULT 0,
		total_break_hours REAL NOT NULL DEFAULT 0,
		has_errors        INTEGER NOT NULL DEFAULT 0,
		error_details     TEXT NOT NULL DEFAULT '',
		updated_at        TEXT NOT NULL,
		UNIQUE(user_id, day, contract_id)
	)`,

	`CREATE INDEX IF NOT EXISTS idx_daily_records_user_day ON daily_records(user_id, day)`,
}
