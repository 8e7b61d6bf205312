package repository

import (
	"context"
	"database/sql"
	"fmt"
	"strings"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/db"
	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
)

// entryColumns is the canonical SELECT column list for time_log_entries.
const entryColumns = `id, user_id, contract_id, entry_type, logged_at, comment,
		deleted_at, deleted_by, deletion_reason, settled, created_at`

// SQLiteEntryRepo implements EntryRepo using a SQLite database.
type SQLiteEntryRepo struct {
	db db.DBTX
}

// NewSQLiteEntryRepo creates a new SQLiteEntryRepo over a DB or transaction.
func NewSQLiteEntryRepo(conn db.DBTX) *SQLiteEntryRepo {
	return &SQLiteEntryRepo{db: conn}
}

func (r *SQLiteEntryRepo) Create(ctx context.Context, e *domain.TimeLogEntry) error {
	query := `INSERT INTO time_log_entries (id, user_id, contract_id, entry_type, logged_at,
		comment, deleted_at, deleted_by, deletion_reason, settled, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)`
	_, err := r.db.ExecContext(ctx, query,
		e.ID,
		e.UserID,
		e.ContractID,
		string(e.EntryType),
		e.LoggedAt.UTC().Format(time.RFC3339),
		e.Comment,
		nullableTimeToString(e.DeletedAt, time.RFC3339),
		e.DeletedBy,
		e.DeletionReason,
		boolToInt(e.Settled),
		e.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("inserting time log entry: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) GetByID(ctx context.Context, id string) (*domain.TimeLogEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_log_entries WHERE id = ?`
	row := r.db.QueryRowContext(ctx, query, id)
	return r.scanEntry(row)
}

func (r *SQLiteEntryRepo) ListForUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.TimeLogEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_log_entries
		WHERE user_id = ? AND deleted_at IS NULL
		  AND logged_at >= ? AND logged_at < ?
		ORDER BY logged_at`
	rows, err := r.db.QueryContext(ctx, query, userID,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing entries for user: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) ListDeletedForUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.TimeLogEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM time_log_entries
		WHERE user_id = ? AND deleted_at IS NOT NULL
		  AND logged_at >= ? AND logged_at < ?
		ORDER BY logged_at`
	rows, err := r.db.QueryContext(ctx, query, userID,
		from.UTC().Format(time.RFC3339), to.UTC().Format(time.RFC3339))
	if err != nil {
		return nil, fmt.Errorf("listing deleted entries for user: %w", err)
	}
	defer rows.Close()
	return r.scanEntries(rows)
}

func (r *SQLiteEntryRepo) SoftDelete(ctx context.Context, id, deletedBy, reason string, at time.Time) error {
	entry, err := r.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if entry.Settled {
		return fmt.Errorf("time log entry %s: %w", id, ErrSettled)
	}
	if entry.IsDeleted() {
		return fmt.Errorf("time log entry %s: %w", id, ErrAlreadyDeleted)
	}

	// The guard is re-stated in the WHERE clause so a concurrent settle or
	// delete between read and write cannot slip through.
	query := `UPDATE time_log_entries
		SET deleted_at = ?, deleted_by = ?, deletion_reason = ?
		WHERE id = ? AND settled = 0 AND deleted_at IS NULL`
	res, err := r.db.ExecContext(ctx, query,
		at.UTC().Format(time.RFC3339), deletedBy, reason, id)
	if err != nil {
		return fmt.Errorf("soft-deleting time log entry: %w", err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("checking soft-delete result: %w", err)
	}
	if affected == 0 {
		return fmt.Errorf("time log entry %s: %w", id, ErrAlreadyDeleted)
	}
	return nil
}

func (r *SQLiteEntryRepo) MarkSettled(ctx context.Context, ids []string) error {
	if len(ids) == 0 {
		return nil
	}
	placeholders := strings.Repeat("?,", len(ids))
	placeholders = placeholders[:len(placeholders)-1]
	args := make([]any, len(ids))
	for i, id := range ids {
		args[i] = id
	}
	query := `UPDATE time_log_entries SET settled = 1 WHERE id IN (` + placeholders + `)`
	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("marking entries settled: %w", err)
	}
	return nil
}

func (r *SQLiteEntryRepo) scanEntry(row *sql.Row) (*domain.TimeLogEntry, error) {
	var e domain.TimeLogEntry
	var entryType, loggedAtStr, createdAtStr string
	var deletedAt sql.NullString
	var settled int

	err := row.Scan(
		&e.ID, &e.UserID, &e.ContractID, &entryType, &loggedAtStr, &e.Comment,
		&deletedAt, &e.DeletedBy, &e.DeletionReason, &settled, &createdAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("time log entry: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning time log entry: %w", err)
	}
	return r.populateEntry(&e, entryType, loggedAtStr, createdAtStr, deletedAt, settled)
}

func (r *SQLiteEntryRepo) scanEntries(rows *sql.Rows) ([]*domain.TimeLogEntry, error) {
	var entries []*domain.TimeLogEntry
	for rows.Next() {
		var e domain.TimeLogEntry
		var entryType, loggedAtStr, createdAtStr string
		var deletedAt sql.NullString
		var settled int

		err := rows.Scan(
			&e.ID, &e.UserID, &e.ContractID, &entryType, &loggedAtStr, &e.Comment,
			&deletedAt, &e.DeletedBy, &e.DeletionReason, &settled, &createdAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning entry row: %w", err)
		}

		entry, parseErr := r.populateEntry(&e, entryType, loggedAtStr, createdAtStr, deletedAt, settled)
		if parseErr != nil {
			return nil, parseErr
		}
		entries = append(entries, entry)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating entries: %w", err)
	}
	return entries, nil
}

func (r *SQLiteEntryRepo) populateEntry(e *domain.TimeLogEntry, entryType, loggedAtStr, createdAtStr string, deletedAt sql.NullString, settled int) (*domain.TimeLogEntry, error) {
	e.EntryType = domain.EntryType(entryType)
	e.Settled = intToBool(settled)
	e.DeletedAt = parseNullableTime(deletedAt, time.RFC3339)

	var parseErr error
	e.LoggedAt, parseErr = time.Parse(time.RFC3339, loggedAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing logged_at: %w", parseErr)
	}
	e.CreatedAt, parseErr = time.Parse(time.RFC3339, createdAtStr)
	if parseErr != nil {
		return nil, fmt.Errorf("parsing created_at: %w", parseErr)
	}
	return e, nil
}
