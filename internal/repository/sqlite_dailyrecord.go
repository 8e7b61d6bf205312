package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/db"
	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
)

// SQLiteDailyRecordRepo implements DailyRecordRepo using a SQLite database.
type SQLiteDailyRecordRepo struct {
	db db.DBTX
}

// NewSQLiteDailyRecordRepo creates a new SQLiteDailyRecordRepo.
func NewSQLiteDailyRecordRepo(conn db.DBTX) *SQLiteDailyRecordRepo {
	return &SQLiteDailyRecordRepo{db: conn}
}

func (r *SQLiteDailyRecordRepo) Upsert(ctx context.Context, record *domain.DailyRecord) error {
	// Conflict resolution rides on UNIQUE(user_id, day, contract_id); the id
	// of the first writer survives, all derived fields are overwritten.
	query := `INSERT INTO daily_records (id, user_id, day, contract_id,
		total_work_hours, total_break_hours, has_errors, error_details, updated_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)
		ON CONFLICT(user_id, day, contract_id) DO UPDATE SET
			total_work_hours = excluded.total_work_hours,
			total_break_hours = excluded.total_break_hours,
			has_errors = excluded.has_errors,
			error_details = excluded.error_details,
			updated_at = excluded.updated_at`
	_, err := r.db.ExecContext(ctx, query,
		record.ID,
		record.UserID,
		record.Day,
		record.ContractID,
		record.TotalWorkHours,
		record.TotalBreakHours,
		boolToInt(record.HasErrors),
		record.ErrorDetails,
		record.UpdatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("upserting daily record: %w", err)
	}
	return nil
}

func (r *SQLiteDailyRecordRepo) GetByKey(ctx context.Context, userID, day, contractID string) (*domain.DailyRecord, error) {
	query := `SELECT id, user_id, day, contract_id, total_work_hours,
		total_break_hours, has_errors, error_details, updated_at
		FROM daily_records WHERE user_id = ? AND day = ? AND contract_id = ?`
	row := r.db.QueryRowContext(ctx, query, userID, day, contractID)

	var rec domain.DailyRecord
	var hasErrors int
	var updatedAtStr string
	err := row.Scan(
		&rec.ID, &rec.UserID, &rec.Day, &rec.ContractID,
		&rec.TotalWorkHours, &rec.TotalBreakHours, &hasErrors,
		&rec.ErrorDetails, &updatedAtStr,
	)
	if err != nil {
		if err == sql.ErrNoRows {
			return nil, fmt.Errorf("daily record: %w", ErrNotFound)
		}
		return nil, fmt.Errorf("scanning daily record: %w", err)
	}
	rec.HasErrors = intToBool(hasErrors)
	rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
	if err != nil {
		return nil, fmt.Errorf("parsing updated_at: %w", err)
	}
	return &rec, nil
}

func (r *SQLiteDailyRecordRepo) ListForUserBetween(ctx context.Context, userID, from, to string) ([]*domain.DailyRecord, error) {
	query := `SELECT id, user_id, day, contract_id, total_work_hours,
		total_break_hours, has_errors, error_details, updated_at
		FROM daily_records
		WHERE user_id = ? AND day >= ? AND day <= ?
		ORDER BY day, contract_id`
	rows, err := r.db.QueryContext(ctx, query, userID, from, to)
	if err != nil {
		return nil, fmt.Errorf("listing daily records: %w", err)
	}
	defer rows.Close()

	var records []*domain.DailyRecord
	for rows.Next() {
		var rec domain.DailyRecord
		var hasErrors int
		var updatedAtStr string
		err := rows.Scan(
			&rec.ID, &rec.UserID, &rec.Day, &rec.ContractID,
			&rec.TotalWorkHours, &rec.TotalBreakHours, &hasErrors,
			&rec.ErrorDetails, &updatedAtStr,
		)
		if err != nil {
			return nil, fmt.Errorf("scanning daily record row: %w", err)
		}
		rec.HasErrors = intToBool(hasErrors)
		rec.UpdatedAt, err = time.Parse(time.RFC3339, updatedAtStr)
		if err != nil {
			return nil, fmt.Errorf("parsing updated_at: %w", err)
		}
		records = append(records, &rec)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating daily records: %w", err)
	}
	return records, nil
}
