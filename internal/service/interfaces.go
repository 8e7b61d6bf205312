package service

import (
	"context"
	"errors"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/bside-ms/bside-nexus-sub000/internal/importer"
	"github.com/bside-ms/bside-nexus-sub000/internal/worktime"
)

// ErrBreakWarning is returned by Book when the proposed clock-out fails the
// statutory break check and Force was not set. The BookingResult carries the
// verdict so the caller can offer an explicit override.
var ErrBreakWarning = errors.New("break compliance warning")

// ErrCommentTooLong is returned when a booking comment exceeds the bound.
var ErrCommentTooLong = errors.New("comment exceeds maximum length")

// ErrInvalidEntryType is returned for an entry type outside the closed set.
var ErrInvalidEntryType = errors.New("invalid entry type")

// BookingRequest describes one punch to commit.
type BookingRequest struct {
	UserID     string
	ContractID string
	EntryType  domain.EntryType
	// At is the proposed instant; nil means now.
	At      *time.Time
	Comment string
	// Force commits a stop despite a failing break check.
	Force bool
}

// BookingResult reports the committed entry (nil when the booking was
// refused), the compliance verdict, and the workday the entry landed on.
type BookingResult struct {
	Entry   *domain.TimeLogEntry
	Verdict worktime.Verdict
	Day     string
	Record  *domain.DailyRecord
}

type EntryService interface {
	Book(ctx context.Context, req BookingRequest) (*BookingResult, error)
	// Delete soft-deletes an entry and re-aggregates the affected workdays.
	Delete(ctx context.Context, id, deletedBy, reason string) error
	// ListDay returns the entries attributed to the workday plus its stats.
	ListDay(ctx context.Context, userID, day string) ([]*domain.TimeLogEntry, domain.DayStats, error)
	ListDeleted(ctx context.Context, userID, day string) ([]*domain.TimeLogEntry, error)
	// SettleDay freezes the workday's entries against deletion.
	SettleDay(ctx context.Context, userID, day string) (int, error)
}

type ImportService interface {
	// Import validates and writes a bulk punch file in one transaction,
	// then recomputes every affected workday.
	Import(ctx context.Context, schema *importer.ImportSchema) (*ImportSummary, error)
}

type AggregationService interface {
	// AggregateDay recomputes and upserts the summary row for the key.
	// Idempotent; safe to call repeatedly and after edits of past entries.
	AggregateDay(ctx context.Context, userID, contractID, day string) (*domain.DailyRecord, error)
	// AggregateRange backfills every day in the inclusive [from, to] range.
	AggregateRange(ctx context.Context, userID, contractID, from, to string) ([]*domain.DailyRecord, error)
	ListRecords(ctx context.Context, userID, from, to string) ([]*domain.DailyRecord, error)
}
