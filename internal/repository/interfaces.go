package repository

import (
	"context"
	"errors"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
)

var (
	// ErrNotFound is returned when a requested row does not exist.
	ErrNotFound = errors.New("not found")
	// ErrSettled is returned when deleting an entry that has been settled.
	ErrSettled = errors.New("entry is settled and cannot be deleted")
	// ErrAlreadyDeleted is returned when deleting an already-deleted entry.
	ErrAlreadyDeleted = errors.New("entry is already deleted")
)

type EntryRepo interface {
	Create(ctx context.Context, e *domain.TimeLogEntry) error
	GetByID(ctx context.Context, id string) (*domain.TimeLogEntry, error)
	// ListForUserBetween returns non-deleted entries with
	// from <= logged_at < to, ordered by logged_at ascending.
	ListForUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.TimeLogEntry, error)
	// ListDeletedForUserBetween returns soft-deleted entries in the window.
	ListDeletedForUserBetween(ctx context.Context, userID string, from, to time.Time) ([]*domain.TimeLogEntry, error)
	// SoftDelete marks an entry deleted. Settled or already-deleted entries
	// are refused with ErrSettled / ErrAlreadyDeleted.
	SoftDelete(ctx context.Context, id, deletedBy, reason string, at time.Time) error
	// MarkSettled freezes entries against deletion, typically after payroll.
	MarkSettled(ctx context.Context, ids []string) error
}

type DailyRecordRepo interface {
	// Upsert writes the record for its (UserID, Day, ContractID) key,
	// overwriting all derived fields on conflict. Atomic via the unique
	// constraint; never a read-then-write.
	Upsert(ctx context.Context, r *domain.DailyRecord) error
	GetByKey(ctx context.Context, userID, day, contractID string) (*domain.DailyRecord, error)
	// ListForUserBetween returns records with from <= day <= to, ordered by day.
	ListForUserBetween(ctx context.Context, userID, from, to string) ([]*domain.DailyRecord, error)
}
