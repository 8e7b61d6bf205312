package testutil

import (
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/google/uuid"
)

// Entry options
type EntryOption func(*domain.TimeLogEntry)

func WithContract(contractID string) EntryOption {
	return func(e *domain.TimeLogEntry) {
		e.ContractID = contractID
	}
}

func WithComment(comment string) EntryOption {
	return func(e *domain.TimeLogEntry) {
		e.Comment = comment
	}
}

func WithSettled() EntryOption {
	return func(e *domain.TimeLogEntry) {
		e.Settled = true
	}
}

func WithDeleted(by, reason string, at time.Time) EntryOption {
	return func(e *domain.TimeLogEntry) {
		e.DeletedAt = &at
		e.DeletedBy = by
		e.DeletionReason = reason
	}
}

// NewTestEntry builds a TimeLogEntry with sensible defaults.
func NewTestEntry(userID string, typ domain.EntryType, loggedAt time.Time, opts ...EntryOption) *domain.TimeLogEntry {
	e := &domain.TimeLogEntry{
		ID:        uuid.New().String(),
		UserID:    userID,
		EntryType: typ,
		LoggedAt:  loggedAt,
		CreatedAt: time.Now().UTC(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// NewTestWorkday builds a plain 4-punch workday for userID on the given date
// in loc: start 08:00, pause 12:00, pause_end 12:30, stop 17:00.
func NewTestWorkday(userID string, year int, month time.Month, day int, loc *time.Location) []*domain.TimeLogEntry {
	return []*domain.TimeLogEntry{
		NewTestEntry(userID, domain.EntryStart, time.Date(year, month, day, 8, 0, 0, 0, loc)),
		NewTestEntry(userID, domain.EntryPause, time.Date(year, month, day, 12, 0, 0, 0, loc)),
		NewTestEntry(userID, domain.EntryPauseEnd, time.Date(year, month, day, 12, 30, 0, 0, loc)),
		NewTestEntry(userID, domain.EntryStop, time.Date(year, month, day, 17, 0, 0, 0, loc)),
	}
}
