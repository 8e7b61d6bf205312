package domain

import "time"

// MaxCommentLen bounds the free-text comment on a time log entry.
const MaxCommentLen = 500

// TimeLogEntry is one punch event (start, pause, pause_end, stop).
// Entries are immutable after creation except for the soft-delete fields.
type TimeLogEntry struct {
	ID             string
	UserID         string
	ContractID     string // optional, "" when not bound to a contract
	EntryType      EntryType
	LoggedAt       time.Time
	Comment        string
	DeletedAt      *time.Time
	DeletedBy      string
	DeletionReason string
	Settled        bool // settled entries are immutable to deletion
	CreatedAt      time.Time
}

// IsDeleted reports whether the entry has been soft-deleted.
func (e *TimeLogEntry) IsDeleted() bool {
	return e.DeletedAt != nil
}

// Deletable reports whether the entry may still be soft-deleted.
func (e *TimeLogEntry) Deletable() bool {
	return !e.Settled && !e.IsDeleted()
}
