package domain

type EntryType string

const (
	EntryStart    EntryType = "start"
	EntryPause    EntryType = "pause"
	EntryPauseEnd EntryType = "pause_end"
	EntryStop     EntryType = "stop"
)

// ValidEntryTypes is the canonical set of accepted entry type strings.
var ValidEntryTypes = map[string]bool{
	"start": true, "pause": true, "pause_end": true, "stop": true,
}

type BreakWarning string

const (
	BreakOK      BreakWarning = "ok"
	BreakUnder30 BreakWarning = "under30"
	BreakUnder45 BreakWarning = "under45"
)

// IssueKind is the closed set of non-fatal anomalies a day's bookings can
// carry. Consumers switch on the kind; the detail string is display-only.
type IssueKind string

const (
	IssueNoBookings        IssueKind = "no_bookings"
	IssueMissingStartStop  IssueKind = "missing_start_stop"
	IssueInvalidOrder      IssueKind = "invalid_order"
	IssueIncompleteBreak   IssueKind = "incomplete_break"
	IssueInvalidBreakOrder IssueKind = "invalid_break_order"
)
