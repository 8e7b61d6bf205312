package domain

import "time"

// Pair is one matched (start, stop) or (pause, pause_end) couple. Stop is nil
// for an unmatched opening event so callers can still render the start time.
type Pair struct {
	Start *time.Time
	Stop  *time.Time
}

// Issue is a non-fatal anomaly found while computing a day's statistics.
// Kind is a closed enum; Detail is a human-readable elaboration.
type Issue struct {
	Kind   IssueKind
	Detail string
}

// DayStats is the derived statistics record for one workday's entries.
// It is always recomputed, never persisted as its own entity.
type DayStats struct {
	WorkPairs  []Pair
	BreakPairs []Pair

	StartCount    int
	StopCount     int
	PauseCount    int
	PauseEndCount int

	SessionMinutes       int
	ActualBreakMinutes   int
	RequiredBreakMinutes int
	AdjustedBreakMinutes int
	NetMinutes           int

	BreakWarning BreakWarning
	Issues       []Issue
}

// HasIssue reports whether the stats carry an issue of the given kind.
func (s *DayStats) HasIssue(kind IssueKind) bool {
	for _, issue := range s.Issues {
		if issue.Kind == kind {
			return true
		}
	}
	return false
}

// IssueDetails returns the detail strings of all issues, in order.
func (s *DayStats) IssueDetails() []string {
	details := make([]string, 0, len(s.Issues))
	for _, issue := range s.Issues {
		details = append(details, issue.Detail)
	}
	return details
}
