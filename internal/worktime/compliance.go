package worktime

import (
	"fmt"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
)

// ProposedEntry is a punch that has not been committed yet.
type ProposedEntry struct {
	EntryType domain.EntryType
	LoggedAt  time.Time
}

// Verdict is the advisory result of a pre-booking compliance check.
// Valid=false never blocks a write by itself; the caller decides whether to
// commit anyway after an explicit override.
type Verdict struct {
	Valid           bool
	RequiredMinutes int
	ActualMinutes   int
	Warning         string // "" when Valid
}

// Checker classifies whether an attempted clock-out would leave the workday
// short of its statutory break.
type Checker struct {
	seg *Segmenter
}

// NewChecker creates a Checker grouping workdays with seg.
func NewChecker(seg *Segmenter) *Checker {
	return &Checker{seg: seg}
}

// Check simulates the workday that would result from committing proposed on
// top of existing (expected to cover the current and previous civil day).
// Only a stop proposal is meaningful; any other type is trivially valid.
func (c *Checker) Check(existing []*domain.TimeLogEntry, proposed ProposedEntry) Verdict {
	if proposed.EntryType != domain.EntryStop {
		return Verdict{Valid: true}
	}

	transient := &domain.TimeLogEntry{
		EntryType: proposed.EntryType,
		LoggedAt:  proposed.LoggedAt,
	}
	merged := make([]*domain.TimeLogEntry, 0, len(existing)+1)
	merged = append(merged, existing...)
	merged = append(merged, transient)

	groups, _ := c.seg.Segment(merged)
	group := findGroupWith(groups, proposed)
	if group == nil {
		// The proposed stop vanished from every group; treat as acceptable,
		// the segmenter drops only zero timestamps.
		return Verdict{Valid: true}
	}

	stats := ComputeDayStats(group, c.seg.Location())
	if stats.BreakWarning == domain.BreakOK {
		return Verdict{
			Valid:           true,
			RequiredMinutes: stats.RequiredBreakMinutes,
			ActualMinutes:   stats.ActualBreakMinutes,
		}
	}

	return Verdict{
		Valid:           false,
		RequiredMinutes: stats.RequiredBreakMinutes,
		ActualMinutes:   stats.ActualBreakMinutes,
		Warning: fmt.Sprintf("statutory break not met: %d min required, %d min taken",
			stats.RequiredBreakMinutes, stats.ActualBreakMinutes),
	}
}

// findGroupWith locates the workday group containing the proposed entry,
// matched by type and exact timestamp.
func findGroupWith(groups map[string][]*domain.TimeLogEntry, proposed ProposedEntry) []*domain.TimeLogEntry {
	for _, group := range groups {
		for _, e := range group {
			if e.EntryType == proposed.EntryType && e.LoggedAt.Equal(proposed.LoggedAt) {
				return group
			}
		}
	}
	return nil
}
