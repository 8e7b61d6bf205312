package worktime

import (
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
)

// German statutory minimum breaks (ArbZG §4): 30 minutes beyond 6 hours of
// net work, 45 minutes beyond 9 hours.
const (
	breakThreshold30Min = 360
	breakThreshold45Min = 540

	RequiredBreakOver6h = 30
	RequiredBreakOver9h = 45
)

// ComputeDayStats derives the statistics for one workday's entries.
//
// Pairing is positional: starts[i] matches stops[i], pauses[i] matches
// pauseEnds[i], each list sorted by time. Malformed data never fails the
// computation; it degrades to best-effort minutes plus a list of issues.
//
// The required break is decided from the net candidate (gross minus breaks
// actually taken), not from gross time: the statutory trigger is worked time.
// The enforced break is then the larger of actual and required, and net is
// re-floored against it. This ordering is load-bearing for the warning
// boundaries and must not be rearranged.
func ComputeDayStats(entries []*domain.TimeLogEntry, loc *time.Location) domain.DayStats {
	stats := domain.DayStats{BreakWarning: domain.BreakOK}

	if len(entries) == 0 {
		stats.Issues = append(stats.Issues, domain.Issue{
			Kind:   domain.IssueNoBookings,
			Detail: "no bookings",
		})
		return stats
	}

	var starts, stops, pauses, pauseEnds []time.Time
	for _, e := range entries {
		t := e.LoggedAt.In(loc)
		switch e.EntryType {
		case domain.EntryStart:
			starts = append(starts, t)
		case domain.EntryStop:
			stops = append(stops, t)
		case domain.EntryPause:
			pauses = append(pauses, t)
		case domain.EntryPauseEnd:
			pauseEnds = append(pauseEnds, t)
		}
	}
	sortTimes(starts)
	sortTimes(stops)
	sortTimes(pauses)
	sortTimes(pauseEnds)

	stats.StartCount = len(starts)
	stats.StopCount = len(stops)
	stats.PauseCount = len(pauses)
	stats.PauseEndCount = len(pauseEnds)

	stats.WorkPairs, stats.SessionMinutes = pairIntervals(starts, stops, &stats.Issues,
		domain.IssueMissingStartStop, "missing start/stop",
		domain.IssueInvalidOrder, "start/stop order invalid")

	stats.BreakPairs, stats.ActualBreakMinutes = pairIntervals(pauses, pauseEnds, &stats.Issues,
		domain.IssueIncompleteBreak, "incomplete break",
		domain.IssueInvalidBreakOrder, "break order invalid")

	netCandidate := stats.SessionMinutes - stats.ActualBreakMinutes
	if netCandidate < 0 {
		netCandidate = 0
	}

	switch {
	case netCandidate > breakThreshold45Min:
		stats.RequiredBreakMinutes = RequiredBreakOver9h
	case netCandidate > breakThreshold30Min:
		stats.RequiredBreakMinutes = RequiredBreakOver6h
	}

	stats.AdjustedBreakMinutes = stats.ActualBreakMinutes
	if stats.RequiredBreakMinutes > stats.AdjustedBreakMinutes {
		stats.AdjustedBreakMinutes = stats.RequiredBreakMinutes
	}

	stats.NetMinutes = stats.SessionMinutes - stats.AdjustedBreakMinutes
	if stats.NetMinutes < 0 {
		stats.NetMinutes = 0
	}

	if stats.ActualBreakMinutes < stats.RequiredBreakMinutes {
		switch stats.RequiredBreakMinutes {
		case RequiredBreakOver9h:
			stats.BreakWarning = domain.BreakUnder45
		case RequiredBreakOver6h:
			stats.BreakWarning = domain.BreakUnder30
		}
	}

	return stats
}

// pairIntervals matches opens[i] with closes[i] and sums the positive
// interval minutes. Unequal list lengths record one unmatchedKind issue;
// each inverted pair records an invertedKind issue and contributes nothing.
func pairIntervals(opens, closes []time.Time, issues *[]domain.Issue,
	unmatchedKind domain.IssueKind, unmatchedDetail string,
	invertedKind domain.IssueKind, invertedDetail string) ([]domain.Pair, int) {

	n := len(opens)
	if len(closes) < n {
		n = len(closes)
	}

	var pairs []domain.Pair
	minutes := 0
	for i := 0; i < n; i++ {
		start, stop := opens[i], closes[i]
		pairs = append(pairs, domain.Pair{Start: &start, Stop: &stop})
		if stop.After(start) {
			minutes += roundedMinutes(stop.Sub(start))
		} else {
			*issues = append(*issues, domain.Issue{
				Kind:   invertedKind,
				Detail: fmt.Sprintf("%s (%s >= %s)", invertedDetail, ToTimeStr(&start), ToTimeStr(&stop)),
			})
		}
	}

	if len(opens) != len(closes) {
		*issues = append(*issues, domain.Issue{Kind: unmatchedKind, Detail: unmatchedDetail})
		// Keep unmatched opening events visible in the pair list.
		for i := n; i < len(opens); i++ {
			start := opens[i]
			pairs = append(pairs, domain.Pair{Start: &start})
		}
	}

	return pairs, minutes
}

// roundedMinutes converts a duration to whole minutes, rounded to nearest.
func roundedMinutes(d time.Duration) int {
	return int(math.Round(d.Minutes()))
}

func sortTimes(ts []time.Time) {
	sort.Slice(ts, func(i, j int) bool { return ts[i].Before(ts[j]) })
}
