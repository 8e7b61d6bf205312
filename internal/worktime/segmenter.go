package worktime

import (
	"sort"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
)

// DateLayout is the civil date key format used for workday grouping.
const DateLayout = "2006-01-02"

// DefaultTimezone is the civil timezone all workday reasoning defaults to.
const DefaultTimezone = "Europe/Berlin"

// Segmenter partitions punch events into workday groups. A workday is the
// civil date (in the segmenter's location) of the opening start event, and an
// open start owns every following event until the matching stop, even across
// midnight.
type Segmenter struct {
	loc *time.Location
}

// NewSegmenter creates a Segmenter grouping by civil dates in loc.
// A nil loc falls back to Europe/Berlin.
func NewSegmenter(loc *time.Location) *Segmenter {
	if loc == nil {
		loc = MustLoadLocation(DefaultTimezone)
	}
	return &Segmenter{loc: loc}
}

// Location returns the civil timezone the segmenter groups by.
func (s *Segmenter) Location() *time.Location {
	return s.loc
}

// CivilDate returns the workday key for an instant.
func (s *Segmenter) CivilDate(t time.Time) string {
	return t.In(s.loc).Format(DateLayout)
}

// Segment groups entries by workday. Entries with a zero timestamp are not
// representable on any day; they are dropped and counted in the second return
// value. Segment never fails.
//
// The grouping is a fold over the time-sorted slice carrying the currently
// open workday: a start opens the day of its own timestamp, every entry lands
// in the open day if one is set (else in its own civil day, so orphaned
// pause/stop events are still reported), and a stop closes the open day after
// being appended. A shift from 23:40 to 00:20 is therefore attributed
// entirely to the start day. A start with no matching stop keeps the day open
// for all remaining input; callers bound the window they feed in.
func (s *Segmenter) Segment(entries []*domain.TimeLogEntry) (map[string][]*domain.TimeLogEntry, int) {
	groups := make(map[string][]*domain.TimeLogEntry)

	sorted := make([]*domain.TimeLogEntry, 0, len(entries))
	dropped := 0
	for _, e := range entries {
		if e == nil || e.LoggedAt.IsZero() {
			dropped++
			continue
		}
		sorted = append(sorted, e)
	}
	sort.SliceStable(sorted, func(i, j int) bool {
		return sorted[i].LoggedAt.Before(sorted[j].LoggedAt)
	})

	var openDay string
	for _, e := range sorted {
		if e.EntryType == domain.EntryStart {
			openDay = s.CivilDate(e.LoggedAt)
		}

		day := openDay
		if day == "" {
			day = s.CivilDate(e.LoggedAt)
		}
		groups[day] = append(groups[day], e)

		if e.EntryType == domain.EntryStop {
			openDay = ""
		}
	}

	return groups, dropped
}

// MustLoadLocation loads a timezone by name and panics on failure. Intended
// for the known-good default; configured zones go through config validation.
func MustLoadLocation(name string) *time.Location {
	loc, err := time.LoadLocation(name)
	if err != nil {
		panic("worktime: loading timezone " + name + ": " + err.Error())
	}
	return loc
}
