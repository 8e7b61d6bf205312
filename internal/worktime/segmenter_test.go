package worktime

import (
	"testing"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var berlin = MustLoadLocation("Europe/Berlin")

func entryAt(typ domain.EntryType, t time.Time) *domain.TimeLogEntry {
	return &domain.TimeLogEntry{EntryType: typ, LoggedAt: t}
}

func TestSegment_SingleDay(t *testing.T) {
	seg := NewSegmenter(berlin)
	entries := []*domain.TimeLogEntry{
		entryAt(domain.EntryStart, time.Date(2025, 11, 3, 8, 0, 0, 0, berlin)),
		entryAt(domain.EntryPause, time.Date(2025, 11, 3, 12, 0, 0, 0, berlin)),
		entryAt(domain.EntryPauseEnd, time.Date(2025, 11, 3, 12, 30, 0, 0, berlin)),
		entryAt(domain.EntryStop, time.Date(2025, 11, 3, 17, 0, 0, 0, berlin)),
	}

	groups, dropped := seg.Segment(entries)

	assert.Equal(t, 0, dropped)
	require.Len(t, groups, 1)
	assert.Len(t, groups["2025-11-03"], 4)
}

func TestSegment_MidnightShiftBelongsToStartDay(t *testing.T) {
	seg := NewSegmenter(berlin)
	entries := []*domain.TimeLogEntry{
		entryAt(domain.EntryStart, time.Date(2025, 11, 3, 23, 40, 0, 0, berlin)),
		entryAt(domain.EntryStop, time.Date(2025, 11, 4, 0, 20, 0, 0, berlin)),
	}

	groups, _ := seg.Segment(entries)

	require.Len(t, groups, 1)
	require.Len(t, groups["2025-11-03"], 2)
	assert.Equal(t, domain.EntryStop, groups["2025-11-03"][1].EntryType)
}

func TestSegment_StopClosesTheWorkday(t *testing.T) {
	// After a stop, a later start on the next day opens a fresh group.
	seg := NewSegmenter(berlin)
	entries := []*domain.TimeLogEntry{
		entryAt(domain.EntryStart, time.Date(2025, 11, 3, 22, 0, 0, 0, berlin)),
		entryAt(domain.EntryStop, time.Date(2025, 11, 4, 2, 0, 0, 0, berlin)),
		entryAt(domain.EntryStart, time.Date(2025, 11, 4, 9, 0, 0, 0, berlin)),
		entryAt(domain.EntryStop, time.Date(2025, 11, 4, 17, 0, 0, 0, berlin)),
	}

	groups, _ := seg.Segment(entries)

	require.Len(t, groups, 2)
	assert.Len(t, groups["2025-11-03"], 2)
	assert.Len(t, groups["2025-11-04"], 2)
}

func TestSegment_OrphanedEventsFallBackToOwnDay(t *testing.T) {
	// A stop with no enclosing start is still reported on its calendar day.
	seg := NewSegmenter(berlin)
	entries := []*domain.TimeLogEntry{
		entryAt(domain.EntryStop, time.Date(2025, 11, 4, 0, 20, 0, 0, berlin)),
		entryAt(domain.EntryPause, time.Date(2025, 11, 5, 12, 0, 0, 0, berlin)),
	}

	groups, _ := seg.Segment(entries)

	require.Len(t, groups, 2)
	assert.Len(t, groups["2025-11-04"], 1)
	assert.Len(t, groups["2025-11-05"], 1)
}

func TestSegment_UnsortedInputIsSortedFirst(t *testing.T) {
	seg := NewSegmenter(berlin)
	entries := []*domain.TimeLogEntry{
		entryAt(domain.EntryStop, time.Date(2025, 11, 3, 17, 0, 0, 0, berlin)),
		entryAt(domain.EntryStart, time.Date(2025, 11, 3, 8, 0, 0, 0, berlin)),
	}

	groups, _ := seg.Segment(entries)

	require.Len(t, groups["2025-11-03"], 2)
	assert.Equal(t, domain.EntryStart, groups["2025-11-03"][0].EntryType)
	assert.Equal(t, domain.EntryStop, groups["2025-11-03"][1].EntryType)
}

func TestSegment_DropsZeroTimestamps(t *testing.T) {
	seg := NewSegmenter(berlin)
	entries := []*domain.TimeLogEntry{
		entryAt(domain.EntryStart, time.Date(2025, 11, 3, 8, 0, 0, 0, berlin)),
		{EntryType: domain.EntryPause},
		nil,
	}

	groups, dropped := seg.Segment(entries)

	assert.Equal(t, 2, dropped)
	assert.Len(t, groups["2025-11-03"], 1)
}

func TestSegment_OpenStartOwnsFollowingDays(t *testing.T) {
	// A start with no stop keeps owning events across however many days are
	// fed in; bounding the window is the caller's job.
	seg := NewSegmenter(berlin)
	entries := []*domain.TimeLogEntry{
		entryAt(domain.EntryStart, time.Date(2025, 11, 3, 8, 0, 0, 0, berlin)),
		entryAt(domain.EntryPause, time.Date(2025, 11, 5, 12, 0, 0, 0, berlin)),
	}

	groups, _ := seg.Segment(entries)

	require.Len(t, groups, 1)
	assert.Len(t, groups["2025-11-03"], 2)
}

func TestSegment_UTCInstantsGroupOnBerlinDay(t *testing.T) {
	// 23:30 UTC on Nov 3 is 00:30 Berlin on Nov 4.
	seg := NewSegmenter(berlin)
	entries := []*domain.TimeLogEntry{
		entryAt(domain.EntryStart, time.Date(2025, 11, 3, 23, 30, 0, 0, time.UTC)),
		entryAt(domain.EntryStop, time.Date(2025, 11, 4, 7, 0, 0, 0, time.UTC)),
	}

	groups, _ := seg.Segment(entries)

	require.Len(t, groups, 1)
	assert.Len(t, groups["2025-11-04"], 2)
}
