package service

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/bside-ms/bside-nexus-sub000/internal/repository"
	"github.com/bside-ms/bside-nexus-sub000/internal/testutil"
	"github.com/bside-ms/bside-nexus-sub000/internal/worktime"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustTime(t *testing.T, year int, month time.Month, day, hour, min int) time.Time {
	t.Helper()
	return time.Date(year, month, day, hour, min, 0, 0, berlin)
}

type entryFixture struct {
	svc     EntryService
	entries repository.EntryRepo
	records repository.DailyRecordRepo
	clock   *time.Time
}

func newEntryFixture(t *testing.T) *entryFixture {
	t.Helper()
	database := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(database)
	seg := worktime.NewSegmenter(berlin)

	clock := time.Date(2025, 11, 3, 8, 0, 0, 0, berlin)
	f := &entryFixture{
		entries: entries,
		records: repository.NewSQLiteDailyRecordRepo(database),
		clock:   &clock,
	}
	f.svc = NewEntryService(entries, seg, worktime.DefaultPolicy(), testutil.NewTestUoW(database), nil, func() time.Time {
		return *f.clock
	})
	return f
}

// bookAt advances the fixture clock to the instant and books the punch.
func (f *entryFixture) bookAt(ctx context.Context, typ domain.EntryType, at time.Time, force bool) (*BookingResult, error) {
	*f.clock = at
	return f.svc.Book(ctx, BookingRequest{
		UserID:    "u1",
		EntryType: typ,
		At:        &at,
		Force:     force,
	})
}

func TestBook_StartCommitsAndAggregates(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	result, err := f.bookAt(ctx, domain.EntryStart, mustTime(t, 2025, 11, 3, 8, 0), false)
	require.NoError(t, err)
	require.NotNil(t, result.Entry)
	assert.Equal(t, "2025-11-03", result.Day)
	assert.True(t, result.Verdict.Valid)

	stored, err := f.entries.GetByID(ctx, result.Entry.ID)
	require.NoError(t, err)
	assert.Equal(t, domain.EntryStart, stored.EntryType)

	// An open day aggregates with an error marker, no net time yet.
	record, err := f.records.GetByKey(ctx, "u1", "2025-11-03", "")
	require.NoError(t, err)
	assert.True(t, record.HasErrors)
	assert.Zero(t, record.TotalWorkHours)
}

func TestBook_StopWithSufficientBreak(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	punches := []struct {
		typ domain.EntryType
		at  time.Time
	}{
		{domain.EntryStart, mustTime(t, 2025, 11, 3, 8, 0)},
		{domain.EntryPause, mustTime(t, 2025, 11, 3, 12, 0)},
		{domain.EntryPauseEnd, mustTime(t, 2025, 11, 3, 12, 30)},
	}
	for _, p := range punches {
		_, err := f.bookAt(ctx, p.typ, p.at, false)
		require.NoError(t, err)
	}

	result, err := f.bookAt(ctx, domain.EntryStop, mustTime(t, 2025, 11, 3, 17, 0), false)
	require.NoError(t, err)
	assert.True(t, result.Verdict.Valid)
	require.NotNil(t, result.Record)
	assert.InDelta(t, 8.5, result.Record.TotalWorkHours, 0.001)
	assert.False(t, result.Record.HasErrors)
}

func TestBook_StopRefusedWithoutForce(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	_, err := f.bookAt(ctx, domain.EntryStart, mustTime(t, 2025, 11, 3, 8, 0), false)
	require.NoError(t, err)

	// 9h gross with no break trips the 30-minute requirement.
	result, err := f.bookAt(ctx, domain.EntryStop, mustTime(t, 2025, 11, 3, 17, 0), false)
	require.ErrorIs(t, err, ErrBreakWarning)
	require.NotNil(t, result)
	assert.Nil(t, result.Entry)
	assert.False(t, result.Verdict.Valid)
	assert.Equal(t, 30, result.Verdict.RequiredMinutes)
	assert.Equal(t, 0, result.Verdict.ActualMinutes)

	// The refusal must leave no trace in storage.
	entries, stats, listErr := f.svc.ListDay(ctx, "u1", "2025-11-03")
	require.NoError(t, listErr)
	assert.Len(t, entries, 1)
	assert.Equal(t, 0, stats.StopCount)
}

func TestBook_ForceOverridesWarning(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	_, err := f.bookAt(ctx, domain.EntryStart, mustTime(t, 2025, 11, 3, 8, 0), false)
	require.NoError(t, err)

	result, err := f.bookAt(ctx, domain.EntryStop, mustTime(t, 2025, 11, 3, 17, 0), true)
	require.NoError(t, err)
	require.NotNil(t, result.Entry)
	// The verdict still reports the violation even though it was overridden.
	assert.False(t, result.Verdict.Valid)
	require.NotNil(t, result.Record)
	// Net stays gross minus the imputed statutory break.
	assert.InDelta(t, 8.5, result.Record.TotalWorkHours, 0.001)
}

func TestBook_MidnightStopLandsOnStartDay(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	_, err := f.bookAt(ctx, domain.EntryStart, mustTime(t, 2025, 11, 3, 23, 40), false)
	require.NoError(t, err)

	result, err := f.bookAt(ctx, domain.EntryStop, mustTime(t, 2025, 11, 4, 0, 20), false)
	require.NoError(t, err)
	assert.Equal(t, "2025-11-03", result.Day)
	require.NotNil(t, result.Record)
	assert.Equal(t, "2025-11-03", result.Record.Day)
	assert.InDelta(t, 0.67, result.Record.TotalWorkHours, 0.001)
}

func TestBook_RejectsBadInput(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	_, err := f.svc.Book(ctx, BookingRequest{UserID: "u1", EntryType: "lunch"})
	assert.ErrorIs(t, err, ErrInvalidEntryType)

	_, err = f.svc.Book(ctx, BookingRequest{
		UserID:    "u1",
		EntryType: domain.EntryStart,
		Comment:   strings.Repeat("x", domain.MaxCommentLen+1),
	})
	assert.ErrorIs(t, err, ErrCommentTooLong)

	tooFar := f.clock.Add(2 * time.Hour)
	_, err = f.svc.Book(ctx, BookingRequest{
		UserID:    "u1",
		EntryType: domain.EntryStart,
		At:        &tooFar,
	})
	assert.ErrorIs(t, err, worktime.ErrTooFarInFuture)
}

func TestBook_RollbackLeavesNoEntry(t *testing.T) {
	database := testutil.NewTestDB(t)
	entries := repository.NewSQLiteEntryRepo(database)
	seg := worktime.NewSegmenter(berlin)

	clock := time.Date(2025, 11, 3, 8, 0, 0, 0, berlin)
	injected := errors.New("injected failure")
	// First exec inside the tx is the entry insert, second is the record
	// upsert. Failing the second must roll the insert back too.
	uow := &testutil.FailOnNthExecUoW{DB: database, FailOn: 2, Err: injected}
	svc := NewEntryService(entries, seg, worktime.DefaultPolicy(), uow, nil, func() time.Time {
		return clock
	})

	_, err := svc.Book(context.Background(), BookingRequest{
		UserID:    "u1",
		EntryType: domain.EntryStart,
	})
	require.ErrorIs(t, err, injected)

	remaining, err := entries.ListForUserBetween(context.Background(),
		"u1", clock.AddDate(0, 0, -1), clock.AddDate(0, 0, 1))
	require.NoError(t, err)
	assert.Empty(t, remaining, "rolled-back booking must not persist")
}

func TestDelete_ReaggregatesBothCandidateDays(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	_, err := f.bookAt(ctx, domain.EntryStart, mustTime(t, 2025, 11, 3, 23, 40), false)
	require.NoError(t, err)
	stop, err := f.bookAt(ctx, domain.EntryStop, mustTime(t, 2025, 11, 4, 0, 20), false)
	require.NoError(t, err)

	require.NoError(t, f.svc.Delete(ctx, stop.Entry.ID, "admin", "mispunch"))

	// The stop lived on civil day Nov 4 but its workday was Nov 3; deleting
	// it turns Nov 3 into an unmatched start.
	record, err := f.records.GetByKey(ctx, "u1", "2025-11-03", "")
	require.NoError(t, err)
	assert.True(t, record.HasErrors)
	assert.Zero(t, record.TotalWorkHours)

	deleted, err := f.svc.ListDeleted(ctx, "u1", "2025-11-04")
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, "admin", deleted[0].DeletedBy)
	assert.Equal(t, "mispunch", deleted[0].DeletionReason)
}

func TestDelete_UnknownEntry(t *testing.T) {
	f := newEntryFixture(t)

	err := f.svc.Delete(context.Background(), "no-such-id", "admin", "test")
	assert.ErrorIs(t, err, repository.ErrNotFound)
}

func TestSettleDay_FreezesEntries(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	punches := []struct {
		typ domain.EntryType
		at  time.Time
	}{
		{domain.EntryStart, mustTime(t, 2025, 11, 3, 8, 0)},
		{domain.EntryPause, mustTime(t, 2025, 11, 3, 12, 0)},
		{domain.EntryPauseEnd, mustTime(t, 2025, 11, 3, 12, 30)},
		{domain.EntryStop, mustTime(t, 2025, 11, 3, 17, 0)},
	}
	var lastID string
	for _, p := range punches {
		result, err := f.bookAt(ctx, p.typ, p.at, false)
		require.NoError(t, err)
		lastID = result.Entry.ID
	}

	count, err := f.svc.SettleDay(ctx, "u1", "2025-11-03")
	require.NoError(t, err)
	assert.Equal(t, 4, count)

	err = f.svc.Delete(ctx, lastID, "admin", "too late")
	assert.ErrorIs(t, err, repository.ErrSettled)
}

func TestListDay_DayAfterMidnightShiftIsEmpty(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	_, err := f.bookAt(ctx, domain.EntryStart, mustTime(t, 2025, 11, 3, 23, 40), false)
	require.NoError(t, err)
	_, err = f.bookAt(ctx, domain.EntryStop, mustTime(t, 2025, 11, 4, 0, 20), false)
	require.NoError(t, err)

	// Both punches belong to Nov 3; the next day must not inherit the
	// stop as an orphan.
	entries, stats, err := f.svc.ListDay(ctx, "u1", "2025-11-04")
	require.NoError(t, err)
	assert.Empty(t, entries)
	assert.Zero(t, stats.StopCount)
	assert.True(t, stats.HasIssue(domain.IssueNoBookings))

	owned, ownedStats, err := f.svc.ListDay(ctx, "u1", "2025-11-03")
	require.NoError(t, err)
	assert.Len(t, owned, 2)
	assert.Equal(t, 40, ownedStats.NetMinutes)
}

func TestListDay_ReturnsGroupAndStats(t *testing.T) {
	f := newEntryFixture(t)
	ctx := context.Background()

	for _, p := range []struct {
		typ domain.EntryType
		at  time.Time
	}{
		{domain.EntryStart, mustTime(t, 2025, 11, 3, 8, 0)},
		{domain.EntryPause, mustTime(t, 2025, 11, 3, 12, 0)},
		{domain.EntryPauseEnd, mustTime(t, 2025, 11, 3, 12, 30)},
		{domain.EntryStop, mustTime(t, 2025, 11, 3, 17, 0)},
	} {
		_, err := f.bookAt(ctx, p.typ, p.at, false)
		require.NoError(t, err)
	}

	entries, stats, err := f.svc.ListDay(ctx, "u1", "2025-11-03")
	require.NoError(t, err)
	assert.Len(t, entries, 4)
	assert.Equal(t, 510, stats.NetMinutes)
	assert.Equal(t, domain.BreakOK, stats.BreakWarning)
}
