package repository

import (
	"context"
	"testing"
	"time"

	"github.com/bside-ms/bside-nexus-sub000/internal/domain"
	"github.com/bside-ms/bside-nexus-sub000/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEntryRepo_CreateAndGet(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEntryRepo(database)
	ctx := context.Background()

	e := testutil.NewTestEntry("u1", domain.EntryStart,
		time.Date(2025, 11, 3, 7, 0, 0, 0, time.UTC),
		testutil.WithContract("c1"), testutil.WithComment("site visit"))
	require.NoError(t, repo.Create(ctx, e))

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.Equal(t, "u1", got.UserID)
	assert.Equal(t, "c1", got.ContractID)
	assert.Equal(t, domain.EntryStart, got.EntryType)
	assert.Equal(t, "site visit", got.Comment)
	assert.True(t, got.LoggedAt.Equal(e.LoggedAt))
	assert.False(t, got.IsDeleted())
	assert.False(t, got.Settled)
}

func TestEntryRepo_GetByID_NotFound(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEntryRepo(database)

	_, err := repo.GetByID(context.Background(), "missing")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestEntryRepo_ListForUserBetween(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEntryRepo(database)
	ctx := context.Background()

	base := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	inWindow := testutil.NewTestEntry("u1", domain.EntryStart, base.Add(8*time.Hour))
	later := testutil.NewTestEntry("u1", domain.EntryStop, base.Add(17*time.Hour))
	outside := testutil.NewTestEntry("u1", domain.EntryStart, base.Add(72*time.Hour))
	otherUser := testutil.NewTestEntry("u2", domain.EntryStart, base.Add(9*time.Hour))
	for _, e := range []*domain.TimeLogEntry{later, inWindow, outside, otherUser} {
		require.NoError(t, repo.Create(ctx, e))
	}

	got, err := repo.ListForUserBetween(ctx, "u1", base, base.Add(48*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 2)
	// Ordered by logged_at ascending.
	assert.Equal(t, inWindow.ID, got[0].ID)
	assert.Equal(t, later.ID, got[1].ID)
}

func TestEntryRepo_ListExcludesDeleted(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEntryRepo(database)
	ctx := context.Background()

	base := time.Date(2025, 11, 3, 0, 0, 0, 0, time.UTC)
	kept := testutil.NewTestEntry("u1", domain.EntryStart, base.Add(8*time.Hour))
	gone := testutil.NewTestEntry("u1", domain.EntryStop, base.Add(17*time.Hour))
	require.NoError(t, repo.Create(ctx, kept))
	require.NoError(t, repo.Create(ctx, gone))
	require.NoError(t, repo.SoftDelete(ctx, gone.ID, "admin", "mispunch", base.Add(18*time.Hour)))

	got, err := repo.ListForUserBetween(ctx, "u1", base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 1)
	assert.Equal(t, kept.ID, got[0].ID)

	deleted, err := repo.ListDeletedForUserBetween(ctx, "u1", base, base.Add(24*time.Hour))
	require.NoError(t, err)
	require.Len(t, deleted, 1)
	assert.Equal(t, gone.ID, deleted[0].ID)
	assert.Equal(t, "admin", deleted[0].DeletedBy)
	assert.Equal(t, "mispunch", deleted[0].DeletionReason)
	require.NotNil(t, deleted[0].DeletedAt)
}

func TestEntryRepo_SoftDelete_SettledRefused(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEntryRepo(database)
	ctx := context.Background()

	e := testutil.NewTestEntry("u1", domain.EntryStop,
		time.Date(2025, 11, 3, 17, 0, 0, 0, time.UTC), testutil.WithSettled())
	require.NoError(t, repo.Create(ctx, e))

	err := repo.SoftDelete(ctx, e.ID, "admin", "oops", time.Now().UTC())
	assert.ErrorIs(t, err, ErrSettled)

	got, err := repo.GetByID(ctx, e.ID)
	require.NoError(t, err)
	assert.False(t, got.IsDeleted())
}

func TestEntryRepo_SoftDelete_Twice(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEntryRepo(database)
	ctx := context.Background()

	e := testutil.NewTestEntry("u1", domain.EntryStop,
		time.Date(2025, 11, 3, 17, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, e))
	require.NoError(t, repo.SoftDelete(ctx, e.ID, "admin", "first", time.Now().UTC()))

	err := repo.SoftDelete(ctx, e.ID, "admin", "second", time.Now().UTC())
	assert.ErrorIs(t, err, ErrAlreadyDeleted)
}

func TestEntryRepo_MarkSettled(t *testing.T) {
	database := testutil.NewTestDB(t)
	repo := NewSQLiteEntryRepo(database)
	ctx := context.Background()

	a := testutil.NewTestEntry("u1", domain.EntryStart, time.Date(2025, 11, 3, 8, 0, 0, 0, time.UTC))
	b := testutil.NewTestEntry("u1", domain.EntryStop, time.Date(2025, 11, 3, 17, 0, 0, 0, time.UTC))
	require.NoError(t, repo.Create(ctx, a))
	require.NoError(t, repo.Create(ctx, b))

	require.NoError(t, repo.MarkSettled(ctx, []string{a.ID, b.ID}))

	got, err := repo.GetByID(ctx, a.ID)
	require.NoError(t, err)
	assert.True(t, got.Settled)
	assert.False(t, got.Deletable())
}
