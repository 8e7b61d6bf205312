package db

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestOpenDB_PragmasOnEveryConnection pins busy_timeout and foreign_keys to
// the DSN: they are per-connection state, so an Exec would only reach one
// pooled connection and leave the rest racing with timeout 0.
func TestOpenDB_PragmasOnEveryConnection(t *testing.T) {
	database, err := OpenDB(filepath.Join(t.TempDir(), "pragmas.db"))
	require.NoError(t, err)
	defer database.Close()

	ctx := context.Background()
	for i := 0; i < 3; i++ {
		conn, err := database.Conn(ctx)
		require.NoError(t, err)

		var timeout int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA busy_timeout").Scan(&timeout))
		assert.Equal(t, 5000, timeout, "connection %d", i)

		var fk int
		require.NoError(t, conn.QueryRowContext(ctx, "PRAGMA foreign_keys").Scan(&fk))
		assert.Equal(t, 1, fk, "connection %d", i)

		// Keep the conn open so the pool hands out a fresh one next round.
		defer conn.Close()
	}
}
