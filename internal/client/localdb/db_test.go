package localdb

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestOpen_InMemory_CreatesPreferencesTable(t *testing.T) {
	db, err := Open(context.Background(), ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`INSERT INTO preferences(key, value) VALUES ('k', 'v')`)
	require.NoError(t, err)

	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM preferences WHERE key = 'k'`).Scan(&v))
	require.Equal(t, "v", v)
}

func TestOpen_File_IsIdempotentAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cotrip.db")
	ctx := context.Background()

	db, err := Open(ctx, path)
	require.NoError(t, err)
	_, err = db.Exec(`INSERT INTO preferences(key, value) VALUES ('access_token', 'tok')`)
	require.NoError(t, err)
	require.NoError(t, db.Close())

	db, err = Open(ctx, path)
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	var v string
	require.NoError(t, db.QueryRow(`SELECT value FROM preferences WHERE key = 'access_token'`).Scan(&v))
	require.Equal(t, "tok", v)
}

func TestOpen_BadPath_ReturnsError(t *testing.T) {
	_, err := Open(context.Background(), filepath.Join(t.TempDir(), "missing", "dir", "x.db"))
	require.Error(t, err)
}
