package store

import (
	"context"
	"database/sql"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	_ "modernc.org/sqlite"
)

func setupStore(t *testing.T) *SQLite {
	t.Helper()
	db, err := sql.Open("sqlite", "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = db.Close() })

	_, err = db.Exec(`
CREATE TABLE kv (
  key   TEXT PRIMARY KEY,
  value TEXT NOT NULL
);
`)
	require.NoError(t, err)
	return NewSQLite(db)
}

func TestStore_GetMissing(t *testing.T) {
	s := setupStore(t)

	v, ok, err := s.Get(context.Background(), "nope")
	require.NoError(t, err)
	assert.False(t, ok)
	assert.Equal(t, "", v)
}

func TestStore_SetGet(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "@auth_token", "token_1"))

	v, ok, err := s.Get(ctx, "@auth_token")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "token_1", v)
}

func TestStore_SetOverwrites(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "k", "v1"))
	require.NoError(t, s.Set(ctx, "k", "v2"))

	v, ok, err := s.Get(ctx, "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v2", v)
}

func TestStore_RemoveMultipleKeys(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "@auth_token", "t"))
	require.NoError(t, s.Set(ctx, "@user_data", "u"))
	require.NoError(t, s.Set(ctx, "user_ana", "rec"))

	require.NoError(t, s.Remove(ctx, "@auth_token", "@user_data"))

	_, ok, err := s.Get(ctx, "@auth_token")
	require.NoError(t, err)
	assert.False(t, ok)
	_, ok, err = s.Get(ctx, "@user_data")
	require.NoError(t, err)
	assert.False(t, ok)

	// unrelated keys survive
	v, ok, err := s.Get(ctx, "user_ana")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "rec", v)
}

func TestStore_RemoveMissingIsNoop(t *testing.T) {
	s := setupStore(t)
	require.NoError(t, s.Remove(context.Background(), "ghost"))
	require.NoError(t, s.Remove(context.Background()))
}

func TestStore_Clear(t *testing.T) {
	s := setupStore(t)
	ctx := context.Background()

	require.NoError(t, s.Set(ctx, "a", "1"))
	require.NoError(t, s.Set(ctx, "b", "2"))
	require.NoError(t, s.Clear(ctx))

	_, ok, err := s.Get(ctx, "a")
	require.NoError(t, err)
	assert.False(t, ok)
}

func TestOpen_RunsMigrations(t *testing.T) {
	s, err := Open(context.Background(), "file:"+t.Name()+"?mode=memory&cache=shared")
	require.NoError(t, err)
	t.Cleanup(func() { _ = s.Close() })

	require.NoError(t, s.Set(context.Background(), "k", "v"))
	v, ok, err := s.Get(context.Background(), "k")
	require.NoError(t, err)
	assert.True(t, ok)
	assert.Equal(t, "v", v)
}
