package sqlite

import (
	"context"
	"path/filepath"
	"testing"
	"testing/fstest"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/custodia-labs/smartstudy/internal/adapters/driven/storage/storetest"
	"github.com/custodia-labs/smartstudy/internal/core/domain"
	"github.com/custodia-labs/smartstudy/internal/core/ports/driven"
)

// setupTestStore creates a temporary SQLite store for testing.
func setupTestStore(t *testing.T) *Store {
	t.Helper()

	store, err := NewStore(t.TempDir())
	require.NoError(t, err)
	require.NotNil(t, store)
	return store
}

func TestStore_Contract(t *testing.T) {
	storetest.Run(t, func(t *testing.T) driven.KeyValueStore {
		return setupTestStore(t)
	})
}

func TestNewStore_Path(t *testing.T) {
	dir := t.TempDir()
	store, err := NewStore(dir)
	require.NoError(t, err)
	defer store.Close()

	assert.Equal(t, filepath.Join(dir, "library.db"), store.Path())
}

func TestStore_MigrationsRecorded(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 1, version)
}

func TestStore_ReopenIsIdempotent(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	first, err := NewStore(dir)
	require.NoError(t, err)
	require.NoError(t, first.Put(ctx, "smartstudy.current", []byte("Physics")))
	require.NoError(t, first.Close())

	second, err := NewStore(dir)
	require.NoError(t, err)
	defer second.Close()

	got, err := second.Get(ctx, "smartstudy.current")
	require.NoError(t, err)
	assert.Equal(t, "Physics", string(got))

	var count int
	require.NoError(t, second.db.QueryRow("SELECT COUNT(*) FROM schema_migrations").Scan(&count))
	assert.Equal(t, 1, count)
}

func TestStore_MigrateSkipsUnversionedFiles(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	fsys := fstest.MapFS{
		"002_extra.up.sql":   {Data: []byte("CREATE TABLE extra (id INTEGER);")},
		"002_extra.down.sql": {Data: []byte("DROP TABLE extra;")},
		"notes.up.sql":       {Data: []byte("this is not sql")},
	}
	require.NoError(t, store.migrate(fsys))

	var version int
	require.NoError(t, store.db.QueryRow("SELECT MAX(version) FROM schema_migrations").Scan(&version))
	assert.Equal(t, 2, version)
}

func TestStore_KeysWithLikeWildcards(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()
	ctx := context.Background()

	require.NoError(t, store.Put(ctx, "a_%", []byte("1")))
	require.NoError(t, store.Put(ctx, "ab", []byte("2")))

	keys, err := store.Keys(ctx, "a_")
	require.NoError(t, err)
	assert.Equal(t, []string{"a_%"}, keys)
}

func TestStore_EmptyKey(t *testing.T) {
	store := setupTestStore(t)
	defer store.Close()

	err := store.Put(context.Background(), "", []byte("v"))
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
