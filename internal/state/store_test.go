package state

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"realmform/internal/changes"
	"realmform/internal/definition"
	"realmform/internal/former"
	"realmform/internal/model/memory"
)

func openStore(t *testing.T, path string) *Store {
	t.Helper()
	store, err := Open(path, "master")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStore_SeedsAdminRealm(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "state.db"))

	work, err := store.Begin(context.Background())
	require.NoError(t, err)
	defer work.Rollback()

	realms := work.Session().Realms().List()
	require.Len(t, realms, 1)
	assert.Equal(t, "master", realms[0].Name)
}

func TestStore_CommitPersistsAcrossReopen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "state.db")
	ctx := context.Background()

	store, err := Open(path, "master")
	require.NoError(t, err)
	work, err := store.Begin(ctx)
	require.NoError(t, err)
	realm := work.Session().Realms().Create("r1", "test")
	realm.DisplayName = "Test"
	work.Session().Realms().Resources("r1").AddClient("c1", "app")
	require.NoError(t, work.Commit())
	require.NoError(t, store.Close())

	reopened := openStore(t, path)
	work, err = reopened.Begin(ctx)
	require.NoError(t, err)
	defer work.Rollback()

	realms := work.Session().Realms()
	require.Len(t, realms.List(), 2)
	loaded := realms.Get("test")
	require.NotNil(t, loaded)
	assert.Equal(t, "Test", loaded.DisplayName)
	assert.NotNil(t, realms.Resources("r1").ClientByClientID("app"))
}

func TestStore_RollbackDiscardsChanges(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "state.db"))
	ctx := context.Background()

	work, err := store.Begin(ctx)
	require.NoError(t, err)
	work.Session().Realms().Create("r1", "test")
	require.NoError(t, work.Rollback())
	require.NoError(t, work.Rollback())

	work, err = store.Begin(ctx)
	require.NoError(t, err)
	defer work.Rollback()
	assert.Nil(t, work.Session().Realms().Get("test"))
}

func TestStore_CommitTwiceFails(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "state.db"))

	work, err := store.Begin(context.Background())
	require.NoError(t, err)
	require.NoError(t, work.Commit())
	assert.ErrorIs(t, work.Commit(), memory.ErrTransactionDone)
}

func TestStore_RemovedRealmIsDeleted(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "state.db"))
	ctx := context.Background()

	work, err := store.Begin(ctx)
	require.NoError(t, err)
	work.Session().Realms().Create("r1", "test")
	require.NoError(t, work.Commit())

	work, err = store.Begin(ctx)
	require.NoError(t, err)
	assert.True(t, work.Session().Realms().Remove("r1"))
	require.NoError(t, work.Commit())

	work, err = store.Begin(ctx)
	require.NoError(t, err)
	defer work.Rollback()
	assert.Nil(t, work.Session().Realms().Get("test"))
	assert.NotNil(t, work.Session().Realms().Get("master"))
}

func TestStore_FormedRealmIsIdempotentAcrossRuns(t *testing.T) {
	store := openStore(t, filepath.Join(t.TempDir(), "state.db"))
	ctx := context.Background()
	doc, err := definition.Decode("master", []byte(`
realm: test
enabled: true
clients:
  - clientId: app
    redirectUris: ["https://app/*"]
roles:
  realm:
    - name: user
`))
	require.NoError(t, err)
	formers := former.NewFormers()
	opts := former.Options{Mode: changes.Commit, AdminRealm: "master"}

	work, err := store.Begin(ctx)
	require.NoError(t, err)
	first, err := formers.Run(work.Session(), doc, opts)
	require.NoError(t, err)
	require.NoError(t, work.Commit())
	assert.True(t, first.Changed())

	work, err = store.Begin(ctx)
	require.NoError(t, err)
	second, err := formers.Run(work.Session(), doc, opts)
	require.NoError(t, err)
	require.NoError(t, work.Commit())
	assert.False(t, second.Changed())
	assert.Equal(t, 3, second.Count(former.OutcomeUnchanged))
}
