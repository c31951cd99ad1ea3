package db

import (
	"testing"

	"github.com/dgraph-io/badger/v3"
	"github.com/stretchr/testify/require"
)

// newTestStore opens a throwaway BadgerDB in a temp directory
func newTestStore(t *testing.T) *Store {
	t.Helper()

	badgerOpts := badger.DefaultOptions(t.TempDir())
	badgerOpts.Logger = nil
	badgerOpts.SyncWrites = false

	badgerDB, err := badger.Open(badgerOpts)
	require.NoError(t, err)

	store, err := NewStore(badgerDB)
	require.NoError(t, err)

	t.Cleanup(func() {
		store.Close()
		badgerDB.Close()
	})

	return store
}

func TestStoreAssignsKeysGreaterThanZero(t *testing.T) {
	store := newTestStore(t)

	first, err := store.NextAccountID()
	require.NoError(t, err)
	require.Equal(t, uint64(1), first)

	second, err := store.NextAccountID()
	require.NoError(t, err)
	require.Equal(t, uint64(2), second)

	// Order keys come from an independent sequence
	orderID, err := store.NextOrderID()
	require.NoError(t, err)
	require.Equal(t, uint64(1), orderID)
}
