package pebble

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vestlock/vestlock/pkg/db"
)

func TestKVStore(t *testing.T) {
	tests := []struct {
		name string
		fn   func(t *testing.T, store db.KVStore)
	}{
		{
			name: "basic_put_get",
			fn:   testBasicPutGet,
		},
		{
			name: "delete_operations",
			fn:   testDelete,
		},
		{
			name: "store_closure",
			fn:   testStoreClosure,
		},
		{
			name: "batch_commit",
			fn:   testBatchCommit,
		},
		{
			name: "iterator_range",
			fn:   testIteratorRange,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			store, err := NewMemStore()
			require.NoError(t, err)
			defer store.Close()

			tc.fn(t, store)
		})
	}
}

func testBasicPutGet(t *testing.T, store db.KVStore) {
	key := []byte("test-key")
	value := []byte("test-value")

	err := store.Put(key, value)
	require.NoError(t, err)

	retrieved, err := store.Get(key)
	require.NoError(t, err)
	assert.Equal(t, value, retrieved)

	_, err = store.Get([]byte("missing"))
	assert.ErrorIs(t, err, ErrNotFound)
}

func testDelete(t *testing.T, store db.KVStore) {
	key := []byte("test-key")

	err := store.Put(key, []byte("test-value"))
	require.NoError(t, err)

	err = store.Delete(key)
	require.NoError(t, err)

	_, err = store.Get(key)
	assert.ErrorIs(t, err, ErrNotFound)
}

func testStoreClosure(t *testing.T, store db.KVStore) {
	require.NoError(t, store.Close())

	err := store.Put([]byte("k"), []byte("v"))
	assert.ErrorIs(t, err, ErrClosed)

	_, err = store.Get([]byte("k"))
	assert.ErrorIs(t, err, ErrClosed)
}

func testBatchCommit(t *testing.T, store db.KVStore) {
	batch := store.NewBatch()
	defer batch.Close()

	require.NoError(t, batch.Put([]byte("a"), []byte("1")))
	require.NoError(t, batch.Put([]byte("b"), []byte("2")))
	require.NoError(t, batch.Delete([]byte("a")))

	// Nothing visible before commit
	_, err := store.Get([]byte("b"))
	assert.ErrorIs(t, err, ErrNotFound)

	require.NoError(t, batch.Commit())

	_, err = store.Get([]byte("a"))
	assert.ErrorIs(t, err, ErrNotFound)
	value, err := store.Get([]byte("b"))
	require.NoError(t, err)
	assert.Equal(t, []byte("2"), value)

	// A committed batch rejects further use
	assert.ErrorIs(t, batch.Put([]byte("c"), []byte("3")), ErrBatchDone)
	assert.ErrorIs(t, batch.Commit(), ErrBatchDone)
}

func testIteratorRange(t *testing.T, store db.KVStore) {
	require.NoError(t, store.Put([]byte{1, 'a'}, []byte("in-a")))
	require.NoError(t, store.Put([]byte{1, 'b'}, []byte("in-b")))
	require.NoError(t, store.Put([]byte{2, 'a'}, []byte("out")))

	iter, err := store.NewIterator([]byte{1}, []byte{2})
	require.NoError(t, err)
	defer iter.Close()

	var keys [][]byte
	for iter.Next() {
		keys = append(keys, iter.Key())
	}
	require.Len(t, keys, 2)
	assert.Equal(t, []byte{1, 'a'}, keys[0])
	assert.Equal(t, []byte{1, 'b'}, keys[1])
}
