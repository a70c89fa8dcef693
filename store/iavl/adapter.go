package iavl

import (
	"github.com/tendermint/iavl"
	dbm "github.com/tendermint/tendermint/libs/db"

	"github.com/hashlock-one/weft/store"
)

// DefaultCacheSize is the number of inner nodes held in the iavl node
// cache.
const DefaultCacheSize = 10000

// CommitStore manages an iavl committed state
type CommitStore struct {
	tree *iavl.MutableTree
}

var _ store.CommitKVStore = CommitStore{}

// NewCommitStore creates a new store with disk backing under the given
// directory.
func NewCommitStore(dir, name string) CommitStore {
	db := dbm.NewDB(name, dbm.GoLevelDBBackend, dir)
	tree := iavl.NewMutableTree(db, DefaultCacheSize)
	return CommitStore{tree}
}

// MockCommitStore creates a store to be used in tests, with no disk
// backing.
func MockCommitStore() CommitStore {
	tree := iavl.NewMutableTree(dbm.NewMemDB(), DefaultCacheSize)
	return CommitStore{tree}
}

// Get returns the value at last committed state.
// Returns nil iff key doesn't exist. Panics on nil key.
func (s CommitStore) Get(key []byte) []byte {
	_, value := s.tree.Get(key)
	return value
}

// Commit saves the next version to disk, and returns info
func (s CommitStore) Commit() store.CommitID {
	hash, version, err := s.tree.SaveVersion()
	if err != nil {
		panic(err)
	}
	return store.CommitID{
		Version: version,
		Hash:    hash,
	}
}

// LoadLatestVersion loads the latest persisted version.
// If there was a crash during the last commit, it is guaranteed
// to return a stable state, even if older.
func (s CommitStore) LoadLatestVersion() error {
	_, err := s.tree.Load()
	return err
}

// LatestVersion returns info on the latest version saved to disk
func (s CommitStore) LatestVersion() store.CommitID {
	return store.CommitID{
		Version: s.tree.Version(),
		Hash:    s.tree.Hash(),
	}
}

// CacheWrap returns a btree cache around the tree. Writes are
// collected in the cache and applied to the working tree on Write.
// They become durable on the next Commit.
func (s CommitStore) CacheWrap() store.KVCacheWrap {
	ts := treeStore{s.tree}
	return store.NewBTreeCacheWrap(ts, ts.NewBatch(), nil)
}

// treeStore exposes the mutable tree as a KVStore, so it can back a
// btree cache-wrap.
type treeStore struct {
	tree *iavl.MutableTree
}

var _ store.KVStore = treeStore{}
var _ store.SetDeleter = treeStore{}

// Get returns nil iff key doesn't exist. Panics on nil key.
func (t treeStore) Get(key []byte) []byte {
	_, value := t.tree.Get(key)
	return value
}

// Has checks if a key exists. Panics on nil key.
func (t treeStore) Has(key []byte) bool {
	return t.tree.Has(key)
}

// Set adds a new value to the working tree
func (t treeStore) Set(key, value []byte) {
	t.tree.Set(key, value)
}

// Delete removes from the working tree
func (t treeStore) Delete(key []byte) {
	t.tree.Remove(key)
}

// NewBatch returns a batch that applies ops to the working tree on
// Write
func (t treeStore) NewBatch() store.Batch {
	return store.NewNonAtomicBatch(t)
}

// Iterator over a domain of keys in ascending order. End is exclusive.
// Start must be less than end, or the Iterator is invalid.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
func (t treeStore) Iterator(start, end []byte) store.Iterator {
	var res []store.Model
	add := func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	}
	t.tree.IterateRange(start, end, true, add)
	return store.NewSliceIterator(res)
}

// ReverseIterator over a domain of keys in descending order. End is
// exclusive.
// CONTRACT: No writes may happen within a domain while an iterator exists over it.
func (t treeStore) ReverseIterator(start, end []byte) store.Iterator {
	var res []store.Model
	add := func(key []byte, value []byte) bool {
		res = append(res, store.Model{Key: key, Value: value})
		return false
	}
	t.tree.IterateRange(start, end, false, add)
	return store.NewSliceIterator(res)
}
