//nolint
package store

import "github.com/hashlock-one/weft"

// Move references for all storage types into this package
// for shorter names everywhere

type KVStore = weft.KVStore
type Iterator = weft.Iterator
type Model = weft.Model
type CacheableKVStore = weft.CacheableKVStore
type KVCacheWrap = weft.KVCacheWrap
type CommitKVStore = weft.CommitKVStore
type CommitID = weft.CommitID

// SetDeleter is the subset of KVStore that writes
type SetDeleter interface {
	Set(key, value []byte)
	Delete(key []byte)
}

// Batch can write multiple ops to a SetDeleter at once
type Batch interface {
	SetDeleter
	Write()
}
