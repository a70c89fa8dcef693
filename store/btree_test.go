package store

import (
	"bytes"
	"crypto/rand"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestBTreeCacheGetSet does basic sanity checks on our cache
//
// Other tests should handle deletes, setting same value,
// iterating over ranges, and general fuzzing
func TestBTreeCacheGetSet(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// base is the root of our data, we can layer on top and
	// all queries should work
	base := devnull.CacheWrap()

	// make sure the btree is empty at start but returns results
	// that are writen to it
	k, v := []byte("french"), []byte("fry")
	assert.Nil(t, base.Get(k))
	assert.False(t, base.Has(k))
	base.Set(k, v)
	assert.Equal(t, v, base.Get(k))
	assert.True(t, base.Has(k))

	// now layer another btree on top and make sure that we get
	// base data
	cache := base.CacheWrap()
	assert.Equal(t, v, cache.Get(k))
	assert.True(t, cache.Has(k))

	// writing more data is only visible in the cache
	k2, v2 := []byte("LA"), []byte("Dodgers")
	assert.Nil(t, cache.Get(k2))
	assert.False(t, cache.Has(k2))
	cache.Set(k2, v2)
	assert.Equal(t, v2, cache.Get(k2))
	assert.Nil(t, base.Get(k2))
	assert.True(t, cache.Has(k2))
	assert.False(t, base.Has(k2))

	// we can write the cache to the base layer...
	cache.Write()
	assert.Equal(t, v, base.Get(k))
	assert.Equal(t, v2, base.Get(k2))
	assert.True(t, base.Has(k))
	assert.True(t, base.Has(k2))

	// we can discard one
	k3, v3 := []byte("Bayern"), []byte("Munich")
	c2 := base.CacheWrap()
	assert.Equal(t, v, c2.Get(k))
	assert.Equal(t, v2, c2.Get(k2))
	c2.Set(k3, v3)
	c2.Discard()

	// and commit another
	c3 := base.CacheWrap()
	assert.Equal(t, v, c3.Get(k))
	assert.Equal(t, v2, c3.Get(k2))
	c3.Delete(k)
	c3.Write()

	// make sure it commits proper
	assert.Nil(t, base.Get(k))
	assert.Equal(t, v2, base.Get(k2))
	assert.Nil(t, base.Get(k3))
}

// TestBTreeCacheConflicts checks that we can handle
// overwriting values and deleting underlying values
func TestBTreeCacheConflicts(t *testing.T) {
	// devnull is a black hole... just to keep our types proper
	devnull := BTreeCacheable{EmptyKVStore{}}

	// make 10 keys and 20 values....
	ks := randKeys(10, 16)
	vs := randKeys(20, 40)

	cases := map[string]struct {
		parentOps     []Op
		childOps      []Op
		parentQueries []Model // Key is what we query, Value is what we expect
		childQueries  []Model // Key is what we query, Value is what we expect
	}{
		"overwrite one, delete another, add a third": {
			parentOps:     []Op{SetOp(ks[1], vs[1]), SetOp(ks[2], vs[2])},
			childOps:      []Op{SetOp(ks[1], vs[11]), SetOp(ks[3], vs[7]), DelOp(ks[2])},
			parentQueries: []Model{pair(ks[1], vs[1]), pair(ks[2], vs[2]), pair(ks[3], nil)},
			childQueries:  []Model{pair(ks[1], vs[11]), pair(ks[2], nil), pair(ks[3], vs[7])},
		},
		"delete in parent, resurrect in child": {
			parentOps:     []Op{SetOp(ks[4], vs[4]), DelOp(ks[4])},
			childOps:      []Op{SetOp(ks[4], vs[14])},
			parentQueries: []Model{pair(ks[4], nil)},
			childQueries:  []Model{pair(ks[4], vs[14])},
		},
	}

	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			parent := devnull.CacheWrap()
			for _, op := range tc.parentOps {
				op.Apply(parent)
			}

			child := parent.CacheWrap()
			for _, op := range tc.childOps {
				op.Apply(child)
			}

			// now check the parent is unaffected
			for _, q := range tc.parentQueries {
				assert.Equal(t, q.Value, parent.Get(q.Key))
				assert.Equal(t, q.Value != nil, parent.Has(q.Key))
			}

			// the child shows changes
			for _, q := range tc.childQueries {
				assert.Equal(t, q.Value, child.Get(q.Key))
				assert.Equal(t, q.Value != nil, child.Has(q.Key))
			}

			// write child to parent and make sure it also shows changes
			child.Write()
			for _, q := range tc.childQueries {
				assert.Equal(t, q.Value, parent.Get(q.Key))
				assert.Equal(t, q.Value != nil, parent.Has(q.Key))
			}
		})
	}
}

// TestBTreeCacheWrapBatch ensures that a discarded cache leaves the
// backing batch untouched, while writing pushes all ops down.
func TestBTreeCacheWrapBatch(t *testing.T) {
	base, batch := LogableStore()

	cache := base.CacheWrap()
	cache.Set([]byte("one"), []byte("1"))
	cache.Set([]byte("two"), []byte("2"))
	cache.Delete([]byte("one"))
	cache.Write()

	ops := batch.ShowOps()
	require.Equal(t, 3, len(ops))
	assert.True(t, ops[0].IsSetOp())
	assert.True(t, ops[1].IsSetOp())
	assert.False(t, ops[2].IsSetOp())
	assert.Equal(t, []byte("one"), ops[2].Key())

	// a discarded wrap adds nothing
	c2 := base.CacheWrap()
	c2.Set([]byte("three"), []byte("3"))
	c2.Discard()
	assert.Equal(t, 3, len(batch.ShowOps()))
}

// randKeys returns a slice of count distinct keys of the given size
func randKeys(count, size int) [][]byte {
	res := make([][]byte, count)
	for i := 0; i < count; i++ {
		res[i] = randBytes(size)
	}
	return res
}

func randBytes(size int) []byte {
	res := make([]byte, size)
	if _, err := rand.Read(res); err != nil {
		panic(err)
	}
	return res
}

func pair(key, value []byte) Model {
	return Model{Key: key, Value: value}
}

// sortModels orders a slice of models by key, ascending
func sortModels(ms []Model) {
	sort.Slice(ms, func(i, j int) bool {
		return bytes.Compare(ms[i].Key, ms[j].Key) < 0
	})
}
