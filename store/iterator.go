package store

import (
	"bytes"

	"github.com/google/btree"
)

// ascendBtree collects all items within [start, end) in ascending
// order. The cache btree only holds the writes of a single transaction,
// so materializing the range is cheap.
func ascendBtree(bt *btree.BTree, start, end []byte) *itemIter {
	var items []btree.Item
	insert := func(i btree.Item) bool {
		items = append(items, i)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Ascend(insert)
	case start == nil:
		bt.AscendLessThan(bkey{end}, insert)
	case end == nil:
		bt.AscendGreaterOrEqual(bkey{start}, insert)
	default:
		bt.AscendRange(bkey{start}, bkey{end}, insert)
	}
	return &itemIter{items: items}
}

// descendBtree collects all items within [start, end) in descending
// order. bkeyLess pivots shift the comparison so the range bounds keep
// the same inclusivity as in the ascending case.
func descendBtree(bt *btree.BTree, start, end []byte) *itemIter {
	var items []btree.Item
	insert := func(i btree.Item) bool {
		items = append(items, i)
		return true
	}
	switch {
	case start == nil && end == nil:
		bt.Descend(insert)
	case start == nil:
		bt.DescendLessOrEqual(bkeyLess{end}, insert)
	case end == nil:
		bt.DescendGreaterThan(bkeyLess{start}, insert)
	default:
		bt.DescendRange(bkeyLess{end}, bkeyLess{start}, insert)
	}
	return &itemIter{items: items}
}

// itemIter is a cursor over materialized btree items
type itemIter struct {
	items []btree.Item
	idx   int
}

func (i *itemIter) valid() bool {
	return i.idx < len(i.items)
}

func (i *itemIter) item() btree.Item {
	return i.items[i.idx]
}

func (i *itemIter) next() {
	i.idx++
}

// cacheIter merges the write cache with the backing store iterator.
// Cached writes shadow the parent on equal keys and tombstones hide
// parent entries entirely.
type cacheIter struct {
	cache   *itemIter
	parent  Iterator
	reverse bool
	cur     Model
	exists  bool
}

var _ Iterator = (*cacheIter)(nil)

func newCacheIter(cache *itemIter, parent Iterator, reverse bool) *cacheIter {
	iter := &cacheIter{
		cache:   cache,
		parent:  parent,
		reverse: reverse,
	}
	iter.advance()
	return iter
}

// advance moves to the next visible entry, resolving shadowing and
// skipping tombstones.
func (i *cacheIter) advance() {
	for {
		cOK := i.cache.valid()
		pOK := i.parent.Valid()

		if !cOK && !pOK {
			i.exists = false
			return
		}

		useCache := cOK
		if cOK && pOK {
			cmp := bytes.Compare(i.cache.item().(keyer).Key(), i.parent.Key())
			if i.reverse {
				cmp = -cmp
			}
			if cmp == 0 {
				// cache shadows the backing store
				i.parent.Next()
			} else if cmp > 0 {
				useCache = false
			}
		}

		if useCache {
			item := i.cache.item()
			i.cache.next()
			set, ok := item.(setItem)
			if !ok {
				// tombstone, nothing to expose
				continue
			}
			i.cur = Model{Key: set.Key(), Value: set.value}
			i.exists = true
			return
		}

		i.cur = Model{Key: i.parent.Key(), Value: i.parent.Value()}
		i.parent.Next()
		i.exists = true
		return
	}
}

// Valid implements Iterator and returns true iff it can be read
func (i *cacheIter) Valid() bool {
	return i.exists
}

// Next moves the iterator to the next sequential key in the database,
// as defined by order of iteration.
func (i *cacheIter) Next() {
	if !i.exists {
		panic("Next() called on invalid iterator")
	}
	i.advance()
}

// Key returns the key of the cursor.
func (i *cacheIter) Key() []byte {
	if !i.exists {
		panic("Key() called on invalid iterator")
	}
	return i.cur.Key
}

// Value returns the value of the cursor.
func (i *cacheIter) Value() []byte {
	if !i.exists {
		panic("Value() called on invalid iterator")
	}
	return i.cur.Value
}

// Close releases the Iterator.
func (i *cacheIter) Close() {
	i.parent.Close()
	i.cache.items = nil
	i.exists = false
}
