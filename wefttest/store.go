package wefttest

import (
	"io/ioutil"
	"os"
	"testing"

	"github.com/hashlock-one/weft"
	"github.com/hashlock-one/weft/store/iavl"
)

// CommitKVStore returns a store instance that is using a filesystem
// backend engine to store the data.
// This implementation should be used instead of store.MemStore when you
// want the exact same storage implementation as a production instance
// is using.
func CommitKVStore(t testing.TB) (db weft.CommitKVStore, cleanup func()) {
	dbpath, err := ioutil.TempDir("", "wefttest")
	if err != nil {
		t.Fatalf("cannot create a temporary directory: %s", err)
	}

	db = iavl.NewCommitStore(dbpath, "db")
	return db, func() { os.RemoveAll(dbpath) }
}
