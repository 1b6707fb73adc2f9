package repositories

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// OpenBadger opens the Badger database at path. An empty path opens an
// in-memory database, which is what tests use.
func OpenBadger(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	opts = opts.
		WithLogger(nil).
		WithNumVersionsToKeep(1)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("failed to open badger: %w", err)
	}
	return db, nil
}

// NewBadgerStore wires every Badger repository over a single database.
func NewBadgerStore(db *badger.DB) *Store {
	return NewStore(
		NewBadgerUserRepository(db),
		NewBadgerGroupRepository(db),
		NewBadgerPostRepository(db),
		NewBadgerCommentRepository(db),
		NewBadgerFollowRepository(db),
		db.Close,
	)
}
