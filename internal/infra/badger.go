package infra

import (
	"fmt"
	"os"

	"github.com/dgraph-io/badger/v4"
)

// NewBadger opens the embedded badger store at path. An empty path opens an
// in-memory instance, which is what tests use.
func NewBadger(path string) (*badger.DB, error) {
	var opts badger.Options
	if path == "" {
		opts = badger.DefaultOptions("").WithInMemory(true)
	} else {
		if err := os.MkdirAll(path, 0o755); err != nil {
			return nil, fmt.Errorf("create badger dir: %w", err)
		}
		opts = badger.DefaultOptions(path)
	}
	// badger's own logger is chatty at INFO
	opts = opts.WithLogger(nil)

	db, err := badger.Open(opts)
	if err != nil {
		return nil, fmt.Errorf("open badger: %w", err)
	}
	return db, nil
}
