package store

import (
	"fmt"

	"brokerbook/internal/infra"
)

// Drivers accepted by Open.
const (
	DriverMemory = "memory"
	DriverBadger = "badger"
	DriverSQL    = "sql"
	DriverRedis  = "redis"
)

// Options selects and locates a backend.
type Options struct {
	Driver      string
	BadgerPath  string
	DatabaseURL string
	RedisURL    string
}

// Open connects the backend named by opts.Driver. Durable backends come
// back wrapped in a write-back cache; the caller owns flushing and Close.
func Open(opts Options) (KV, error) {
	switch opts.Driver {
	case DriverMemory:
		return NewMemory(), nil
	case DriverBadger:
		db, err := infra.NewBadger(opts.BadgerPath)
		if err != nil {
			return nil, err
		}
		return NewCached(NewBadger(db)), nil
	case DriverSQL:
		db, err := infra.NewDatabase(opts.DatabaseURL)
		if err != nil {
			return nil, fmt.Errorf("open database: %w", err)
		}
		backend, err := NewSQL(db)
		if err != nil {
			return nil, fmt.Errorf("migrate kv_entries: %w", err)
		}
		return NewCached(backend), nil
	case DriverRedis:
		rdb, err := infra.NewRedis(opts.RedisURL)
		if err != nil {
			return nil, fmt.Errorf("connect redis: %w", err)
		}
		return NewCached(NewRedis(rdb)), nil
	default:
		return nil, fmt.Errorf("unknown STORE_DRIVER %q", opts.Driver)
	}
}
