// Package store is the persistence collaborator: a small key-value
// contract with several backends, and a Store that layers named JSON
// collections and id counters on top of it.
package store

import (
	"context"
	"errors"
)

// ErrClosed is returned by backends used after Close.
var ErrClosed = errors.New("store: closed")

// KV is the raw byte store every backend implements.
// Get returns (nil, nil) when the key is absent.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, keys ...string) error
	Close() error
}

// Pinger is implemented by backends that can report liveness for /health.
type Pinger interface {
	Ping(ctx context.Context) error
}
