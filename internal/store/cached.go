package store

import (
	"context"
	"fmt"
	"sync"
)

type cacheEntry struct {
	value   []byte
	present bool
}

// Cached is a write-back cache over a durable KV. Reads fill the cache on
// first access; writes stay in memory and are marked dirty until Flush pushes
// them to the backend. Close flushes before closing the backend.
type Cached struct {
	backend KV

	mu    sync.Mutex
	data  map[string]cacheEntry
	dirty map[string]struct{}
}

func NewCached(backend KV) *Cached {
	return &Cached{
		backend: backend,
		data:    make(map[string]cacheEntry),
		dirty:   make(map[string]struct{}),
	}
}

func (c *Cached) Get(ctx context.Context, key string) ([]byte, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if e, ok := c.data[key]; ok {
		if !e.present {
			return nil, nil
		}
		return append([]byte(nil), e.value...), nil
	}

	v, err := c.backend.Get(ctx, key)
	if err != nil {
		return nil, err
	}
	c.data[key] = cacheEntry{value: v, present: v != nil}
	if v == nil {
		return nil, nil
	}
	return append([]byte(nil), v...), nil
}

func (c *Cached) Set(_ context.Context, key string, value []byte) error {
	c.mu.Lock()
	c.data[key] = cacheEntry{value: append([]byte(nil), value...), present: true}
	c.dirty[key] = struct{}{}
	c.mu.Unlock()
	return nil
}

func (c *Cached) Delete(_ context.Context, keys ...string) error {
	c.mu.Lock()
	for _, k := range keys {
		c.data[k] = cacheEntry{}
		c.dirty[k] = struct{}{}
	}
	c.mu.Unlock()
	return nil
}

// Dirty reports how many keys are waiting to be flushed.
func (c *Cached) Dirty() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return len(c.dirty)
}

// Flush writes every dirty key to the backend. Keys that fail stay dirty
// and are retried on the next flush. Returns the number of keys written.
func (c *Cached) Flush(ctx context.Context) (int, error) {
	c.mu.Lock()
	if len(c.dirty) == 0 {
		c.mu.Unlock()
		return 0, nil
	}
	pending := make(map[string]cacheEntry, len(c.dirty))
	for k := range c.dirty {
		pending[k] = c.data[k]
	}
	c.dirty = make(map[string]struct{})
	c.mu.Unlock()

	written := 0
	var firstErr error
	for k, e := range pending {
		var err error
		if e.present {
			err = c.backend.Set(ctx, k, e.value)
		} else {
			err = c.backend.Delete(ctx, k)
		}
		if err != nil {
			if firstErr == nil {
				firstErr = fmt.Errorf("flush %s: %w", k, err)
			}
			c.mu.Lock()
			c.dirty[k] = struct{}{}
			c.mu.Unlock()
			continue
		}
		written++
	}
	return written, firstErr
}

func (c *Cached) Ping(ctx context.Context) error {
	if p, ok := c.backend.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

func (c *Cached) Close() error {
	_, flushErr := c.Flush(context.Background())
	closeErr := c.backend.Close()
	if flushErr != nil {
		return flushErr
	}
	return closeErr
}
