package store

import (
	"context"
	"encoding/json"
	"fmt"
	"sync"
)

// Collection names. Each is one key holding a JSON array in insertion order.
const (
	Suppliers  = "suppliers"
	Buyers     = "buyers"
	Deals      = "deals"
	Deliveries = "deliveries"

	countersKey = "counters"
)

// Counter names inside the counters record.
const (
	SupplierCounter = "supplier_id"
	BuyerCounter    = "buyer_id"
	DealCounter     = "deal_id"
	DeliveryCounter = "delivery_id"
)

var allKeys = []string{Suppliers, Buyers, Deals, Deliveries, countersKey}

// Store layers collections and counters over a KV. Every write to a
// collection is a whole-collection read-modify-write under that
// collection's mutex. Writes spanning collections are not atomic.
type Store struct {
	kv    KV
	locks map[string]*sync.Mutex
}

func New(kv KV) *Store {
	locks := make(map[string]*sync.Mutex, len(allKeys))
	for _, k := range allKeys {
		locks[k] = &sync.Mutex{}
	}
	return &Store{kv: kv, locks: locks}
}

func (s *Store) lock(name string) *sync.Mutex {
	mu, ok := s.locks[name]
	if !ok {
		panic(fmt.Sprintf("store: unknown collection %q", name))
	}
	return mu
}

func (s *Store) put(ctx context.Context, name string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", name, err)
	}
	if err := s.kv.Set(ctx, name, raw); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Load decodes a whole collection into T records.
func Load[T any](ctx context.Context, s *Store, name string) ([]T, error) {
	raw, err := s.kv.Get(ctx, name)
	if err != nil {
		return nil, fmt.Errorf("read %s: %w", name, err)
	}
	out := []T{}
	if len(raw) == 0 {
		return out, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return nil, fmt.Errorf("decode %s: %w", name, err)
	}
	return out, nil
}

// Update runs fn over the current records of a collection and stores what it
// returns, holding the collection's mutex throughout. If fn errors nothing is
// written and the error is returned as is.
func Update[T any](ctx context.Context, s *Store, name string, fn func([]T) ([]T, error)) error {
	mu := s.lock(name)
	mu.Lock()
	defer mu.Unlock()

	records, err := Load[T](ctx, s, name)
	if err != nil {
		return err
	}
	next, err := fn(records)
	if err != nil {
		return err
	}
	if next == nil {
		next = []T{}
	}
	return s.put(ctx, name, next)
}

// NextID increments and returns a named counter. Counters start at 1 and
// are never reused, even after the records they numbered are deleted.
func (s *Store) NextID(ctx context.Context, counter string) (int64, error) {
	mu := s.lock(countersKey)
	mu.Lock()
	defer mu.Unlock()

	counters := map[string]int64{}
	raw, err := s.kv.Get(ctx, countersKey)
	if err != nil {
		return 0, fmt.Errorf("read counters: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &counters); err != nil {
			return 0, fmt.Errorf("decode counters: %w", err)
		}
	}
	counters[counter]++
	if err := s.put(ctx, countersKey, counters); err != nil {
		return 0, err
	}
	return counters[counter], nil
}

// Reset removes every collection and the counters record.
func (s *Store) Reset(ctx context.Context) error {
	for _, k := range allKeys {
		s.locks[k].Lock()
	}
	defer func() {
		for _, k := range allKeys {
			s.locks[k].Unlock()
		}
	}()
	if err := s.kv.Delete(ctx, allKeys...); err != nil {
		return fmt.Errorf("reset: %w", err)
	}
	return nil
}

// Ping checks the backend when it supports it.
func (s *Store) Ping(ctx context.Context) error {
	if p, ok := s.kv.(Pinger); ok {
		return p.Ping(ctx)
	}
	return nil
}

// Dirty reports writes not yet flushed to the durable backend; always 0
// when the backend is not behind a write-back cache.
func (s *Store) Dirty() int {
	if c, ok := s.kv.(*Cached); ok {
		return c.Dirty()
	}
	return 0
}

func (s *Store) Close() error {
	return s.kv.Close()
}
