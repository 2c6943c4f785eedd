package store_test

import (
	"context"
	"errors"
	"testing"

	"brokerbook/internal/store"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// failingKV wraps a Memory and fails Set while fail is true.
type failingKV struct {
	*store.Memory
	fail bool
}

func (f *failingKV) Set(ctx context.Context, key string, value []byte) error {
	if f.fail {
		return errors.New("disk full")
	}
	return f.Memory.Set(ctx, key, value)
}

func TestCached_Contract(t *testing.T) {
	exerciseKV(t, store.NewCached(store.NewMemory()))
}

func TestCached_WritesStayInMemoryUntilFlush(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	c := store.NewCached(backend)

	require.NoError(t, c.Set(ctx, "deals", []byte(`[]`)))
	assert.Equal(t, 1, c.Dirty())

	v, err := backend.Get(ctx, "deals")
	require.NoError(t, err)
	assert.Nil(t, v, "backend untouched before flush")

	n, err := c.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)
	assert.Equal(t, 0, c.Dirty())

	v, err = backend.Get(ctx, "deals")
	require.NoError(t, err)
	assert.Equal(t, `[]`, string(v))
}

func TestCached_DeleteFlushesAsDelete(t *testing.T) {
	ctx := context.Background()
	backend := store.NewMemory()
	require.NoError(t, backend.Set(ctx, "buyers", []byte(`[{"id":1}]`)))
	c := store.NewCached(backend)

	v, err := c.Get(ctx, "buyers")
	require.NoError(t, err)
	assert.Equal(t, `[{"id":1}]`, string(v))

	require.NoError(t, c.Delete(ctx, "buyers"))
	v, err = c.Get(ctx, "buyers")
	require.NoError(t, err)
	assert.Nil(t, v)

	_, err = c.Flush(ctx)
	require.NoError(t, err)
	v, err = backend.Get(ctx, "buyers")
	require.NoError(t, err)
	assert.Nil(t, v)
}

func TestCached_FailedFlushStaysDirty(t *testing.T) {
	ctx := context.Background()
	backend := &failingKV{Memory: store.NewMemory(), fail: true}
	c := store.NewCached(backend)

	require.NoError(t, c.Set(ctx, "deliveries", []byte(`[1]`)))
	_, err := c.Flush(ctx)
	require.Error(t, err)
	assert.Equal(t, 1, c.Dirty())

	backend.fail = false
	n, err := c.Flush(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	v, err := backend.Get(ctx, "deliveries")
	require.NoError(t, err)
	assert.Equal(t, `[1]`, string(v))
}

// spyKV records the order of Set and Close calls.
type spyKV struct {
	*store.Memory
	calls []string
}

func (s *spyKV) Set(ctx context.Context, key string, value []byte) error {
	s.calls = append(s.calls, "set "+key)
	return s.Memory.Set(ctx, key, value)
}

func (s *spyKV) Close() error {
	s.calls = append(s.calls, "close")
	return s.Memory.Close()
}

func TestCached_CloseFlushesFirst(t *testing.T) {
	ctx := context.Background()
	backend := &spyKV{Memory: store.NewMemory()}
	c := store.NewCached(backend)
	require.NoError(t, c.Set(ctx, "counters", []byte(`{"deal_id":3}`)))

	require.NoError(t, c.Close())

	assert.Equal(t, []string{"set counters", "close"}, backend.calls)
}
