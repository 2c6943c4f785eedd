package worker

// flusher.go
// Background goroutine that periodically writes dirty keys of the
// write-back cache to the durable backend. A failed flush keeps the keys
// dirty, so the next tick retries them. Ticks go through a circuit breaker
// so a downed Postgres or Redis is not hammered every interval.

import (
	"context"
	"errors"
	"time"

	"brokerbook/internal/infra"

	"github.com/rs/zerolog/log"
)

// Flushable is the write-back layer drained by the flusher.
type Flushable interface {
	Flush(ctx context.Context) (int, error)
}

type Flusher struct {
	target   Flushable
	interval time.Duration
	cb       *infra.CircuitBreaker
}

// NewFlusher builds a flusher; cb may be nil to flush on every tick.
func NewFlusher(target Flushable, interval time.Duration, cb *infra.CircuitBreaker) *Flusher {
	return &Flusher{target: target, interval: interval, cb: cb}
}

// Start launches Run in a goroutine. The returned channel closes once the
// loop has exited and the final flush is done.
func (f *Flusher) Start(ctx context.Context) <-chan struct{} {
	done := make(chan struct{})
	go func() {
		defer close(done)
		f.Run(ctx)
	}()
	return done
}

// Run ticks until ctx is cancelled, then flushes once more with a fresh
// deadline so shutdown does not lose buffered writes.
func (f *Flusher) Run(ctx context.Context) {
	ticker := time.NewTicker(f.interval)
	defer ticker.Stop()

	log.Info().Dur("interval", f.interval).Msg("flusher: started")

	for {
		select {
		case <-ctx.Done():
			final, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			f.flush(final)
			cancel()
			log.Info().Msg("flusher: shutting down")
			return
		case <-ticker.C:
			f.tick(ctx)
		}
	}
}

func (f *Flusher) tick(ctx context.Context) {
	if f.cb == nil {
		_ = f.flush(ctx)
		return
	}
	err := f.cb.Execute(func() error { return f.flush(ctx) })
	if errors.Is(err, infra.ErrCircuitOpen) {
		log.Debug().Msg("flusher: circuit breaker is open, skipping tick")
	}
}

func (f *Flusher) flush(ctx context.Context) error {
	n, err := f.target.Flush(ctx)
	if err != nil {
		log.Error().Err(err).Int("flushed", n).Msg("flusher: flush failed, keys stay dirty")
		return err
	}
	if n > 0 {
		log.Debug().Int("flushed", n).Msg("flusher: wrote dirty keys")
	}
	return nil
}
