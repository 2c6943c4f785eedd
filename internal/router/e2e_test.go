//go:build integration

package router_test

// End-to-end API tests against durable backends via testcontainers.
// Run with: go test -tags integration ./internal/router/... -v
//
// Each test drives the HTTP API over a cached durable store, closes it
// (flushing the write-back cache), then reopens the backend from scratch
// and checks the ledger survived.

import (
	"context"
	"net/http"
	"testing"

	"brokerbook/internal/config"
	"brokerbook/internal/dto"
	"brokerbook/internal/ledger"
	"brokerbook/internal/router"
	"brokerbook/internal/store"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcPostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	tcRedis "github.com/testcontainers/testcontainers-go/modules/redis"
)

func openServer(t *testing.T, opts store.Options) (*gin.Engine, *store.Store) {
	t.Helper()
	kv, err := store.Open(opts)
	require.NoError(t, err)
	st := store.New(kv)
	cfg := &config.Config{Env: "test", StoreDriver: opts.Driver}
	return router.New(cfg, st, nil, nil), st
}

func exerciseDurable(t *testing.T, opts store.Options) {
	t.Helper()

	r, st := openServer(t, opts)
	seed(t, r)
	w := do(r, http.MethodPost, "/v1/deliveries", `{"deal_id":1,"delivery_date":"2024-03-05","bags_delivered":100}`)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	require.NoError(t, st.Close())

	r, st = openServer(t, opts)
	t.Cleanup(func() { _ = st.Close() })

	w = do(r, http.MethodGet, "/health", "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = do(r, http.MethodGet, "/v1/deals/1/summary", "")
	require.Equal(t, http.StatusOK, w.Code)
	var sum ledger.Summary
	decode(t, w, &sum)
	assert.True(t, sum.DealFound)
	assert.Equal(t, 1, sum.DeliveryCount)
	equalDecimal(t, "0", sum.RemainingBags)

	// Counters survive too: the next supplier is id 2.
	w = do(r, http.MethodPost, "/v1/suppliers", `{"name":"Laxmi Agencies"}`)
	var created dto.CreatedResponse
	decode(t, w, &created)
	assert.Equal(t, int64(2), created.ID)
}

func TestE2E_Postgres(t *testing.T) {
	ctx := context.Background()

	pgC, err := tcPostgres.RunContainer(ctx,
		testcontainers.WithImage("postgres:15-alpine"),
		tcPostgres.WithDatabase("brokerbook_test"),
		tcPostgres.WithUsername("brokerbook"),
		tcPostgres.WithPassword("brokerbook"),
		tcPostgres.BasicWaitStrategies(),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = pgC.Terminate(ctx) })

	pgURL, err := pgC.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	exerciseDurable(t, store.Options{Driver: store.DriverSQL, DatabaseURL: pgURL})
}

func TestE2E_Redis(t *testing.T) {
	ctx := context.Background()

	rdC, err := tcRedis.RunContainer(ctx,
		testcontainers.WithImage("redis:7-alpine"),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = rdC.Terminate(ctx) })

	rdURL, err := rdC.ConnectionString(ctx)
	require.NoError(t, err)

	exerciseDurable(t, store.Options{Driver: store.DriverRedis, RedisURL: rdURL})
}

func TestE2E_Badger(t *testing.T) {
	exerciseDurable(t, store.Options{Driver: store.DriverBadger, BadgerPath: t.TempDir()})
}
