package handler

import (
	"context"
	"net/http"
	"time"

	"brokerbook/internal/infra"

	"github.com/gin-gonic/gin"
)

// StoreStatus is what the health check asks of the store.
type StoreStatus interface {
	Ping(ctx context.Context) error
	// Dirty counts writes still waiting for the durable backend.
	Dirty() int
}

// Health returns a JSON health check response.
// Checks storage connectivity; never exposes credentials or internals.
// breaker is the flush circuit breaker, nil for the memory driver.
func Health(store StoreStatus, driver string, breaker *infra.CircuitBreaker) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), 3*time.Second)
		defer cancel()

		storeStatus := "connected"
		if store.Ping(ctx) != nil {
			storeStatus = "error"
		}

		status := http.StatusOK
		if storeStatus != "connected" {
			status = http.StatusServiceUnavailable
		}

		body := gin.H{
			"ok":         status == http.StatusOK,
			"store":      storeStatus,
			"driver":     driver,
			"dirty_keys": store.Dirty(),
		}
		if breaker != nil {
			body["flush_breaker"] = breaker.State().String()
		}
		c.JSON(status, body)
	}
}
