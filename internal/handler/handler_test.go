package handler

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"brokerbook/internal/dto"
	"brokerbook/internal/infra"
	"brokerbook/internal/ledger"
	"brokerbook/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func init() { gin.SetMode(gin.TestMode) }

func serve(h gin.HandlerFunc, method, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.Handle(method, "/x/:id", h)
	req := httptest.NewRequest(method, "/x/1", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRespondError(t *testing.T) {
	cases := []struct {
		name string
		err  error
		want int
	}{
		{"validation", &service.ValidationError{Fields: map[string]string{"name": "required"}}, http.StatusUnprocessableEntity},
		{"not found", fmt.Errorf("deal 9: %w", service.ErrNotFound), http.StatusNotFound},
		{"confirmation", &ledger.ConfirmationRequiredError{
			Warning:   ledger.WarningOverDelivery,
			Requested: decimal.NewFromInt(70),
			Remaining: decimal.NewFromInt(60),
		}, http.StatusConflict},
		{"storage", errors.New("badger: disk full"), http.StatusInternalServerError},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			w := serve(func(c *gin.Context) { respondError(c, tc.err) }, http.MethodGet, "")
			assert.Equal(t, tc.want, w.Code)
			if tc.want == http.StatusInternalServerError {
				assert.NotContains(t, w.Body.String(), "disk full")
			}
		})
	}
}

func TestRespondError_ConfirmationBody(t *testing.T) {
	err := &ledger.ConfirmationRequiredError{
		Warning:   ledger.WarningDealComplete,
		Requested: decimal.NewFromInt(5),
		Remaining: decimal.Zero,
	}
	w := serve(func(c *gin.Context) { respondError(c, err) }, http.MethodGet, "")
	require.Equal(t, http.StatusConflict, w.Code)

	var body dto.ConfirmationResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, "deal_already_complete", body.Warning)
	assert.True(t, body.Requested.Equal(decimal.NewFromInt(5)))
	assert.NotEmpty(t, body.Detail)
}

func TestBindAndValidate_Decimals(t *testing.T) {
	h := func(c *gin.Context) {
		var req dto.RecordDeliveryRequest
		if !bindAndValidate(c, &req) {
			return
		}
		c.Status(http.StatusNoContent)
	}

	assert.Equal(t, http.StatusNoContent, serve(h, http.MethodPost, `{"deal_id":1,"bags_delivered":"12.5"}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, serve(h, http.MethodPost, `{"deal_id":1,"bags_delivered":0}`).Code)
	assert.Equal(t, http.StatusUnprocessableEntity, serve(h, http.MethodPost, `{"deal_id":1,"bags_delivered":3,"gst_percent":120}`).Code)
	assert.Equal(t, http.StatusBadRequest, serve(h, http.MethodPost, `{"deal_id":1,"bags_delivered":"abc"}`).Code)
}

func TestPathID(t *testing.T) {
	r := gin.New()
	r.GET("/x/:id", func(c *gin.Context) {
		if _, ok := pathID(c); ok {
			c.Status(http.StatusNoContent)
		}
	})
	for path, want := range map[string]int{"/x/3": 204, "/x/0": 400, "/x/-1": 400, "/x/a": 400} {
		w := httptest.NewRecorder()
		r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, path, nil))
		assert.Equal(t, want, w.Code, path)
	}
}

type pinger struct {
	err   error
	dirty int
}

func (p pinger) Ping(context.Context) error { return p.err }
func (p pinger) Dirty() int                 { return p.dirty }

func TestHealth(t *testing.T) {
	w := serve(Health(pinger{dirty: 3}, "badger", infra.NewCircuitBreaker(infra.DefaultCBConfig())), http.MethodGet, "")
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"driver":"badger"`)
	assert.Contains(t, w.Body.String(), `"flush_breaker":"closed"`)
	assert.Contains(t, w.Body.String(), `"dirty_keys":3`)

	w = serve(Health(pinger{err: errors.New("down")}, "redis", nil), http.MethodGet, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
	assert.Contains(t, w.Body.String(), `"store":"error"`)
}
