package service_test

import (
	"context"
	"errors"
	"testing"

	"brokerbook/internal/dto"
	"brokerbook/internal/repository"
	"brokerbook/internal/service"
	"brokerbook/internal/store"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dp(s string) *decimal.Decimal {
	v := d(s)
	return &v
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

// env wires every service over one in-memory store, the way the router does.
type env struct {
	store      *store.Store
	suppliers  repository.SupplierRepository
	buyers     repository.BuyerRepository
	deals      repository.DealRepository
	deliveries repository.DeliveryRepository

	party     service.PartyService
	deal      service.DealService
	delivery  service.DeliveryService
	dashboard service.DashboardService
	report    service.ReportService
	data      service.DataService
}

func newEnv(t *testing.T, cascade bool) *env {
	t.Helper()
	st := store.New(store.NewMemory())
	e := &env{
		store:      st,
		suppliers:  repository.NewSupplierRepository(st),
		buyers:     repository.NewBuyerRepository(st),
		deals:      repository.NewDealRepository(st),
		deliveries: repository.NewDeliveryRepository(st),
	}
	e.party = service.NewPartyService(e.suppliers, e.buyers)
	e.deal = service.NewDealService(e.deals, e.deliveries, e.suppliers, e.buyers, cascade)
	e.delivery = service.NewDeliveryService(e.deliveries, e.deals, e.suppliers, e.buyers)
	e.dashboard = service.NewDashboardService(e.deals)
	e.report = service.NewReportService(e.deals, e.suppliers, e.buyers)
	e.data = service.NewDataService(st)
	return e
}

// seedParties creates supplier 1 and buyer 1.
func (e *env) seedParties(t *testing.T) {
	t.Helper()
	ctx := context.Background()
	_, err := e.party.CreateSupplier(ctx, dto.CreatePartyRequest{Name: "Ravi Traders", Contact: "98450 11111"})
	require.NoError(t, err)
	_, err = e.party.CreateBuyer(ctx, dto.CreatePartyRequest{Name: "Sri Balaji Stores"})
	require.NoError(t, err)
}

// directDeal is 100 bags at 100 each, 5% GST, 1% brokerage.
func directDeal() dto.CreateDealRequest {
	return dto.CreateDealRequest{
		SupplierID:       1,
		BuyerID:          1,
		ProductName:      "Toor Dal",
		ConfirmationDate: "2024-03-01",
		DealTerms: dto.DealTerms{
			CalculationMode:  "direct",
			Rate:             d("100"),
			Quantity:         d("100"),
			BrokerageMode:    "percentage",
			BrokeragePercent: dp("1"),
		},
	}
}

func (e *env) createDeal(t *testing.T, req dto.CreateDealRequest) int64 {
	t.Helper()
	resp, err := e.deal.CreateDeal(context.Background(), req)
	require.NoError(t, err)
	return resp.ID
}

func (e *env) record(t *testing.T, dealID int64, bags string, date string, confirmed bool) (*dto.RecordDeliveryResponse, error) {
	t.Helper()
	return e.delivery.RecordDelivery(context.Background(), dto.RecordDeliveryRequest{
		DealID:        dealID,
		DeliveryDate:  date,
		BillNumber:    "B-" + bags,
		BagsDelivered: d(bags),
		Confirmed:     confirmed,
	})
}

func requireValidation(t *testing.T, err error, fields ...string) {
	t.Helper()
	var ve *service.ValidationError
	require.True(t, errors.As(err, &ve), "want ValidationError, got %v", err)
	for _, f := range fields {
		assert.Contains(t, ve.Fields, f)
	}
}

func TestPartyService(t *testing.T) {
	ctx := context.Background()
	e := newEnv(t, false)

	_, err := e.party.CreateSupplier(ctx, dto.CreatePartyRequest{Name: "   "})
	requireValidation(t, err, "name")

	resp, err := e.party.CreateSupplier(ctx, dto.CreatePartyRequest{Name: " Ravi Traders "})
	require.NoError(t, err)
	assert.Equal(t, int64(1), resp.ID)

	sups, err := e.party.ListSuppliers(ctx)
	require.NoError(t, err)
	require.Len(t, sups, 1)
	assert.Equal(t, "Ravi Traders", sups[0].Name)

	_, err = e.party.CreateBuyer(ctx, dto.CreatePartyRequest{Name: "Sri Balaji Stores"})
	require.NoError(t, err)
	buys, err := e.party.ListBuyers(ctx)
	require.NoError(t, err)
	assert.Len(t, buys, 1)
}
