package ledger_test

import (
	"testing"
	"time"

	"brokerbook/internal/ledger"
	"brokerbook/internal/model"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func day(n int) time.Time { return time.Date(2024, 3, n, 0, 0, 0, 0, time.UTC) }

func deal100() model.Deal {
	return model.Deal{
		ID:               1,
		CalculationMode:  model.CalcDirect,
		Rate:             d("100"),
		Quantity:         d("100"),
		Unit:             model.UnitBags,
		GSTPercent:       d("5"),
		DiscountPercent:  d("0"),
		BrokerageMode:    model.BrokeragePercentage,
		BrokeragePercent: d("1"),
		PaymentStatus:    model.DealPending,
	}
}

func delivery(id, dealID int64, bags string, date time.Time, status model.PaymentStatus) model.Delivery {
	b := d(bags)
	amount := b.Mul(d("100"))
	gst := amount.Mul(d("0.05"))
	return model.Delivery{
		ID:            id,
		DealID:        dealID,
		DeliveryDate:  date,
		BagsDelivered: b,
		Amount:        amount,
		GSTAmount:     gst,
		Total:         amount.Add(gst),
		Brokerage:     amount.Div(d("100")),
		PaymentStatus: status,
	}
}

func assertDecimal(t *testing.T, want string, got decimal.Decimal, field string) {
	t.Helper()
	assert.Truef(t, d(want).Equal(got), "%s: want %s, got %s", field, want, got.String())
}

func TestSummarize_FullyDelivered(t *testing.T) {
	deal := deal100()
	deliveries := []model.Delivery{
		delivery(1, 1, "40", day(1), model.PaymentPending),
		delivery(2, 1, "60", day(2), model.PaymentPending),
	}

	s := ledger.Summarize(deal, deliveries)

	assertDecimal(t, "100", s.TotalBagsDelivered, "total_bags_delivered")
	assertDecimal(t, "0", s.RemainingBags, "remaining_bags")
	assertDecimal(t, "10500", s.TotalAmount, "total_amount")
	assertDecimal(t, "100", s.TotalBrokerage, "total_brokerage")
	assert.False(t, s.OverDelivered)
	assert.Equal(t, 2, s.DeliveryCount)

	next, changed := ledger.OnFullyDelivered(deal.PaymentStatus)
	assert.True(t, changed)
	assert.Equal(t, model.DealDelivered, next)
}

func TestSummarize_IgnoresOtherDeals(t *testing.T) {
	deliveries := []model.Delivery{
		delivery(1, 1, "40", day(1), model.PaymentPaid),
		delivery(2, 2, "999", day(1), model.PaymentPending),
	}

	s := ledger.Summarize(deal100(), deliveries)

	assertDecimal(t, "40", s.TotalBagsDelivered, "total_bags_delivered")
	assertDecimal(t, "60", s.RemainingBags, "remaining_bags")
	assert.Equal(t, 1, s.DeliveryCount)
	assert.Equal(t, model.RollupPaid, s.PaymentStatus)
}

func TestSummarize_OverDeliveryNotClamped(t *testing.T) {
	s := ledger.Summarize(deal100(), []model.Delivery{delivery(1, 1, "120", day(1), model.PaymentPending)})

	assertDecimal(t, "-20", s.RemainingBags, "remaining_bags")
	assert.True(t, s.OverDelivered)
}

func TestSummarize_NoDeliveries(t *testing.T) {
	s := ledger.Summarize(deal100(), nil)

	assertDecimal(t, "0", s.TotalBagsDelivered, "total_bags_delivered")
	assertDecimal(t, "100", s.RemainingBags, "remaining_bags")
	assertDecimal(t, "0", s.TotalAmount, "total_amount")
	assert.Equal(t, model.RollupPending, s.PaymentStatus)
	assert.Empty(t, s.Progress)
}

func TestSummarize_Idempotent(t *testing.T) {
	deliveries := []model.Delivery{
		delivery(2, 1, "60", day(5), model.PaymentPaid),
		delivery(1, 1, "40", day(1), model.PaymentPending),
	}

	first := ledger.Summarize(deal100(), deliveries)
	second := ledger.Summarize(deal100(), deliveries)

	assert.True(t, first.TotalBagsDelivered.Equal(second.TotalBagsDelivered))
	assert.True(t, first.RemainingBags.Equal(second.RemainingBags))
	assert.True(t, first.TotalAmount.Equal(second.TotalAmount))
	assert.Equal(t, first.PaymentStatus, second.PaymentStatus)
	require.Len(t, second.Progress, 2)
	// input order untouched by the progress sort
	assert.Equal(t, int64(2), deliveries[0].ID)
	assert.Equal(t, int64(1), deliveries[1].ID)
}

func TestRollup(t *testing.T) {
	cases := []struct {
		name     string
		statuses []model.PaymentStatus
		want     model.RollupStatus
	}{
		{"none", nil, model.RollupPending},
		{"paid and pending", []model.PaymentStatus{model.PaymentPaid, model.PaymentPending}, model.RollupPartial},
		{"all paid", []model.PaymentStatus{model.PaymentPaid, model.PaymentPaid}, model.RollupPaid},
		{"all pending", []model.PaymentStatus{model.PaymentPending}, model.RollupPending},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			var deliveries []model.Delivery
			for i, st := range tc.statuses {
				deliveries = append(deliveries, delivery(int64(i+1), 1, "1", day(1), st))
			}
			assert.Equal(t, tc.want, ledger.Rollup(deliveries))
		})
	}
}

func TestProgress_SortedWithRunningTotals(t *testing.T) {
	deliveries := []model.Delivery{
		delivery(3, 1, "30", day(9), model.PaymentPending),
		delivery(2, 1, "20", day(2), model.PaymentPending),
		delivery(1, 1, "10", day(2), model.PaymentPaid),
	}

	p := ledger.Summarize(deal100(), deliveries).Progress

	require.Len(t, p, 3)
	assert.Equal(t, []int64{1, 2, 3}, []int64{p[0].DeliveryID, p[1].DeliveryID, p[2].DeliveryID})
	assertDecimal(t, "10", p[0].CumulativeDelivered, "cumulative[0]")
	assertDecimal(t, "30", p[1].CumulativeDelivered, "cumulative[1]")
	assertDecimal(t, "60", p[2].CumulativeDelivered, "cumulative[2]")
	assertDecimal(t, "40", p[2].RemainingAfter, "remaining_after[2]")
}

func TestDeletingDeliveryKeepsDeliveredStatus(t *testing.T) {
	deal := deal100()
	deliveries := []model.Delivery{
		delivery(1, 1, "40", day(1), model.PaymentPending),
		delivery(2, 1, "60", day(2), model.PaymentPending),
	}
	deal.PaymentStatus, _ = ledger.OnFullyDelivered(deal.PaymentStatus)
	require.Equal(t, model.DealDelivered, deal.PaymentStatus)

	after := ledger.Summarize(deal, deliveries[:1])

	assertDecimal(t, "40", after.TotalBagsDelivered, "total_bags_delivered")
	assertDecimal(t, "60", after.RemainingBags, "remaining_bags")
	// one-way edge: nothing moves the deal back to Pending
	assert.Equal(t, model.DealDelivered, deal.PaymentStatus)
}
