// Package ledger folds the deliveries recorded against a deal into a
// reconciliation summary, and decides what recording one more delivery
// means for the deal: its amounts, whether the user has to confirm an
// over-delivery, and whether the deal becomes Delivered.
package ledger

import (
	"sort"
	"time"

	"brokerbook/internal/model"

	"github.com/shopspring/decimal"
)

// Summary is the reconciliation of one deal against its deliveries.
type Summary struct {
	DealID             int64              `json:"deal_id"`
	DealFound          bool               `json:"deal_found"`
	OrderedQuantity    decimal.Decimal    `json:"ordered_quantity"`
	TotalBagsDelivered decimal.Decimal    `json:"total_bags_delivered"`
	RemainingBags      decimal.Decimal    `json:"remaining_bags"`
	TotalAmount        decimal.Decimal    `json:"total_amount"`
	TotalBrokerage     decimal.Decimal    `json:"total_brokerage"`
	PaymentStatus      model.RollupStatus `json:"payment_status"`
	OverDelivered      bool               `json:"over_delivered"`
	DeliveryCount      int                `json:"delivery_count"`
	Progress           []ProgressEntry    `json:"progress"`
}

// ProgressEntry is one delivery in date order with the running totals it produced.
type ProgressEntry struct {
	DeliveryID          int64               `json:"delivery_id"`
	DeliveryDate        time.Time           `json:"delivery_date"`
	BillNumber          string              `json:"bill_number"`
	BagsDelivered       decimal.Decimal     `json:"bags_delivered"`
	CumulativeDelivered decimal.Decimal     `json:"cumulative_delivered"`
	RemainingAfter      decimal.Decimal     `json:"remaining_after"`
	PaymentStatus       model.PaymentStatus `json:"payment_status"`
}

// Summarize reconciles deal against the deliveries whose DealID matches it.
// Deliveries for other deals are ignored, and the input slice is not modified.
// DealFound is left false; the caller knows whether deal came from storage.
func Summarize(deal model.Deal, deliveries []model.Delivery) Summary {
	own := ForDeal(deal.ID, deliveries)

	s := Summary{
		DealID:             deal.ID,
		OrderedQuantity:    deal.Quantity,
		TotalBagsDelivered: decimal.Zero,
		TotalAmount:        decimal.Zero,
		TotalBrokerage:     decimal.Zero,
		DeliveryCount:      len(own),
	}
	for _, dv := range own {
		s.TotalBagsDelivered = s.TotalBagsDelivered.Add(dv.BagsDelivered)
		s.TotalAmount = s.TotalAmount.Add(dv.Total)
		s.TotalBrokerage = s.TotalBrokerage.Add(dv.Brokerage)
	}
	s.RemainingBags = deal.Quantity.Sub(s.TotalBagsDelivered)
	s.OverDelivered = s.RemainingBags.IsNegative()
	s.PaymentStatus = Rollup(own)
	s.Progress = progress(deal.Quantity, own)
	return s
}

// progress sorts a deal's deliveries by delivery date (ties by id) and
// attaches the cumulative delivered quantity and the remaining quantity
// after each.
func progress(ordered decimal.Decimal, own []model.Delivery) []ProgressEntry {
	sorted := make([]model.Delivery, len(own))
	copy(sorted, own)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].DeliveryDate.Equal(sorted[j].DeliveryDate) {
			return sorted[i].DeliveryDate.Before(sorted[j].DeliveryDate)
		}
		return sorted[i].ID < sorted[j].ID
	})

	entries := make([]ProgressEntry, 0, len(sorted))
	cumulative := decimal.Zero
	for _, dv := range sorted {
		cumulative = cumulative.Add(dv.BagsDelivered)
		entries = append(entries, ProgressEntry{
			DeliveryID:          dv.ID,
			DeliveryDate:        dv.DeliveryDate,
			BillNumber:          dv.BillNumber,
			BagsDelivered:       dv.BagsDelivered,
			CumulativeDelivered: cumulative,
			RemainingAfter:      ordered.Sub(cumulative),
			PaymentStatus:       dv.PaymentStatus,
		})
	}
	return entries
}

// Rollup derives the deal-level payment status from its deliveries:
// no deliveries or none paid is Pending, all paid is Paid, otherwise Partial.
func Rollup(deliveries []model.Delivery) model.RollupStatus {
	if len(deliveries) == 0 {
		return model.RollupPending
	}
	paid := 0
	for _, dv := range deliveries {
		if dv.PaymentStatus == model.PaymentPaid {
			paid++
		}
	}
	switch {
	case paid == len(deliveries):
		return model.RollupPaid
	case paid > 0:
		return model.RollupPartial
	default:
		return model.RollupPending
	}
}

// ForDeal filters deliveries down to those recorded against dealID, keeping order.
func ForDeal(dealID int64, deliveries []model.Delivery) []model.Delivery {
	own := make([]model.Delivery, 0, len(deliveries))
	for _, dv := range deliveries {
		if dv.DealID == dealID {
			own = append(own, dv)
		}
	}
	return own
}
