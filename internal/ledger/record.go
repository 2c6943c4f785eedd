package ledger

import (
	"fmt"

	"brokerbook/internal/calc"
	"brokerbook/internal/model"

	"github.com/shopspring/decimal"
)

// Warning names a business rule the user must acknowledge before a delivery is recorded.
type Warning string

const (
	WarningNone Warning = ""
	// WarningOverDelivery: the delivery exceeds what is still outstanding on the deal.
	WarningOverDelivery Warning = "over_delivery"
	// WarningDealComplete: nothing is outstanding and more is being delivered.
	WarningDealComplete Warning = "deal_already_complete"
)

// ConfirmationRequiredError is returned by PlanDelivery when a warning applies
// and the input was not confirmed. Nothing may be written in that case.
type ConfirmationRequiredError struct {
	Warning   Warning
	Requested decimal.Decimal
	Remaining decimal.Decimal
}

func (e *ConfirmationRequiredError) Error() string {
	switch e.Warning {
	case WarningDealComplete:
		return fmt.Sprintf("deal is already complete (%s remaining); delivering %s more will be recorded as over-delivery",
			e.Remaining.String(), e.Requested.String())
	default:
		return fmt.Sprintf("delivering %s but only %s remain on the deal; this will be recorded as over-delivery",
			e.Requested.String(), e.Remaining.String())
	}
}

// DeliveryInput is the quantity side of a new delivery.
type DeliveryInput struct {
	BagsDelivered decimal.Decimal
	// GSTPercent overrides the deal's GST rate for this delivery when set.
	GSTPercent *decimal.Decimal
	// Confirmed acknowledges any over-delivery warning.
	Confirmed bool
	// PaymentStatus is the status the delivery is recorded with; empty means Pending.
	PaymentStatus model.PaymentStatus
}

// Plan is everything recording a delivery implies, computed before any write.
type Plan struct {
	Breakdown       calc.Breakdown
	BagsDelivered   decimal.Decimal
	GSTPercent      decimal.Decimal
	Warning         Warning
	PaymentStatus   model.PaymentStatus
	RemainingBefore decimal.Decimal
	CumulativeAfter decimal.Decimal
	RemainingAfter  decimal.Decimal
	// CompletesDeal is true when the cumulative delivered quantity reaches
	// or exceeds the ordered quantity after this delivery.
	CompletesDeal bool
	// DealStatus is the deal's status after recording; StatusChanged tells
	// whether it differs from the current one.
	DealStatus    model.DealStatus
	StatusChanged bool
}

// CheckQuantity returns the warning that applies to delivering bags when
// remaining is still outstanding.
func CheckQuantity(remaining, bags decimal.Decimal) Warning {
	switch {
	case remaining.LessThanOrEqual(decimal.Zero) && bags.IsPositive():
		return WarningDealComplete
	case bags.GreaterThan(remaining) && remaining.IsPositive():
		return WarningOverDelivery
	default:
		return WarningNone
	}
}

// PlanDelivery prices a new delivery against deal using the deal's rate,
// discount, brokerage and calculation mode with the input's own quantity
// and GST rate. Over-delivery is allowed but must be confirmed: an
// unconfirmed input that trips a warning yields *ConfirmationRequiredError.
func PlanDelivery(deal model.Deal, existing []model.Delivery, in DeliveryInput) (Plan, error) {
	before := Summarize(deal, existing)

	gst := deal.GSTPercent
	if in.GSTPercent != nil {
		gst = *in.GSTPercent
	}

	p := Plan{
		Breakdown:       calc.Compute(calc.ConfigFromDeal(deal), in.BagsDelivered, &gst),
		BagsDelivered:   in.BagsDelivered,
		GSTPercent:      gst,
		Warning:         CheckQuantity(before.RemainingBags, in.BagsDelivered),
		PaymentStatus:   model.PaymentPending,
		RemainingBefore: before.RemainingBags,
		CumulativeAfter: before.TotalBagsDelivered.Add(in.BagsDelivered),
		DealStatus:      deal.PaymentStatus,
	}
	if p.Warning != WarningNone && !in.Confirmed {
		return Plan{}, &ConfirmationRequiredError{
			Warning:   p.Warning,
			Requested: in.BagsDelivered,
			Remaining: before.RemainingBags,
		}
	}

	if in.PaymentStatus != "" {
		p.PaymentStatus = in.PaymentStatus
	}
	p.RemainingAfter = deal.Quantity.Sub(p.CumulativeAfter)
	p.CompletesDeal = p.CumulativeAfter.GreaterThanOrEqual(deal.Quantity)
	if p.CompletesDeal {
		p.DealStatus, p.StatusChanged = OnFullyDelivered(deal.PaymentStatus)
	}
	return p, nil
}

// NewDelivery builds the delivery record for a confirmed plan. Id and
// timestamps are assigned by storage.
func (p Plan) NewDelivery(dealID int64) model.Delivery {
	return model.Delivery{
		DealID:        dealID,
		BagsDelivered: p.BagsDelivered,
		GSTPercent:    p.GSTPercent,
		Amount:        p.Breakdown.AmountAfterDiscount,
		GSTAmount:     p.Breakdown.GSTAmount,
		Total:         p.Breakdown.TotalAmount,
		Brokerage:     p.Breakdown.BrokerageAmount,
		PaymentStatus: p.PaymentStatus,
	}
}
