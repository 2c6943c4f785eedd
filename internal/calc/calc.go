// Package calc derives the monetary breakdown of a deal or a delivery from
// its pricing configuration. Everything here is pure decimal arithmetic:
// no rounding is applied, so the breakdown identities hold exactly.
package calc

import (
	"strings"

	"brokerbook/internal/model"

	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Defaults applied by the deal entry flow when a field is left empty.
var (
	DefaultKgPerUnit        = decimal.NewFromInt(50)
	DefaultGSTPercent       = decimal.NewFromInt(5)
	DefaultBrokeragePercent = decimal.RequireFromString("0.5")
)

// Config is the pricing configuration of a deal.
// Callers must reject negative rate and quantity before calling Compute;
// negative values are passed through unchanged.
type Config struct {
	CalculationMode  model.CalculationMode
	Rate             decimal.Decimal
	KgPerUnit        decimal.Decimal
	DiscountPercent  decimal.Decimal
	GSTPercent       decimal.Decimal
	BrokerageMode    model.BrokerageMode
	BrokeragePercent decimal.Decimal
	BrokeragePerBag  decimal.Decimal
}

// Breakdown is the full set of derived amounts.
type Breakdown struct {
	AmountWithoutGST    decimal.Decimal `json:"amount_without_gst"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	AmountAfterDiscount decimal.Decimal `json:"amount_after_discount"`
	GSTAmount           decimal.Decimal `json:"gst_amount"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	BrokerageAmount     decimal.Decimal `json:"brokerage_amount"`
	TotalKg             decimal.Decimal `json:"total_kg"`
}

// Compute prices quantity under cfg. When gstOverride is non-nil it replaces
// cfg.GSTPercent; deliveries use this to apply their own GST rate.
//
// An unrecognised calculation mode prices as direct and an unrecognised
// brokerage mode as percentage.
func Compute(cfg Config, quantity decimal.Decimal, gstOverride *decimal.Decimal) Breakdown {
	var b Breakdown

	if cfg.CalculationMode == model.CalcPerKg {
		b.TotalKg = quantity.Mul(cfg.KgPerUnit)
		b.AmountWithoutGST = cfg.Rate.Mul(b.TotalKg)
	} else {
		b.TotalKg = decimal.Zero
		b.AmountWithoutGST = cfg.Rate.Mul(quantity)
	}

	b.DiscountAmount = percentOf(b.AmountWithoutGST, cfg.DiscountPercent)
	b.AmountAfterDiscount = b.AmountWithoutGST.Sub(b.DiscountAmount)

	gst := cfg.GSTPercent
	if gstOverride != nil {
		gst = *gstOverride
	}
	b.GSTAmount = percentOf(b.AmountAfterDiscount, gst)
	b.TotalAmount = b.AmountAfterDiscount.Add(b.GSTAmount)

	if cfg.BrokerageMode == model.BrokeragePerBag {
		b.BrokerageAmount = quantity.Mul(cfg.BrokeragePerBag)
	} else {
		b.BrokerageAmount = percentOf(b.AmountAfterDiscount, cfg.BrokeragePercent)
	}
	return b
}

// ConfigFromDeal returns the pricing configuration stored on a deal.
func ConfigFromDeal(d model.Deal) Config {
	return Config{
		CalculationMode:  d.CalculationMode,
		Rate:             d.Rate,
		KgPerUnit:        d.KgPerUnit,
		DiscountPercent:  d.DiscountPercent,
		GSTPercent:       d.GSTPercent,
		BrokerageMode:    d.BrokerageMode,
		BrokeragePercent: d.BrokeragePercent,
		BrokeragePerBag:  d.BrokeragePerBag,
	}
}

// Apply copies b onto the frozen amount fields of d.
func Apply(d *model.Deal, b Breakdown) {
	d.AmountWithoutGST = b.AmountWithoutGST
	d.DiscountAmount = b.DiscountAmount
	d.AmountAfterDiscount = b.AmountAfterDiscount
	d.GSTAmount = b.GSTAmount
	d.TotalAmount = b.TotalAmount
	d.BrokerageAmount = b.BrokerageAmount
	d.TotalKg = b.TotalKg
}

// ParseAmount is the fail-soft numeric parser used for form input:
// empty or unparseable text is zero.
func ParseAmount(s string) decimal.Decimal {
	s = strings.TrimSpace(s)
	if s == "" {
		return decimal.Zero
	}
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero
	}
	return d
}

// OrZero returns the pointed-to value, or zero for nil.
func OrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// OrDefault returns the pointed-to value, or def for nil.
func OrDefault(d *decimal.Decimal, def decimal.Decimal) decimal.Decimal {
	if d == nil {
		return def
	}
	return *d
}

func percentOf(amount, pct decimal.Decimal) decimal.Decimal {
	return amount.Mul(pct).Div(hundred)
}
