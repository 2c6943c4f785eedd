package dto

import (
	"strconv"
	"strings"

	"brokerbook/internal/calc"

	"github.com/shopspring/decimal"
)

// FormAmount is a number typed into a form that may be half-edited: null,
// empty or unparseable input reads as zero instead of failing the bind.
// Quoted and bare JSON numbers are both accepted.
type FormAmount struct {
	decimal.Decimal
}

func (a *FormAmount) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unq, err := strconv.Unquote(s); err == nil {
		s = unq
	} else if s == "null" {
		s = ""
	}
	a.Decimal = calc.ParseAmount(s)
	return nil
}

// PreviewDealRequest carries the terms of a deal still being entered. Its
// numbers bind fail-soft; the enums are still checked.
type PreviewDealRequest struct {
	CalculationMode  string      `json:"calculation_mode" validate:"omitempty,oneof=per_kg direct"`
	Rate             FormAmount  `json:"rate"`
	Quantity         FormAmount  `json:"quantity"`
	Unit             string      `json:"unit" validate:"omitempty,oneof=bags kg tons"`
	KgPerUnit        *FormAmount `json:"kg_per_unit"`
	DiscountPercent  *FormAmount `json:"discount_percent"`
	GSTPercent       *FormAmount `json:"gst_percent"`
	BrokerageMode    string      `json:"brokerage_mode" validate:"omitempty,oneof=percentage per_bag"`
	BrokeragePercent *FormAmount `json:"brokerage_percent"`
	BrokeragePerBag  *FormAmount `json:"brokerage_per_bag"`
}

// Terms converts the request to DealTerms. Absent optionals stay nil so
// they take their defaults.
func (r PreviewDealRequest) Terms() DealTerms {
	return DealTerms{
		CalculationMode:  r.CalculationMode,
		Rate:             r.Rate.Decimal,
		Quantity:         r.Quantity.Decimal,
		Unit:             r.Unit,
		KgPerUnit:        r.KgPerUnit.ptr(),
		DiscountPercent:  r.DiscountPercent.ptr(),
		GSTPercent:       r.GSTPercent.ptr(),
		BrokerageMode:    r.BrokerageMode,
		BrokeragePercent: r.BrokeragePercent.ptr(),
		BrokeragePerBag:  r.BrokeragePerBag.ptr(),
	}
}

func (a *FormAmount) ptr() *decimal.Decimal {
	if a == nil {
		return nil
	}
	d := a.Decimal
	return &d
}
