package dto

import (
	"github.com/shopspring/decimal"
)

// DateLayout is the calendar-date format used by every date field on the wire.
const DateLayout = "2006-01-02"

// DealTerms is the pricing half of a deal, shared by creation and preview.
// Optional fields left nil take their defaults.
type DealTerms struct {
	CalculationMode  string           `json:"calculation_mode" validate:"omitempty,oneof=per_kg direct"`
	Rate             decimal.Decimal  `json:"rate" validate:"min=0"`
	Quantity         decimal.Decimal  `json:"quantity" validate:"min=0"`
	Unit             string           `json:"unit" validate:"omitempty,oneof=bags kg tons"`
	KgPerUnit        *decimal.Decimal `json:"kg_per_unit" validate:"omitempty,gt=0"`
	DiscountPercent  *decimal.Decimal `json:"discount_percent" validate:"omitempty,min=0,max=100"`
	GSTPercent       *decimal.Decimal `json:"gst_percent" validate:"omitempty,min=0,max=100"`
	BrokerageMode    string           `json:"brokerage_mode" validate:"omitempty,oneof=percentage per_bag"`
	BrokeragePercent *decimal.Decimal `json:"brokerage_percent" validate:"omitempty,min=0,max=100"`
	BrokeragePerBag  *decimal.Decimal `json:"brokerage_per_bag" validate:"omitempty,min=0"`
}

type CreateDealRequest struct {
	SupplierID       int64  `json:"supplier_id" validate:"required,gt=0"`
	BuyerID          int64  `json:"buyer_id" validate:"required,gt=0"`
	ProductName      string `json:"product_name" validate:"required,max=200"`
	ConfirmationDate string `json:"confirmation_date" validate:"omitempty,datetime=2006-01-02"`
	DealTerms
}

type DealStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Delivered Paid"`
}

// DealFilter narrows the deal list. Search matches product, supplier or
// buyer name case-insensitively; dates bound the confirmation date inclusively.
type DealFilter struct {
	Status   string `form:"status"`
	Search   string `form:"search"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}
