package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Deal is one brokered trade between a supplier and a buyer.
// The amount fields are computed once at creation and are never re-derived,
// even if the pricing configuration is edited afterwards.
type Deal struct {
	ID               int64           `json:"deal_id"`
	SupplierID       int64           `json:"supplier_id"`
	BuyerID          int64           `json:"buyer_id"`
	ProductName      string          `json:"product_name"`
	ConfirmationDate time.Time       `json:"confirmation_date"`
	CalculationMode  CalculationMode `json:"calculation_mode"`
	Rate             decimal.Decimal `json:"rate"`
	Quantity         decimal.Decimal `json:"quantity"`
	Unit             Unit            `json:"unit"`
	KgPerUnit        decimal.Decimal `json:"kg_per_unit"`
	DiscountPercent  decimal.Decimal `json:"discount_percent"`
	GSTPercent       decimal.Decimal `json:"gst_percent"`
	BrokerageMode    BrokerageMode   `json:"brokerage_mode"`
	BrokeragePercent decimal.Decimal `json:"brokerage_percent"`
	BrokeragePerBag  decimal.Decimal `json:"brokerage_per_bag"`

	// Frozen at creation by the financial calculator.
	AmountWithoutGST    decimal.Decimal `json:"amount_without_gst"`
	DiscountAmount      decimal.Decimal `json:"discount_amount"`
	AmountAfterDiscount decimal.Decimal `json:"amount_after_discount"`
	GSTAmount           decimal.Decimal `json:"gst_amount"`
	TotalAmount         decimal.Decimal `json:"total_amount"`
	BrokerageAmount     decimal.Decimal `json:"brokerage_amount"`
	TotalKg             decimal.Decimal `json:"total_kg"`

	PaymentStatus DealStatus `json:"payment_status"`
	CreatedAt     time.Time  `json:"created_at"`
}

// DealView is a Deal joined with its party display names.
type DealView struct {
	Deal
	SupplierName string `json:"supplier_name"`
	BuyerName    string `json:"buyer_name"`
}
