package model

import (
	"time"

	"github.com/shopspring/decimal"
)

// Delivery is one shipment recorded against a deal.
// BagsDelivered is expressed in the deal's unit, whatever that unit is.
// Amount is the post-discount amount; Total adds GST on top of it.
type Delivery struct {
	ID            int64           `json:"delivery_id"`
	DealID        int64           `json:"deal_id"`
	DeliveryDate  time.Time       `json:"delivery_date"`
	BillNumber    string          `json:"bill_number"`
	BagsDelivered decimal.Decimal `json:"bags_delivered"`
	GSTPercent    decimal.Decimal `json:"gst_percent"`
	Amount        decimal.Decimal `json:"amount"`
	GSTAmount     decimal.Decimal `json:"gst_amount"`
	Total         decimal.Decimal `json:"total"`
	Brokerage     decimal.Decimal `json:"brokerage"`
	PaymentStatus PaymentStatus   `json:"payment_status"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DeliveryView is a Delivery joined with its deal's product and party names.
type DeliveryView struct {
	Delivery
	SupplierName string `json:"supplier_name"`
	BuyerName    string `json:"buyer_name"`
	ProductName  string `json:"product_name"`
}
