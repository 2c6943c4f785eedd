package dto

import (
	"github.com/shopspring/decimal"
)

type RecordDeliveryRequest struct {
	DealID        int64            `json:"deal_id" validate:"required,gt=0"`
	DeliveryDate  string           `json:"delivery_date" validate:"omitempty,datetime=2006-01-02"`
	BillNumber    string           `json:"bill_number" validate:"max=100"`
	BagsDelivered decimal.Decimal  `json:"bags_delivered" validate:"required,gt=0"`
	GSTPercent    *decimal.Decimal `json:"gst_percent" validate:"omitempty,min=0,max=100"`
	PaymentStatus string           `json:"payment_status" validate:"omitempty,oneof=Pending Paid"`
	// Confirmed acknowledges an over-delivery warning from a previous attempt.
	Confirmed bool `json:"confirmed"`
}

type RecordDeliveryResponse struct {
	ID            int64           `json:"id"`
	Warning       string          `json:"warning,omitempty"`
	RemainingBags decimal.Decimal `json:"remaining_bags"`
	DealStatus    string          `json:"deal_status"`
}

// ConfirmationResponse is the 409 body telling the client what to confirm.
type ConfirmationResponse struct {
	Detail    string          `json:"detail"`
	Warning   string          `json:"warning"`
	Requested decimal.Decimal `json:"requested"`
	Remaining decimal.Decimal `json:"remaining"`
}

type DeliveryStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=Pending Paid"`
}

type DeliveryFilter struct {
	DealID   int64  `form:"deal_id"`
	Status   string `form:"status"`
	DateFrom string `form:"date_from"`
	DateTo   string `form:"date_to"`
}
