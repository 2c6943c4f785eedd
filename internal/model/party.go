package model

import "time"

// UnknownName is shown wherever a supplier, buyer or deal reference no longer resolves.
const UnknownName = "Unknown"

// Supplier is the selling side of a brokered deal.
type Supplier struct {
	ID        int64     `json:"supplier_id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact_no"`
	CreatedAt time.Time `json:"created_at"`
}

// Buyer is the purchasing side of a brokered deal.
type Buyer struct {
	ID        int64     `json:"buyer_id"`
	Name      string    `json:"name"`
	Contact   string    `json:"contact_no"`
	CreatedAt time.Time `json:"created_at"`
}
