package dto

// ── Suppliers / Buyers ───────────────────────────────────────────────────────

type CreatePartyRequest struct {
	Name    string `json:"name" validate:"required,max=200"`
	Contact string `json:"contact_no" validate:"max=50"`
}

// CreatedResponse carries the id assigned to a new record.
type CreatedResponse struct {
	ID int64 `json:"id"`
}
