package dto

// ResetConfirmationPhrase must be typed exactly to wipe all data.
const ResetConfirmationPhrase = "DELETE ALL DATA"

type ResetRequest struct {
	Confirmation string `json:"confirmation" validate:"required"`
}
