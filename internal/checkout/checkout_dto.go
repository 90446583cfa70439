package checkout

// State of the checkout flow. A failed payment or a failed order
// processing pass returns the flow to StateAwaitingPayment; checkout
// stays open for retry.
type State string

const (
	StateCollectingDetails State = "COLLECTING_DETAILS"
	StateAwaitingPayment   State = "AWAITING_PAYMENT"
	StateCompleted         State = "COMPLETED"
)

// Details are the contact and delivery fields collected in step one.
// Field order matters: validation reports the first missing field.
type Details struct {
	Name    string `json:"name" validate:"required"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"phone" validate:"required,min=10"`
	Address string `json:"address" validate:"required"`
	City    string `json:"city" validate:"required"`
	Pincode string `json:"pincode" validate:"required"`
	Notes   string `json:"notes" validate:"-"`
}
