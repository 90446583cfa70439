package razorpay

// PaymentOrder identifies a gateway order registered by the backend.
// Amount is in the currency's minor unit (paise for INR).
type PaymentOrder struct {
	OrderID       string
	Amount        int64
	Currency      string
	CustomerName  string
	CustomerEmail string
	CustomerPhone string
}

// PaymentConfirmation is what the hosted checkout hands back on success:
// the captured payment and the signature the backend verifies.
type PaymentConfirmation struct {
	OrderID   string
	PaymentID string
	Signature string
}
