package razorpay

import (
	"context"
	"strings"

	"github.com/google/uuid"
)

// SandboxGateway simulates the hosted checkout for local development and
// end-to-end tests: every order is paid immediately with a fabricated
// payment id, signed with the secret the mock backend shares.
type SandboxGateway struct {
	KeySecret string
}

func NewSandbox(keySecret string) *SandboxGateway {
	return &SandboxGateway{KeySecret: keySecret}
}

func (s *SandboxGateway) Authorize(_ context.Context, order PaymentOrder) (PaymentConfirmation, error) {
	paymentID := "pay_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]
	return PaymentConfirmation{
		OrderID:   order.OrderID,
		PaymentID: paymentID,
		Signature: Sign(order.OrderID, paymentID, s.KeySecret),
	}, nil
}
