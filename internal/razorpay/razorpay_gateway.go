package razorpay

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"time"

	"go-sweet-storefront/internal/pkg/apperror"

	razorpaygo "github.com/razorpay/razorpay-go"
	"go.uber.org/zap"
)

// Gateway is the external payment processor invoked during checkout.
// Authorize blocks until the order has a captured payment, the user
// abandons it, or ctx expires.
type Gateway interface {
	Authorize(ctx context.Context, order PaymentOrder) (PaymentConfirmation, error)
}

type gateway struct {
	client    *razorpaygo.Client
	keySecret string
	poll      time.Duration
	logger    *zap.Logger
}

type Deps struct {
	KeyID        string
	KeySecret    string
	PollInterval time.Duration
	Logger       *zap.Logger
}

// NewGateway returns the live Razorpay-backed gateway. The customer pays
// through Razorpay's own checkout; this side polls the order until a
// captured payment shows up and then produces the standard signature.
func NewGateway(deps Deps) Gateway {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.PollInterval == 0 {
		deps.PollInterval = 2 * time.Second
	}

	return &gateway{
		client:    razorpaygo.NewClient(deps.KeyID, deps.KeySecret),
		keySecret: deps.KeySecret,
		poll:      deps.PollInterval,
		logger:    deps.Logger,
	}
}

func (g *gateway) Authorize(ctx context.Context, order PaymentOrder) (PaymentConfirmation, error) {
	ticker := time.NewTicker(g.poll)
	defer ticker.Stop()

	for {
		paymentID, err := g.capturedPayment(order.OrderID)
		if err != nil {
			return PaymentConfirmation{}, err
		}
		if paymentID != "" {
			g.logger.Info("payment captured",
				zap.String("order_id", order.OrderID),
				zap.String("payment_id", paymentID),
			)
			return PaymentConfirmation{
				OrderID:   order.OrderID,
				PaymentID: paymentID,
				Signature: Sign(order.OrderID, paymentID, g.keySecret),
			}, nil
		}

		select {
		case <-ctx.Done():
			return PaymentConfirmation{}, ErrPaymentTimeout
		case <-ticker.C:
		}
	}
}

func (g *gateway) capturedPayment(orderID string) (string, error) {
	body, err := g.client.Order.Payments(orderID, nil, nil)
	if err != nil {
		return "", apperror.New(apperror.CodeGateway, err.Error(), 0)
	}

	items, _ := body["items"].([]interface{})
	for _, it := range items {
		p, ok := it.(map[string]interface{})
		if !ok {
			continue
		}
		if status, _ := p["status"].(string); status == "captured" {
			id, _ := p["id"].(string)
			return id, nil
		}
	}
	return "", nil
}

// Sign computes the checkout signature Razorpay defines:
// HMAC-SHA256(order_id + "|" + payment_id) under the key secret.
func Sign(orderID, paymentID, secret string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

// VerifySignature checks a confirmation the same way the backend does.
func VerifySignature(orderID, paymentID, signature, secret string) bool {
	expected := Sign(orderID, paymentID, secret)
	return hmac.Equal([]byte(expected), []byte(signature))
}
