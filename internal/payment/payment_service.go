package payment

import (
	"context"

	"go-sweet-storefront/internal/httpclient"
	"go-sweet-storefront/internal/pkg/apperror"

	"go.uber.org/zap"
)

const (
	createOrderPath   = "/api/payment/create-order"
	verifyPaymentPath = "/api/payment/verify-payment"
)

const DefaultCurrency = "INR"

// Service talks to the backend's payment endpoints. The backend, not the
// client, holds the gateway credentials used for order registration and
// signature verification.
type Service interface {
	CreateOrder(ctx context.Context, req CreateOrderRequest) (CreateOrderResponse, error)
	VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (VerifyPaymentResponse, error)
}

type service struct {
	client *httpclient.Client
	logger *zap.Logger
}

type Deps struct {
	Client *httpclient.Client
	Logger *zap.Logger
}

func NewService(deps Deps) Service {
	if deps.Client == nil {
		panic("http client cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	return &service{client: deps.Client, logger: deps.Logger}
}

func (s *service) CreateOrder(ctx context.Context, req CreateOrderRequest) (CreateOrderResponse, error) {
	if !req.Amount.IsPositive() {
		return CreateOrderResponse{}, ErrInvalidAmount
	}
	if req.Currency == "" {
		req.Currency = DefaultCurrency
	}

	var resp CreateOrderResponse
	if err := s.client.Post(ctx, createOrderPath, req, &resp); err != nil {
		return CreateOrderResponse{}, err
	}
	if resp.OrderID == "" {
		return CreateOrderResponse{}, apperror.New(apperror.CodeGateway,
			"Backend returned no gateway order id", 0)
	}

	s.logger.Info("payment order created",
		zap.String("order_id", resp.OrderID),
		zap.Int64("amount_minor", resp.Amount),
	)
	return resp, nil
}

func (s *service) VerifyPayment(ctx context.Context, req VerifyPaymentRequest) (VerifyPaymentResponse, error) {
	var resp VerifyPaymentResponse
	if err := s.client.Post(ctx, verifyPaymentPath, req, &resp); err != nil {
		return VerifyPaymentResponse{}, err
	}
	return resp, nil
}
