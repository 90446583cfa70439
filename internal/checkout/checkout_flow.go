package checkout

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"go-sweet-storefront/internal/cart"
	"go-sweet-storefront/internal/orderlog"
	"go-sweet-storefront/internal/payment"
	"go-sweet-storefront/internal/pkg/apperror"
	"go-sweet-storefront/internal/razorpay"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"
)

const defaultConfirmDelay = 2 * time.Second

// Inventory is the slice of the catalog the flow needs: the per-item
// stock decrement call. Satisfied by catalog.Service.
type Inventory interface {
	Purchase(ctx context.Context, id string, quantity int) error
}

// Flow drives one checkout: collect details, take payment through the
// gateway, verify it with the backend, decrement stock per line, record
// the order. One Flow per opened checkout; a new attempt after closing
// gets a new Flow.
type Flow struct {
	mu       sync.Mutex
	state    State
	details  Details
	inFlight bool

	cart      *cart.Cart
	payments  payment.Service
	gateway   razorpay.Gateway
	inventory Inventory
	log       orderlog.Log
	validate  *validator.Validate
	logger    *zap.Logger

	confirmDelay time.Duration
	onSuccess    func()
	now          func() time.Time
}

type Deps struct {
	Cart      *cart.Cart
	Payments  payment.Service
	Gateway   razorpay.Gateway
	Inventory Inventory
	Log       orderlog.Log
	Logger    *zap.Logger

	// ConfirmDelay is how long the confirmation is shown before
	// OnSuccess fires and the checkout closes.
	ConfirmDelay time.Duration
	OnSuccess    func()
	Now          func() time.Time
}

func NewFlow(deps Deps) *Flow {
	if deps.Cart == nil {
		panic("cart cannot be nil")
	}
	if deps.Payments == nil {
		panic("payment service cannot be nil")
	}
	if deps.Gateway == nil {
		panic("gateway cannot be nil")
	}
	if deps.Inventory == nil {
		panic("inventory cannot be nil")
	}
	if deps.Log == nil {
		panic("order log cannot be nil")
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.ConfirmDelay == 0 {
		deps.ConfirmDelay = defaultConfirmDelay
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}

	return &Flow{
		state:        StateCollectingDetails,
		cart:         deps.Cart,
		payments:     deps.Payments,
		gateway:      deps.Gateway,
		inventory:    deps.Inventory,
		log:          deps.Log,
		validate:     validator.New(),
		logger:       deps.Logger,
		confirmDelay: deps.ConfirmDelay,
		onSuccess:    deps.OnSuccess,
		now:          deps.Now,
	}
}

func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// SubmitDetails validates the contact and address fields and, on success,
// advances to the payment step. On failure the first missing or invalid
// field is reported and the state does not change.
func (f *Flow) SubmitDetails(d Details) error {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.state == StateCompleted {
		return ErrAlreadyCompleted
	}

	if err := f.validate.Struct(d); err != nil {
		return firstFieldError(err)
	}

	f.details = d
	f.state = StateAwaitingPayment
	return nil
}

// Pay runs the payment step: register the order with the backend, hand
// off to the gateway, verify the confirmation, then process the order.
// Any failure leaves the flow in StateAwaitingPayment so the user can
// retry; nothing that already happened is rolled back.
func (f *Flow) Pay(ctx context.Context) (orderlog.Order, error) {
	f.mu.Lock()
	switch {
	case f.state == StateCollectingDetails:
		f.mu.Unlock()
		return orderlog.Order{}, ErrDetailsRequired
	case f.state == StateCompleted:
		f.mu.Unlock()
		return orderlog.Order{}, ErrAlreadyCompleted
	case f.inFlight:
		// the submit control is disabled while a payment is running;
		// this guard backs that up
		f.mu.Unlock()
		return orderlog.Order{}, ErrPaymentInFlight
	}
	f.inFlight = true
	details := f.details
	f.mu.Unlock()

	order, err := f.pay(ctx, details)

	f.mu.Lock()
	f.inFlight = false
	if err == nil {
		f.state = StateCompleted
	}
	f.mu.Unlock()

	if err != nil {
		return orderlog.Order{}, err
	}

	if f.onSuccess != nil {
		// confirmation stays on screen for a beat before the checkout
		// closes, as the storefront always did
		time.AfterFunc(f.confirmDelay, f.onSuccess)
	}
	return order, nil
}

func (f *Flow) pay(ctx context.Context, details Details) (orderlog.Order, error) {
	logger := f.logger.With(zap.String("customer", details.Email))

	lines := f.cart.Lines()
	if len(lines) == 0 {
		return orderlog.Order{}, cart.ErrCartEmpty
	}

	total := f.cart.TotalPrice()
	if !total.IsPositive() {
		return orderlog.Order{}, payment.ErrInvalidAmount
	}

	items := make([]payment.ItemDetail, 0, len(lines))
	for _, line := range lines {
		items = append(items, payment.ItemDetail{
			ID:       line.Sweet.ID,
			Name:     line.Sweet.Name,
			Price:    line.Sweet.Price,
			Quantity: line.Quantity,
		})
	}

	backendOrder, err := f.payments.CreateOrder(ctx, payment.CreateOrderRequest{
		Amount:        total,
		Currency:      payment.DefaultCurrency,
		CustomerName:  details.Name,
		CustomerEmail: details.Email,
		CustomerPhone: details.Phone,
		Items:         items,
	})
	if err != nil {
		logger.Error("creating payment order failed", zap.Error(err))
		return orderlog.Order{}, err
	}

	confirmation, err := f.gateway.Authorize(ctx, razorpay.PaymentOrder{
		OrderID:       backendOrder.OrderID,
		Amount:        backendOrder.Amount,
		Currency:      backendOrder.Currency,
		CustomerName:  details.Name,
		CustomerEmail: details.Email,
		CustomerPhone: details.Phone,
	})
	if err != nil {
		logger.Warn("payment not completed", zap.Error(err))
		return orderlog.Order{}, err
	}

	verification, err := f.payments.VerifyPayment(ctx, payment.VerifyPaymentRequest{
		RazorpayOrderID:   confirmation.OrderID,
		RazorpayPaymentID: confirmation.PaymentID,
		RazorpaySignature: confirmation.Signature,
	})
	if err != nil {
		logger.Error("payment verification failed", zap.Error(err))
		return orderlog.Order{}, err
	}
	if !verification.Verified {
		return orderlog.Order{}, payment.ErrVerificationFailed
	}

	// Decrement stock one line at a time, each call awaited before the
	// next. This is not a transaction: a failure after N of M lines
	// leaves the first N decremented with no recorded order and no
	// compensation. Known gap carried over from the original system.
	for _, line := range lines {
		if err := f.inventory.Purchase(ctx, line.Sweet.ID, line.Quantity); err != nil {
			logger.Error("stock decrement failed mid-order",
				zap.String("sweet_id", line.Sweet.ID),
				zap.Error(err),
			)
			return orderlog.Order{}, ErrOrderProcessing
		}
	}

	order := orderlog.Order{
		PaymentID: confirmation.PaymentID,
		OrderID:   confirmation.OrderID,
		Amount:    total,
		CustomerDetails: orderlog.CustomerDetails{
			Name:    details.Name,
			Email:   details.Email,
			Phone:   details.Phone,
			Address: details.Address,
			City:    details.City,
			Pincode: details.Pincode,
			Notes:   details.Notes,
		},
		Items:     lines,
		Status:    orderlog.StatusCompleted,
		Timestamp: f.now(),
	}
	if err := f.log.Append(ctx, order); err != nil {
		logger.Error("recording order failed", zap.Error(err))
		return orderlog.Order{}, ErrOrderProcessing
	}

	f.cart.Clear()
	logger.Info("order placed",
		zap.String("order_id", order.OrderID),
		zap.String("payment_id", order.PaymentID),
		zap.String("amount", order.Amount.String()),
	)
	return order, nil
}

// firstFieldError converts a validator error into the message for the
// first offending field, in declaration order.
func firstFieldError(err error) error {
	errs, ok := err.(validator.ValidationErrors)
	if !ok || len(errs) == 0 {
		return apperror.New(apperror.CodeInvalidInput, err.Error(), 0)
	}

	fe := errs[0]
	field := strings.ToLower(fe.Field())
	var msg string
	switch fe.Tag() {
	case "required":
		msg = fmt.Sprintf("Please fill in %s", field)
	case "email":
		msg = "Please enter a valid email"
	case "min":
		msg = "Please enter a valid phone number"
	default:
		msg = fmt.Sprintf("Invalid value for %s", field)
	}
	return apperror.New(apperror.CodeInvalidInput, msg, 0)
}
