package mockapi

import (
	"net/http"
	"strings"

	"go-sweet-storefront/internal/razorpay"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type createOrderRequest struct {
	Amount        decimal.Decimal `json:"amount"`
	Currency      string          `json:"currency"`
	CustomerName  string          `json:"customerName"`
	CustomerEmail string          `json:"customerEmail"`
	CustomerPhone string          `json:"customerPhone"`
	Items         []struct {
		ID       string          `json:"id"`
		Name     string          `json:"name"`
		Price    decimal.Decimal `json:"price"`
		Quantity int             `json:"quantity"`
	} `json:"items"`
}

type verifyPaymentRequest struct {
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

func (s *Server) createPaymentOrder(c *gin.Context) {
	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}
	if !req.Amount.IsPositive() {
		c.JSON(http.StatusBadRequest, gin.H{"message": "amount must be positive"})
		return
	}
	if req.Currency == "" {
		req.Currency = "INR"
	}

	// gateway amounts are in the minor unit
	paise := req.Amount.Mul(decimal.NewFromInt(100)).IntPart()
	orderID := "order_" + strings.ReplaceAll(uuid.NewString(), "-", "")[:14]

	s.mu.Lock()
	s.orders[orderID] = paise
	s.mu.Unlock()

	c.JSON(http.StatusOK, gin.H{
		"orderId":  orderID,
		"amount":   paise,
		"currency": req.Currency,
	})
}

func (s *Server) verifyPayment(c *gin.Context) {
	var req verifyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"message": err.Error()})
		return
	}

	s.mu.Lock()
	_, known := s.orders[req.RazorpayOrderID]
	s.mu.Unlock()

	if !known {
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "message": "unknown order"})
		return
	}

	if !razorpay.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID,
		req.RazorpaySignature, s.razorpaySecret) {
		c.JSON(http.StatusBadRequest, gin.H{"verified": false, "message": "signature mismatch"})
		return
	}

	c.JSON(http.StatusOK, gin.H{"verified": true})
}
