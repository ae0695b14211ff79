package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/softwrapstudio-web/Softwrap-Studio/models"
	"github.com/softwrapstudio-web/Softwrap-Studio/repositories"
	"github.com/softwrapstudio-web/Softwrap-Studio/utils"
)

var (
	ErrEmptyCart           = errors.New("cart is empty")
	ErrPaymentVerification = errors.New("payment signature verification failed")
)

// Gateway is the narrow contract with the payment widget: create a
// gateway-side order, and check the signature the widget hands back on
// success. The widget's callbacks surface here as plain results, not
// nested callbacks.
type Gateway interface {
	CreateOrder(ctx context.Context, amount float64, receipt string, notes map[string]string) (string, error)
	VerifySignature(gatewayOrderID, paymentID, signature string) bool
}

type OrderWriter interface {
	CreateOrder(ctx context.Context, order *models.Order) error
	GetOrderByID(ctx context.Context, orderID int) (*models.Order, error)
	SetGatewayOrderID(ctx context.Context, orderID int, gatewayOrderID string) error
	MarkPaymentCompleted(ctx context.Context, orderID int, paymentID, signature string) error
	RecordStockShortfall(ctx context.Context, orderID, productID, quantity int, reason string) error
}

type StockMutator interface {
	DecrementStock(ctx context.Context, productID, quantity int) error
}

type Mailer interface {
	SendOrderConfirmationEmail(toEmail, orderNumber string, total float64) error
}

// PaymentService orchestrates the three ways out of checkout: the gateway
// widget, cash on delivery, and the WhatsApp handoff. Gateway internals
// stay behind the Gateway interface.
type PaymentService struct {
	cart    *CartStore
	pricing Pricing
	orders  OrderWriter
	stock   StockMutator
	gateway Gateway
	handoff repositories.HandoffRepository
	mailer  Mailer

	gatewayKeyID   string
	whatsAppNumber string
}

func NewPaymentService(
	cart *CartStore,
	pricing Pricing,
	orders OrderWriter,
	stock StockMutator,
	gateway Gateway,
	handoff repositories.HandoffRepository,
	mailer Mailer,
	gatewayKeyID, whatsAppNumber string,
) *PaymentService {
	return &PaymentService{
		cart:           cart,
		pricing:        pricing,
		orders:         orders,
		stock:          stock,
		gateway:        gateway,
		handoff:        handoff,
		mailer:         mailer,
		gatewayKeyID:   gatewayKeyID,
		whatsAppNumber: whatsAppNumber,
	}
}

// Quote recomputes the grand total for the selected method. The payment
// summary and checkout summary both end up in Pricing.Quote.
func (s *PaymentService) Quote(ctx context.Context, userID int, method string) OrderQuote {
	return s.pricing.Quote(s.cart.Total(ctx, userID), method)
}

type PaymentInitiation struct {
	OrderID        int     `json:"order_id"`
	OrderNumber    string  `json:"order_number"`
	GatewayOrderID string  `json:"razorpay_order_id"`
	KeyID          string  `json:"key_id"`
	Amount         float64 `json:"amount"`
	Currency       string  `json:"currency"`
	PrefillName    string  `json:"prefill_name"`
	PrefillEmail   string  `json:"prefill_email"`
	PrefillContact string  `json:"prefill_contact"`
}

type PaymentResult struct {
	Status                 string `json:"status"`
	OrderID                int    `json:"order_id"`
	OrderNumber            string `json:"order_number"`
	PaymentID              string `json:"payment_id,omitempty"`
	ReconciliationRequired bool   `json:"reconciliation_required,omitempty"`
}

// buildOrder assembles an order record from the current cart lines, the
// handed-off address, and a fresh quote.
func (s *PaymentService) buildOrder(ctx context.Context, userID int, method string) (*models.Order, error) {
	lines := s.cart.Lines(ctx, userID)
	if len(lines) == 0 {
		return nil, ErrEmptyCart
	}

	addr, err := s.handoff.Load(ctx, userID)
	if err != nil {
		return nil, err
	}

	quote := s.pricing.Quote(s.cart.Total(ctx, userID), method)

	order := &models.Order{
		OrderNumber:   fmt.Sprintf("ORD-%d", time.Now().Unix()),
		UserID:        userID,
		Status:        models.OrderStatusPending,
		PaymentStatus: models.PaymentStatusPending,
		PaymentMethod: method,
		Subtotal:      quote.Subtotal,
		ShippingCost:  quote.ShippingCost,
		CODFee:        quote.CODFee,
		Total:         quote.Total,
		Address:       *addr,
	}
	for _, line := range lines {
		order.Items = append(order.Items, models.OrderItem{
			ProductID: line.ProductID,
			Title:     line.Snapshot.Title,
			UnitPrice: line.Snapshot.UnitPrice,
			Quantity:  line.Quantity,
		})
	}
	return order, nil
}

// InitiateGateway creates the pending order record first, then the
// gateway-side order. If the gateway call fails the pending record stays
// for out-of-band reconciliation and the cart is untouched.
func (s *PaymentService) InitiateGateway(ctx context.Context, userID int) (*PaymentInitiation, error) {
	order, err := s.buildOrder(ctx, userID, models.PaymentMethodRazorpay)
	if err != nil {
		return nil, err
	}

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	receipt := uuid.NewString()
	gatewayOrderID, err := s.gateway.CreateOrder(ctx, order.Total, receipt, map[string]string{
		"order_id": fmt.Sprintf("%d", order.ID),
		"address":  order.Address.Address,
	})
	if err != nil {
		return nil, fmt.Errorf("payment gateway error: %w", err)
	}

	if err := s.orders.SetGatewayOrderID(ctx, order.ID, gatewayOrderID); err != nil {
		return nil, fmt.Errorf("failed to attach gateway order: %w", err)
	}

	return &PaymentInitiation{
		OrderID:        order.ID,
		OrderNumber:    order.OrderNumber,
		GatewayOrderID: gatewayOrderID,
		KeyID:          s.gatewayKeyID,
		Amount:         order.Total,
		Currency:       "INR",
		PrefillName:    order.Address.FullName,
		PrefillEmail:   order.Address.Email,
		PrefillContact: order.Address.Phone,
	}, nil
}

// ConfirmGateway handles the widget's success callback. The sequence is
// fixed: order update, then per-line stock decrement, then cart clear.
// A decrement failure after the confirmed payment is recorded for manual
// reconciliation and never rolls the payment back.
func (s *PaymentService) ConfirmGateway(ctx context.Context, userID int, req models.RazorpayVerifyRequest) (*PaymentResult, error) {
	if !s.gateway.VerifySignature(req.RazorpayOrderID, req.RazorpayPaymentID, req.RazorpaySignature) {
		return nil, ErrPaymentVerification
	}

	order, err := s.orders.GetOrderByID(ctx, req.OrderID)
	if err != nil {
		return nil, fmt.Errorf("order not found: %w", err)
	}
	if order.UserID != userID {
		return nil, errors.New("order does not belong to this user")
	}

	if err := s.orders.MarkPaymentCompleted(ctx, req.OrderID, req.RazorpayPaymentID, req.RazorpaySignature); err != nil {
		return nil, fmt.Errorf("failed to update order: %w", err)
	}

	result := &PaymentResult{
		Status:      "success",
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
		PaymentID:   req.RazorpayPaymentID,
	}
	result.ReconciliationRequired = s.decrementStockForCart(ctx, userID, order.ID)

	s.finishOrder(ctx, userID, order.OrderNumber, order.Total)
	return result, nil
}

// CancelGateway maps the widget's dismiss callback. The pending order is
// deliberately left as-is; stale pending orders are reconciled out of
// band.
func (s *PaymentService) CancelGateway(userID, orderID int) *PaymentResult {
	log.Printf("payment cancelled by user %d, order %d left pending", userID, orderID)
	return &PaymentResult{Status: "cancelled", OrderID: orderID}
}

// CashOnDelivery creates the order as confirmed immediately, with the COD
// surcharge in the total, then runs the same decrement-and-clear tail as
// a successful gateway payment.
func (s *PaymentService) CashOnDelivery(ctx context.Context, userID int) (*PaymentResult, error) {
	order, err := s.buildOrder(ctx, userID, models.PaymentMethodCOD)
	if err != nil {
		return nil, err
	}
	order.Status = models.OrderStatusConfirmed
	order.PaymentStatus = models.PaymentStatusCOD

	if err := s.orders.CreateOrder(ctx, order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	result := &PaymentResult{
		Status:      "success",
		OrderID:     order.ID,
		OrderNumber: order.OrderNumber,
	}
	result.ReconciliationRequired = s.decrementStockForCart(ctx, userID, order.ID)

	s.finishOrder(ctx, userID, order.OrderNumber, order.Total)
	return result, nil
}

// WhatsAppLink builds the prefilled conversation link. This path creates
// no order, touches no stock, and leaves the cart alone; the conversation
// is completed manually.
func (s *PaymentService) WhatsAppLink(ctx context.Context, userID int) (string, error) {
	lines := s.cart.Lines(ctx, userID)
	if len(lines) == 0 {
		return "", ErrEmptyCart
	}

	addr, err := s.handoff.Load(ctx, userID)
	if err != nil {
		return "", err
	}

	quote := s.pricing.Quote(s.cart.Total(ctx, userID), models.PaymentMethodWhatsApp)

	var b strings.Builder
	b.WriteString("Hello! I'd like to place an order:\n\n")
	for i, line := range lines {
		fmt.Fprintf(&b, "%d. %s x%d - Rs. %s\n",
			i+1, line.Snapshot.Title, line.Quantity,
			utils.FormatAmount(line.Snapshot.UnitPrice*float64(line.Quantity)))
	}
	fmt.Fprintf(&b, "\nSubtotal: Rs. %s", utils.FormatAmount(quote.Subtotal))
	fmt.Fprintf(&b, "\nShipping: Rs. %s", utils.FormatAmount(quote.ShippingCost))
	fmt.Fprintf(&b, "\nTotal: Rs. %s\n", utils.FormatAmount(quote.Total))
	fmt.Fprintf(&b, "\nDeliver to:\n%s\n%s\n%s, %s - %s\nPhone: %s\n",
		addr.FullName, addr.Address, addr.City, addr.State, addr.Pincode, addr.Phone)
	if addr.Notes != "" {
		fmt.Fprintf(&b, "\nNotes: %s\n", addr.Notes)
	}

	return fmt.Sprintf("https://wa.me/%s?text=%s", s.whatsAppNumber, url.QueryEscape(b.String())), nil
}

// decrementStockForCart walks the cart lines one by one; there is no
// transaction across lines. Failures are logged to the reconciliation
// table and reported back as a flag.
func (s *PaymentService) decrementStockForCart(ctx context.Context, userID, orderID int) bool {
	needsReconciliation := false
	for _, line := range s.cart.Lines(ctx, userID) {
		if err := s.stock.DecrementStock(ctx, line.ProductID, line.Quantity); err != nil {
			needsReconciliation = true
			log.Printf("stock decrement failed for order %d product %d: %v", orderID, line.ProductID, err)
			if recErr := s.orders.RecordStockShortfall(ctx, orderID, line.ProductID, line.Quantity, err.Error()); recErr != nil {
				log.Printf("failed to record stock shortfall for order %d: %v", orderID, recErr)
			}
		}
	}
	return needsReconciliation
}

// finishOrder runs the post-payment tail: clear the cart, drop the
// handed-off address, send the confirmation mail. None of these can fail
// the already-confirmed payment.
func (s *PaymentService) finishOrder(ctx context.Context, userID int, orderNumber string, total float64) {
	addr, addrErr := s.handoff.Load(ctx, userID)

	s.cart.Clear(ctx, userID)

	if err := s.handoff.Delete(ctx, userID); err != nil {
		log.Printf("failed to drop shipping handoff for user %d: %v", userID, err)
	}

	if s.mailer != nil && addrErr == nil {
		go func(email string) {
			if err := s.mailer.SendOrderConfirmationEmail(email, orderNumber, total); err != nil {
				log.Printf("order confirmation email failed: %v", err)
			}
		}(addr.Email)
	}
}
