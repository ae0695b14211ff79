package services

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softwrapstudio-web/Softwrap-Studio/models"
	"github.com/softwrapstudio-web/Softwrap-Studio/repositories"
)

type fakeOrderWriter struct {
	mu         sync.Mutex
	nextID     int
	orders     map[int]*models.Order
	shortfalls []models.StockShortfall
	createErr  error
}

func newFakeOrderWriter() *fakeOrderWriter {
	return &fakeOrderWriter{nextID: 1, orders: map[int]*models.Order{}}
}

func (f *fakeOrderWriter) CreateOrder(_ context.Context, order *models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	order.ID = f.nextID
	f.nextID++
	copied := *order
	f.orders[order.ID] = &copied
	return nil
}

func (f *fakeOrderWriter) GetOrderByID(_ context.Context, orderID int) (*models.Order, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return nil, errors.New("no rows in result set")
	}
	copied := *order
	return &copied, nil
}

func (f *fakeOrderWriter) SetGatewayOrderID(_ context.Context, orderID int, gatewayOrderID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[orderID].RazorpayOrderID = gatewayOrderID
	return nil
}

func (f *fakeOrderWriter) MarkPaymentCompleted(_ context.Context, orderID int, paymentID, signature string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	order, ok := f.orders[orderID]
	if !ok {
		return errors.New("no rows in result set")
	}
	order.Status = models.OrderStatusConfirmed
	order.PaymentStatus = models.PaymentStatusCompleted
	order.RazorpayPaymentID = paymentID
	order.RazorpaySignature = signature
	return nil
}

func (f *fakeOrderWriter) RecordStockShortfall(_ context.Context, orderID, productID, quantity int, reason string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.shortfalls = append(f.shortfalls, models.StockShortfall{
		OrderID:   orderID,
		ProductID: productID,
		Quantity:  quantity,
		Reason:    reason,
	})
	return nil
}

type fakeStock struct {
	mu         sync.Mutex
	decrements map[int]int
	failFor    map[int]error
}

func newFakeStock() *fakeStock {
	return &fakeStock{decrements: map[int]int{}, failFor: map[int]error{}}
}

func (f *fakeStock) DecrementStock(_ context.Context, productID, quantity int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if err, ok := f.failFor[productID]; ok {
		return err
	}
	f.decrements[productID] += quantity
	return nil
}

type fakeGateway struct {
	created   []float64
	createErr error
	validSig  string
}

func (f *fakeGateway) CreateOrder(_ context.Context, amount float64, receipt string, notes map[string]string) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, amount)
	return fmt.Sprintf("rzp_order_%d", len(f.created)), nil
}

func (f *fakeGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	return signature == f.validSig
}

type paymentFixture struct {
	svc     *PaymentService
	cart    *CartStore
	orders  *fakeOrderWriter
	stock   *fakeStock
	gateway *fakeGateway
	handoff repositories.HandoffRepository
}

func newPaymentFixture(t *testing.T) *paymentFixture {
	t.Helper()

	cart := NewCartStore(repositories.NewMemoryCartRepository())
	orders := newFakeOrderWriter()
	stock := newFakeStock()
	gateway := &fakeGateway{validSig: "good-signature"}
	handoff := repositories.NewMemoryHandoffRepository()

	svc := NewPaymentService(
		cart, testPricing, orders, stock, gateway, handoff, nil,
		"rzp_test_key", "919876543210",
	)
	return &paymentFixture{svc: svc, cart: cart, orders: orders, stock: stock, gateway: gateway, handoff: handoff}
}

func (fx *paymentFixture) seedCartAndAddress(t *testing.T, userID int) {
	t.Helper()
	ctx := context.Background()

	require.NoError(t, fx.cart.AddItem(ctx, userID, testProduct(1, "Bear", 450)))
	require.NoError(t, fx.cart.AddItem(ctx, userID, testProduct(2, "Bunny", 300)))
	require.NoError(t, fx.cart.AddItem(ctx, userID, testProduct(2, "Bunny", 300)))

	addr := models.ShippingAddress{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
	}
	require.NoError(t, fx.handoff.Save(ctx, userID, &addr))
}

func TestInitiateGatewayCreatesPendingOrder(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	fx.seedCartAndAddress(t, 1)

	initiation, err := fx.svc.InitiateGateway(ctx, 1)
	require.NoError(t, err)

	// Subtotal 1050 clears the free shipping threshold.
	assert.Equal(t, 1050.0, initiation.Amount)
	assert.Equal(t, "rzp_test_key", initiation.KeyID)
	assert.Equal(t, "INR", initiation.Currency)
	assert.NotEmpty(t, initiation.GatewayOrderID)
	assert.Equal(t, "Asha Rao", initiation.PrefillName)

	order, err := fx.orders.GetOrderByID(ctx, initiation.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Equal(t, initiation.GatewayOrderID, order.RazorpayOrderID)
	require.Len(t, order.Items, 2)

	// Initiation alone must not touch the cart or the stock.
	assert.Equal(t, 3, fx.cart.ItemCount(ctx, 1))
	assert.Empty(t, fx.stock.decrements)
}

func TestInitiateGatewayEmptyCart(t *testing.T) {
	fx := newPaymentFixture(t)

	_, err := fx.svc.InitiateGateway(context.Background(), 1)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestInitiateGatewayMissingAddress(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	require.NoError(t, fx.cart.AddItem(ctx, 1, testProduct(1, "Bear", 450)))

	_, err := fx.svc.InitiateGateway(ctx, 1)
	assert.ErrorIs(t, err, repositories.ErrNoShippingAddress)
}

func TestInitiateGatewayKeepsPendingOrderOnGatewayFailure(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	fx.seedCartAndAddress(t, 1)
	fx.gateway.createErr = errors.New("gateway down")

	_, err := fx.svc.InitiateGateway(ctx, 1)
	require.Error(t, err)

	// The pending record stays for reconciliation and the cart survives.
	order, err := fx.orders.GetOrderByID(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 3, fx.cart.ItemCount(ctx, 1))
}

func TestConfirmGatewayHappyPath(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	fx.seedCartAndAddress(t, 1)

	initiation, err := fx.svc.InitiateGateway(ctx, 1)
	require.NoError(t, err)

	result, err := fx.svc.ConfirmGateway(ctx, 1, models.RazorpayVerifyRequest{
		OrderID:           initiation.OrderID,
		RazorpayOrderID:   initiation.GatewayOrderID,
		RazorpayPaymentID: "pay_123",
		RazorpaySignature: "good-signature",
	})
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)
	assert.False(t, result.ReconciliationRequired)

	order, err := fx.orders.GetOrderByID(ctx, initiation.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, models.PaymentStatusCompleted, order.PaymentStatus)
	assert.Equal(t, "pay_123", order.RazorpayPaymentID)

	// Stock decremented per line, then cart cleared and address dropped.
	assert.Equal(t, 1, fx.stock.decrements[1])
	assert.Equal(t, 2, fx.stock.decrements[2])
	assert.Equal(t, 0, fx.cart.ItemCount(ctx, 1))
	_, err = fx.handoff.Load(ctx, 1)
	assert.ErrorIs(t, err, repositories.ErrNoShippingAddress)
}

func TestConfirmGatewayBadSignature(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	fx.seedCartAndAddress(t, 1)

	initiation, err := fx.svc.InitiateGateway(ctx, 1)
	require.NoError(t, err)

	_, err = fx.svc.ConfirmGateway(ctx, 1, models.RazorpayVerifyRequest{
		OrderID:           initiation.OrderID,
		RazorpayOrderID:   initiation.GatewayOrderID,
		RazorpayPaymentID: "pay_123",
		RazorpaySignature: "forged",
	})
	assert.ErrorIs(t, err, ErrPaymentVerification)

	// Nothing moved.
	order, err := fx.orders.GetOrderByID(ctx, initiation.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)
	assert.Equal(t, 3, fx.cart.ItemCount(ctx, 1))
	assert.Empty(t, fx.stock.decrements)
}

func TestConfirmGatewayWrongUser(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	fx.seedCartAndAddress(t, 1)

	initiation, err := fx.svc.InitiateGateway(ctx, 1)
	require.NoError(t, err)

	_, err = fx.svc.ConfirmGateway(ctx, 2, models.RazorpayVerifyRequest{
		OrderID:           initiation.OrderID,
		RazorpayOrderID:   initiation.GatewayOrderID,
		RazorpayPaymentID: "pay_123",
		RazorpaySignature: "good-signature",
	})
	require.Error(t, err)
	assert.Equal(t, 3, fx.cart.ItemCount(ctx, 1))
}

func TestConfirmGatewayRecordsShortfall(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	fx.seedCartAndAddress(t, 1)
	fx.stock.failFor[2] = repositories.ErrInsufficientStock

	initiation, err := fx.svc.InitiateGateway(ctx, 1)
	require.NoError(t, err)

	result, err := fx.svc.ConfirmGateway(ctx, 1, models.RazorpayVerifyRequest{
		OrderID:           initiation.OrderID,
		RazorpayOrderID:   initiation.GatewayOrderID,
		RazorpayPaymentID: "pay_123",
		RazorpaySignature: "good-signature",
	})
	require.NoError(t, err)

	// The payment stays confirmed; the failed line lands in the
	// reconciliation queue and the other line still decrements.
	assert.True(t, result.ReconciliationRequired)
	assert.Equal(t, 1, fx.stock.decrements[1])
	require.Len(t, fx.orders.shortfalls, 1)
	assert.Equal(t, 2, fx.orders.shortfalls[0].ProductID)
	assert.Equal(t, 2, fx.orders.shortfalls[0].Quantity)

	order, err := fx.orders.GetOrderByID(ctx, initiation.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.PaymentStatusCompleted, order.PaymentStatus)
	assert.Equal(t, 0, fx.cart.ItemCount(ctx, 1))
}

func TestCancelGatewayLeavesOrderPending(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	fx.seedCartAndAddress(t, 1)

	initiation, err := fx.svc.InitiateGateway(ctx, 1)
	require.NoError(t, err)

	result := fx.svc.CancelGateway(1, initiation.OrderID)
	assert.Equal(t, "cancelled", result.Status)

	order, err := fx.orders.GetOrderByID(ctx, initiation.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusPending, order.Status)

	// Cart and address survive so the user can retry.
	assert.Equal(t, 3, fx.cart.ItemCount(ctx, 1))
	_, err = fx.handoff.Load(ctx, 1)
	assert.NoError(t, err)
}

func TestCashOnDelivery(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	fx.seedCartAndAddress(t, 1)

	result, err := fx.svc.CashOnDelivery(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "success", result.Status)

	order, err := fx.orders.GetOrderByID(ctx, result.OrderID)
	require.NoError(t, err)
	assert.Equal(t, models.OrderStatusConfirmed, order.Status)
	assert.Equal(t, models.PaymentStatusCOD, order.PaymentStatus)
	assert.Equal(t, models.PaymentMethodCOD, order.PaymentMethod)

	// Subtotal 1050: free shipping, plus the flat COD surcharge.
	assert.Equal(t, 1050.0, order.Subtotal)
	assert.Equal(t, 0.0, order.ShippingCost)
	assert.Equal(t, 60.0, order.CODFee)
	assert.Equal(t, 1110.0, order.Total)

	assert.Equal(t, 1, fx.stock.decrements[1])
	assert.Equal(t, 2, fx.stock.decrements[2])
	assert.Equal(t, 0, fx.cart.ItemCount(ctx, 1))
}

func TestCashOnDeliveryEmptyCart(t *testing.T) {
	fx := newPaymentFixture(t)

	_, err := fx.svc.CashOnDelivery(context.Background(), 1)
	assert.ErrorIs(t, err, ErrEmptyCart)
}

func TestWhatsAppLink(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	fx.seedCartAndAddress(t, 1)

	link, err := fx.svc.WhatsAppLink(ctx, 1)
	require.NoError(t, err)

	assert.True(t, strings.HasPrefix(link, "https://wa.me/919876543210?text="), link)
	assert.Contains(t, link, "Bear")
	assert.Contains(t, link, "Asha+Rao")

	// The handoff path creates no order, touches no stock, keeps the cart.
	assert.Empty(t, fx.orders.orders)
	assert.Empty(t, fx.stock.decrements)
	assert.Equal(t, 3, fx.cart.ItemCount(ctx, 1))
}

func TestWhatsAppLinkMissingAddress(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	require.NoError(t, fx.cart.AddItem(ctx, 1, testProduct(1, "Bear", 450)))

	_, err := fx.svc.WhatsAppLink(ctx, 1)
	assert.ErrorIs(t, err, repositories.ErrNoShippingAddress)
}

func TestQuoteUsesLiveCartTotal(t *testing.T) {
	ctx := context.Background()
	fx := newPaymentFixture(t)
	require.NoError(t, fx.cart.AddItem(ctx, 1, testProduct(1, "Bear", 450)))

	quote := fx.svc.Quote(ctx, 1, models.PaymentMethodCOD)
	assert.Equal(t, 450.0, quote.Subtotal)
	assert.Equal(t, 50.0, quote.ShippingCost)
	assert.Equal(t, 560.0, quote.Total)
}
