package models

import "time"

const (
	OrderStatusPending   = "pending"
	OrderStatusConfirmed = "confirmed"

	PaymentStatusPending   = "pending"
	PaymentStatusCompleted = "completed"
	PaymentStatusCOD       = "cod"

	PaymentMethodRazorpay = "razorpay"
	PaymentMethodCOD      = "cod"
	PaymentMethodWhatsApp = "whatsapp"
)

type ShippingAddress struct {
	FullName string `json:"full_name"`
	Email    string `json:"email"`
	Phone    string `json:"phone"`
	Address  string `json:"address"`
	City     string `json:"city"`
	State    string `json:"state"`
	Pincode  string `json:"pincode"`
	Notes    string `json:"notes,omitempty"`
}

type Order struct {
	ID            int             `json:"id"`
	OrderNumber   string          `json:"order_number"`
	UserID        int             `json:"user_id"`
	Status        string          `json:"status"`
	PaymentStatus string          `json:"payment_status"`
	PaymentMethod string          `json:"payment_method"`
	Subtotal      float64         `json:"subtotal"`
	ShippingCost  float64         `json:"shipping_cost"`
	CODFee        float64         `json:"cod_fee"`
	Total         float64         `json:"total"`
	Address       ShippingAddress `json:"shipping_address"`
	Items         []OrderItem     `json:"items,omitempty"`

	RazorpayOrderID   string `json:"razorpay_order_id,omitempty"`
	RazorpayPaymentID string `json:"razorpay_payment_id,omitempty"`
	RazorpaySignature string `json:"-"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type OrderItem struct {
	ID        int     `json:"id"`
	OrderID   int     `json:"order_id"`
	ProductID int     `json:"product_id"`
	Title     string  `json:"title"`
	UnitPrice float64 `json:"unit_price"`
	Quantity  int     `json:"quantity"`
}

// StockShortfall records a stock decrement that failed after a payment was
// already confirmed. The payment is never rolled back; an operator works
// these off via the admin reconciliation listing.
type StockShortfall struct {
	ID        int       `json:"id"`
	OrderID   int       `json:"order_id"`
	ProductID int       `json:"product_id"`
	Quantity  int       `json:"quantity"`
	Reason    string    `json:"reason"`
	CreatedAt time.Time `json:"created_at"`
}
