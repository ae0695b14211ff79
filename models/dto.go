package models

type RegisterRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required,min=6"`
	FullName string `json:"full_name" form:"full_name" binding:"required,min=3"`
	Phone    string `json:"phone" form:"phone" binding:"omitempty"`
}

type LoginRequest struct {
	Email    string `json:"email" form:"email" binding:"required,email"`
	Password string `json:"password" form:"password" binding:"required"`
}

type CreateProductRequest struct {
	Title       string  `json:"title" form:"title" binding:"required"`
	Description string  `json:"description" form:"description"`
	Category    string  `json:"category" form:"category" binding:"required"`
	Price       float64 `json:"price" form:"price" binding:"required"`
	Stock       int     `json:"stock" form:"stock"`
	ImageURL    string  `json:"image_url" form:"image_url"`
	IsActive    bool    `json:"is_active" form:"is_active"`
}

type UpdateProductRequest struct {
	Title       string  `json:"title" form:"title"`
	Description string  `json:"description" form:"description"`
	Category    string  `json:"category" form:"category"`
	Price       float64 `json:"price" form:"price"`
	Stock       int     `json:"stock" form:"stock"`
	ImageURL    string  `json:"image_url" form:"image_url"`
	IsActive    bool    `json:"is_active" form:"is_active"`
}

type AddCartItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}

type SetQuantityRequest struct {
	Quantity int `json:"quantity"`
}

// CheckoutRequest carries the shipping form. Field rules live in
// services.ValidateShippingAddress, not in binding tags, so a submit with
// several bad fields reports all of them at once.
type CheckoutRequest struct {
	FullName string `json:"fullName" form:"fullName"`
	Email    string `json:"email" form:"email"`
	Phone    string `json:"phone" form:"phone"`
	Address  string `json:"address" form:"address"`
	City     string `json:"city" form:"city"`
	State    string `json:"state" form:"state"`
	Pincode  string `json:"pincode" form:"pincode"`
	Notes    string `json:"notes" form:"notes"`
}

type RazorpayVerifyRequest struct {
	OrderID           int    `json:"order_id" binding:"required"`
	RazorpayOrderID   string `json:"razorpay_order_id" binding:"required"`
	RazorpayPaymentID string `json:"razorpay_payment_id" binding:"required"`
	RazorpaySignature string `json:"razorpay_signature" binding:"required"`
}

type RazorpayCancelRequest struct {
	OrderID int `json:"order_id" binding:"required"`
}
