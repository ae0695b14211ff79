package services

import "github.com/softwrapstudio-web/Softwrap-Studio/models"

// Pricing derives shipping and grand totals from a cart subtotal. Both the
// checkout summary and the payment summary go through Quote; there is no
// second copy of this arithmetic anywhere, so the two displays cannot
// drift.
type Pricing struct {
	FreeShippingThreshold float64
	ShippingFee           float64
	CODFee                float64
}

// Quote breaks a subtotal down for the given payment method. Shipping is
// free at or above the threshold; cash on delivery adds a flat surcharge.
type OrderQuote struct {
	Subtotal     float64 `json:"subtotal"`
	ShippingCost float64 `json:"shipping_cost"`
	CODFee       float64 `json:"cod_fee"`
	Total        float64 `json:"total"`
}

func (p Pricing) ShippingCost(subtotal float64) float64 {
	if subtotal >= p.FreeShippingThreshold {
		return 0
	}
	return p.ShippingFee
}

func (p Pricing) Quote(subtotal float64, paymentMethod string) OrderQuote {
	quote := OrderQuote{
		Subtotal:     subtotal,
		ShippingCost: p.ShippingCost(subtotal),
	}
	if paymentMethod == models.PaymentMethodCOD {
		quote.CODFee = p.CODFee
	}
	quote.Total = quote.Subtotal + quote.ShippingCost + quote.CODFee
	return quote
}
