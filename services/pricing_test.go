package services

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/softwrapstudio-web/Softwrap-Studio/models"
)

var testPricing = Pricing{
	FreeShippingThreshold: 999,
	ShippingFee:           50,
	CODFee:                60,
}

func TestShippingCost(t *testing.T) {
	tests := []struct {
		name     string
		subtotal float64
		want     float64
	}{
		{"below threshold", 900, 50},
		{"just below threshold", 998.99, 50},
		{"at threshold", 999, 0},
		{"above threshold", 1000, 0},
		{"empty cart", 0, 50},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, testPricing.ShippingCost(tt.subtotal))
		})
	}
}

func TestQuote(t *testing.T) {
	quote := testPricing.Quote(900, models.PaymentMethodRazorpay)
	assert.Equal(t, 900.0, quote.Subtotal)
	assert.Equal(t, 50.0, quote.ShippingCost)
	assert.Equal(t, 0.0, quote.CODFee)
	assert.Equal(t, 950.0, quote.Total)
}

func TestQuoteCODSurcharge(t *testing.T) {
	quote := testPricing.Quote(1000, models.PaymentMethodCOD)
	assert.Equal(t, 0.0, quote.ShippingCost)
	assert.Equal(t, 60.0, quote.CODFee)
	assert.Equal(t, 1060.0, quote.Total)

	// The surcharge applies on top of shipping below the threshold.
	quote = testPricing.Quote(500, models.PaymentMethodCOD)
	assert.Equal(t, 610.0, quote.Total)
}

func TestQuoteOtherMethodsSkipCODFee(t *testing.T) {
	for _, method := range []string{models.PaymentMethodRazorpay, models.PaymentMethodWhatsApp, ""} {
		quote := testPricing.Quote(1000, method)
		assert.Equal(t, 0.0, quote.CODFee, "method %q", method)
		assert.Equal(t, 1000.0, quote.Total, "method %q", method)
	}
}
