package libs

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"errors"
	"math"

	razorpay "github.com/razorpay/razorpay-go"
)

// RazorpayGateway adapts the Razorpay client to the payment flow's
// Gateway interface. Amounts go over the wire in paise.
type RazorpayGateway struct {
	client    *razorpay.Client
	keySecret string
}

func NewRazorpayGateway(keyID, keySecret string) *RazorpayGateway {
	return &RazorpayGateway{
		client:    razorpay.NewClient(keyID, keySecret),
		keySecret: keySecret,
	}
}

func (g *RazorpayGateway) CreateOrder(_ context.Context, amount float64, receipt string, notes map[string]string) (string, error) {
	noteData := map[string]interface{}{}
	for k, v := range notes {
		noteData[k] = v
	}

	body, err := g.client.Order.Create(map[string]interface{}{
		"amount":   int64(math.Round(amount * 100)),
		"currency": "INR",
		"receipt":  receipt,
		"notes":    noteData,
	}, nil)
	if err != nil {
		return "", err
	}

	id, ok := body["id"].(string)
	if !ok || id == "" {
		return "", errors.New("razorpay order response missing id")
	}
	return id, nil
}

// VerifySignature checks the checkout callback signature:
// HMAC-SHA256(order_id + "|" + payment_id) keyed with the secret.
func (g *RazorpayGateway) VerifySignature(gatewayOrderID, paymentID, signature string) bool {
	mac := hmac.New(sha256.New, []byte(g.keySecret))
	mac.Write([]byte(gatewayOrderID + "|" + paymentID))
	expected := hex.EncodeToString(mac.Sum(nil))
	return hmac.Equal([]byte(expected), []byte(signature))
}
