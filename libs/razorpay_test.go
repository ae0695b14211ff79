package libs

import (
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
)

func signPayload(secret, orderID, paymentID string) string {
	mac := hmac.New(sha256.New, []byte(secret))
	mac.Write([]byte(orderID + "|" + paymentID))
	return hex.EncodeToString(mac.Sum(nil))
}

func TestVerifySignature(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "test_secret")

	sig := signPayload("test_secret", "order_123", "pay_456")
	assert.True(t, g.VerifySignature("order_123", "pay_456", sig))
}

func TestVerifySignatureRejectsTampering(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "test_secret")

	sig := signPayload("test_secret", "order_123", "pay_456")
	assert.False(t, g.VerifySignature("order_123", "pay_999", sig))
	assert.False(t, g.VerifySignature("order_999", "pay_456", sig))
	assert.False(t, g.VerifySignature("order_123", "pay_456", "deadbeef"))
	assert.False(t, g.VerifySignature("order_123", "pay_456", ""))
}

func TestVerifySignatureWrongSecret(t *testing.T) {
	g := NewRazorpayGateway("rzp_test_key", "test_secret")

	sig := signPayload("other_secret", "order_123", "pay_456")
	assert.False(t, g.VerifySignature("order_123", "pay_456", sig))
}
