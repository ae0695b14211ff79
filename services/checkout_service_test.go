package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/softwrapstudio-web/Softwrap-Studio/models"
	"github.com/softwrapstudio-web/Softwrap-Studio/repositories"
)

func validCheckout() models.CheckoutRequest {
	return models.CheckoutRequest{
		FullName: "Asha Rao",
		Email:    "asha@example.com",
		Phone:    "9876543210",
		Address:  "12 MG Road",
		City:     "Bengaluru",
		State:    "Karnataka",
		Pincode:  "560001",
		Notes:    "Leave at the gate",
	}
}

func TestValidateShippingAddressPasses(t *testing.T) {
	assert.Empty(t, ValidateShippingAddress(validCheckout()))
}

func TestValidateShippingAddressRequiredFields(t *testing.T) {
	errs := ValidateShippingAddress(models.CheckoutRequest{})

	assert.Equal(t, "Full name is required", errs["fullName"])
	assert.Equal(t, "Email is required", errs["email"])
	assert.Equal(t, "Phone number is required", errs["phone"])
	assert.Equal(t, "Address is required", errs["address"])
	assert.Equal(t, "City is required", errs["city"])
	assert.Equal(t, "State is required", errs["state"])
	assert.Equal(t, "Pincode is required", errs["pincode"])

	// Notes stays optional.
	assert.NotContains(t, errs, "notes")
}

func TestValidateShippingAddressFormats(t *testing.T) {
	req := validCheckout()
	req.Email = "not-an-email"
	req.Phone = "12345"
	req.Pincode = "5600"

	errs := ValidateShippingAddress(req)
	assert.Equal(t, "Email is invalid", errs["email"])
	assert.Equal(t, "Phone number must be 10 digits", errs["phone"])
	assert.Equal(t, "Pincode must be 6 digits", errs["pincode"])
	assert.Len(t, errs, 3)
}

func TestValidateShippingAddressBadPhoneOnly(t *testing.T) {
	req := validCheckout()
	req.Phone = "12345"

	errs := ValidateShippingAddress(req)
	require.Len(t, errs, 1)
	assert.Equal(t, "Phone number must be 10 digits", errs["phone"])
}

func TestValidateShippingAddressPhoneIgnoresSpaces(t *testing.T) {
	req := validCheckout()
	req.Phone = "98765 43210"

	assert.Empty(t, ValidateShippingAddress(req))
}

func TestValidateShippingAddressWhitespaceOnly(t *testing.T) {
	req := validCheckout()
	req.City = "   "

	errs := ValidateShippingAddress(req)
	assert.Equal(t, "City is required", errs["city"])
}

func TestSubmitStoresNothingOnFailure(t *testing.T) {
	ctx := context.Background()
	handoff := repositories.NewMemoryHandoffRepository()
	svc := NewCheckoutService(handoff)

	req := validCheckout()
	req.Pincode = "12"

	fieldErrors, err := svc.Submit(ctx, 1, req)
	require.NoError(t, err)
	assert.NotEmpty(t, fieldErrors)

	_, err = handoff.Load(ctx, 1)
	assert.ErrorIs(t, err, repositories.ErrNoShippingAddress)
}

func TestSubmitStoresTrimmedAddress(t *testing.T) {
	ctx := context.Background()
	handoff := repositories.NewMemoryHandoffRepository()
	svc := NewCheckoutService(handoff)

	req := validCheckout()
	req.FullName = "  Asha Rao  "
	req.Phone = "98765 43210"

	fieldErrors, err := svc.Submit(ctx, 1, req)
	require.NoError(t, err)
	require.Empty(t, fieldErrors)

	addr, err := handoff.Load(ctx, 1)
	require.NoError(t, err)
	assert.Equal(t, "Asha Rao", addr.FullName)
	assert.Equal(t, "9876543210", addr.Phone)
	assert.Equal(t, "560001", addr.Pincode)
}
