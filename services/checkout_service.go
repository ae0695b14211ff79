package services

import (
	"context"
	"regexp"
	"strings"

	"github.com/softwrapstudio-web/Softwrap-Studio/models"
	"github.com/softwrapstudio-web/Softwrap-Studio/repositories"
)

var (
	emailPattern   = regexp.MustCompile(`^\S+@\S+\.\S+$`)
	phonePattern   = regexp.MustCompile(`^\d{10}$`)
	pincodePattern = regexp.MustCompile(`^\d{6}$`)
)

type CheckoutService struct {
	handoff repositories.HandoffRepository
}

func NewCheckoutService(handoff repositories.HandoffRepository) *CheckoutService {
	return &CheckoutService{handoff: handoff}
}

// ValidateShippingAddress checks every field and reports all failures at
// once; a submit either passes completely or changes nothing.
func ValidateShippingAddress(req models.CheckoutRequest) map[string]string {
	errs := map[string]string{}

	if strings.TrimSpace(req.FullName) == "" {
		errs["fullName"] = "Full name is required"
	}
	if strings.TrimSpace(req.Email) == "" {
		errs["email"] = "Email is required"
	} else if !emailPattern.MatchString(req.Email) {
		errs["email"] = "Email is invalid"
	}
	phone := strings.ReplaceAll(req.Phone, " ", "")
	if strings.TrimSpace(req.Phone) == "" {
		errs["phone"] = "Phone number is required"
	} else if !phonePattern.MatchString(phone) {
		errs["phone"] = "Phone number must be 10 digits"
	}
	if strings.TrimSpace(req.Address) == "" {
		errs["address"] = "Address is required"
	}
	if strings.TrimSpace(req.City) == "" {
		errs["city"] = "City is required"
	}
	if strings.TrimSpace(req.State) == "" {
		errs["state"] = "State is required"
	}
	if strings.TrimSpace(req.Pincode) == "" {
		errs["pincode"] = "Pincode is required"
	} else if !pincodePattern.MatchString(req.Pincode) {
		errs["pincode"] = "Pincode must be 6 digits"
	}

	return errs
}

// Submit validates the form and, on success, stores the address for the
// payment flow to pick up. Field errors come back keyed by field name.
func (s *CheckoutService) Submit(ctx context.Context, userID int, req models.CheckoutRequest) (map[string]string, error) {
	if errs := ValidateShippingAddress(req); len(errs) > 0 {
		return errs, nil
	}

	addr := &models.ShippingAddress{
		FullName: strings.TrimSpace(req.FullName),
		Email:    strings.TrimSpace(req.Email),
		Phone:    strings.ReplaceAll(req.Phone, " ", ""),
		Address:  strings.TrimSpace(req.Address),
		City:     strings.TrimSpace(req.City),
		State:    strings.TrimSpace(req.State),
		Pincode:  strings.TrimSpace(req.Pincode),
		Notes:    strings.TrimSpace(req.Notes),
	}

	if err := s.handoff.Save(ctx, userID, addr); err != nil {
		return nil, err
	}
	return nil, nil
}
