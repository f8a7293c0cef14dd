package handler

import (
	"time"

	"canna-gate/internal/compliance"
	id "canna-gate/pkg/domain"
	dErrors "canna-gate/pkg/domain-errors"
)

// dateLayout is the wire format for dates of birth.
const dateLayout = "2006-01-02"

// maxCartLines bounds request size; no legitimate checkout approaches it.
const maxCartLines = 200

// CheckCheckoutRequest is the HTTP request body for
// POST /v1/compliance/checkout.
type CheckCheckoutRequest struct {
	Customer     CustomerRequest   `json:"customer"`
	Cart         []LineItemRequest `json:"cart"`
	Jurisdiction string            `json:"dispensary_jurisdiction"`

	// Parsed values (populated by Validate)
	parsed compliance.CheckoutRequest
}

// CustomerRequest is the customer portion of the request.
type CustomerRequest struct {
	DateOfBirth    string `json:"date_of_birth"`
	HasMedicalCard bool   `json:"has_medical_card"`
	HomeState      string `json:"home_state,omitempty"`
}

// LineItemRequest is one cart line.
type LineItemRequest struct {
	ProductID  string  `json:"product_id"`
	Category   string  `json:"category"`
	Quantity   int     `json:"quantity"`
	UnitAmount float64 `json:"unit_amount"`
}

// Validate validates and parses the request.
// Implements the Validatable interface for httputil.DecodeAndPrepare.
func (r *CheckCheckoutRequest) Validate() error {
	if r == nil {
		return dErrors.New(dErrors.CodeBadRequest, "request body is required")
	}
	if len(r.Cart) > maxCartLines {
		return dErrors.New(dErrors.CodeValidation, "cart has too many lines")
	}

	jurisdiction, err := id.ParseJurisdictionCode(r.Jurisdiction)
	if err != nil {
		return err
	}

	if r.Customer.DateOfBirth == "" {
		return dErrors.New(dErrors.CodeValidation, "customer.date_of_birth is required")
	}
	dob, err := time.Parse(dateLayout, r.Customer.DateOfBirth)
	if err != nil {
		return dErrors.New(dErrors.CodeValidation, "customer.date_of_birth must be YYYY-MM-DD")
	}

	var homeState id.JurisdictionCode
	if r.Customer.HomeState != "" {
		homeState, err = id.ParseJurisdictionCode(r.Customer.HomeState)
		if err != nil {
			return err
		}
	}

	cart := make(compliance.Cart, 0, len(r.Cart))
	for _, line := range r.Cart {
		category, err := id.ParseCategory(line.Category)
		if err != nil {
			return err
		}
		if line.Quantity < 0 {
			return dErrors.New(dErrors.CodeValidation, "cart quantity cannot be negative")
		}
		if line.UnitAmount < 0 {
			return dErrors.New(dErrors.CodeValidation, "cart unit_amount cannot be negative")
		}
		cart = append(cart, compliance.LineItem{
			ProductID:  line.ProductID,
			Category:   category,
			Quantity:   line.Quantity,
			UnitAmount: line.UnitAmount,
		})
	}

	r.parsed = compliance.CheckoutRequest{
		Customer: compliance.Customer{
			DateOfBirth:    dob,
			HasMedicalCard: r.Customer.HasMedicalCard,
			HomeState:      homeState,
		},
		Cart:         cart,
		Jurisdiction: jurisdiction,
	}
	return nil
}

// ParsedRequest returns the validated domain request.
func (r *CheckCheckoutRequest) ParsedRequest() compliance.CheckoutRequest {
	return r.parsed
}
