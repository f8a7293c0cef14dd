// Package compliance decides whether a cannabis checkout may legally
// proceed: given a customer, a cart, and the selling jurisdiction, it runs
// the legal status gate, the age check, and the category limit check, and
// returns every violation found. The rules are centralized here so they stay
// testable; transport and persistence live elsewhere.
package compliance

import (
	"time"

	id "canna-gate/pkg/domain"
	dErrors "canna-gate/pkg/domain-errors"
)

// Customer is the purchaser as asserted by the account system. The engine
// reads it; it never verifies card authenticity or mutates the profile.
type Customer struct {
	DateOfBirth    time.Time
	HasMedicalCard bool
	// HomeState is the customer's residence jurisdiction. It is only
	// consulted for the cross-jurisdiction warning; evaluation always runs
	// against the point of sale.
	HomeState id.JurisdictionCode
}

// LineItem is one cart entry. UnitAmount is the amount of canonical-unit
// product per discrete unit: grams per package for flower and concentrate,
// mg of active compound per unit for edibles, count for plants.
type LineItem struct {
	ProductID  string
	Category   id.Category
	Quantity   int
	UnitAmount float64
}

// Cart is an ordered list of line items.
type Cart []LineItem

// Totals sums cart quantities by category in canonical units.
func (c Cart) Totals() map[id.Category]float64 {
	totals := make(map[id.Category]float64)
	for _, item := range c {
		totals[item.Category] += float64(item.Quantity) * item.UnitAmount
	}
	return totals
}

// CheckoutRequest is the engine's single input: customer + cart +
// point-of-sale jurisdiction, all fully materialized by the caller.
type CheckoutRequest struct {
	Customer     Customer
	Cart         Cart
	Jurisdiction id.JurisdictionCode
}

// Validate rejects malformed inputs before any rule runs. These are input
// faults (engineering-level), not regulatory violations: they abort the
// evaluation instead of appearing in a Result.
func (r CheckoutRequest) Validate() error {
	if r.Jurisdiction == "" {
		return dErrors.New(dErrors.CodeValidation, "jurisdiction is required")
	}
	if r.Customer.DateOfBirth.IsZero() {
		return dErrors.New(dErrors.CodeValidation, "customer date of birth is required")
	}
	for _, item := range r.Cart {
		if !item.Category.IsValid() {
			return dErrors.New(dErrors.CodeValidation, "cart line has unsupported category")
		}
		if item.Quantity < 0 {
			return dErrors.New(dErrors.CodeValidation, "cart line quantity cannot be negative")
		}
		if item.UnitAmount < 0 {
			return dErrors.New(dErrors.CodeValidation, "cart line unit amount cannot be negative")
		}
	}
	return nil
}

// Result is the verdict for one checkout evaluation. It is ephemeral: the
// engine does not persist it, though the service mirrors it into an audit
// event.
type Result struct {
	// Allowed is true iff zero violations were found. Warnings never
	// affect it.
	Allowed      bool
	Jurisdiction id.JurisdictionCode
	// RulesVersion pins the rule snapshot the verdict was computed with.
	RulesVersion string
	Violations   []Violation
	Warnings     []string
	EvaluatedAt  time.Time
}

// Messages renders the violations as human-readable strings, in violation
// order. Callers that need machine checks use the tagged Violations instead.
func (r Result) Messages() []string {
	msgs := make([]string, 0, len(r.Violations))
	for _, v := range r.Violations {
		msgs = append(msgs, v.Message())
	}
	return msgs
}
