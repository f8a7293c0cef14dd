// Package rules owns the jurisdiction rule table: one RuleSet per US state,
// DC, or territory the business sells in. The table is an immutable,
// versioned snapshot; live updates swap the whole snapshot atomically so a
// single evaluation never observes a jurisdiction partially updated.
package rules

import (
	"fmt"

	id "canna-gate/pkg/domain"
	dErrors "canna-gate/pkg/domain-errors"
)

// RuleSet is the regulatory rule set for one jurisdiction.
type RuleSet struct {
	Code        id.JurisdictionCode
	LegalStatus id.LegalStatus
	// MinAge is the minimum purchase age in whole years.
	MinAge int
	// RequiresMedicalCard is true exactly when LegalStatus is medical.
	RequiresMedicalCard bool
	// PurchaseLimits maps a category to its maximum quantity in the
	// category's canonical unit. A category absent from the map is
	// unrestricted.
	PurchaseLimits map[id.Category]float64
}

// Validate enforces the rule set invariants. A table refuses to load with a
// broken entry - a bad rule is a configuration defect, not data to tolerate.
func (r RuleSet) Validate() error {
	if _, err := id.ParseJurisdictionCode(string(r.Code)); err != nil {
		return fmt.Errorf("rule set %q: %w", r.Code, err)
	}
	if !r.LegalStatus.IsValid() {
		return fmt.Errorf("rule set %s: invalid legal status %q", r.Code, r.LegalStatus)
	}
	if r.MinAge <= 0 {
		return fmt.Errorf("rule set %s: min age must be positive, got %d", r.Code, r.MinAge)
	}
	if r.RequiresMedicalCard != (r.LegalStatus == id.StatusMedical) {
		return fmt.Errorf("rule set %s: requires_medical_card must be true exactly for medical status", r.Code)
	}
	for category, limit := range r.PurchaseLimits {
		if !category.IsValid() {
			return fmt.Errorf("rule set %s: unknown limit category %q", r.Code, category)
		}
		if limit <= 0 {
			return fmt.Errorf("rule set %s: limit for %s must be positive, got %v", r.Code, category, limit)
		}
	}
	return nil
}

// UnknownJurisdictionError reports a lookup for a code with no rule table
// entry. This is a hard configuration fault; silently defaulting to "legal"
// would be a compliance hazard.
type UnknownJurisdictionError struct {
	Code id.JurisdictionCode
}

func (e *UnknownJurisdictionError) Error() string {
	return fmt.Sprintf("no rule table entry for jurisdiction %q", e.Code)
}

// AsDomainError converts the lookup failure into the configuration-class
// domain error services propagate.
func (e *UnknownJurisdictionError) AsDomainError() error {
	return dErrors.Wrap(dErrors.CodeConfiguration, "jurisdiction not configured", e)
}
