package compliance

import (
	"fmt"
	"strings"

	id "canna-gate/pkg/domain"
)

// ViolationKind tags a rule breach so tests and downstream systems classify
// violations structurally instead of pattern-matching message text.
type ViolationKind string

const (
	// ViolationLegality: the jurisdiction forbids commercial sale outright.
	ViolationLegality ViolationKind = "legality"
	// ViolationAge: the customer is below the jurisdiction's minimum age.
	ViolationAge ViolationKind = "age"
	// ViolationMedicalCard: a medical-only jurisdiction and no credential.
	ViolationMedicalCard ViolationKind = "medical_card"
	// ViolationCategoryLimit: a category total strictly exceeds its limit.
	ViolationCategoryLimit ViolationKind = "category_limit"
)

// Violation is a single rule breach with the structured fields behind it.
// Human-readable text is generated at the presentation boundary by Message.
type Violation struct {
	Kind         ViolationKind
	Jurisdiction id.JurisdictionCode

	// Age violations.
	MinAge      int
	ComputedAge int

	// Category limit violations, in the category's canonical unit.
	Category id.Category
	Total    float64
	Limit    float64
}

// Message renders the violation for end users.
func (v Violation) Message() string {
	switch v.Kind {
	case ViolationLegality:
		return fmt.Sprintf("cannabis sale is not legal in %s", v.Jurisdiction)
	case ViolationAge:
		return fmt.Sprintf("customer is %d; %s requires a minimum age of %d", v.ComputedAge, v.Jurisdiction, v.MinAge)
	case ViolationMedicalCard:
		return fmt.Sprintf("%s requires a valid medical card for purchase", v.Jurisdiction)
	case ViolationCategoryLimit:
		unit := v.Category.Unit()
		return fmt.Sprintf("cart exceeds the %s limit for %s: %g%s over a limit of %g%s",
			v.Category, v.Jurisdiction, v.Total, unit, v.Limit, unit)
	default:
		return fmt.Sprintf("compliance violation in %s", v.Jurisdiction)
	}
}

// kindList joins violation kinds for audit reasons and logs.
func kindList(violations []Violation) string {
	if len(violations) == 0 {
		return ""
	}
	kinds := make([]string, 0, len(violations))
	for _, v := range violations {
		kinds = append(kinds, string(v.Kind))
	}
	return strings.Join(kinds, ",")
}
