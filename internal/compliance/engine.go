package compliance

import (
	"fmt"
	"time"

	"canna-gate/internal/rules"
)

// Engine is the pure decision core: a side-effect-free function of the
// checkout request, one rule set, and a reference date. It holds no state,
// so concurrent evaluations need no locking.
type Engine struct{}

func NewEngine() *Engine {
	return &Engine{}
}

// Evaluate runs every check and accumulates violations; no check is skipped
// because an earlier one failed, so downstream systems always get the
// complete violation list. Input faults (future date of birth, negative
// quantities) abort the evaluation with an error instead of producing a
// partial result.
func (e *Engine) Evaluate(req CheckoutRequest, rs rules.RuleSet, asOf time.Time) (Result, error) {
	if err := req.Validate(); err != nil {
		return Result{}, err
	}
	if req.Jurisdiction != rs.Code {
		return Result{}, fmt.Errorf("rule set %s does not match jurisdiction %s", rs.Code, req.Jurisdiction)
	}

	result := Result{
		Jurisdiction: req.Jurisdiction,
		EvaluatedAt:  asOf,
	}

	// 1. Legal status gate.
	evaluateLegalStatus(rs.LegalStatus, req.Customer.HasMedicalCard, &result)

	// 2. Age check. Runs even when the gate already failed: a 15-year-old
	// in a no-sale jurisdiction accumulates both violations.
	if _, err := evaluateAge(req.Customer.DateOfBirth, asOf, rs.MinAge, &result); err != nil {
		return Result{}, err
	}

	// 3. Category limits over canonical-unit totals.
	evaluateLimits(req.Cart.Totals(), rs.PurchaseLimits, &result)

	// Cross-jurisdiction policy: evaluation always runs against the point
	// of sale; a differing home state is only worth a warning.
	if req.Customer.HomeState != "" && req.Customer.HomeState != req.Jurisdiction {
		result.Warnings = append(result.Warnings, fmt.Sprintf(
			"customer home jurisdiction %s differs from point of sale %s; rules of %s applied",
			req.Customer.HomeState, req.Jurisdiction, req.Jurisdiction,
		))
	}

	result.Allowed = len(result.Violations) == 0
	return result, nil
}
