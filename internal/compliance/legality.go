package compliance

import (
	id "canna-gate/pkg/domain"
)

// evaluateLegalStatus applies the legal status gate:
//   - legal: no violation regardless of medical card status
//   - medical: violation unless the customer holds a medical card
//   - illegal / decriminalized: always a violation; a medical card never
//     overrides an outright sale prohibition
func evaluateLegalStatus(status id.LegalStatus, hasMedicalCard bool, result *Result) {
	switch {
	case status.SaleProhibited():
		result.Violations = append(result.Violations, Violation{
			Kind:         ViolationLegality,
			Jurisdiction: result.Jurisdiction,
		})
	case status == id.StatusMedical && !hasMedicalCard:
		result.Violations = append(result.Violations, Violation{
			Kind:         ViolationMedicalCard,
			Jurisdiction: result.Jurisdiction,
		})
	}
}
