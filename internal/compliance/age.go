package compliance

import (
	"time"

	dErrors "canna-gate/pkg/domain-errors"
)

// AgeAt computes whole years elapsed between dateOfBirth and asOf using
// calendar-correct arithmetic: a birthday that has not yet occurred in the
// asOf year does not count.
//
// Fails closed: a zero or future date of birth is an input fault, never a
// negative age.
func AgeAt(dateOfBirth, asOf time.Time) (int, error) {
	if dateOfBirth.IsZero() {
		return 0, dErrors.New(dErrors.CodeValidation, "date of birth is required")
	}
	if dateOfBirth.After(asOf) {
		return 0, dErrors.New(dErrors.CodeValidation, "date of birth is in the future")
	}

	age := asOf.Year() - dateOfBirth.Year()
	// Roll back a year if the birthday hasn't happened yet this year.
	anniversary := dateOfBirth.AddDate(age, 0, 0)
	if anniversary.After(asOf) {
		age--
	}
	return age, nil
}

// evaluateAge checks the customer's age against the jurisdiction minimum.
// It returns the computed age alongside any violation so the orchestrator
// can surface both.
func evaluateAge(dateOfBirth, asOf time.Time, minAge int, result *Result) (int, error) {
	age, err := AgeAt(dateOfBirth, asOf)
	if err != nil {
		return 0, err
	}
	if age < minAge {
		result.Violations = append(result.Violations, Violation{
			Kind:         ViolationAge,
			Jurisdiction: result.Jurisdiction,
			MinAge:       minAge,
			ComputedAge:  age,
		})
	}
	return age, nil
}
