package domain

import (
	"strings"

	dErrors "canna-gate/pkg/domain-errors"
)

// JurisdictionCode identifies the US state, district, or territory whose
// cannabis law governs a point of sale.
// Invariant: two uppercase ASCII letters. Construct via ParseJurisdictionCode
// at trust boundaries; direct casting bypasses validation.
type JurisdictionCode string

// ParseJurisdictionCode constructs a JurisdictionCode from external input.
// Input is case-insensitive; the stored form is always uppercase.
//
// Errors: returns CodeInvalidInput when the value is empty or not a
// two-letter code. Whether the code has a rule table entry is a separate
// question answered by the rules package.
func ParseJurisdictionCode(s string) (JurisdictionCode, error) {
	s = strings.ToUpper(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "jurisdiction code cannot be empty")
	}
	if len(s) != 2 {
		return "", dErrors.New(dErrors.CodeInvalidInput, "jurisdiction code must be two letters")
	}
	for i := 0; i < len(s); i++ {
		if s[i] < 'A' || s[i] > 'Z' {
			return "", dErrors.New(dErrors.CodeInvalidInput, "jurisdiction code must be two letters")
		}
	}
	return JurisdictionCode(s), nil
}

// String returns the two-letter code.
func (c JurisdictionCode) String() string {
	return string(c)
}
