package domain

import (
	"strings"

	dErrors "canna-gate/pkg/domain-errors"
)

// LegalStatus classifies whether and how cannabis commerce may occur in a
// jurisdiction. Callers must branch on the enum, never on free text.
type LegalStatus string

// Supported legal statuses.
const (
	// StatusLegal permits adult-use sale.
	StatusLegal LegalStatus = "legal"
	// StatusMedical permits sale only to credentialed patients.
	StatusMedical LegalStatus = "medical"
	// StatusIllegal forbids commercial sale outright.
	StatusIllegal LegalStatus = "illegal"
	// StatusDecriminalized tolerates possession but forbids commercial sale.
	// For sale purposes it blocks identically to StatusIllegal.
	StatusDecriminalized LegalStatus = "decriminalized"
)

// validLegalStatuses is the single source of truth for valid statuses.
var validLegalStatuses = map[LegalStatus]bool{
	StatusLegal:          true,
	StatusMedical:        true,
	StatusIllegal:        true,
	StatusDecriminalized: true,
}

// ParseLegalStatus constructs a LegalStatus from external input (rule files,
// database rows). Errors: CodeInvalidInput when empty or unsupported.
func ParseLegalStatus(s string) (LegalStatus, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "" {
		return "", dErrors.New(dErrors.CodeInvalidInput, "legal status cannot be empty")
	}
	ls := LegalStatus(s)
	if !ls.IsValid() {
		return "", dErrors.New(dErrors.CodeInvalidInput, "invalid legal status")
	}
	return ls, nil
}

// IsValid checks if the status is one of the supported enum values.
func (s LegalStatus) IsValid() bool {
	return validLegalStatuses[s]
}

// SaleProhibited reports whether the status forbids commercial sale outright.
func (s LegalStatus) SaleProhibited() bool {
	return s == StatusIllegal || s == StatusDecriminalized
}

// String returns the string representation of the status.
func (s LegalStatus) String() string {
	return string(s)
}
