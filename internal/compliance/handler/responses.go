package handler

import (
	"time"

	"canna-gate/internal/compliance"
)

// CheckCheckoutResponse is the HTTP response for
// POST /v1/compliance/checkout.
type CheckCheckoutResponse struct {
	Allowed      bool                `json:"allowed"`
	Errors       []string            `json:"errors"`
	Warnings     []string            `json:"warnings"`
	Violations   []ViolationResponse `json:"violations"`
	Jurisdiction string              `json:"jurisdiction"`
	RulesVersion string              `json:"rules_version"`
	EvaluatedAt  time.Time           `json:"evaluated_at"`
}

// ViolationResponse carries one violation with its structured fields so
// callers can branch on kind instead of message text.
type ViolationResponse struct {
	Kind        string  `json:"kind"`
	Message     string  `json:"message"`
	MinAge      int     `json:"min_age,omitempty"`
	ComputedAge int     `json:"computed_age,omitempty"`
	Category    string  `json:"category,omitempty"`
	Total       float64 `json:"total,omitempty"`
	Limit       float64 `json:"limit,omitempty"`
}

// FromResult converts a domain Result to an HTTP response.
func FromResult(result *compliance.Result) *CheckCheckoutResponse {
	violations := make([]ViolationResponse, 0, len(result.Violations))
	for _, v := range result.Violations {
		violations = append(violations, ViolationResponse{
			Kind:        string(v.Kind),
			Message:     v.Message(),
			MinAge:      v.MinAge,
			ComputedAge: v.ComputedAge,
			Category:    v.Category.String(),
			Total:       v.Total,
			Limit:       v.Limit,
		})
	}

	warnings := result.Warnings
	if warnings == nil {
		warnings = []string{}
	}

	return &CheckCheckoutResponse{
		Allowed:      result.Allowed,
		Errors:       result.Messages(),
		Warnings:     warnings,
		Violations:   violations,
		Jurisdiction: result.Jurisdiction.String(),
		RulesVersion: result.RulesVersion,
		EvaluatedAt:  result.EvaluatedAt,
	}
}
