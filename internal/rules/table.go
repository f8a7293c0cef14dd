package rules

import (
	"fmt"
	"sort"
	"time"

	id "canna-gate/pkg/domain"
)

// Table is an immutable snapshot of the full rule table. Construct via
// NewTable; nothing mutates a table after construction, so concurrent
// evaluations share it without locking.
type Table struct {
	version  string
	loadedAt time.Time
	rules    map[id.JurisdictionCode]RuleSet
}

// NewTable validates every rule set and indexes them by code. Duplicate
// codes and invalid entries fail the whole load.
func NewTable(version string, sets []RuleSet) (*Table, error) {
	if version == "" {
		return nil, fmt.Errorf("rule table version is required")
	}
	rules := make(map[id.JurisdictionCode]RuleSet, len(sets))
	for _, rs := range sets {
		if err := rs.Validate(); err != nil {
			return nil, fmt.Errorf("rule table %s: %w", version, err)
		}
		if _, exists := rules[rs.Code]; exists {
			return nil, fmt.Errorf("rule table %s: duplicate entry for %s", version, rs.Code)
		}
		rules[rs.Code] = rs
	}
	return &Table{
		version:  version,
		loadedAt: time.Now().UTC(),
		rules:    rules,
	}, nil
}

// Lookup resolves the rule set for a jurisdiction. Unknown codes return an
// UnknownJurisdictionError, never a permissive default.
func (t *Table) Lookup(code id.JurisdictionCode) (RuleSet, error) {
	rs, ok := t.rules[code]
	if !ok {
		return RuleSet{}, &UnknownJurisdictionError{Code: code}
	}
	return rs, nil
}

// Version identifies the snapshot; audit events record it so a decision can
// be replayed against the exact rules that produced it.
func (t *Table) Version() string {
	return t.version
}

// LoadedAt is when this snapshot was built.
func (t *Table) LoadedAt() time.Time {
	return t.loadedAt
}

// Len returns the number of jurisdictions in the table.
func (t *Table) Len() int {
	return len(t.rules)
}

// Codes lists every configured jurisdiction in sorted order.
func (t *Table) Codes() []id.JurisdictionCode {
	codes := make([]id.JurisdictionCode, 0, len(t.rules))
	for code := range t.rules {
		codes = append(codes, code)
	}
	sort.Slice(codes, func(i, j int) bool { return codes[i] < codes[j] })
	return codes
}
