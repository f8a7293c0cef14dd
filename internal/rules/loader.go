package rules

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	id "canna-gate/pkg/domain"
)

// Loader produces a fresh rule table snapshot from some source. Loaders are
// invoked at startup and on explicit reloads; the engine never calls them
// mid-evaluation.
type Loader interface {
	Load(ctx context.Context) (*Table, error)
}

// SeedLoader serves the built-in table.
type SeedLoader struct{}

func (SeedLoader) Load(context.Context) (*Table, error) {
	return NewTable(SeedVersion, Seed())
}

// FileLoader reads a YAML rule file. The file replaces the seed wholesale;
// partial overlays are not supported because a half-specified table is
// exactly the ambiguity the versioned snapshot exists to prevent.
type FileLoader struct {
	Path string
}

// ruleFile is the YAML document shape.
type ruleFile struct {
	Version       string         `yaml:"version"`
	Jurisdictions []ruleFileRule `yaml:"jurisdictions"`
}

type ruleFileRule struct {
	Code                string             `yaml:"code"`
	LegalStatus         string             `yaml:"legal_status"`
	MinAge              int                `yaml:"min_age"`
	RequiresMedicalCard bool               `yaml:"requires_medical_card"`
	PurchaseLimits      map[string]float64 `yaml:"purchase_limits"`
}

func (l FileLoader) Load(context.Context) (*Table, error) {
	raw, err := os.ReadFile(l.Path)
	if err != nil {
		return nil, fmt.Errorf("read rule file: %w", err)
	}

	var doc ruleFile
	if err := yaml.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse rule file %s: %w", l.Path, err)
	}

	version := doc.Version
	if version == "" {
		// Content-address unversioned files so audit records still pin
		// the exact rules used.
		sum := sha256.Sum256(raw)
		version = "file-" + hex.EncodeToString(sum[:8])
	}

	sets := make([]RuleSet, 0, len(doc.Jurisdictions))
	for _, r := range doc.Jurisdictions {
		code, err := id.ParseJurisdictionCode(r.Code)
		if err != nil {
			return nil, fmt.Errorf("rule file %s: %w", l.Path, err)
		}
		status, err := id.ParseLegalStatus(r.LegalStatus)
		if err != nil {
			return nil, fmt.Errorf("rule file %s, entry %s: %w", l.Path, code, err)
		}
		limits := make(map[id.Category]float64, len(r.PurchaseLimits))
		for name, limit := range r.PurchaseLimits {
			category, err := id.ParseCategory(name)
			if err != nil {
				return nil, fmt.Errorf("rule file %s, entry %s: %w", l.Path, code, err)
			}
			limits[category] = limit
		}
		sets = append(sets, RuleSet{
			Code:                code,
			LegalStatus:         status,
			MinAge:              r.MinAge,
			RequiresMedicalCard: r.RequiresMedicalCard,
			PurchaseLimits:      limits,
		})
	}

	return NewTable(version, sets)
}
