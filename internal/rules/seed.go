package rules

import (
	id "canna-gate/pkg/domain"
)

// SeedVersion tags the built-in rule table compiled into the binary.
// File- or database-backed tables carry their own versions.
const SeedVersion = "builtin-2025.3"

func adultUse(code string, limits map[id.Category]float64) RuleSet {
	return RuleSet{
		Code:           id.JurisdictionCode(code),
		LegalStatus:    id.StatusLegal,
		MinAge:         21,
		PurchaseLimits: limits,
	}
}

func medicalOnly(code string, minAge int, limits map[id.Category]float64) RuleSet {
	return RuleSet{
		Code:                id.JurisdictionCode(code),
		LegalStatus:         id.StatusMedical,
		MinAge:              minAge,
		RequiresMedicalCard: true,
		PurchaseLimits:      limits,
	}
}

func noSale(code string, status id.LegalStatus) RuleSet {
	return RuleSet{
		Code:        id.JurisdictionCode(code),
		LegalStatus: status,
		MinAge:      21,
	}
}

// Seed returns the built-in rule table covering all 50 states plus DC.
// Limits are per-transaction in canonical units: grams for flower and
// concentrate, milligrams of active compound for edibles, count for plants.
func Seed() []RuleSet {
	f, c, e, p := id.CategoryFlower, id.CategoryConcentrate, id.CategoryEdible, id.CategoryPlant

	return []RuleSet{
		// Adult-use jurisdictions.
		adultUse("AK", map[id.Category]float64{f: 28.35, c: 7, e: 5600, p: 6}),
		adultUse("AZ", map[id.Category]float64{f: 28.35, c: 5, e: 1000}),
		adultUse("CA", map[id.Category]float64{f: 28.5, c: 8, e: 800, p: 6}),
		adultUse("CO", map[id.Category]float64{f: 28, c: 8, e: 800}),
		adultUse("CT", map[id.Category]float64{f: 14, c: 5, e: 750}),
		adultUse("DC", map[id.Category]float64{f: 56.7, p: 6}),
		adultUse("DE", map[id.Category]float64{f: 28.35, c: 12, e: 1500}),
		adultUse("IL", map[id.Category]float64{f: 30, c: 5, e: 500}),
		adultUse("MA", map[id.Category]float64{f: 28.35, c: 5, e: 500}),
		adultUse("MD", map[id.Category]float64{f: 42.5, c: 12, e: 750}),
		adultUse("ME", map[id.Category]float64{f: 70.8, c: 5, p: 6}),
		adultUse("MI", map[id.Category]float64{f: 70.8, c: 15, e: 1500, p: 12}),
		adultUse("MN", map[id.Category]float64{f: 56.7, c: 8, e: 800, p: 8}),
		adultUse("MO", map[id.Category]float64{f: 85, c: 24, e: 3000, p: 6}),
		adultUse("MT", map[id.Category]float64{f: 28.35, c: 8, e: 800, p: 4}),
		adultUse("NJ", map[id.Category]float64{f: 28.35, c: 5, e: 1000}),
		adultUse("NM", map[id.Category]float64{f: 56.7, c: 16, e: 800, p: 6}),
		adultUse("NV", map[id.Category]float64{f: 28.35, c: 7, e: 800, p: 6}),
		adultUse("NY", map[id.Category]float64{f: 85, c: 24, e: 2000}),
		adultUse("OH", map[id.Category]float64{f: 70.8, c: 15, e: 1500, p: 6}),
		adultUse("OR", map[id.Category]float64{f: 56.7, c: 10, e: 500, p: 4}),
		adultUse("RI", map[id.Category]float64{f: 28.35, c: 5, e: 500}),
		adultUse("VA", map[id.Category]float64{f: 28.35, p: 4}),
		adultUse("VT", map[id.Category]float64{f: 28.35, c: 5, p: 6}),
		adultUse("WA", map[id.Category]float64{f: 28.35, c: 7, e: 1120}),

		// Medical-only jurisdictions.
		medicalOnly("AL", 19, map[id.Category]float64{e: 2100}),
		medicalOnly("AR", 18, map[id.Category]float64{f: 70.8, e: 2500}),
		medicalOnly("FL", 18, map[id.Category]float64{f: 70, c: 14, e: 2450}),
		medicalOnly("HI", 18, map[id.Category]float64{f: 113.4, p: 10}),
		medicalOnly("LA", 18, map[id.Category]float64{f: 71, e: 2400}),
		medicalOnly("MS", 18, map[id.Category]float64{f: 99, c: 28, e: 2800}),
		medicalOnly("ND", 19, map[id.Category]float64{f: 70.8, e: 2000}),
		medicalOnly("NH", 18, map[id.Category]float64{f: 56.7}),
		medicalOnly("OK", 18, map[id.Category]float64{f: 85, c: 28.35, e: 2040, p: 6}),
		medicalOnly("PA", 18, map[id.Category]float64{f: 90, c: 30, e: 2700}),
		medicalOnly("SD", 18, map[id.Category]float64{f: 85, p: 4}),
		medicalOnly("UT", 21, map[id.Category]float64{f: 113, e: 2000}),
		medicalOnly("WV", 18, map[id.Category]float64{f: 85, c: 28, e: 2500}),

		// Decriminalized: possession tolerated, commercial sale forbidden.
		noSale("NC", id.StatusDecriminalized),
		noSale("NE", id.StatusDecriminalized),

		// Prohibited.
		noSale("GA", id.StatusIllegal),
		noSale("IA", id.StatusIllegal),
		noSale("ID", id.StatusIllegal),
		noSale("IN", id.StatusIllegal),
		noSale("KS", id.StatusIllegal),
		noSale("KY", id.StatusIllegal),
		noSale("SC", id.StatusIllegal),
		noSale("TN", id.StatusIllegal),
		noSale("TX", id.StatusIllegal),
		noSale("WI", id.StatusIllegal),
		noSale("WY", id.StatusIllegal),
	}
}
